package sensors

import (
	"fmt"

	"github.com/d2r2/go-aosong"
	"github.com/d2r2/go-i2c"
)

const am2320Addr = 0x5c

// AM2320 reports temperature and relative humidity in one bus transaction.
type AM2320 struct {
	conn   *i2c.I2C
	sensor *aosong.Sensor
}

func NewAM2320(bus int) (*AM2320, error) {
	conn, err := i2c.NewI2C(am2320Addr, bus)
	if err != nil {
		return nil, fmt.Errorf("can't open AM2320 on bus %d: %w", bus, err)
	}

	return &AM2320{
		conn:   conn,
		sensor: aosong.NewSensor(aosong.AM2320),
	}, nil
}

func (s *AM2320) Name() string { return "AM2320" }

func (s *AM2320) Sources() []Source { return []Source{Temperature, Humidity} }

func (s *AM2320) Read() ([]Reading, error) {
	rh, t, err := s.sensor.ReadRelativeHumidityAndTemperature(s.conn)
	if err != nil {
		return nil, fmt.Errorf("%w: AM2320: %s", ErrBusFault, err.Error())
	}

	return []Reading{
		{Source: Temperature, Value: float64(t), Unit: Celsius, Valid: true},
		{Source: Humidity, Value: float64(rh), Unit: Percent, Valid: true},
	}, nil
}

func (s *AM2320) Close() error { return s.conn.Close() }
