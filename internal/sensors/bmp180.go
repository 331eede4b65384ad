package sensors

import (
	"fmt"

	"github.com/d2r2/go-bsbmp"
	"github.com/d2r2/go-i2c"
)

const bmp180Addr = 0x77

// BMP180 reports barometric pressure and derived altitude. Its temperature
// channel stays unused, the AM2320 is the station's temperature reference.
type BMP180 struct {
	conn   *i2c.I2C
	sensor *bsbmp.BMP
}

func NewBMP180(bus int) (*BMP180, error) {
	conn, err := i2c.NewI2C(bmp180Addr, bus)
	if err != nil {
		return nil, fmt.Errorf("can't open BMP180 on bus %d: %w", bus, err)
	}

	sensor, err := bsbmp.NewBMP(bsbmp.BMP180, conn)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("can't init BMP180: %w", err)
	}

	return &BMP180{conn: conn, sensor: sensor}, nil
}

func (s *BMP180) Name() string { return "BMP180" }

func (s *BMP180) Sources() []Source { return []Source{Pressure, Altitude} }

func (s *BMP180) Read() ([]Reading, error) {
	pa, err := s.sensor.ReadPressurePa(bsbmp.ACCURACY_STANDARD)
	if err != nil {
		return nil, fmt.Errorf("%w: BMP180 pressure: %s", ErrBusFault, err.Error())
	}

	alt, err := s.sensor.ReadAltitude(bsbmp.ACCURACY_STANDARD)
	if err != nil {
		return nil, fmt.Errorf("%w: BMP180 altitude: %s", ErrBusFault, err.Error())
	}

	return []Reading{
		{Source: Pressure, Value: float64(pa) / 100, Unit: HPa, Valid: true},
		{Source: Altitude, Value: float64(alt), Unit: Meter, Valid: true},
	}, nil
}

func (s *BMP180) Close() error { return s.conn.Close() }
