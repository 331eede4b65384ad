package sensors

import (
	"fmt"

	"github.com/d2r2/go-bh1750"
	"github.com/d2r2/go-i2c"
)

const bh1750Addr = 0x23

// BH1750 reports ambient light in lux.
type BH1750 struct {
	conn   *i2c.I2C
	sensor *bh1750.BH1750
}

func NewBH1750(bus int) (*BH1750, error) {
	conn, err := i2c.NewI2C(bh1750Addr, bus)
	if err != nil {
		return nil, fmt.Errorf("can't open BH1750 on bus %d: %w", bus, err)
	}

	return &BH1750{conn: conn, sensor: bh1750.NewBH1750()}, nil
}

func (s *BH1750) Name() string { return "BH1750" }

func (s *BH1750) Sources() []Source { return []Source{Light} }

func (s *BH1750) Read() ([]Reading, error) {
	lux, err := s.sensor.MeasureAmbientLight(s.conn, bh1750.HighResolution)
	if err != nil {
		return nil, fmt.Errorf("%w: BH1750: %s", ErrBusFault, err.Error())
	}

	return []Reading{
		{Source: Light, Value: float64(lux), Unit: Lux, Valid: true},
	}, nil
}

func (s *BH1750) Close() error { return s.conn.Close() }
