package sensors

import "math/rand"

// Dummy stands in for a physical sensor on machines without the bus.
type Dummy struct {
	name string
	srcs []Source
}

func NewDummy(name string, srcs ...Source) *Dummy {
	return &Dummy{name: name, srcs: srcs}
}

func (d *Dummy) Name() string { return d.name }

func (d *Dummy) Sources() []Source { return d.srcs }

func (d *Dummy) Read() ([]Reading, error) {
	out := make([]Reading, 0, len(d.srcs))
	for _, src := range d.srcs {
		r := Reading{Source: src, Unit: unitFor(src, Celsius), Valid: true}
		switch src {
		case Temperature:
			r.Value = 15 + 10*rand.Float64()
		case Humidity:
			r.Value = 40 + 20*rand.Float64()
		case Pressure:
			r.Value = 990 + 40*rand.Float64()
		case Altitude:
			r.Value = 30 + rand.Float64()
		case Light:
			r.Value = 5000 * rand.Float64()
		}
		out = append(out, r)
	}

	return out, nil
}
