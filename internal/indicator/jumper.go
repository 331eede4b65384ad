package indicator

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Jumper is the debug input: grounding the pin keeps the station out of
// deep sleep for bench work. Sampled once per cycle at Init.
type Jumper struct {
	pin gpio.PinIO
}

func NewJumper(name string) (*Jumper, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("indicator: no pin %q", name)
	}
	if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("indicator: can't read %q: %w", name, err)
	}

	return &Jumper{pin: pin}, nil
}

// Asserted reports the active-low debug state.
func (j *Jumper) Asserted() bool {
	return j.pin.Read() == gpio.Low
}

// StaticDebug is the dev stand-in for the jumper.
type StaticDebug bool

func (s StaticDebug) Asserted() bool { return bool(s) }
