package indicator

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/effevee/weatherstation/log"
)

const (
	pulse = 500 * time.Millisecond
	pause = time.Second
)

// LED drives the fault indicator line. The panel LED is wired active-low.
type LED struct {
	pin gpio.PinIO
}

func NewLED(name string) (*LED, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("indicator: no pin %q", name)
	}
	if err := pin.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("indicator: can't drive %q: %w", name, err)
	}

	return &LED{pin: pin}, nil
}

// Trouble blinks the fault pattern (three fast pulses, pause, repeat)
// until the context dies. It never returns on hardware, the only way out
// of the fatal state is a physical reset.
func (l *LED) Trouble(ctx context.Context) {
	for {
		for i := 0; i < 3; i++ {
			_ = l.pin.Out(gpio.Low)
			if !sleep(ctx, pulse) {
				return
			}
			_ = l.pin.Out(gpio.High)
			if !sleep(ctx, pulse) {
				return
			}
		}
		if !sleep(ctx, pause) {
			return
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

// Noop logs the fault pattern instead of blinking, for machines without
// the indicator line.
type Noop struct{}

func (Noop) Trouble(ctx context.Context) {
	log.Erro.Println("FATAL state reached, halting (no indicator wired)")
	<-ctx.Done()
}
