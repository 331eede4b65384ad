package clock

import (
	"fmt"
	"os/exec"
	"time"

	"golang.org/x/sys/unix"

	"github.com/effevee/weatherstation/log"
	"github.com/effevee/weatherstation/utils/cli"
)

// SystemSetter writes the instant to the kernel clock and persists it to
// the hardware RTC so it survives the deep power-down.
type SystemSetter struct{}

func NewSystemSetter() (*SystemSetter, error) {
	if err := cli.CheckCommandExists("hwclock"); err != nil {
		return nil, err
	}

	return &SystemSetter{}, nil
}

func (s *SystemSetter) Set(t time.Time) error {
	tv := unix.NsecToTimeval(t.UnixNano())
	if err := unix.Settimeofday(&tv); err != nil {
		return fmt.Errorf("settimeofday: %w", err)
	}

	// best effort; the kernel clock is already correct for this cycle
	if out, err := exec.Command("hwclock", "-w").CombinedOutput(); err != nil {
		log.Erro.Printf("can't write RTC: %s: %s", string(out), err.Error())
	}

	return nil
}

// NoopSetter is for dev machines where the system clock is not ours to set.
type NoopSetter struct{}

func (NoopSetter) Set(t time.Time) error {
	log.Debg.Printf("would set clock to %s", t)

	return nil
}
