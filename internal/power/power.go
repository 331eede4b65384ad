package power

import (
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/effevee/weatherstation/log"
	"github.com/effevee/weatherstation/utils/cli"
)

// RTCWake issues the deep power-down with an RTC alarm. The process does
// not survive it; on wake the whole program restarts from its entry point
// (the service manager relaunches the unit after a resume-from-mem too).
type RTCWake struct {
	// Mode is an rtcwake mode, "off" for full power-down, "mem" for
	// suspend-to-RAM on boards that can't cold boot from RTC.
	Mode string
}

func NewRTCWake(mode string) (*RTCWake, error) {
	if err := cli.CheckCommandExists("rtcwake"); err != nil {
		return nil, err
	}

	return &RTCWake{Mode: mode}, nil
}

func (r *RTCWake) Suspend(d time.Duration) error {
	secs := int(d.Seconds())
	if secs <= 0 {
		// budget already spent, the next cycle starts right away
		log.Info.Println("no sleep budget left, skipping suspension")

		return nil
	}

	log.Info.Printf("going into deep sleep for %d seconds", secs)

	cmd := exec.Command("rtcwake", "-m", r.Mode, "-s", strconv.Itoa(secs))
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("rtcwake: %s: %w", string(out), err)
	}

	return nil
}

// Bench just waits the budget out in-process. Dev machines should not be
// suspended under the developer.
type Bench struct {
	sleep func(time.Duration)
}

func NewBench() *Bench {
	return &Bench{sleep: time.Sleep}
}

func (b *Bench) Suspend(d time.Duration) error {
	if d <= 0 {
		return nil
	}

	log.Info.Printf("bench sleep for %s", d)
	b.sleep(d)

	return nil
}
