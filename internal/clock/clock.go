package clock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beevik/ntp"

	"github.com/effevee/weatherstation/log"
)

var ErrUnreachable = errors.New("clock: time source unreachable")

// The station keeps its clock in local wall time: it is a headless
// appliance without a tz database, timezone and DST offsets are applied
// once at sync and the RTC carries the result across power-downs.

// Cadence controls when Sync actually runs.
type Cadence string

const (
	// SyncAuto syncs only when the clock is obviously unset, i.e. the RTC
	// lost its charge and reports a year before the station existed.
	SyncAuto Cadence = "auto"
	// SyncAlways syncs on every connected cycle.
	SyncAlways Cadence = "always"
)

// Any RTC reporting a year before this floor has never been set.
const yearFloor = 2016

// Setter commits a synchronized instant to the system clock and the
// hardware RTC.
type Setter interface {
	Set(t time.Time) error
}

type Clock struct {
	host    string
	tzHours int
	dst     bool
	cadence Cadence
	set     Setter

	now   func() time.Time
	query func(host string) (time.Time, error)
}

func New(host string, tzHours int, dst bool, cadence Cadence, set Setter) *Clock {
	return &Clock{
		host:    host,
		tzHours: tzHours,
		dst:     dst,
		cadence: cadence,
		set:     set,
		now:     time.Now,
		query:   ntp.Time,
	}
}

func (c *Clock) Now() time.Time { return c.now() }

func (c *Clock) ShouldSync() bool {
	if c.cadence == SyncAlways {
		return true
	}

	return c.now().Year() < yearFloor
}

// Sync queries the NTP source once, applies the timezone and DST offsets
// and commits the result. On any failure the running clock value stays
// untouched; downstream time display falls back to it.
func (c *Clock) Sync(_ context.Context) error {
	utc, err := c.query(c.host)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrUnreachable, c.host, err.Error())
	}

	local := utc.UTC().Add(time.Duration(c.tzHours) * time.Hour)
	if c.dst && inDST(local) {
		local = local.Add(time.Hour)
	}

	if err := c.set.Set(local); err != nil {
		return fmt.Errorf("clock: can't commit time: %w", err)
	}

	log.Info.Printf("clock synced to %s", local.Format("2006-01-02 15:04:05"))

	return nil
}

// inDST implements the EU rule: one hour is added from the last Sunday of
// March 02:00 until the last Sunday of October 03:00, evaluated on the
// timezone-corrected (pre-DST) instant.
func inDST(t time.Time) bool {
	start := lastSunday(t.Year(), time.March).Add(2 * time.Hour)
	end := lastSunday(t.Year(), time.October).Add(3 * time.Hour)

	return !t.Before(start) && t.Before(end)
}

// lastSunday returns midnight of the last Sunday of the given month.
func lastSunday(year int, month time.Month) time.Time {
	// day 0 of the next month is the last day of this one
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)

	return last.AddDate(0, 0, -int(last.Weekday()))
}
