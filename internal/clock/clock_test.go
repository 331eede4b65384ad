package clock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSetter struct {
	got   time.Time
	calls int
	err   error
}

func (f *fakeSetter) Set(t time.Time) error {
	f.calls++
	f.got = t

	return f.err
}

func TestLastSunday(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  time.Time
	}{
		{2026, time.March, time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC)},
		{2026, time.October, time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC)},
		{2025, time.March, time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC)},
		{2025, time.October, time.Date(2025, 10, 26, 0, 0, 0, 0, time.UTC)},
		// March 31st is itself a Sunday
		{2024, time.March, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, lastSunday(tt.year, tt.month), "%d-%s", tt.year, tt.month)
	}
}

func TestInDST(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"mid winter", time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC), false},
		{"mid summer", time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC), true},
		{"minute before spring switch", time.Date(2026, 3, 29, 1, 59, 0, 0, time.UTC), false},
		{"spring switch", time.Date(2026, 3, 29, 2, 0, 0, 0, time.UTC), true},
		{"minute before autumn switch", time.Date(2026, 10, 25, 2, 59, 0, 0, time.UTC), true},
		{"autumn switch", time.Date(2026, 10, 25, 3, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inDST(tt.at))
		})
	}
}

func TestClock_ShouldSync(t *testing.T) {
	tests := []struct {
		name    string
		cadence Cadence
		year    int
		want    bool
	}{
		{"always syncs regardless of year", SyncAlways, 2026, true},
		{"auto skips a running clock", SyncAuto, 2026, false},
		{"auto catches a cold rtc", SyncAuto, 2000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("pool.ntp.org", 1, true, tt.cadence, NoopSetter{})
			c.now = func() time.Time { return time.Date(tt.year, 6, 1, 0, 0, 0, 0, time.UTC) }

			assert.Equal(t, tt.want, c.ShouldSync())
		})
	}
}

func TestClock_Sync_AppliesOffsets(t *testing.T) {
	tests := []struct {
		name string
		utc  time.Time
		dst  bool
		want time.Time
	}{
		{
			name: "summer with dst enabled gains two hours",
			utc:  time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC),
			dst:  true,
			want: time.Date(2026, 7, 15, 14, 0, 0, 0, time.UTC),
		},
		{
			name: "winter with dst enabled gains only the timezone",
			utc:  time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
			dst:  true,
			want: time.Date(2026, 1, 15, 13, 0, 0, 0, time.UTC),
		},
		{
			name: "dst disabled never adds the summer hour",
			utc:  time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC),
			dst:  false,
			want: time.Date(2026, 7, 15, 13, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := &fakeSetter{}
			c := New("pool.ntp.org", 1, tt.dst, SyncAlways, set)
			c.query = func(string) (time.Time, error) { return tt.utc, nil }

			require.NoError(t, c.Sync(context.Background()))
			assert.Equal(t, 1, set.calls)
			assert.True(t, tt.want.Equal(set.got), "got %s, want %s", set.got, tt.want)
		})
	}
}

func TestClock_Sync_UnreachableLeavesClockAlone(t *testing.T) {
	set := &fakeSetter{}
	c := New("pool.ntp.org", 1, true, SyncAlways, set)
	c.query = func(string) (time.Time, error) { return time.Time{}, errors.New("i/o timeout") }

	err := c.Sync(context.Background())

	require.ErrorIs(t, err, ErrUnreachable)
	assert.Zero(t, set.calls)
}

func TestClock_Sync_SetterFailure(t *testing.T) {
	set := &fakeSetter{err: errors.New("settimeofday: EPERM")}
	c := New("pool.ntp.org", 1, false, SyncAlways, set)
	c.query = func(string) (time.Time, error) {
		return time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC), nil
	}

	err := c.Sync(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnreachable)
}
