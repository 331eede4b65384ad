package metrics

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMem_GaugeCollects(t *testing.T) {
	m, done := New()
	defer func() { _ = done() }()

	m.Gauge("temp", 21.5)

	assert.Eventually(t, func() bool {
		return len(m.Values("temp", time.Hour)) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestInMem_Values_WindowAndOrder(t *testing.T) {
	m := &InMem{GaugeTimeLine: map[string][]Value{}}

	now := time.Now()
	m.GaugeTimeLine["temp"] = []Value{
		{T: now.Add(-10 * time.Minute), V: 22},
		{T: now.Add(-2 * time.Hour), V: 20}, // outside the window
		{T: now.Add(-30 * time.Minute), V: 21},
	}

	got := m.Values("temp", time.Hour)

	require.Len(t, got, 2)
	assert.Equal(t, 21.0, got[0].V, "oldest first")
	assert.Equal(t, 22.0, got[1].V)

	assert.Nil(t, m.Values("nope", time.Hour))
}

func TestInMem_Avg_HourlyBuckets(t *testing.T) {
	m := &InMem{GaugeTimeLine: map[string][]Value{}}

	h := time.Now().Truncate(time.Hour)
	m.GaugeTimeLine["temp"] = []Value{
		{T: h.Add(5 * time.Minute), V: 20},
		{T: h.Add(10 * time.Minute), V: 22},
		{T: h.Add(-30 * time.Minute), V: 10},
	}

	got := m.Avg("temp", 2*time.Hour)

	require.Len(t, got, 2)
	assert.Equal(t, 10.0, got[0].V)
	assert.Equal(t, 21.0, got[1].V)
}

func TestInMem_DumpRestore(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	src := &InMem{GaugeTimeLine: map[string][]Value{
		"temp": {{T: time.Now().Round(0), V: 21.5}},
	}}
	require.NoError(t, src.Dump())

	dst := &InMem{GaugeTimeLine: map[string][]Value{}}
	require.NoError(t, dst.Restore())

	require.Len(t, dst.GaugeTimeLine["temp"], 1)
	assert.Equal(t, 21.5, dst.GaugeTimeLine["temp"][0].V)
}

func TestInMem_Restore_NoDump(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	m := &InMem{GaugeTimeLine: map[string][]Value{}}
	assert.Error(t, m.Restore())
}
