package metrics

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/effevee/weatherstation/log"
)

const (
	cleanerWorkerSleep = 30 * time.Second
	dumpFile           = "station-dump.gob"
)

type DumpFn func() error

type Option func(m *InMem)

func WithRetention(dur time.Duration) Option {
	return func(m *InMem) {
		m.retentionDuration = dur
	}
}

func WithBackup() Option {
	return func(m *InMem) {
		m.backup = true
	}
}

type Value struct {
	T time.Time
	V float64
}

type valueChanMsg struct {
	key string
	m   Value
}

// InMem keeps per-key gauge timelines for the bench status page. The
// cycle itself never reads them back; this is observability only.
type InMem struct {
	GaugeTimeLine map[string][]Value
	gaugeTLch     chan valueChanMsg

	backup            bool
	retentionDuration time.Duration
}

func New(opts ...Option) (m *InMem, commitDump DumpFn) {
	m = &InMem{
		GaugeTimeLine: make(map[string][]Value),
		gaugeTLch:     make(chan valueChanMsg),
	}

	for _, opt := range opts {
		opt(m)
	}

	go m.collector()
	go m.cleaner()

	if m.backup {
		log.Info.Println("try to restore from dump")
		if err := m.Restore(); err != nil {
			log.Erro.Printf("not this time: %s", err.Error())
		}
	}

	commitDump = func() error {
		log.Debg.Println("close gauge channel")
		close(m.gaugeTLch)

		if m.backup {
			return m.Dump()
		}

		return nil
	}

	return m, commitDump
}

func (m *InMem) Gauge(key string, val float64) {
	go func() {
		m.gaugeTLch <- valueChanMsg{
			key: key,
			m:   Value{T: time.Now(), V: val},
		}
	}()
}

// Values returns the raw timeline for a key inside the duration window,
// oldest first.
func (m *InMem) Values(key string, dur time.Duration) []Value {
	data, ok := m.GaugeTimeLine[key]
	if !ok {
		return nil
	}

	cutoff := time.Now().Add(-dur)
	var out []Value
	for _, v := range data {
		if v.T.After(cutoff) {
			out = append(out, v)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].T.Before(out[j].T) })

	return out
}

// Avg returns hourly averages for a key inside the duration window.
func (m *InMem) Avg(key string, dur time.Duration) []Value {
	hAvg := make(map[time.Time][]float64)
	for _, v := range m.Values(key, dur) {
		t := v.T.Truncate(time.Hour)
		hAvg[t] = append(hAvg[t], v.V)
	}

	avg := make([]Value, 0, len(hAvg))
	for k, v := range hAvg {
		sum := 0.0
		for _, vv := range v {
			sum += vv
		}

		avg = append(avg, Value{T: k, V: sum / float64(len(v))})
	}

	sort.Slice(avg, func(i, j int) bool { return avg[i].T.Before(avg[j].T) })

	return avg
}

func (m *InMem) collector() {
	for msg := range m.gaugeTLch {
		m.GaugeTimeLine[msg.key] = append(m.GaugeTimeLine[msg.key], msg.m)
	}
}

func (m *InMem) cleaner() {
	if m.retentionDuration == 0 {
		return
	}

	for {
		<-time.After(cleanerWorkerSleep)

		cutoff := time.Now().Add(-m.retentionDuration)
		for k, v := range m.GaugeTimeLine {
			var newV []Value
			for _, vv := range v {
				if vv.T.After(cutoff) {
					newV = append(newV, vv)
				}
			}
			m.GaugeTimeLine[k] = newV
		}
	}
}

func (m *InMem) Dump() error {
	buf := new(bytes.Buffer)
	encoder := gob.NewEncoder(buf)

	if err := encoder.Encode(m.GaugeTimeLine); err != nil {
		return fmt.Errorf("can't encode items: %w", err)
	}
	if err := os.WriteFile(dumpFile, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("can't save dump: %w", err)
	}

	return nil
}

func (m *InMem) Restore() error {
	f, err := os.ReadFile(dumpFile)
	if err != nil {
		return fmt.Errorf("can't read dump: %w", err)
	}

	decoder := gob.NewDecoder(bytes.NewBuffer(f))
	if err := decoder.Decode(&m.GaugeTimeLine); err != nil {
		return fmt.Errorf("can't decode items: %w", err)
	}

	return nil
}
