package station

import (
	"time"

	"github.com/effevee/weatherstation/internal/sensors"
	"github.com/effevee/weatherstation/internal/weather"
)

// CycleOutcome is the in-memory snapshot of one wake cycle. It feeds the
// display and the upload, then dies with the cycle; nothing here survives
// the power-down.
type CycleOutcome struct {
	Start     time.Time
	Connected bool
	Synced    bool

	Readings []sensors.Reading
	Weather  weather.Snapshot

	ConnectErr error
	SyncErr    error
	FetchErr   error
	RenderErr  error
	UploadErr  error
}

// Degraded reports whether any non-fatal step failed this cycle.
func (o CycleOutcome) Degraded() bool {
	return o.ConnectErr != nil || o.SyncErr != nil || o.FetchErr != nil ||
		o.RenderErr != nil || o.UploadErr != nil
}
