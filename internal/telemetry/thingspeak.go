package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/effevee/weatherstation/internal/sensors"
	"github.com/effevee/weatherstation/log"
)

var (
	ErrUnavailable = errors.New("telemetry: network unavailable")
	ErrStatus      = errors.New("telemetry: update rejected")
)

// ThingSpeak channel field numbers, fixed by the channel schema.
var channelFields = map[sensors.Source]int{
	sensors.Temperature: 1,
	sensors.Humidity:    2,
	sensors.Light:       3,
	sensors.Pressure:    4,
}

// ThingSpeak pushes one update request per cycle, all mapped fields in a
// single GET with query params. Invalid readings are left out of the
// payload entirely, never zero-filled.
type ThingSpeak struct {
	url    string
	apiKey string
	client *http.Client
}

func NewThingSpeak(rawURL, apiKey string, timeout time.Duration) *ThingSpeak {
	return &ThingSpeak{
		url:    rawURL,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

func (t *ThingSpeak) Upload(ctx context.Context, rs []sensors.Reading) error {
	q := url.Values{}
	q.Set("api_key", t.apiKey)
	n := encodeFields(q, rs)
	if n == 0 {
		log.Info.Println("nothing valid to upload, skipping")

		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.url+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err.Error())
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: status %d", ErrStatus, resp.StatusCode)
	}

	log.Info.Printf("uploaded %d fields", n)

	return nil
}

// encodeFields fills fieldN params for every valid mapped reading and
// returns how many made it in.
func encodeFields(q url.Values, rs []sensors.Reading) int {
	n := 0
	for _, r := range rs {
		field, ok := channelFields[r.Source]
		if !ok || !r.Valid {
			continue
		}
		q.Set(fmt.Sprintf("field%d", field), fmt.Sprintf("%.2f", r.Value))
		n++
	}

	return n
}
