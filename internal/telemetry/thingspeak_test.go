package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/effevee/weatherstation/internal/sensors"
)

func allValid() []sensors.Reading {
	return []sensors.Reading{
		{Source: sensors.Temperature, Value: 21.5, Valid: true},
		{Source: sensors.Humidity, Value: 60, Valid: true},
		{Source: sensors.Pressure, Value: 1013.25, Valid: true},
		{Source: sensors.Altitude, Value: 35, Valid: true},
		{Source: sensors.Light, Value: 420, Valid: true},
	}
}

func TestThingSpeak_Upload(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte("42"))
	}))
	defer srv.Close()

	ts := NewThingSpeak(srv.URL, "WRITEKEY", time.Second)

	require.NoError(t, ts.Upload(context.Background(), allValid()))

	assert.Equal(t, "WRITEKEY", got.Get("api_key"))
	assert.Equal(t, "21.50", got.Get("field1"))
	assert.Equal(t, "60.00", got.Get("field2"))
	assert.Equal(t, "420.00", got.Get("field3"))
	assert.Equal(t, "1013.25", got.Get("field4"))
	assert.Empty(t, got.Get("field5"), "altitude has no channel field")
}

func TestThingSpeak_Upload_OmitsInvalidReadings(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
	}))
	defer srv.Close()

	rs := allValid()
	rs[1].Valid = false // humidity sensor failed this cycle

	require.NoError(t, NewThingSpeak(srv.URL, "k", time.Second).Upload(context.Background(), rs))

	assert.NotEmpty(t, got.Get("field1"))
	assert.Empty(t, got.Get("field2"), "invalid reading never zero-filled")
	assert.NotEmpty(t, got.Get("field4"))
}

func TestThingSpeak_Upload_SkipsWhenNothingValid(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		requests++
	}))
	defer srv.Close()

	rs := allValid()
	for i := range rs {
		rs[i].Valid = false
	}

	require.NoError(t, NewThingSpeak(srv.URL, "k", time.Second).Upload(context.Background(), rs))
	assert.Zero(t, requests)
}

func TestThingSpeak_Upload_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	err := NewThingSpeak(srv.URL, "k", time.Second).Upload(context.Background(), allValid())
	assert.ErrorIs(t, err, ErrStatus)
}

func TestThingSpeak_Upload_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nobody listens anymore

	err := NewThingSpeak(srv.URL, "k", time.Second).Upload(context.Background(), allValid())
	assert.ErrorIs(t, err, ErrUnavailable)
}
