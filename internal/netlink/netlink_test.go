package netlink

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRadio struct {
	associated   bool
	associateErr error
	upAfterPolls int // connected once this many status polls happened
	polls        int
}

func (f *fakeRadio) Associate(string, string) error {
	if f.associateErr != nil {
		return f.associateErr
	}
	f.associated = true

	return nil
}

func (f *fakeRadio) IsConnected() (bool, error) {
	f.polls++

	return f.associated && f.upAfterPolls > 0 && f.polls >= f.upAfterPolls, nil
}

func TestClient_Connect_EventuallyUp(t *testing.T) {
	radio := &fakeRadio{upAfterPolls: 3}
	c := New(radio, "net", "secret", 5)
	c.sleep = func(time.Duration) {}

	require.NoError(t, c.Connect(context.Background()))
	assert.True(t, c.Connected())
	assert.Equal(t, 3, radio.polls)
}

func TestClient_Connect_TimeoutAfterExactlyMaxTries(t *testing.T) {
	radio := &fakeRadio{} // never comes up
	c := New(radio, "net", "secret", 5)

	sleeps := 0
	c.sleep = func(d time.Duration) {
		assert.Equal(t, time.Second, d)
		sleeps++
	}

	err := c.Connect(context.Background())

	require.ErrorIs(t, err, ErrTimeout)
	assert.False(t, c.Connected())
	assert.Equal(t, 5, radio.polls, "exactly max_tries status polls")
	assert.Equal(t, 5, sleeps, "one interval before each poll")
}

func TestClient_Connect_AssociateFailure(t *testing.T) {
	radio := &fakeRadio{associateErr: errors.New("no such network")}
	c := New(radio, "net", "secret", 5)
	c.sleep = func(time.Duration) {}

	err := c.Connect(context.Background())

	require.ErrorIs(t, err, ErrTimeout)
	assert.Zero(t, radio.polls)
}

func TestClient_Connect_FreshStateEachCycle(t *testing.T) {
	radio := &fakeRadio{upAfterPolls: 1}
	c := New(radio, "net", "secret", 5)
	c.sleep = func(time.Duration) {}

	require.NoError(t, c.Connect(context.Background()))
	require.True(t, c.Connected())

	// next cycle starts disconnected until proven otherwise
	radio.associated = false
	radio.upAfterPolls = 0
	radio.polls = 0

	require.ErrorIs(t, c.Connect(context.Background()), ErrTimeout)
	assert.False(t, c.Connected())
}
