package netlink

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/effevee/weatherstation/log"
)

// ErrTimeout means the radio never reached the associated state within the
// configured number of status polls. Callers continue the cycle in degraded
// mode, the next wake is the retry.
var ErrTimeout = errors.New("netlink: association timed out")

// Radio is the single Wi-Fi resource. Association state does not survive
// the deep power-down, so every cycle starts from scratch.
type Radio interface {
	Associate(ssid, password string) error
	IsConnected() (bool, error)
}

// Client owns the radio for the whole cycle. It polls association status
// once per pollEvery up to maxTries times, exactly the bound from the
// configuration, no backoff.
type Client struct {
	radio     Radio
	ssid      string
	password  string
	maxTries  int
	pollEvery time.Duration

	connected bool
	sleep     func(time.Duration)
}

func New(radio Radio, ssid, password string, maxTries int) *Client {
	return &Client{
		radio:     radio,
		ssid:      ssid,
		password:  password,
		maxTries:  maxTries,
		pollEvery: time.Second,
		sleep:     time.Sleep,
	}
}

func (c *Client) Connect(ctx context.Context) error {
	c.connected = false

	log.Info.Printf("connecting to %s", c.ssid)
	if err := c.radio.Associate(c.ssid, c.password); err != nil {
		return fmt.Errorf("%w: %s", ErrTimeout, err.Error())
	}

	for i := 0; i < c.maxTries; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.sleep(c.pollEvery)

		ok, err := c.radio.IsConnected()
		if err != nil {
			log.Debg.Printf("status poll %d: %s", i+1, err.Error())
			continue
		}
		if ok {
			c.connected = true
			log.Info.Printf("connected to %s", c.ssid)

			return nil
		}
	}

	log.Erro.Printf("no connection to %s after %d tries", c.ssid, c.maxTries)

	return ErrTimeout
}

func (c *Client) Connected() bool { return c.connected }
