package station

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/effevee/weatherstation/internal/display"
	"github.com/effevee/weatherstation/internal/sensors"
	"github.com/effevee/weatherstation/internal/weather"
	"github.com/effevee/weatherstation/log"
)

// Steps skipped because the radio never came up record these instead of a
// transport error.
var (
	ErrOffline = errors.New("station: offline, step skipped")
)

// Network owns the single Wi-Fi radio for the cycle.
type Network interface {
	Connect(ctx context.Context) error
	Connected() bool
}

// Clock is the time-sync collaborator and the cycle's notion of now.
type Clock interface {
	ShouldSync() bool
	Sync(ctx context.Context) error
	Now() time.Time
}

// SensorBank reads every configured source once, failures isolated.
type SensorBank interface {
	ReadAll() []sensors.Reading
}

// Forecaster fetches the remote weather halves.
type Forecaster interface {
	Fetch(ctx context.Context) (weather.Snapshot, error)
}

// Renderer walks the page rotation with the cycle snapshot.
type Renderer interface {
	Render(d display.Data) error
}

// Uploader pushes the cycle's readings to the telemetry channel.
type Uploader interface {
	Upload(ctx context.Context, rs []sensors.Reading) error
}

// Sleeper issues the deep power-down. It normally does not return.
type Sleeper interface {
	Suspend(d time.Duration) error
}

// DebugInput is the bench jumper, sampled once at Init.
type DebugInput interface {
	Asserted() bool
}

// Indicator drives the fault line while in the terminal error state.
type Indicator interface {
	Trouble(ctx context.Context)
}

// Notifier reports the fatal fault to a human, best effort.
type Notifier interface {
	Notify(title, message string) error
}

type Opts struct {
	Interval time.Duration

	Network   Network
	Clock     Clock
	Sensors   SensorBank
	Weather   Forecaster
	Display   Renderer
	Telemetry Uploader
	Power     Sleeper
	Debug     DebugInput
	Indicator Indicator
	Notifier  Notifier
}

// Controller sequences one wake cycle: bring the network up, sync the
// clock when due, sample the bus, fetch remote weather, render, upload,
// suspend. Step failures degrade the cycle, they never shortcut it.
type Controller struct {
	interval time.Duration

	net  Network
	clk  Clock
	hub  SensorBank
	feed Forecaster
	out  Renderer
	up   Uploader
	pwr  Sleeper
	dbg  DebugInput
	ind  Indicator
	ntf  Notifier

	state State
	now   func() time.Time
}

func New(o Opts) *Controller {
	c := &Controller{
		interval: o.Interval,
		net:      o.Network,
		clk:      o.Clock,
		hub:      o.Sensors,
		feed:     o.Weather,
		out:      o.Display,
		up:       o.Telemetry,
		pwr:      o.Power,
		dbg:      o.Debug,
		ind:      o.Indicator,
		ntf:      o.Notifier,
		state:    StateInit,
	}
	c.now = c.clk.Now

	return c
}

func (c *Controller) State() State { return c.state }

// Run executes the control loop: one cycle and a suspension, or an
// endless sample-to-upload loop while the debug input is asserted. A
// fatal fault drops into the terminal error state and blocks there.
func (c *Controller) Run(ctx context.Context) error {
	c.enter(StateInit)
	debug := c.dbg.Asserted()
	if debug {
		log.Info.Println("debug mode detected, suspension disabled")
	}

	out := CycleOutcome{Start: c.now()}

	err := c.guarded(func() error {
		c.bringUp(ctx, &out)

		for {
			c.pass(ctx, &out)

			if !debug {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
	})
	if err != nil {
		if IsFatal(err) {
			return c.halt(ctx, err)
		}

		return err // context cancelled in debug loop
	}

	c.enter(StateSuspending)
	if out.Degraded() {
		log.Info.Println("cycle degraded, suspending anyway")
	}

	budget := sleepBudget(c.interval, c.now().Sub(out.Start))
	if err := c.pwr.Suspend(budget); err != nil {
		// a failed power-down is a hardware fault we can't blink from sleep
		return c.halt(ctx, Fatal("suspend", err))
	}

	return nil
}

// RunCycle executes exactly one full acquisition pass without suspending.
// The bench server drives this.
func (c *Controller) RunCycle(ctx context.Context) (CycleOutcome, error) {
	out := CycleOutcome{Start: c.now()}

	err := c.guarded(func() error {
		c.bringUp(ctx, &out)
		c.pass(ctx, &out)

		return nil
	})

	return out, err
}

// bringUp is the once-per-wake part: radio association and, when due,
// clock sync. Both degrade instead of aborting.
func (c *Controller) bringUp(ctx context.Context, out *CycleOutcome) {
	c.enter(StateConnecting)
	if err := c.net.Connect(ctx); err != nil {
		out.ConnectErr = err
		log.Erro.Printf("cycle continues offline: %s", err.Error())
	}
	out.Connected = c.net.Connected()

	if c.clk.ShouldSync() {
		c.enter(StateSyncing)
		switch {
		case !out.Connected:
			out.SyncErr = fmt.Errorf("%w: time sync", ErrOffline)
		default:
			if err := c.clk.Sync(ctx); err != nil {
				out.SyncErr = err
				log.Erro.Printf("clock keeps last known value: %s", err.Error())
			} else {
				out.Synced = true
			}
		}
	}
}

// pass is the repeatable part of the cycle: sample, fetch, render, upload.
func (c *Controller) pass(ctx context.Context, out *CycleOutcome) {
	c.enter(StateSampling)
	out.Readings = c.hub.ReadAll()

	c.enter(StateFetching)
	out.Weather = weather.Snapshot{}
	out.FetchErr = nil
	if out.Connected {
		out.Weather, out.FetchErr = c.feed.Fetch(ctx)
	} else {
		out.FetchErr = fmt.Errorf("%w: weather fetch", ErrOffline)
	}

	c.enter(StateRendering)
	out.RenderErr = c.out.Render(display.Data{
		Now:      c.now(),
		Readings: out.Readings,
		Weather:  out.Weather,
	})
	if out.RenderErr != nil {
		log.Erro.Printf("render degraded: %s", out.RenderErr.Error())
	}

	c.enter(StateUploading)
	out.UploadErr = nil
	if out.Connected {
		if err := c.up.Upload(ctx, out.Readings); err != nil {
			out.UploadErr = err
			log.Erro.Printf("upload failed, next wake retries: %s", err.Error())
		}
	} else {
		out.UploadErr = fmt.Errorf("%w: upload", ErrOffline)
	}
}

// guarded turns a step panic into the fatal category; a crashing driver
// must end in the error indication, not a bare stack trace.
func (c *Controller) guarded(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = Fatal(c.state.String(), fmt.Errorf("panic: %v", r))
		}
	}()

	return fn()
}

// halt is the terminal path: notify, then blink until reset.
func (c *Controller) halt(ctx context.Context, err error) error {
	c.enter(StateError)
	log.Erro.Printf("entering error indication: %s", err.Error())

	if nerr := c.ntf.Notify("Weather station fault", err.Error()); nerr != nil {
		log.Erro.Printf("can't notify: %s", nerr.Error())
	}

	c.ind.Trouble(ctx)

	return err
}

func (c *Controller) enter(s State) {
	c.state = s
	log.Debg.Printf("state: %s", s)
}

// sleepBudget is what is left of the interval after the active part of
// the cycle, never negative.
func sleepBudget(interval, elapsed time.Duration) time.Duration {
	if budget := interval - elapsed; budget > 0 {
		return budget
	}

	return 0
}
