package sensors

import (
	"errors"
	"time"

	"github.com/effevee/weatherstation/log"
)

var ErrBusFault = errors.New("sensors: bus fault")

// Sensor is one physical device on the shared I2C bus. A device may expose
// several sources (the AM2320 reports temperature and humidity in one
// transaction).
type Sensor interface {
	Name() string
	Sources() []Source
	Read() ([]Reading, error)
}

// Hub polls every configured sensor once per cycle, strictly in order, so
// no two transactions ever overlap on the bus. A failing device degrades
// only its own sources.
type Hub struct {
	sensors  []Sensor
	tempUnit Unit

	now func() time.Time
}

func NewHub(tempUnit Unit, ss ...Sensor) *Hub {
	return &Hub{
		sensors:  ss,
		tempUnit: tempUnit,
		now:      time.Now,
	}
}

// ReadAll returns exactly one reading per declared source, in declaration
// order, regardless of how many devices failed.
func (h *Hub) ReadAll() []Reading {
	at := h.now()

	var out []Reading
	for _, s := range h.sensors {
		rs, err := s.Read()
		if err != nil {
			log.Erro.Printf("can't read %s: %s", s.Name(), err.Error())
			for _, src := range s.Sources() {
				out = append(out, Invalid(src, at, err))
			}

			continue
		}

		for _, r := range rs {
			r.At = at
			out = append(out, ConvertTemp(r, h.tempUnit))
		}
	}

	return out
}

// Sources lists every configured source in read order.
func (h *Hub) Sources() []Source {
	var out []Source
	for _, s := range h.sensors {
		out = append(out, s.Sources()...)
	}

	return out
}
