package display

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/effevee/weatherstation/internal/sensors"
	"github.com/effevee/weatherstation/internal/weather"
	"github.com/effevee/weatherstation/log"
)

// Data is the cycle snapshot the pager renders from. Failed sources are
// simply absent or invalid here; the pager draws placeholders for them
// instead of refusing to render.
type Data struct {
	Now      time.Time
	Readings []sensors.Reading
	Weather  weather.Snapshot
}

func (d Data) reading(src sensors.Source) (sensors.Reading, bool) {
	for _, r := range d.Readings {
		if r.Source == src {
			return r, r.Valid
		}
	}

	return sensors.Reading{}, false
}

// Pager walks the configured page order, full clear + redraw + flush per
// page so the panel never shows a mixed frame.
type Pager struct {
	sfc     Surface
	pages   []Page
	iconDir string
	dwell   time.Duration

	sleep func(time.Duration)
}

func NewPager(sfc Surface, pages []Page, iconDir string, dwell time.Duration) *Pager {
	return &Pager{
		sfc:     sfc,
		pages:   pages,
		iconDir: iconDir,
		dwell:   dwell,
		sleep:   time.Sleep,
	}
}

func (p *Pager) Render(d Data) error {
	var errs []error
	for i, page := range p.pages {
		p.sfc.Clear()
		p.sfc.Text(0, 10, page.title())

		switch page {
		case PageClock:
			p.drawClock(d)
		case PageWeather:
			p.drawWeather(d)
		case PageForecast:
			p.drawForecast(d)
		case PageSensors:
			p.drawSensors(d)
		case PageAtmosphere:
			p.drawAtmosphere(d)
		}

		if err := p.sfc.Flush(); err != nil {
			errs = append(errs, fmt.Errorf("can't flush page %s: %w", page, err))
		}

		if i < len(p.pages)-1 {
			p.sleep(p.dwell)
		}
	}

	return errors.Join(errs...)
}

func (p *Pager) drawClock(d Data) {
	p.sfc.Text(4, 30, d.Now.Format("02/01/2006"))
	p.sfc.Text(4, 50, d.Now.Format("Mon 15:04"))
}

func (p *Pager) drawWeather(d Data) {
	cur := d.Weather.Current
	if cur == nil {
		p.sfc.Text(4, 36, "no data")

		return
	}

	p.sfc.Text(6, 24, d.Now.Format("Mon"))
	p.blitIcon(4, 26, cur.Icon)
	p.sfc.Text(46, 34, fmt.Sprintf("T:%.0f", cur.Temperature))
	p.sfc.Text(46, 44, fmt.Sprintf("H:%d %%", cur.Humidity))
	p.sfc.Text(46, 54, fmt.Sprintf("P:%d hPa", cur.Pressure))
	p.sfc.Text(0, 63, cur.Condition)
}

func (p *Pager) drawForecast(d Data) {
	if len(d.Weather.Forecast) == 0 {
		p.sfc.Text(4, 36, "no data")

		return
	}

	for i, day := range d.Weather.Forecast {
		if i == 3 {
			break // three columns fit
		}
		col := i * 42
		p.sfc.Text(6+col, 24, day.Date.Format("Mon"))
		p.blitIcon(4+col, 26, day.Icon)
		p.sfc.Text(6+col, 62, fmt.Sprintf("%.0f", day.MaxTemp))
	}
}

func (p *Pager) drawSensors(d Data) {
	p.blitAsset(4, 20, "temperature.pbm")
	p.blitAsset(4, 44, "humidity.pbm")
	p.sfc.Text(28, 32, p.fmtValue(d, sensors.Temperature, "%.1f %s"))
	p.sfc.Text(28, 56, p.fmtValue(d, sensors.Humidity, "%.1f %s"))
}

func (p *Pager) drawAtmosphere(d Data) {
	p.blitAsset(4, 20, "pressure.pbm")
	p.blitAsset(4, 44, "luminance.pbm")
	p.sfc.Text(28, 32, p.fmtValue(d, sensors.Pressure, "%.0f %s"))
	p.sfc.Text(28, 56, p.fmtValue(d, sensors.Light, "%.0f %s"))
}

// fmtValue renders a reading or the placeholder when its sensor failed.
func (p *Pager) fmtValue(d Data, src sensors.Source, format string) string {
	r, ok := d.reading(src)
	if !ok {
		return "--"
	}

	return fmt.Sprintf(format, r.Value, r.Unit)
}

// blitIcon draws an OpenWeather condition icon, e.g. "01d" -> 01@2x.pbm.
func (p *Pager) blitIcon(x, y int, code string) {
	if len(code) < 2 {
		return
	}
	p.blitAsset(x, y, code[:2]+"@2x.pbm")
}

// blitAsset draws a named icon; a missing or corrupt asset leaves the
// area blank, never fails the page.
func (p *Pager) blitAsset(x, y int, name string) {
	img, err := LoadPBM(filepath.Join(p.iconDir, name))
	if err != nil {
		log.Debg.Printf("no icon %s: %s", name, err.Error())

		return
	}
	p.sfc.Blit(x, y, img)
}
