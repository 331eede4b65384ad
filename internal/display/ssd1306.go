package display

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// OLED is the SSD1306 panel behind the Surface contract. Everything is
// drawn into an off-device 1-bit buffer; Flush pushes the whole frame in
// one transfer.
type OLED struct {
	dev *ssd1306.Dev
	bus i2c.BusCloser
	buf *image1bit.VerticalLSB
}

func NewOLED(busName string) (*OLED, error) {
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("can't open i2c bus %q: %w", busName, err)
	}

	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("can't init SSD1306: %w", err)
	}

	return &OLED{
		dev: dev,
		bus: bus,
		buf: image1bit.NewVerticalLSB(image.Rect(0, 0, Width, Height)),
	}, nil
}

func (o *OLED) Clear() {
	o.buf = image1bit.NewVerticalLSB(image.Rect(0, 0, Width, Height))
}

func (o *OLED) Text(x, y int, s string) {
	d := font.Drawer{
		Dst:  o.buf,
		Src:  &image.Uniform{C: image1bit.On},
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func (o *OLED) Blit(x, y int, img image.Image) {
	b := img.Bounds()
	draw.Draw(o.buf, image.Rect(x, y, x+b.Dx(), y+b.Dy()), img, b.Min, draw.Over)
}

func (o *OLED) Flush() error {
	return o.dev.Draw(o.dev.Bounds(), o.buf, image.Point{})
}

// Close powers the panel down and releases the bus handle.
func (o *OLED) Close() error {
	if err := o.dev.Halt(); err != nil {
		_ = o.bus.Close()
		return err
	}

	return o.bus.Close()
}
