package display

import (
	"image"

	"github.com/effevee/weatherstation/log"
)

// Console logs draw operations instead of driving a panel. Dev machines
// rarely have an OLED wired up.
type Console struct{}

func (Console) Clear() {}

func (Console) Text(x, y int, s string) {
	log.Debg.Printf("text (%d,%d): %s", x, y, s)
}

func (Console) Blit(x, y int, img image.Image) {
	log.Debg.Printf("blit (%d,%d): %v", x, y, img.Bounds())
}

func (Console) Flush() error { return nil }
