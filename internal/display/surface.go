package display

import "image"

// Frame geometry of the 0.96" OLED.
const (
	Width  = 128
	Height = 64
)

// Surface is the frame-buffer contract the pager draws against. Drawing
// happens off-screen; nothing reaches the panel until Flush, which keeps
// every page atomic for the viewer.
type Surface interface {
	Clear()
	Text(x, y int, s string)
	Blit(x, y int, img image.Image)
	Flush() error
}
