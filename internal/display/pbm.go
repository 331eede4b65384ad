package display

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

var ErrBadPBM = errors.New("display: not a P4 PBM image")

// DecodePBM reads a binary (P4) Portable Bitmap into a 1-bit image the
// frame buffer can blit directly. The weather icons ship in this format:
//
//	P4
//	# optional comments
//	<width> <height>
//	<rows, each padded to a whole byte, MSB left>
func DecodePBM(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)

	if tok, err := pbmToken(br); err != nil || tok != "P4" {
		return nil, ErrBadPBM
	}

	var w, h int
	for _, dst := range []*int{&w, &h} {
		tok, err := pbmToken(br)
		if err != nil {
			return nil, ErrBadPBM
		}
		if _, err := fmt.Sscanf(tok, "%d", dst); err != nil {
			return nil, ErrBadPBM
		}
	}
	if w <= 0 || h <= 0 || w > Width || h > Height {
		return nil, fmt.Errorf("%w: bad geometry %dx%d", ErrBadPBM, w, h)
	}

	stride := (w + 7) / 8
	data := make([]byte, stride*h)
	if _, err := io.ReadFull(br, data); err != nil {
		return nil, fmt.Errorf("%w: truncated data", ErrBadPBM)
	}

	img := image1bit.NewVerticalLSB(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b := data[y*stride+x/8]
			if b&(0x80>>(x%8)) != 0 {
				img.SetBit(x, y, image1bit.On)
			}
		}
	}

	return img, nil
}

// pbmToken returns the next whitespace-separated token, skipping # comments.
func pbmToken(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		c, err := br.ReadByte()
		if err != nil {
			if sb.Len() > 0 && err == io.EOF {
				return sb.String(), nil
			}

			return "", err
		}

		switch {
		case c == '#':
			if _, err := br.ReadString('\n'); err != nil {
				return "", err
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if sb.Len() > 0 {
				return sb.String(), nil
			}
		default:
			sb.WriteByte(c)
		}
	}
}

// LoadPBM opens and decodes one icon asset from disk.
func LoadPBM(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return DecodePBM(f)
}
