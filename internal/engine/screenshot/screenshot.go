// Package screenshot saves rendered frames as PNG files.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

const timeLayout = "2006-01-02_15-04-05"

// Capturer writes frames into a directory under timestamped names.
type Capturer struct {
	dir    string
	prefix string
	now    func() time.Time
	last   string
	seq    int
}

// New creates a Capturer. An empty dir writes to the working directory.
func New(dir, prefix string) *Capturer {
	return &Capturer{dir: dir, prefix: prefix, now: time.Now}
}

// Save writes bottom-up RGBA pixels (as read back from a GL framebuffer)
// to a new PNG file and returns its path.
func (c *Capturer) Save(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path := filepath.Join(c.dir, c.nextName())
	if err := writePNG(path, flip(pixels, width, height)); err != nil {
		return "", err
	}
	return path, nil
}

// nextName appends a sequence number when two captures share a second.
func (c *Capturer) nextName() string {
	stamp := c.now().Format(timeLayout)
	if stamp == c.last {
		c.seq++
		return fmt.Sprintf("%s_%s_%d.png", c.prefix, stamp, c.seq)
	}
	c.last = stamp
	c.seq = 0
	return fmt.Sprintf("%s_%s.png", c.prefix, stamp)
}

// flip converts GL row order (origin bottom-left) to image row order.
func flip(pixels []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img
}

func writePNG(path string, img image.Image) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}
