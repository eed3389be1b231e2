package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/shikarl/levelset/raster"
)

// readRaster reads the minimal raw raster format used by this demo CLI:
// an ASCII "W H\n" header followed by W*H bytes of 8-bit intensity, row
// major. This is not a real image format -- it exists only so the CLI is
// runnable without depending on a host image-analysis application, per
// the core's own scope boundary.
func readRaster(path string) (w, h int, data []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	if _, err := fmt.Fscanf(r, "%d %d\n", &w, &h); err != nil {
		return 0, 0, nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	data = make([]byte, w*h)
	if _, err := io.ReadFull(r, data); err != nil {
		return 0, 0, nil, fmt.Errorf("reading pixel data of %s: %w", path, err)
	}
	return w, h, data, nil
}

func readImage(path string) (*raster.Image, error) {
	w, h, data, err := readRaster(path)
	if err != nil {
		return nil, err
	}
	img := raster.NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, int(data[y*w+x]))
		}
	}
	return img, nil
}

func readMask(path string) (*raster.Mask, error) {
	w, h, data, err := readRaster(path)
	if err != nil {
		return nil, err
	}
	m := raster.NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y, data[y*w+x] != 0)
		}
	}
	return m, nil
}

func writeMask(path string, m *raster.Mask) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintf(w, "%d %d\n", m.Width(), m.Height()); err != nil {
		return err
	}
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			var b byte
			if m.At(x, y) {
				b = 255
			}
			if err := w.WriteByte(b); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}
