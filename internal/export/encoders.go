package export

import (
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"sort"
	"strings"

	"github.com/san-kum/torus/internal/sim"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Encoder serializes one frame into a single image file.
type Encoder interface {
	Name() string
	Ext() string
	Encode(w io.Writer, f sim.Frame, scale int) error
}

type pngEncoder struct{}

func (pngEncoder) Name() string { return "png" }
func (pngEncoder) Ext() string  { return "png" }

func (pngEncoder) Encode(w io.Writer, f sim.Frame, scale int) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, f.Scaled(scale))
}

type jpegEncoder struct{ quality int }

func (jpegEncoder) Name() string { return "jpeg" }
func (jpegEncoder) Ext() string  { return "jpg" }

func (e jpegEncoder) Encode(w io.Writer, f sim.Frame, scale int) error {
	return jpeg.Encode(w, f.Scaled(scale), &jpeg.Options{Quality: e.quality})
}

type bmpEncoder struct{}

func (bmpEncoder) Name() string { return "bmp" }
func (bmpEncoder) Ext() string  { return "bmp" }

func (bmpEncoder) Encode(w io.Writer, f sim.Frame, scale int) error {
	return bmp.Encode(w, f.Scaled(scale))
}

type tiffEncoder struct{}

func (tiffEncoder) Name() string { return "tiff" }
func (tiffEncoder) Ext() string  { return "tiff" }

func (tiffEncoder) Encode(w io.Writer, f sim.Frame, scale int) error {
	return tiff.Encode(w, f.Scaled(scale), &tiff.Options{Compression: tiff.Deflate})
}

type svgEncoder struct{}

func (svgEncoder) Name() string { return "svg" }
func (svgEncoder) Ext() string  { return "svg" }

func (svgEncoder) Encode(w io.Writer, f sim.Frame, scale int) error {
	_, err := io.WriteString(w, FrameToSVG(f, float64(max(scale, 1))))
	return err
}

var encoders = map[string]func() Encoder{
	"png":  func() Encoder { return pngEncoder{} },
	"jpeg": func() Encoder { return jpegEncoder{quality: 95} },
	"jpg":  func() Encoder { return jpegEncoder{quality: 95} },
	"bmp":  func() Encoder { return bmpEncoder{} },
	"tiff": func() Encoder { return tiffEncoder{} },
	"svg":  func() Encoder { return svgEncoder{} },
}

// GetEncoder looks up an encoder by format name.
func GetEncoder(name string) (Encoder, error) {
	fn, ok := encoders[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown format: %s (available: %s)", name, strings.Join(Formats(), ", "))
	}
	return fn(), nil
}

// Formats lists the registered format names.
func Formats() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
