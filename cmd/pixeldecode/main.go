// Command pixeldecode decodes a JPEG (baseline/SOF0) or 24-bit BMP file
// and re-encodes it as PNG, auto-detecting the input format.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	_ "github.com/suey1711/suypixel/bmp"
	"github.com/suey1711/suypixel/codec"
	_ "github.com/suey1711/suypixel/jpeg"
	"github.com/suey1711/suypixel/jpeg/common"
)

// Exit codes, per §6: 0 success, 1 malformed input, 2 unsupported
// feature, 3 I/O error.
const (
	exitOK          = 0
	exitMalformed   = 1
	exitUnsupported = 2
	exitIO          = 3
)

func main() {
	var in, out string
	flag.StringVar(&in, "i", "", "Input image file path (JPEG or 24-bit BMP)")
	flag.StringVar(&out, "o", "", "Output PNG file path")
	flag.Parse()

	if in == "" || out == "" {
		fmt.Fprintln(os.Stderr, "usage: pixeldecode -i input.jpg -o output.png")
		os.Exit(exitMalformed)
	}

	data, err := os.ReadFile(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cant read input %s: %s\n", in, err)
		os.Exit(exitIO)
	}

	dec, err := codec.Detect(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cant identify format of %s: %s\n", in, err)
		os.Exit(exitMalformed)
	}

	img, err := dec.Decode(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cant decode %s as %s: %s\n", in, dec.Name(), err)
		os.Exit(exitCodeFor(err))
	}

	output, err := os.Create(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cant open output %s: %s\n", out, err)
		os.Exit(exitIO)
	}
	defer output.Close()

	if err := png.Encode(output, toImage(img)); err != nil {
		fmt.Fprintf(os.Stderr, "cant encode output %s: %s\n", out, err)
		os.Exit(exitIO)
	}
}

// exitCodeFor maps a decode error's Kind to the §6 exit code contract.
// UnsupportedFeature gets its own code; every other recognized Kind
// (MalformedContainer, TableError, EntropyError) is malformed input;
// IOError, and anything not a *common.Error, is an I/O failure.
func exitCodeFor(err error) int {
	var cerr *common.Error
	if errors.As(err, &cerr) {
		switch cerr.Kind {
		case common.UnsupportedFeature:
			return exitUnsupported
		case common.IOError:
			return exitIO
		default:
			return exitMalformed
		}
	}
	return exitIO
}

// toImage bridges a codec.Image's packed samples to the standard
// library's image.Image so image/png can write it out.
func toImage(img *codec.Image) image.Image {
	rect := image.Rect(0, 0, img.Width, img.Height)

	if img.NComp == 1 {
		gray := image.NewGray(rect)
		copy(gray.Pix, img.Pix)
		return gray
	}

	rgba := image.NewRGBA(rect)
	for i := 0; i < img.Width*img.Height; i++ {
		rgba.Set(i%img.Width, i/img.Width, color.RGBA{
			R: img.Pix[i*3+0],
			G: img.Pix[i*3+1],
			B: img.Pix[i*3+2],
			A: 255,
		})
	}
	return rgba
}
