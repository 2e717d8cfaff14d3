// Command rasterize loads an IBMF face and renders a line of text to a
// PNG file, the SDL-free analogue of the teacher's example/text2svg: load
// a font, render a line, write a file.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	"golang.org/x/image/draw"

	"github.com/sindarin-inc/tiny-font/ibmf"
	"github.com/sindarin-inc/tiny-font/tinyfont"
)

func main() {
	fontPath := flag.String("font", "", "path to an IBMF face blob")
	text := flag.String("text", "Hello IBMF", "line of text to render")
	out := flag.String("out", "out.png", "output PNG path")
	faceIndex := flag.Int("face", 0, "face index within the blob")
	scale := flag.Int("scale", 1, "integer upscale factor for the output PNG")
	flag.Parse()

	if *fontPath == "" {
		log.Fatal("missing -font")
	}

	blob, err := os.ReadFile(*fontPath)
	if err != nil {
		log.Fatal(err)
	}
	data, err := ibmf.NewFontData(blob, nil)
	if err != nil {
		log.Fatal(err)
	}
	font := tinyfont.NewFont(data, *faceIndex, nil)

	width := font.GetTextWidth(*text) + 20
	height := font.LineHeight() + 20
	canvas := tinyfont.NewCanvas(width, height, tinyfont.OneBit)
	font.DrawSingleLineOfText(canvas, 10, 10+font.LineHeight(), *text, false)

	gray := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(255)
			if canvas.PixelInk(x, y) {
				v = 0
			}
			gray.SetGray(x, y, color.Gray{Y: v})
		}
	}

	var final image.Image = gray
	if *scale > 1 {
		dst := image.NewGray(image.Rect(0, 0, width**scale, height**scale))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), gray, gray.Bounds(), draw.Over, nil)
		final = dst
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, final); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s (%dx%d)\n", *out, final.Bounds().Dx(), final.Bounds().Dy())
}
