// Package raster paints drawing plans into pixel buffers and rotates them.
package raster

import (
	"image"
	"image/color"
)

// Encoding is the per-pixel layout of a Buffer.
type Encoding int

const (
	// RGB stores three bytes per pixel.
	RGB Encoding = iota
	// Intermediate stores one byte per pixel, '1' for foreground and '0'
	// for background.
	Intermediate
)

// BytesPerPixel returns the pixel stride of e.
func (e Encoding) BytesPerPixel() int {
	if e == Intermediate {
		return 1
	}
	return 3
}

// Buffer is a row-major pixel buffer with the origin at the top left.
type Buffer struct {
	Width    int
	Height   int
	Pix      []byte
	Encoding Encoding
	Fg       color.RGBA
	Bg       color.RGBA
}

func newBuffer(w, h int, enc Encoding, fg, bg color.RGBA) *Buffer {
	b := &Buffer{
		Width:    w,
		Height:   h,
		Pix:      make([]byte, w*h*enc.BytesPerPixel()),
		Encoding: enc,
		Fg:       fg,
		Bg:       bg,
	}
	b.fill(0, 0, w, h, false)
	return b
}

// Foreground reports whether the pixel at (x, y) has the foreground value.
func (b *Buffer) Foreground(x, y int) bool {
	i := (y*b.Width + x) * b.Encoding.BytesPerPixel()
	if b.Encoding == Intermediate {
		return b.Pix[i] == '1'
	}
	return b.Pix[i] == b.Fg.R && b.Pix[i+1] == b.Fg.G && b.Pix[i+2] == b.Fg.B
}

// fill sets the half-open rectangle [x0, x1) x [y0, y1), clipped to the buffer.
func (b *Buffer) fill(x0, y0, x1, y1 int, fg bool) {
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, b.Width), min(y1, b.Height)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	bpp := b.Encoding.BytesPerPixel()
	var px []byte
	switch {
	case b.Encoding == Intermediate && fg:
		px = []byte{'1'}
	case b.Encoding == Intermediate:
		px = []byte{'0'}
	case fg:
		px = []byte{b.Fg.R, b.Fg.G, b.Fg.B}
	default:
		px = []byte{b.Bg.R, b.Bg.G, b.Bg.B}
	}
	for y := y0; y < y1; y++ {
		row := b.Pix[(y*b.Width+x0)*bpp : (y*b.Width+x1)*bpp]
		for i := 0; i < len(row); i += bpp {
			copy(row[i:i+bpp], px)
		}
	}
}

// Image converts the buffer. RGB buffers become *image.RGBA; intermediate
// buffers become *image.Gray with foreground black.
func (b *Buffer) Image() image.Image {
	rect := image.Rect(0, 0, b.Width, b.Height)
	if b.Encoding == Intermediate {
		img := image.NewGray(rect)
		for i, v := range b.Pix {
			if v == '1' {
				img.Pix[i] = 0
			} else {
				img.Pix[i] = 0xff
			}
		}
		return img
	}
	img := image.NewRGBA(rect)
	for i, j := 0, 0; i < len(b.Pix); i, j = i+3, j+4 {
		img.Pix[j] = b.Pix[i]
		img.Pix[j+1] = b.Pix[i+1]
		img.Pix[j+2] = b.Pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}
