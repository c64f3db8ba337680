// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package thermimg draws a chart of ambient and object temperature readings.
package thermimg

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/conn/v3/physic"
)

// Reading is one sample of the chart.
type Reading struct {
	Ambient physic.Temperature
	Object  physic.Temperature
}

// Opts represents the options of the chart.
type Opts struct {
	Width  int
	Height int
	// Min and Max bound the vertical axis. Readings outside are clipped.
	Min physic.Temperature
	Max physic.Temperature
	// Step is the spacing of the horizontal grid lines.
	Step physic.Temperature

	_ struct{}
}

// DefaultOpts is a 640x320 chart from -20°C to 120°C.
var DefaultOpts = Opts{
	Width:  640,
	Height: 320,
	Min:    physic.ZeroCelsius - 20*physic.Kelvin,
	Max:    physic.ZeroCelsius + 120*physic.Kelvin,
	Step:   20 * physic.Kelvin,
}

var (
	background   = color.White
	gridColor    = color.NRGBA{0xcc, 0xcc, 0xcc, 0xff}
	axisColor    = color.Black
	ambientColor = color.NRGBA{0x1f, 0x77, 0xb4, 0xff}
	objectColor  = color.NRGBA{0xd6, 0x27, 0x28, 0xff}
)

const (
	marginLeft   = 48
	marginRight  = 16
	marginTop    = 24
	marginBottom = 24
	fontSize     = 11
)

// labelFace returns the Go Regular face used for labels.
func labelFace() (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("thermimg: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: fontSize}), nil
}

func draw(readings []Reading, opts *Opts) (*gg.Context, error) {
	if len(readings) == 0 {
		return nil, errors.New("thermimg: no readings")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Width <= marginLeft+marginRight || opts.Height <= marginTop+marginBottom {
		return nil, errors.New("thermimg: image too small")
	}
	if opts.Max <= opts.Min || opts.Step <= 0 {
		return nil, errors.New("thermimg: invalid temperature axis")
	}
	face, err := labelFace()
	if err != nil {
		return nil, err
	}

	left, top := float64(marginLeft), float64(marginTop)
	right := float64(opts.Width - marginRight)
	bottom := float64(opts.Height - marginBottom)
	y := func(t physic.Temperature) float64 {
		if t < opts.Min {
			t = opts.Min
		} else if t > opts.Max {
			t = opts.Max
		}
		return bottom - float64(t-opts.Min)/float64(opts.Max-opts.Min)*(bottom-top)
	}
	x := func(i int) float64 {
		if len(readings) == 1 {
			return (left + right) / 2
		}
		return left + float64(i)*(right-left)/float64(len(readings)-1)
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(background)
	dc.Clear()
	dc.SetFontFace(face)

	dc.SetLineWidth(1)
	for t := opts.Min; t <= opts.Max; t += opts.Step {
		dc.SetColor(gridColor)
		dc.DrawLine(left, y(t), right, y(t))
		dc.Stroke()
		dc.SetColor(axisColor)
		dc.DrawStringAnchored(fmt.Sprintf("%.0f°C", t.Celsius()), left-4, y(t), 1, 0.5)
	}
	dc.SetColor(axisColor)
	dc.DrawLine(left, top, left, bottom)
	dc.DrawLine(left, bottom, right, bottom)
	dc.Stroke()

	series := []struct {
		name string
		c    color.Color
		get  func(Reading) physic.Temperature
	}{
		{"ambient", ambientColor, func(r Reading) physic.Temperature { return r.Ambient }},
		{"object", objectColor, func(r Reading) physic.Temperature { return r.Object }},
	}
	dc.SetLineWidth(2)
	for i, s := range series {
		dc.SetColor(s.c)
		for j, r := range readings {
			if j == 0 {
				dc.MoveTo(x(j), y(s.get(r)))
			} else {
				dc.LineTo(x(j), y(s.get(r)))
			}
		}
		if len(readings) == 1 {
			dc.DrawCircle(x(0), y(s.get(readings[0])), 3)
			dc.Fill()
		} else {
			dc.Stroke()
		}
		dc.DrawStringAnchored(s.name, left+8+float64(i)*72, top/2, 0, 0.5)
	}
	return dc, nil
}

// Render returns the chart of readings. If opts is nil, DefaultOpts is used.
func Render(readings []Reading, opts *Opts) (image.Image, error) {
	dc, err := draw(readings, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// Encode writes the chart of readings to w as a PNG.
func Encode(w io.Writer, readings []Reading, opts *Opts) error {
	img, err := Render(readings, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SavePNG writes the chart of readings to the PNG file path.
func SavePNG(path string, readings []Reading, opts *Opts) error {
	dc, err := draw(readings, opts)
	if err != nil {
		return err
	}
	return dc.SavePNG(path)
}
