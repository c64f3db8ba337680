// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package thermbar renders a temperature reading as a horizontal heat bar on
// a terminal using ANSI 256 color codes.
//
// Each call to Show redraws the same line, so a stream of readings animates
// in place.
package thermbar

import (
	"bytes"
	"errors"
	"image/color"
	"io"
	"math"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/physic"
)

// Opts represents the options available for the bar.
type Opts struct {
	// Width is the number of cells of the bar.
	Width int
	// Min and Max are the temperatures at both ends of the bar. Readings
	// outside are clamped.
	Min physic.Temperature
	Max physic.Temperature
	// Palette defaults to ansi256.Default.
	Palette *ansi256.Palette
	// Out defaults to stdout, wrapped to interpret ANSI codes on Windows.
	Out io.Writer

	_ struct{}
}

// DefaultOpts spans -20°C to 120°C over 40 cells.
var DefaultOpts = Opts{
	Width: 40,
	Min:   physic.ZeroCelsius - 20*physic.Kelvin,
	Max:   physic.ZeroCelsius + 120*physic.Kelvin,
}

// Bar draws temperatures to a terminal.
type Bar struct {
	w        io.Writer
	width    int
	min, max physic.Temperature
	palette  ansi256.Palette

	buf bytes.Buffer
}

// New returns a Bar. If opts is nil, DefaultOpts is used.
func New(opts *Opts) (*Bar, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Width <= 0 {
		return nil, errors.New("thermbar: width must be positive")
	}
	if opts.Max <= opts.Min {
		return nil, errors.New("thermbar: max must be above min")
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Out
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Bar{w: w, width: opts.Width, min: opts.Min, max: opts.Max, palette: *p}, nil
}

func (b *Bar) String() string {
	return "thermbar"
}

// fraction returns the position of t within [min, max], clamped to [0, 1].
func (b *Bar) fraction(t physic.Temperature) float64 {
	f := float64(t-b.min) / float64(b.max-b.min)
	return math.Max(0, math.Min(1, f))
}

// Color returns the color of t on a blue, green, red ramp from Min to Max.
func (b *Bar) Color(t physic.Temperature) color.NRGBA {
	f := b.fraction(t)
	if f < 0.5 {
		g := f * 2
		return color.NRGBA{0, uint8(math.Round(255 * g)), uint8(math.Round(255 * (1 - g))), 255}
	}
	g := (f - 0.5) * 2
	return color.NRGBA{uint8(math.Round(255 * g)), uint8(math.Round(255 * (1 - g))), 0, 255}
}

// Show redraws the line with the bar for t followed by label.
func (b *Bar) Show(t physic.Temperature, label string) error {
	// This code is designed to minimize the amount of memory allocated per call.
	b.buf.Reset()
	_, _ = b.buf.WriteString("\r\033[0m")
	n := int(math.Round(b.fraction(t) * float64(b.width)))
	step := float64(b.max-b.min) / float64(b.width)
	for i := 0; i < n; i++ {
		cell := b.min + physic.Temperature((float64(i)+0.5)*step)
		_, _ = io.WriteString(&b.buf, b.palette.Block(b.Color(cell)))
	}
	_, _ = b.buf.WriteString("\033[0m")
	for i := n; i < b.width; i++ {
		_ = b.buf.WriteByte(' ')
	}
	_, _ = b.buf.WriteString(" ")
	_, _ = b.buf.WriteString(label)
	_, err := b.buf.WriteTo(b.w)
	return err
}

// Halt ends the current line and resets the terminal colors.
func (b *Bar) Halt() error {
	_, err := b.w.Write([]byte("\n\033[0m"))
	return err
}
