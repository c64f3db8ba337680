// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package thermbar

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/maruel/ansi256"
	"periph.io/x/conn/v3/physic"
)

func newBar(t *testing.T, buf *bytes.Buffer) *Bar {
	t.Helper()
	b, err := New(&Opts{
		Width: 10,
		Min:   physic.ZeroCelsius,
		Max:   physic.ZeroCelsius + 100*physic.Kelvin,
		Out:   buf,
	})
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestColor(t *testing.T) {
	b := newBar(t, &bytes.Buffer{})
	tests := []struct {
		t    physic.Temperature
		want color.NRGBA
	}{
		{physic.ZeroCelsius, color.NRGBA{0, 0, 255, 255}},
		{physic.ZeroCelsius + 50*physic.Kelvin, color.NRGBA{0, 255, 0, 255}},
		{physic.ZeroCelsius + 100*physic.Kelvin, color.NRGBA{255, 0, 0, 255}},
		// Clamped.
		{physic.ZeroCelsius - 10*physic.Kelvin, color.NRGBA{0, 0, 255, 255}},
		{physic.ZeroCelsius + 500*physic.Kelvin, color.NRGBA{255, 0, 0, 255}},
	}
	for _, test := range tests {
		if got := b.Color(test.t); got != test.want {
			t.Errorf("Color(%s)=%v expected %v", test.t, got, test.want)
		}
	}
}

func TestShow(t *testing.T) {
	var buf bytes.Buffer
	b := newBar(t, &buf)

	if err := b.Show(physic.ZeroCelsius, "0°C"); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "\r\033[0m\033[0m"+strings.Repeat(" ", 10)+" 0°C"; got != want {
		t.Errorf("Show(min)=%q expected %q", got, want)
	}

	buf.Reset()
	if err := b.Show(physic.ZeroCelsius+100*physic.Kelvin, "100°C"); err != nil {
		t.Fatal(err)
	}
	hot := ansi256.Default.Block(b.Color(physic.ZeroCelsius + 95*physic.Kelvin))
	if s := buf.String(); !strings.Contains(s, hot) || !strings.HasSuffix(s, "\033[0m 100°C") {
		t.Errorf("Show(max)=%q", s)
	}

	buf.Reset()
	if err := b.Halt(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "\n\033[0m" {
		t.Errorf("Halt() wrote %q", buf.String())
	}
}

func TestNew(t *testing.T) {
	if _, err := New(&Opts{Width: 0, Max: 1}); err == nil {
		t.Error("New() accepted a zero width")
	}
	if _, err := New(&Opts{Width: 1, Min: 5, Max: 5}); err == nil {
		t.Error("New() accepted an empty range")
	}
	b, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	if b.width != DefaultOpts.Width || b.String() != "thermbar" {
		t.Errorf("New(nil)=%+v", b)
	}
}
