// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mlx90614

import (
	"math"
	"testing"

	"periph.io/x/conn/v3/physic"
)

func TestRoundTripCelsius(t *testing.T) {
	for v := -50.0; v <= 150; v += 0.5 {
		got := FromLinear(ToLinear(v, Celsius), Celsius)
		if math.Abs(got-v) > 0.02 {
			t.Errorf("FromLinear(ToLinear(%f))=%f", v, got)
		}
	}
}

func TestRoundTripUnits(t *testing.T) {
	for _, u := range []Unit{Fahrenheit, Kelvin} {
		for raw := int16(0); raw < math.MaxInt16-100; raw += 97 {
			if got := ToLinear(FromLinear(raw, u), u); got != raw {
				t.Errorf("ToLinear(FromLinear(%d, %s))=%d", raw, u, got)
			}
		}
	}
}

func TestToLinear(t *testing.T) {
	tests := []struct {
		v    float64
		unit Unit
		want int16
	}{
		{300, Kelvin, 15000},
		{80.33, Fahrenheit, 15000},
		{-273.15, Celsius, 0},
		{1234.9, Raw, 1234},
		{-5.7, Raw, -5},
		{1e6, Kelvin, math.MaxInt16},
		{-1e6, Raw, math.MinInt16},
		{math.NaN(), Celsius, 0},
	}
	for _, test := range tests {
		if got := ToLinear(test.v, test.unit); got != test.want {
			t.Errorf("ToLinear(%f, %s)=%d expected %d", test.v, test.unit, got, test.want)
		}
	}
}

func TestFromLinear(t *testing.T) {
	tests := []struct {
		raw  int16
		unit Unit
		want float64
	}{
		{10157, Celsius, -70.01},
		{15000, Kelvin, 300},
		{15000, Celsius, 26.85},
		{15000, Fahrenheit, 80.33},
		{13657, Celsius, 0},
		{13657, Fahrenheit, 32},
		{-12, Raw, -12},
	}
	for _, test := range tests {
		if got := FromLinear(test.raw, test.unit); math.Abs(got-test.want) > 0.02 {
			t.Errorf("FromLinear(%d, %s)=%f expected %f", test.raw, test.unit, got, test.want)
		}
	}
}

func TestLinearToTemperature(t *testing.T) {
	if got := linearToTemperature(13658); got != physic.ZeroCelsius+10*physic.MilliKelvin {
		t.Errorf("linearToTemperature(13658)=%s", got)
	}
}

func TestUnitString(t *testing.T) {
	for u, want := range map[Unit]string{Celsius: "°C", Fahrenheit: "°F", Kelvin: "K", Raw: "raw", Unit(7): "Unit(7)"} {
		if got := u.String(); got != want {
			t.Errorf("Unit(%d).String()=%q expected %q", u, got, want)
		}
	}
}
