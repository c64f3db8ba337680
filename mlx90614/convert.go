// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mlx90614

import (
	"fmt"
	"math"

	"periph.io/x/conn/v3/physic"
)

// Unit selects how temperatures are presented and accepted by a Dev.
type Unit uint8

const (
	// Celsius is the default unit.
	Celsius Unit = iota
	Fahrenheit
	Kelvin
	// Raw is the sensor's linearized representation, 0.02K per count.
	Raw
)

func (u Unit) String() string {
	switch u {
	case Celsius:
		return "°C"
	case Fahrenheit:
		return "°F"
	case Kelvin:
		return "K"
	case Raw:
		return "raw"
	}
	return fmt.Sprintf("Unit(%d)", u)
}

func (u Unit) valid() bool {
	return u <= Raw
}

const (
	// Kelvin per linearized count.
	kelvinPerCount  = 0.02
	countsPerKelvin = 50
	zeroCelsius     = 273.15

	// Linearized temperature resolution.
	resolution physic.Temperature = 20 * physic.MilliKelvin

	// TA_RANGE bytes: celsius = count*taRangeScale + taRangeOffset.
	taRangeScale  = 0.64
	taRangeOffset = -38.2
)

// toKelvin converts v expressed in u to Kelvin. It is not defined for Raw.
func toKelvin(v float64, u Unit) float64 {
	switch u {
	case Fahrenheit:
		return (v-32)*5/9 + zeroCelsius
	case Celsius:
		return v + zeroCelsius
	}
	return v
}

// fromKelvin converts k to u. It is not defined for Raw.
func fromKelvin(k float64, u Unit) float64 {
	if u == Kelvin {
		return k
	}
	c := k - zeroCelsius
	if u == Fahrenheit {
		return c*9/5 + 32
	}
	return c
}

// toCounts returns v in unrounded linearized counts.
func toCounts(v float64, u Unit) float64 {
	if u == Raw {
		return math.Trunc(v)
	}
	return toKelvin(v, u) * countsPerKelvin
}

// ToLinear converts v expressed in unit u to the sensor's linearized
// representation. Raw values are truncated, others rounded to the nearest
// count. Results outside the int16 range saturate.
func ToLinear(v float64, u Unit) int16 {
	c := math.Round(toCounts(v, u))
	switch {
	case math.IsNaN(c):
		return 0
	case c > math.MaxInt16:
		return math.MaxInt16
	case c < math.MinInt16:
		return math.MinInt16
	}
	return int16(c)
}

// FromLinear converts a linearized sensor value to unit u.
func FromLinear(raw int16, u Unit) float64 {
	if u == Raw {
		return float64(raw)
	}
	return fromKelvin(float64(raw)*kelvinPerCount, u)
}

// linearToTemperature converts a linearized value to a physic.Temperature.
func linearToTemperature(raw int16) physic.Temperature {
	return physic.Temperature(raw) * resolution
}

// taRangeToUnit decodes one byte of the TA_RANGE cell to unit u.
func taRangeToUnit(b byte, u Unit) float64 {
	if u == Raw {
		return float64(b)
	}
	return fromKelvin(float64(b)*taRangeScale+taRangeOffset+zeroCelsius, u)
}
