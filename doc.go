// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package irtherm is a container for the MLX90614 infrared thermometer
// driver and the tools that present its readings.
//
// The driver lives in package mlx90614. Packages thermbar and thermimg
// render readings to a terminal and to an image, and cmd/mlx90614 ties them
// together on the command line.
package irtherm
