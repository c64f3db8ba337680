// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// Package mlx90614 provides a driver for the Melexis MLX90614 infrared
// thermometer on an SMBus compatible I2C bus.
//
// The sensor reports the ambient (die) temperature and one or two object
// temperatures measured through its IR thermopile. Every transfer carries a
// CRC-8 Packet Error Code which this driver generates and validates.
//
// Configuration such as the emissivity correction coefficient, the SMBus
// address and the PWM output range lives in EEPROM. EEPROM cells are erased
// before being written and each step blocks for the programming time
// mandated by the datasheet, so setters take about 10ms.
//
// Range: -70°C - 380°C (object), -40°C - 125°C (ambient)
//
// Resolution: 0.02°C
//
// For detailed information, refer to the [datasheet].
//
// [datasheet]: https://www.melexis.com/en/documents/documentation/datasheets/datasheet-mlx90614
package mlx90614
