// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package common contains functions used across multiple packages. For
// example, the SMBus packet error code calculation.
package common

// CRC8 folds data into the running 8-bit CRC prev and returns the result.
//
// The polynomial is x^8+x^2+x^1+1 (0x07), processed MSB first with no
// reflection and no final XOR. Seeded with 0 this is the SMBus Packet Error
// Code used by Melexis sensors.
func CRC8(prev, data byte) byte {
	crc := prev ^ data
	for i := 0; i < 8; i++ {
		if (crc & 0x80) == 0 {
			crc <<= 1
		} else {
			crc = (byte)((crc << 1) ^ 0x07)
		}
	}
	return crc
}

// PEC calculates the SMBus Packet Error Code of the byte slice parameter.
// The slice must hold every byte of the transaction, including the address
// bytes, in the order they appear on the bus.
func PEC(bytes []byte) byte {
	var crc byte
	for _, val := range bytes {
		crc = CRC8(crc, val)
	}
	return crc
}
