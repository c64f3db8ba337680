// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package common

import "testing"

func TestPEC(t *testing.T) {
	var tests = []struct {
		bytes  []byte
		result byte
	}{
		// CRC-8/SMBUS check value.
		{bytes: []byte("123456789"), result: 0xf4},
		// MLX90614 sleep command at 0x5a, from the datasheet.
		{bytes: []byte{0xb4, 0xff}, result: 0xe8},
		// Read of TOBJ1 at 0x5a returning 0x27ad.
		{bytes: []byte{0xb4, 0x07, 0xb5, 0xad, 0x27}, result: 0x02},
		{bytes: []byte{}, result: 0x00},
		{bytes: []byte{0x00}, result: 0x00},
		{bytes: []byte{0x01}, result: 0x07},
		{bytes: []byte{0x80}, result: 0x89},
	}
	for _, test := range tests {
		res := PEC(test.bytes)
		if res != test.result {
			t.Errorf("PEC(%#v)!=0x%02x received 0x%02x", test.bytes, test.result, res)
		}
	}
}

func TestCRC8Fold(t *testing.T) {
	b := []byte{0xb4, 0x07, 0xb5, 0xad, 0x27}
	crc := CRC8(0, b[0])
	crc = CRC8(crc, b[1])
	crc = CRC8(crc, b[2])
	crc = CRC8(crc, b[3])
	crc = CRC8(crc, b[4])
	if crc != PEC(b) {
		t.Errorf("folded CRC8 0x%02x != PEC 0x%02x", crc, PEC(b))
	}
}
