// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mlx90614

import (
	"fmt"
	"time"

	"github.com/GermanBionicSystems/irtherm/common"
)

const (
	// EEPROM cell erase and write times from the datasheet.
	eraseTime = 5 * time.Millisecond
	writeTime = 5 * time.Millisecond
)

// readWord reads the 16 bit little endian word at cmd and validates the
// trailing PEC. The PEC covers the write address, cmd, the read address and
// both data bytes.
func (dev *Dev) readWord(cmd byte) (uint16, error) {
	if dev.d == nil {
		return 0, ErrClosed
	}
	r := make([]byte, 3)
	if err := dev.d.Tx([]byte{cmd}, r); err != nil {
		return 0, fmt.Errorf("%w: read 0x%02x: %w", ErrTransfer, cmd, err)
	}
	wa := byte(dev.d.Addr << 1)
	pec := common.PEC([]byte{wa, cmd, wa | 1, r[0], r[1]})
	if r[2] != pec {
		return 0, fmt.Errorf("%w: read 0x%02x: pec 0x%02x, expected 0x%02x", ErrTransfer, cmd, r[2], pec)
	}
	return uint16(r[1])<<8 | uint16(r[0]), nil
}

// writeWord writes value to reg as [reg, lsb, msb, pec].
func (dev *Dev) writeWord(reg byte, value uint16) error {
	if dev.d == nil {
		return ErrClosed
	}
	w := []byte{reg, byte(value), byte(value >> 8), 0}
	w[3] = common.PEC([]byte{byte(dev.d.Addr << 1), w[0], w[1], w[2]})
	if err := dev.d.Tx(w, nil); err != nil {
		return fmt.Errorf("%w: write 0x%02x: %w", ErrTransfer, reg, err)
	}
	return nil
}

// writeEEPROM erases the EEPROM cell reg and then programs value, waiting
// for the erase and write cycles to complete.
//
// The value is written even when the erase fails, but the erase error is
// the one reported.
func (dev *Dev) writeEEPROM(reg byte, value uint16) error {
	if dev.d == nil {
		return ErrClosed
	}
	errErase := dev.writeWord(reg, 0)
	time.Sleep(eraseTime)
	errWrite := dev.writeWord(reg, value)
	time.Sleep(writeTime)
	if errErase != nil {
		return fmt.Errorf("mlx90614: erase: %w", errErase)
	}
	return errWrite
}

// command sends a bare command byte followed by its PEC.
func (dev *Dev) command(cmd byte) error {
	if dev.d == nil {
		return ErrClosed
	}
	w := []byte{cmd, common.PEC([]byte{byte(dev.d.Addr << 1), cmd})}
	if err := dev.d.Tx(w, nil); err != nil {
		return fmt.Errorf("%w: command 0x%02x: %w", ErrTransfer, cmd, err)
	}
	return nil
}
