// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mlx90614

const (
	// RAM cells.
	regRawIR1 byte = 0x04
	regRawIR2 byte = 0x05
	regTA     byte = 0x06
	regTObj1  byte = 0x07
	regTObj2  byte = 0x08

	// EEPROM cells. A cell must be erased by writing 0x0000 before a new
	// value is written.
	regTOMax     byte = 0x20
	regTOMin     byte = 0x21
	regPWMCtrl   byte = 0x22
	regTARange   byte = 0x23
	regECC       byte = 0x24
	regConfig1   byte = 0x25
	regSMBusAddr byte = 0x2e
	regID1       byte = 0x3c

	// Special commands.
	cmdReadFlags byte = 0xf0
	cmdSleep     byte = 0xff

	// Temperature RAM cells flag an invalid measurement with bit 15.
	errorFlag uint16 = 0x8000
)

// bits extracts width bits of v starting at shift.
func bits(v uint16, shift, width uint) uint16 {
	return (v >> shift) & (1<<width - 1)
}

// setBits replaces width bits of v starting at shift with x.
func setBits(v uint16, shift, width uint, x uint16) uint16 {
	mask := uint16(1<<width-1) << shift
	return (v &^ mask) | ((x << shift) & mask)
}

func setBit(v uint16, shift uint, on bool) uint16 {
	if on {
		return setBits(v, shift, 1, 1)
	}
	return setBits(v, shift, 1, 0)
}

// Flags is the word returned by the READ_FLAGS command.
type Flags uint16

// EEBusy reports that the previous EEPROM write or erase is still in
// progress.
func (f Flags) EEBusy() bool {
	return bits(uint16(f), 7, 1) == 1
}

// EEDead reports an EEPROM double error.
func (f Flags) EEDead() bool {
	return bits(uint16(f), 5, 1) == 1
}

// InitDone reports that the power-on initialization routine has finished.
// The INIT bit is low while initialization is ongoing.
func (f Flags) InitDone() bool {
	return bits(uint16(f), 4, 1) == 1
}

// PWMCtrl is the content of the PWMCTRL EEPROM cell.
type PWMCtrl uint16

// SingleMode reports PWM single mode. Extended mode otherwise.
func (p PWMCtrl) SingleMode() bool { return bits(uint16(p), 0, 1) == 1 }

// Enabled reports whether the PWM output is enabled.
func (p PWMCtrl) Enabled() bool { return bits(uint16(p), 1, 1) == 1 }

// PushPull reports whether SDA is configured push-pull rather than open
// drain.
func (p PWMCtrl) PushPull() bool { return bits(uint16(p), 2, 1) == 1 }

// ThermalRelay reports thermal relay mode rather than PWM mode.
func (p PWMCtrl) ThermalRelay() bool { return bits(uint16(p), 3, 1) == 1 }

// Repetition returns the PWM repetition number field.
func (p PWMCtrl) Repetition() uint8 { return uint8(bits(uint16(p), 4, 5)) }

// Period returns the PWM period field.
func (p PWMCtrl) Period() uint8 { return uint8(bits(uint16(p), 9, 7)) }

func (p PWMCtrl) WithSingleMode(on bool) PWMCtrl   { return PWMCtrl(setBit(uint16(p), 0, on)) }
func (p PWMCtrl) WithEnabled(on bool) PWMCtrl      { return PWMCtrl(setBit(uint16(p), 1, on)) }
func (p PWMCtrl) WithPushPull(on bool) PWMCtrl     { return PWMCtrl(setBit(uint16(p), 2, on)) }
func (p PWMCtrl) WithThermalRelay(on bool) PWMCtrl { return PWMCtrl(setBit(uint16(p), 3, on)) }

// WithRepetition sets the repetition field. Only the low 5 bits are kept.
func (p PWMCtrl) WithRepetition(n uint8) PWMCtrl {
	return PWMCtrl(setBits(uint16(p), 4, 5, uint16(n)))
}

// WithPeriod sets the period field. Only the low 7 bits are kept.
func (p PWMCtrl) WithPeriod(n uint8) PWMCtrl {
	return PWMCtrl(setBits(uint16(p), 9, 7, uint16(n)))
}

// IIR selects the infinite impulse response filter setting.
type IIR uint8

const (
	IIR100 IIR = 4 // a1=1, b1=0
	IIR80  IIR = 5 // a1=0.8, b1=0.2
	IIR67  IIR = 6 // a1=0.666, b1=0.333
	IIR57  IIR = 7 // a1=0.571, b1=0.428
	IIR50  IIR = 0 // a1=0.5, b1=0.5
	IIR25  IIR = 1 // a1=0.25, b1=0.75
	IIR17  IIR = 2 // a1=0.166, b1=0.833
	IIR13  IIR = 3 // a1=0.125, b1=0.875
)

// TSel selects which temperatures drive the PWM outputs.
type TSel uint8

const (
	TSelAmbientObject1 TSel = iota // Ta, Tobj1
	TSelAmbientObject2             // Ta, Tobj2
	TSelObject2                    // Tobj2
	TSelObject1Object2             // Tobj1, Tobj2
)

// FIR selects the finite impulse response filter length. Values below
// FIR128 are not recommended by Melexis.
type FIR uint8

const (
	FIR8 FIR = iota
	FIR16
	FIR32
	FIR64
	FIR128
	FIR256
	FIR512
	FIR1024
)

// Config1 is the content of the CONF1 EEPROM cell.
//
// Several fields hold factory calibration. SetConfig only changes the user
// fields (IIR, TSel, DualSensor and FIR) and keeps the others as read from
// the device.
type Config1 uint16

// userConfigMask covers IIR, T_SEL, SENSOR_MODE and FIR.
const userConfigMask uint16 = 0x0007 | 0x0030 | 0x0040 | 0x0700

func (c Config1) IIR() IIR                 { return IIR(bits(uint16(c), 0, 3)) }
func (c Config1) RepeatSensorTest() bool   { return bits(uint16(c), 3, 1) == 1 }
func (c Config1) TSel() TSel               { return TSel(bits(uint16(c), 4, 2)) }
func (c Config1) DualSensor() bool         { return bits(uint16(c), 6, 1) == 1 }
func (c Config1) KsNegative() bool         { return bits(uint16(c), 7, 1) == 1 }
func (c Config1) FIR() FIR                 { return FIR(bits(uint16(c), 8, 3)) }
func (c Config1) Gain() uint8              { return uint8(bits(uint16(c), 11, 3)) }
func (c Config1) Kt2Negative() bool        { return bits(uint16(c), 14, 1) == 1 }
func (c Config1) SensorTestDisabled() bool { return bits(uint16(c), 15, 1) == 1 }

func (c Config1) WithIIR(v IIR) Config1 { return Config1(setBits(uint16(c), 0, 3, uint16(v))) }
func (c Config1) WithTSel(v TSel) Config1 {
	return Config1(setBits(uint16(c), 4, 2, uint16(v)))
}
func (c Config1) WithDualSensor(on bool) Config1 { return Config1(setBit(uint16(c), 6, on)) }
func (c Config1) WithFIR(v FIR) Config1          { return Config1(setBits(uint16(c), 8, 3, uint16(v))) }
