// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mlx90614

import "testing"

func TestPWMCtrl(t *testing.T) {
	p := PWMCtrl(0).
		WithSingleMode(true).
		WithEnabled(true).
		WithPushPull(true).
		WithThermalRelay(true).
		WithRepetition(0x1f).
		WithPeriod(0x7f)
	if p != 0xffff {
		t.Errorf("PWMCtrl=0x%04x expected 0xffff", uint16(p))
	}
	p = p.WithEnabled(false).WithRepetition(0x21)
	if p.Enabled() || !p.SingleMode() || !p.PushPull() || !p.ThermalRelay() {
		t.Errorf("PWMCtrl flags of 0x%04x decoded incorrectly", uint16(p))
	}
	// Only 5 bits are kept.
	if p.Repetition() != 1 || p.Period() != 0x7f {
		t.Errorf("PWMCtrl(0x%04x) repetition=%d period=%d", uint16(p), p.Repetition(), p.Period())
	}
}

func TestConfig1(t *testing.T) {
	c := Config1(0x9fb4)
	if c.IIR() != IIR100 || c.RepeatSensorTest() || c.TSel() != TSelObject1Object2 || c.DualSensor() {
		t.Errorf("Config1(0x%04x) low byte decoded incorrectly", uint16(c))
	}
	if !c.KsNegative() || c.FIR() != FIR1024 || c.Gain() != 3 || c.Kt2Negative() || !c.SensorTestDisabled() {
		t.Errorf("Config1(0x%04x) high byte decoded incorrectly", uint16(c))
	}
	c = c.WithIIR(IIR13).WithTSel(TSelAmbientObject2).WithDualSensor(true).WithFIR(FIR128)
	if c.IIR() != IIR13 || c.TSel() != TSelAmbientObject2 || !c.DualSensor() || c.FIR() != FIR128 {
		t.Errorf("Config1 setters produced 0x%04x", uint16(c))
	}
	if c&^Config1(userConfigMask) != 0x9fb4&^Config1(userConfigMask) {
		t.Errorf("Config1 setters modified factory fields: 0x%04x", uint16(c))
	}
}

func TestFlagsBits(t *testing.T) {
	tests := []struct {
		f                    Flags
		busy, dead, initDone bool
	}{
		{0x0000, false, false, false},
		{0x0080, true, false, false},
		{0x0020, false, true, false},
		{0x0010, false, false, true},
		{0xffff, true, true, true},
	}
	for _, test := range tests {
		if test.f.EEBusy() != test.busy || test.f.EEDead() != test.dead || test.f.InitDone() != test.initDone {
			t.Errorf("Flags(0x%04x) decoded incorrectly", uint16(test.f))
		}
	}
}
