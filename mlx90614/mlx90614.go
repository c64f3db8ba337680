// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mlx90614

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

const (
	// DefaultAddress is the factory SMBus address of the sensor.
	DefaultAddress uint16 = 0x5a

	// InvalidTemperature is returned by temperature getters on failure. It
	// is below absolute zero in every unit.
	InvalidTemperature float64 = -999.9
	// InvalidEmissivity is returned by Emissivity on failure.
	InvalidEmissivity float64 = -1.0

	// MinEmissivity and MaxEmissivity bound SetEmissivity.
	MinEmissivity float64 = 0.1
	MaxEmissivity float64 = 1.0

	// The sensor does not accept an encoded emissivity below this value.
	eccFloor uint16 = 0x2000

	// Object temperatures are refreshed at most every 100ms with the
	// fastest filter settings.
	minSenseInterval = 100 * time.Millisecond
)

var (
	// ErrTransfer is returned when a bus transaction fails or the received
	// Packet Error Code does not match.
	ErrTransfer = errors.New("mlx90614: transfer failed")
	// ErrSensor is returned when the sensor flags an object temperature as
	// invalid.
	ErrSensor = errors.New("mlx90614: sensor reported an error")
	// ErrRange is returned when an argument is out of range. No bus access
	// is done in that case.
	ErrRange = errors.New("mlx90614: value out of range")
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("mlx90614: device closed")
)

// Opts holds the configuration options for the device.
type Opts struct {
	// Unit is the unit temperatures are returned and accepted in.
	Unit Unit
	// Logger receives a record for every failed operation. Validation and
	// sensor errors are logged at Warn, bus errors at Error. A nil Logger
	// discards them.
	Logger *slog.Logger
}

// DefaultOpts selects Celsius and discards logs.
var DefaultOpts = Opts{Unit: Celsius}

// Dev represents a MLX90614 sensor.
//
// A Dev serializes its own operations. The bus may be shared with other
// devices; serializing the bus itself is the responsibility of the
// i2c.Bus implementation.
type Dev struct {
	d        *i2c.Dev
	mu       sync.Mutex
	log      *slog.Logger
	id       [4]uint16
	unit     Unit
	shutdown chan struct{}
}

// NewI2C returns a new MLX90614 sensor using the specified bus and address.
//
// The factory ID is read to confirm the sensor is present. If it cannot be
// read, no device is returned. If opts is nil, DefaultOpts is used.
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if !opts.Unit.valid() {
		return nil, fmt.Errorf("%w: unit %d", ErrRange, opts.Unit)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	dev := &Dev{
		d:    &i2c.Dev{Bus: b, Addr: addr},
		log:  logger.With("dev", "mlx90614", "addr", fmt.Sprintf("0x%02x", addr)),
		unit: opts.Unit,
	}
	for i := range dev.id {
		v, err := dev.readWord(regID1 + byte(i))
		if err != nil {
			dev.log.Error("reading device id failed", "word", i+1, "err", err)
			return nil, fmt.Errorf("mlx90614: reading id: %w", err)
		}
		dev.id[i] = v
	}
	return dev, nil
}

// fail logs err against op and returns it.
func (dev *Dev) fail(op string, err error) error {
	switch {
	case errors.Is(err, ErrRange), errors.Is(err, ErrSensor):
		dev.log.Warn(op+" rejected", "err", err)
	default:
		dev.log.Error(op+" failed", "err", err)
	}
	return err
}

// rangeError builds an ErrRange describing v and its bounds, and logs it.
func (dev *Dev) rangeError(op string, v, lo, hi any) error {
	dev.log.Warn(op+" rejected", "value", v, "min", lo, "max", hi)
	return fmt.Errorf("%w: %s %v not in [%v, %v]", ErrRange, op, v, lo, hi)
}

// DeviceID returns the four factory ID words read when the device was
// opened.
func (dev *Dev) DeviceID() [4]uint16 {
	return dev.id
}

// Unit returns the unit temperatures are currently expressed in.
func (dev *Dev) Unit() Unit {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.unit
}

// SetUnit selects the unit used by every temperature getter and setter.
func (dev *Dev) SetUnit(u Unit) error {
	if !u.valid() {
		return dev.rangeError("unit", u, Celsius, Raw)
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	dev.unit = u
	return nil
}

// readTemperature reads a linearized temperature cell. checkFlag rejects
// values with the sensor error flag set.
func (dev *Dev) readTemperature(reg byte, checkFlag bool) (int16, error) {
	v, err := dev.readWord(reg)
	if err != nil {
		return 0, err
	}
	if checkFlag && v&errorFlag != 0 {
		return 0, fmt.Errorf("%w: register 0x%02x = 0x%04x", ErrSensor, reg, v)
	}
	return int16(v), nil
}

// ObjectTemperature returns the temperature measured by IR sensor channel
// 1 or 2 in the selected unit. On failure InvalidTemperature is returned
// along with the error.
func (dev *Dev) ObjectTemperature(channel int) (float64, error) {
	var reg byte
	switch channel {
	case 1:
		reg = regTObj1
	case 2:
		reg = regTObj2
	default:
		return InvalidTemperature, dev.rangeError("object channel", channel, 1, 2)
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	raw, err := dev.readTemperature(reg, true)
	if err != nil {
		return InvalidTemperature, dev.fail("object temperature", err)
	}
	return FromLinear(raw, dev.unit), nil
}

// AmbientTemperature returns the sensor die temperature in the selected
// unit. On failure InvalidTemperature is returned along with the error.
func (dev *Dev) AmbientTemperature() (float64, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	raw, err := dev.readTemperature(regTA, false)
	if err != nil {
		return InvalidTemperature, dev.fail("ambient temperature", err)
	}
	return FromLinear(raw, dev.unit), nil
}

// RawIR returns the raw data of IR channel 1 or 2. Bit 15 is the sign.
func (dev *Dev) RawIR(channel int) (int16, error) {
	var reg byte
	switch channel {
	case 1:
		reg = regRawIR1
	case 2:
		reg = regRawIR2
	default:
		return 0, dev.rangeError("raw ir channel", channel, 1, 2)
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	v, err := dev.readWord(reg)
	if err != nil {
		return 0, dev.fail("raw ir", err)
	}
	return int16(v), nil
}

// Emissivity returns the emissivity correction coefficient as a fraction.
// On failure InvalidEmissivity is returned along with the error.
func (dev *Dev) Emissivity() (float64, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	v, err := dev.readWord(regECC)
	if err != nil {
		return InvalidEmissivity, dev.fail("emissivity", err)
	}
	return float64(v) / math.MaxUint16, nil
}

// SetEmissivity programs the emissivity correction coefficient. e must be
// in [MinEmissivity, MaxEmissivity].
func (dev *Dev) SetEmissivity(e float64) error {
	if math.IsNaN(e) || e < MinEmissivity || e > MaxEmissivity {
		return dev.rangeError("emissivity", e, MinEmissivity, MaxEmissivity)
	}
	v := uint16(math.Round(e * math.MaxUint16))
	if v < eccFloor {
		v = eccFloor
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if err := dev.writeEEPROM(regECC, v); err != nil {
		return dev.fail("set emissivity", err)
	}
	return nil
}

// Address returns the SMBus address stored in EEPROM.
//
// It may differ from the address the Dev talks to until the sensor is power
// cycled.
func (dev *Dev) Address() (uint16, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	v, err := dev.readWord(regSMBusAddr)
	if err != nil {
		return 0, dev.fail("address", err)
	}
	return v & 0xff, nil
}

// SetAddress stores a new SMBus address in EEPROM. The high byte of the
// cell is preserved. The new address takes effect after a power cycle; the
// Dev keeps using the address it was opened with.
func (dev *Dev) SetAddress(addr uint16) error {
	if addr == 0 || addr >= 0x80 {
		return dev.rangeError("address", addr, 0x01, 0x7f)
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	cur, err := dev.readWord(regSMBusAddr)
	if err != nil {
		return dev.fail("set address", err)
	}
	if err := dev.writeEEPROM(regSMBusAddr, cur&0xff00|addr); err != nil {
		return dev.fail("set address", err)
	}
	return nil
}

func (dev *Dev) readLinear(op string, reg byte) (float64, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	raw, err := dev.readTemperature(reg, false)
	if err != nil {
		return InvalidTemperature, dev.fail(op, err)
	}
	return FromLinear(raw, dev.unit), nil
}

func (dev *Dev) writeLinear(op string, reg byte, v float64) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if c := math.Round(toCounts(v, dev.unit)); math.IsNaN(c) || c < 0 || c > math.MaxInt16 {
		return dev.rangeError(op, v, FromLinear(0, dev.unit), FromLinear(math.MaxInt16, dev.unit))
	}
	if err := dev.writeEEPROM(reg, uint16(ToLinear(v, dev.unit))); err != nil {
		return dev.fail(op, err)
	}
	return nil
}

// ObjectRangeMax returns the object temperature mapped to the top of the
// PWM output range.
func (dev *Dev) ObjectRangeMax() (float64, error) {
	return dev.readLinear("object range max", regTOMax)
}

// ObjectRangeMin returns the object temperature mapped to the bottom of the
// PWM output range.
func (dev *Dev) ObjectRangeMin() (float64, error) {
	return dev.readLinear("object range min", regTOMin)
}

// SetObjectRangeMax programs the top of the PWM object temperature range,
// expressed in the selected unit.
func (dev *Dev) SetObjectRangeMax(v float64) error {
	return dev.writeLinear("set object range max", regTOMax, v)
}

// SetObjectRangeMin programs the bottom of the PWM object temperature
// range, expressed in the selected unit.
func (dev *Dev) SetObjectRangeMin(v float64) error {
	return dev.writeLinear("set object range min", regTOMin, v)
}

func (dev *Dev) readTARange(op string, shift uint) (float64, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	v, err := dev.readWord(regTARange)
	if err != nil {
		return InvalidTemperature, dev.fail(op, err)
	}
	return taRangeToUnit(byte(v>>shift), dev.unit), nil
}

// AmbientRangeMin returns the lower ambient temperature bound used by the
// PWM output.
func (dev *Dev) AmbientRangeMin() (float64, error) {
	return dev.readTARange("ambient range min", 0)
}

// AmbientRangeMax returns the upper ambient temperature bound used by the
// PWM output.
func (dev *Dev) AmbientRangeMax() (float64, error) {
	return dev.readTARange("ambient range max", 8)
}

// PWMControl returns the PWMCTRL cell.
func (dev *Dev) PWMControl() (PWMCtrl, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	v, err := dev.readWord(regPWMCtrl)
	if err != nil {
		return 0, dev.fail("pwm control", err)
	}
	return PWMCtrl(v), nil
}

// SetPWMControl programs the PWMCTRL cell.
func (dev *Dev) SetPWMControl(p PWMCtrl) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if err := dev.writeEEPROM(regPWMCtrl, uint16(p)); err != nil {
		return dev.fail("set pwm control", err)
	}
	return nil
}

// Config returns the CONF1 cell.
func (dev *Dev) Config() (Config1, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	v, err := dev.readWord(regConfig1)
	if err != nil {
		return 0, dev.fail("config", err)
	}
	return Config1(v), nil
}

// SetConfig programs the user fields of c (IIR, TSel, DualSensor and FIR)
// into CONF1. The factory calibration fields are read back from the device
// and left untouched. Nothing is written if the cell already holds the
// requested value.
func (dev *Dev) SetConfig(c Config1) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	cur, err := dev.readWord(regConfig1)
	if err != nil {
		return dev.fail("set config", err)
	}
	next := cur&^userConfigMask | uint16(c)&userConfigMask
	if next == cur {
		return nil
	}
	if err := dev.writeEEPROM(regConfig1, next); err != nil {
		return dev.fail("set config", err)
	}
	return nil
}

// Flags returns the result of the READ_FLAGS command.
func (dev *Dev) Flags() (Flags, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	v, err := dev.readWord(cmdReadFlags)
	if err != nil {
		return 0, dev.fail("flags", err)
	}
	return Flags(v), nil
}

// Sleep puts the sensor in sleep mode. Waking it up requires pulling SCL
// low, which is out of reach of an i2c.Bus, or a power cycle.
func (dev *Dev) Sleep() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if err := dev.command(cmdSleep); err != nil {
		return dev.fail("sleep", err)
	}
	return nil
}

// Sense reads the object temperature of channel 1 and writes it to
// env.Temperature. Implements physic.SenseEnv.
func (dev *Dev) Sense(env *physic.Env) error {
	env.Temperature = 0
	env.Pressure = 0
	env.Humidity = 0
	dev.mu.Lock()
	defer dev.mu.Unlock()
	raw, err := dev.readTemperature(regTObj1, true)
	if err != nil {
		return dev.fail("sense", err)
	}
	env.Temperature = linearToTemperature(raw)
	return nil
}

// SenseContinuous continuously reads the object temperature and writes it
// to the returned channel. Implements physic.SenseEnv. To terminate the
// continuous read, call Halt().
func (dev *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	if interval < minSenseInterval {
		return nil, fmt.Errorf("mlx90614: invalid duration, minimum %s", minSenseInterval)
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.d == nil {
		return nil, ErrClosed
	}
	if dev.shutdown != nil {
		return nil, errors.New("mlx90614: SenseContinuous already running")
	}
	shutdown := make(chan struct{})
	dev.shutdown = shutdown
	ch := make(chan physic.Env, 16)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		defer close(ch)
		for {
			select {
			case <-shutdown:
				return
			case <-ticker.C:
				env := physic.Env{}
				if err := dev.Sense(&env); err != nil {
					continue
				}
				select {
				case ch <- env:
				case <-shutdown:
					return
				}
			}
		}
	}()
	return ch, nil
}

// Precision returns the sensor's resolution of 0.02K. Refer to the
// datasheet for accuracy, which depends on the temperature range.
func (dev *Dev) Precision(env *physic.Env) {
	env.Temperature = resolution
	env.Pressure = 0
	env.Humidity = 0
}

// Halt stops a SenseContinuous operation in progress. Implements
// conn.Resource.
func (dev *Dev) Halt() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.shutdown != nil {
		close(dev.shutdown)
		dev.shutdown = nil
	}
	return nil
}

// Close halts the device and releases the bus. The bus itself is not
// closed. Calling Close more than once, or on a nil Dev, is safe.
func (dev *Dev) Close() error {
	if dev == nil {
		return nil
	}
	err := dev.Halt()
	dev.mu.Lock()
	dev.d = nil
	dev.mu.Unlock()
	return err
}

func (dev *Dev) String() string {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.d == nil {
		return "mlx90614: closed"
	}
	return fmt.Sprintf("mlx90614: %s", dev.d.String())
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
