// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// mlx90614 reads temperatures from a MLX90614 infrared thermometer and
// optionally reprograms its emissivity and SMBus address.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/GermanBionicSystems/irtherm/mlx90614"
	"github.com/GermanBionicSystems/irtherm/thermbar"
	"github.com/GermanBionicSystems/irtherm/thermimg"
	"github.com/mattn/go-isatty"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

func parseUnit(s string) (mlx90614.Unit, error) {
	switch strings.ToLower(s) {
	case "c", "celsius":
		return mlx90614.Celsius, nil
	case "f", "fahrenheit":
		return mlx90614.Fahrenheit, nil
	case "k", "kelvin":
		return mlx90614.Kelvin, nil
	case "raw":
		return mlx90614.Raw, nil
	}
	return 0, fmt.Errorf("invalid unit %q", s)
}

func main() {
	bus := flag.String("bus", "", "Name of the I²C bus")
	addr := flag.Uint("addr", uint(mlx90614.DefaultAddress), "Sensor address")
	unitFlag := flag.String("unit", "c", "Temperature unit: c, f, k or raw")
	emissivity := flag.Float64("emissivity", 0, "Program the emissivity, 0.1 to 1.0")
	newAddr := flag.Uint("set-addr", 0, "Program a new SMBus address, effective after a power cycle")
	count := flag.Int("n", 10, "Number of readings, 0 to run forever")
	interval := flag.Duration("interval", time.Second, "Time between readings")
	pngPath := flag.String("png", "", "Write a chart of the readings to this PNG file")
	noColor := flag.Bool("nocolor", false, "Disable the colored bar")
	verbose := flag.Bool("v", false, "Log failed operations")
	flag.Parse()

	unit, err := parseUnit(*unitFlag)
	if err != nil {
		log.Fatal(err)
	}
	opts := &mlx90614.Opts{Unit: unit}
	if *verbose {
		opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	b, err := i2creg.Open(*bus)
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	dev, err := mlx90614.NewI2C(b, uint16(*addr), opts)
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Close()

	id := dev.DeviceID()
	log.Printf("%s id %04x-%04x-%04x-%04x", dev, id[0], id[1], id[2], id[3])

	if *emissivity != 0 {
		if err := dev.SetEmissivity(*emissivity); err != nil {
			log.Fatal(err)
		}
	}
	if *newAddr != 0 {
		if err := dev.SetAddress(uint16(*newAddr)); err != nil {
			log.Fatal(err)
		}
		log.Printf("address 0x%02x stored, power cycle the sensor to use it", *newAddr)
	}
	if e, err := dev.Emissivity(); err == nil {
		log.Printf("emissivity %.3f", e)
	}
	if c, err := dev.Config(); err == nil {
		log.Printf("config IIR=%d FIR=%d dual=%t", c.IIR(), c.FIR(), c.DualSensor())
	}

	var bar *thermbar.Bar
	if !*noColor && isatty.IsTerminal(os.Stdout.Fd()) {
		if bar, err = thermbar.New(nil); err != nil {
			log.Fatal(err)
		}
		defer bar.Halt()
	}

	var history []thermimg.Reading
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for i := 0; *count == 0 || i < *count; i++ {
		if i != 0 {
			<-ticker.C
		}
		ta, err := dev.AmbientTemperature()
		if err != nil {
			log.Print(err)
			continue
		}
		to, err := dev.ObjectTemperature(1)
		if err != nil {
			log.Print(err)
			continue
		}
		label := fmt.Sprintf("ambient %.2f%s object %.2f%s", ta, unit, to, unit)
		if bar != nil {
			var env physic.Env
			if err := dev.Sense(&env); err == nil {
				_ = bar.Show(env.Temperature, label)
			}
		} else {
			fmt.Println(label)
		}
		if *pngPath != "" {
			r, err := reading(dev)
			if err != nil {
				log.Print(err)
				continue
			}
			history = append(history, r)
		}
	}

	if *pngPath != "" && len(history) != 0 {
		if err := thermimg.SavePNG(*pngPath, history, nil); err != nil {
			log.Fatal(err)
		}
	}
}

// reading samples both temperatures as physic.Temperature, independent of
// the unit selected for display.
func reading(dev *mlx90614.Dev) (thermimg.Reading, error) {
	unit := dev.Unit()
	if err := dev.SetUnit(mlx90614.Kelvin); err != nil {
		return thermimg.Reading{}, err
	}
	defer dev.SetUnit(unit)
	ta, err := dev.AmbientTemperature()
	if err != nil {
		return thermimg.Reading{}, err
	}
	to, err := dev.ObjectTemperature(1)
	if err != nil {
		return thermimg.Reading{}, err
	}
	k := func(v float64) physic.Temperature { return physic.Temperature(v * float64(physic.Kelvin)) }
	return thermimg.Reading{Ambient: k(ta), Object: k(to)}, nil
}
