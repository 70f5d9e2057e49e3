package oled

import (
	"fmt"
	"time"
)

const (
	sh1106DefaultWidth  = 128
	sh1106DefaultHeight = 64

	// The SH1106 RAM is 132 columns wide but common panels wire up the
	// middle 128, so column addressing starts at a fixed offset.
	sh1106ColumnOffset = 2
)

type sh1106 struct {
	monoDisplay
}

// SH1106 is a driver for the Sino Wealth SH1106 OLED display controller.
func SH1106(conn Conn, config *Config) (Display, error) {
	d := &sh1106{
		monoDisplay: monoDisplay{
			baseDisplay: baseDisplay{
				c: conn,
			},
		},
	}

	if config == nil {
		config = new(Config)
	}
	if config.Width == 0 {
		config.Width = sh1106DefaultWidth
	}
	if config.Height == 0 {
		config.Height = sh1106DefaultHeight
	}

	if err := d.init(config); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *sh1106) String() string {
	return fmt.Sprintf("SH1106 OLED %dx%d", d.physWidth, d.pages*8)
}

func (d *sh1106) init(config *Config) (err error) {
	var (
		multiplexRatio byte
		displayOffset  byte
	)
	switch {
	case config.Width == 128 && config.Height == 32:
		multiplexRatio, displayOffset = 0x20, 0x0f
	case config.Width == 128 && config.Height == 64:
		multiplexRatio, displayOffset = 0x3f, 0x00
	case config.Width == 128 && config.Height == 128:
		multiplexRatio, displayOffset = 0xff, 0x02
	default:
		return fmt.Errorf("oled: SH1106 unsupported size %dx%d", config.Width, config.Height)
	}

	pump, precharge := byte(chargePumpOn), byte(0xF1)
	if config.ExternalVCC {
		pump, precharge = chargePumpOff, 0x22
	}

	d.colOffset = sh1106ColumnOffset

	// init session state
	if err = d.monoDisplay.init(config); err != nil {
		return
	}

	if err = d.Reset(); err != nil {
		return
	}

	seg, com := d.remapFlags()
	if err = d.command(
		setDisplayOff,
		setDisplayClockDiv, 0xF0,
		setMultiplexRatio, multiplexRatio,
		setDisplayOffset, displayOffset,
		setStartLine|0x00,
		setChargePump, pump,
		setMemoryMode, // page addressing
		seg,
		com,
		setComPins, 0x12,
		setPrecharge, precharge,
		setVComDetect, 0x20,
		setDisplayAllOnResume,
		setNormalDisplay,
	); err != nil {
		return err
	}

	if err = d.SetContrast(0x7F); err != nil {
		return
	}
	d.Clear()
	if err = d.FullRefresh(); err != nil {
		return
	}
	if err = d.Show(true); err != nil {
		return
	}
	if config.PowerOnDelay > 0 {
		time.Sleep(config.PowerOnDelay)
	}

	return
}
