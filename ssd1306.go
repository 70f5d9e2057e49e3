package oled

import (
	"fmt"
	"time"
)

const (
	ssd1306DefaultWidth  = 128
	ssd1306DefaultHeight = 64
)

type ssd1306 struct {
	monoDisplay
}

// SSD1306 is a driver for the Solomon Systech SSD1306 OLED display
// controller.
func SSD1306(conn Conn, config *Config) (Display, error) {
	d := &ssd1306{
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
		config.Width = ssd1306DefaultWidth
	}
	if config.Height == 0 {
		config.Height = ssd1306DefaultHeight
	}

	if err := d.init(config); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *ssd1306) String() string {
	return fmt.Sprintf("SSD1306 OLED %dx%d", d.physWidth, d.pages*8)
}

func (d *ssd1306) init(config *Config) (err error) {
	var (
		multiplexRatio  = byte(config.Height - 1)
		displayClockDiv byte
		comPins         byte
		colStart        int
	)
	switch {
	case config.Width == 64 && config.Height == 32:
		displayClockDiv, comPins, colStart = 0x80, 0x12, 32
	case config.Width == 64 && config.Height == 48:
		displayClockDiv, comPins, colStart = 0x80, 0x12, 32
	case config.Width == 96 && config.Height == 16:
		displayClockDiv, comPins, colStart = 0x60, 0x02, 0
	case config.Width == 128 && config.Height == 32:
		displayClockDiv, comPins, colStart = 0x80, 0x02, 0
	case config.Width == 128 && config.Height == 64:
		displayClockDiv, comPins, colStart = 0x80, 0x12, 0
	default:
		return fmt.Errorf("oled: SSD1306 unsupported size %dx%d", config.Width, config.Height)
	}

	pump, precharge := byte(chargePumpOn), byte(0xF1)
	if config.ExternalVCC {
		pump, precharge = chargePumpOff, 0x22
	}

	// narrow panels sit in the middle of the 128 column RAM
	d.colOffset = colStart

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
		setDisplayClockDiv, displayClockDiv,
		setMultiplexRatio, multiplexRatio,
		setDisplayOffset, 0x00,
		setStartLine|0x00,
		setChargePump, pump,
		setMemoryMode, 0x02, // page addressing
		seg,
		com,
		setComPins, comPins,
		setPrecharge, precharge,
		setVComDetect, 0x40,
		setDisplayAllOnResume,
		setNormalDisplay,
	); err != nil {
		return err
	}

	if err = d.SetContrast(0xCF); err != nil {
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
