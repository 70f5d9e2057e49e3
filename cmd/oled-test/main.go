// Command oled-test exercises a display driver from the command line.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/glowkit/oled"
	"github.com/glowkit/oled/draw"
	"github.com/glowkit/oled/pixel"
	"github.com/glowkit/oled/sim"
)

func main() {
	widthFlag := flag.Int("width", 0, "Display width")
	heightFlag := flag.Int("height", 0, "Display height")
	i2cDeviceFlag := flag.Int("i2c-dev", oled.DefaultI2CConfig.Device, "I²C device number (default: use first available)")
	i2cAddrFlag := flag.Uint("i2c-addr", uint(oled.DefaultI2CConfig.Addr), "I²C device address")
	spiBusFlag := flag.Int("spi-bus", 0, "SPI bus")
	spiDeviceFlag := flag.Int("spi-dev", 0, "SPI device")
	resetPinFlag := flag.String("reset", "", "Reset GPIO pin (optional)")
	dcPinFlag := flag.String("dc", "GPIO24", "Data/Command GPIO pin (DC)")
	csPinFlag := flag.String("cs", "", "Chip select GPIO pin (optional)")
	rotateFlag := flag.String("rotate", "", "Display rotation")
	flipFlag := flag.Bool("flip", false, "Flip the display 180°")
	externalVCCFlag := flag.Bool("external-vcc", false, "Panel uses an external high-voltage supply")
	invertFlag := flag.Bool("invert", false, "Invert the display colors")
	contrastFlag := flag.Uint("contrast", 0x7f, "Contrast level")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <i2c|spi|sim> <sh1106|ssd1306>\n", os.Args[0])
		os.Exit(1)
	}

	var rotation oled.Rotation
	switch *rotateFlag {
	case "", "no", "0":
		rotation = oled.NoRotation
	case "90", "right", "cw":
		rotation = oled.Rotate90
	case "180":
		rotation = oled.Rotate180
	case "270", "left", "ccw":
		rotation = oled.Rotate270
	default:
		fatal(fmt.Errorf("invalid rotation %q specified", *rotateFlag))
	}

	config := &oled.Config{
		Width:       *widthFlag,
		Height:      *heightFlag,
		Rotation:    rotation,
		Flipped:     *flipFlag,
		ExternalVCC: *externalVCCFlag,
	}

	var (
		busType = flag.Arg(0)
		output  oled.Display
		conn    oled.Conn
		err     error
	)
	if busType != "sim" {
		if _, err = host.Init(); err != nil {
			fatal(err)
		}
	}
	switch busType {
	case "i2c":
		conn, err = oled.OpenI2C(&oled.I2CConfig{
			Device: *i2cDeviceFlag,
			Addr:   uint8(*i2cAddrFlag),
			Reset:  pinByName(*resetPinFlag),
		})
	case "spi":
		conn, err = oled.OpenSPI(&oled.SPIConfig{
			Bus:    *spiBusFlag,
			Device: *spiDeviceFlag,
			Reset:  pinByName(*resetPinFlag),
			DC:     pinByName(*dcPinFlag),
			CS:     pinByName(*csPinFlag),
		})
	case "sim":
	default:
		err = fmt.Errorf("unsupported bus type %q", busType)
	}
	if err != nil {
		fatal(err)
	}

	driver := strings.ToLower(flag.Arg(1))
	if busType == "sim" {
		output, err = sim.New(config)
	} else {
		switch driver {
		case "sh1106":
			output, err = oled.SH1106(conn, config)
		case "ssd1306":
			output, err = oled.SSD1306(conn, config)
		default:
			err = fmt.Errorf("unsupported driver %q", driver)
		}
	}
	if err != nil {
		fatal(err)
	}
	defer output.Close()

	if err = output.SetContrast(uint8(*contrastFlag)); err != nil {
		fatal(err)
	}
	if err = output.Invert(*invertFlag); err != nil {
		fatal(err)
	}

	var (
		r      = output.Bounds()
		ticker = time.NewTicker(50 * time.Millisecond)
		offset int
	)
	defer ticker.Stop()

	for {
		output.Clear()

		// box around the edge with a scrolling diagonal fill
		draw.Rectangle(output, r, pixel.On)
		for y := 2; y < r.Max.Y-2; y++ {
			for x := 2; x < r.Max.X-2; x++ {
				if (x+y+offset)%8 == 0 {
					output.SetPixel(x, y, true)
				}
			}
		}

		draw.FilledEllipse(output, r.Max.X/2, r.Max.Y/2, 24, 12, pixel.Off)
		draw.Ellipse(output, r.Max.X/2, r.Max.Y/2, 24, 12, pixel.On)

		label := fmt.Sprintf("%s %d", driver, offset)
		draw.Text(output, label, r.Max.X/2-draw.TextWidth(label)/2, r.Max.Y/2-6, pixel.On)

		if err = output.Refresh(); err != nil {
			fatal(err)
		}

		offset++
		<-ticker.C
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}

func pinByName(name string) gpio.PinOut {
	if name == "" {
		return nil
	}
	return gpioreg.ByName(name)
}
