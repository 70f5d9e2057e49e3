package oled

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/glowkit/oled/conn"
)

// Conn errors.
var (
	ErrDCPin = errors.New("oled: data/command (DC) GPIO pin is invalid")
)

// Conn is the connection interface for communicating with the display
// controller.
//
// Command and Data deliver their bytes in order with the control-line
// framing (or control-byte prefix) the transport requires, and block until
// the underlying bus write completed. Transport failures are returned
// unchanged; no retries are attempted.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Reset performs the hardware reset sequence. It is a no-op when no
	// reset pin is configured.
	Reset() error

	// Command sends a command byte with optional arguments.
	Command(byte, ...byte) error

	// Data sends data bytes.
	Data(...byte) error
}

// Reset line timing, from the SH1106 datasheet with generous margins.
const (
	resetSettle = 1 * time.Millisecond
	resetHold   = 20 * time.Millisecond
)

// resetSequence pulses the reset line: release, assert low, release again.
// A nil pin means the line is hardwired and the sequence is a no-op.
func resetSequence(pin gpio.PinOut) error {
	if pin == nil || pin == gpio.INVALID {
		return nil
	}
	if err := pin.Out(gpio.High); err != nil {
		return err
	}
	time.Sleep(resetSettle)
	if err := pin.Out(gpio.Low); err != nil {
		return err
	}
	time.Sleep(resetHold)
	if err := pin.Out(gpio.High); err != nil {
		return err
	}
	time.Sleep(resetHold)
	return nil
}

// Two-wire bus control byte prefixes. The first byte of every transaction
// tells the controller whether a command or a display RAM stream follows.
const (
	i2cCommandPrefix = 0x00
	i2cDataPrefix    = 0x40
)

// I2CConfig describes the I²C bus configuration.
type I2CConfig struct {
	// Device is the I²C device, use -1 to use the first available device.
	Device int

	// Addr is the I²C address.
	Addr uint8

	// Reset pin, optional.
	Reset gpio.PinOut
}

// DefaultI2CConfig are the default configuration values.
var DefaultI2CConfig = I2CConfig{
	Device: -1,
	Addr:   0x3c,
}

// i2cBus is the part of the low level I²C connection used by i2cConn,
// narrowed so tests can substitute a recording fake.
type i2cBus interface {
	io.Writer
	io.Closer
	String() string
}

type i2cConn struct {
	bus   i2cBus
	reset gpio.PinOut
}

// OpenI2C opens a two-wire bus connection to the display. A nil config
// selects [DefaultI2CConfig].
func OpenI2C(config *I2CConfig) (Conn, error) {
	if config == nil {
		config = new(I2CConfig)
		*config = DefaultI2CConfig
	}
	if config.Addr == 0 {
		config.Addr = DefaultI2CConfig.Addr
	}

	c, err := conn.OpenI2C(config.Device, config.Addr)
	if err != nil {
		return nil, err
	}

	return &i2cConn{
		bus:   c,
		reset: config.Reset,
	}, nil
}

func (c *i2cConn) String() string {
	return c.bus.String()
}

func (c *i2cConn) Close() error {
	return c.bus.Close()
}

func (c *i2cConn) Reset() error {
	return resetSequence(c.reset)
}

func (c *i2cConn) Command(cmnd byte, args ...byte) (err error) {
	_, err = c.bus.Write(append([]byte{i2cCommandPrefix, cmnd}, args...))
	return
}

func (c *i2cConn) Data(data ...byte) (err error) {
	_, err = c.bus.Write(append([]byte{i2cDataPrefix}, data...))
	return
}

// SPIConfig describes the 4-wire serial bus configuration.
type SPIConfig struct {
	Bus       int
	Device    int
	SpeedHz   uint32
	BatchSize uint

	// Reset pin, optional.
	Reset gpio.PinOut

	// DC is the data/command select pin, driven low for commands and high
	// for data. Required.
	DC gpio.PinOut

	// CS is the chip select pin, asserted low for the duration of each
	// transfer. Optional; nil means the line is hardwired low.
	CS gpio.PinOut
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Bus:       0,
	Device:    0,
	SpeedHz:   8_000_000,
	BatchSize: 4096,
}

// ValidSPISpeeds are common valid SPI bus speeds.
var ValidSPISpeeds = []uint32{
	500_000,
	1_000_000,
	2_000_000,
	4_000_000,
	8_000_000,
	10_000_000,
	16_000_000,
	20_000_000,
	24_000_000,
	32_000_000,
}

// spiBus is the part of the low level SPI connection used by spiConn,
// narrowed so tests can substitute a recording fake.
type spiBus interface {
	io.Writer
	io.Closer
	String() string
}

type spiConn struct {
	bus       spiBus
	reset     gpio.PinOut
	dc        gpio.PinOut
	dcLevel   gpio.Level
	cs        gpio.PinOut
	batchSize uint
}

// OpenSPI opens a 4-wire serial connection to the display. A nil config
// selects [DefaultSPIConfig], which has no DC pin set and will be rejected.
func OpenSPI(config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}

	if config.DC == nil || config.DC == gpio.INVALID {
		return nil, ErrDCPin
	}
	if err := config.DC.Out(gpio.Low); err != nil {
		return nil, err
	}

	if config.SpeedHz == 0 {
		config.SpeedHz = DefaultSPIConfig.SpeedHz
	}
	if config.BatchSize == 0 {
		config.BatchSize = DefaultSPIConfig.BatchSize
	}

	var valid bool
	for _, speed := range ValidSPISpeeds {
		if valid = speed == config.SpeedHz; valid {
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("oled: invalid SPI speed %dHz", config.SpeedHz)
	}

	c, err := conn.OpenSPI(config.Bus, config.Device)
	if err != nil {
		return nil, err
	}

	if err = c.SetMode(conn.SPIMode0); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err = c.SetMaxSpeed(int(config.SpeedHz)); err != nil {
		_ = c.Close()
		return nil, err
	}

	return &spiConn{
		bus:       c,
		batchSize: config.BatchSize,
		reset:     config.Reset,
		dc:        config.DC,
		cs:        config.CS,
	}, nil
}

func (c *spiConn) String() string {
	return fmt.Sprintf("SPI bus %s", c.bus)
}

func (c *spiConn) Close() error {
	return c.bus.Close()
}

func (c *spiConn) Reset() error {
	return resetSequence(c.reset)
}

func (c *spiConn) updateDC(level gpio.Level) error {
	if c.dcLevel != level {
		if err := c.dc.Out(level); err != nil {
			return err
		}
		c.dcLevel = level
	}
	return nil
}

func (c *spiConn) updateCS(level gpio.Level) error {
	if c.cs == nil || c.cs == gpio.INVALID {
		return nil
	}
	return c.cs.Out(level)
}

func (c *spiConn) Command(cmnd byte, args ...byte) (err error) {
	if err = c.updateCS(gpio.Low); err != nil {
		return
	}
	if err = c.updateDC(gpio.Low); err != nil {
		return
	}
	if _, err = c.bus.Write(append([]byte{cmnd}, args...)); err != nil {
		return
	}
	return c.updateCS(gpio.High)
}

func (c *spiConn) Data(data ...byte) (err error) {
	if len(data) == 0 {
		return
	}
	if err = c.updateCS(gpio.Low); err != nil {
		return
	}
	if err = c.updateDC(gpio.High); err != nil {
		return
	}
	if err = c.writeChunked(data); err != nil {
		return
	}
	return c.updateCS(gpio.High)
}

func (c *spiConn) writeChunked(data []byte) (err error) {
	if len(data) < int(c.batchSize) {
		_, err = c.bus.Write(data)
		return
	}

	if debug {
		log.Printf("oled: write %d bytes of data in %d chunks", len(data), (len(data)+int(c.batchSize)-1)/int(c.batchSize))
	}
	buffer := data
	for len(buffer) > 0 {
		chunk := buffer
		if len(chunk) > int(c.batchSize) {
			chunk = chunk[:c.batchSize]
		}
		if _, err = c.bus.Write(chunk); err != nil {
			return
		}
		buffer = buffer[len(chunk):]
	}
	return
}
