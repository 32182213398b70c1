// Package sh1107 controls a SH1107 OLED display controller via I²C or SPI.
//
// The SH1107 is a 1-bit OLED controller for panels up to 128×128 pixels.
// Common display resolutions are 128×64 and 64×128. Display RAM is organized
// in sixteen pages of 8 rows each; every data byte covers 8 vertically
// stacked pixels.
//
// # Hardware Connection
//
// Over I²C:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL         → I²C clock (SCL)
//	SDA         → I²C data (SDA)
//
// The I²C address is 0x3C, or 0x3D with the address pin pulled high.
//
// Over 4-wire SPI:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL/CLK     → SPI clock (SCLK)
//	SDA/MOSI    → SPI data (MOSI)
//	DC          → GPIO (any available pin)
//	CS          → SPI chip select
//
// On 3-wire modules with DC strapped in hardware, pass nil (or NullPin) for
// the DC pin.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"image"
//
//		"github.com/shulltronics/sh1107"
//		"periph.io/x/conn/v3/i2c/i2creg"
//		"periph.io/x/devices/v3/ssd1306/image1bit"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Open the I²C bus
//		bus, _ := i2creg.Open("")
//
//		// Create the device
//		dev, _ := sh1107.NewI2C(bus, &sh1107.Opts{W: 128, H: 64})
//		defer dev.Halt()
//
//		// Draw a checkerboard
//		img := image1bit.NewVerticalLSB(dev.Bounds())
//		for y := 0; y < 64; y++ {
//			for x := 0; x < 128; x++ {
//				img.SetBit(x, y, image1bit.Bit((x/8+y/8)%2 == 0))
//			}
//		}
//		dev.Draw(dev.Bounds(), img, image.Point{})
//	}
//
// # Transports and Commands
//
// The lower layer of the package is usable on its own. A Transport hides the
// bus differences behind Init/SendCommands/SendData, and every controller
// operation is available as a Command value with a fixed wire encoding:
//
//	t := sh1107.NewI2CTransport(bus, 0x3C)
//	sh1107.Send(t, sh1107.Contrast(0x40))
//	sh1107.Send(t, sh1107.Invert(true))
//
// Over I²C, SendData splits the buffer into 64-byte pages and selects each
// page before writing it. Over SPI, every send is bracketed by chip select
// with the data/command line routed accordingly.
//
// Transport errors keep the two failure axes apart: bus write failures are
// reported as *CommError and GPIO failures as *PinError, each wrapping the
// underlying error. Nothing is retried; after an error the display state
// must be assumed inconsistent and reinitialized as needed.
//
// # Datasheet
//
// https://www.displayfuture.com/Display/datasheet/controller/SH1107.pdf
package sh1107
