package sh1107

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// DefaultOpts is the recommended default options: a 128x64 panel at the most
// common I²C address.
var DefaultOpts = Opts{
	W:    128,
	H:    64,
	Addr: 0x3C,
}

// Opts is the configuration for the SH1107 display.
type Opts struct {
	// Display dimensions in pixels. Both must be multiples of 8, at most 128.
	W int
	H int

	// Rotated flips the panel 180° by reversing both the segment order and
	// the COM scan direction.
	Rotated bool

	// Addr is the I²C address, 0x3C or 0x3D. Ignored when using SPI.
	Addr uint16
}

var errHalted = errors.New("sh1107: halted")

// Dev is an open handle to the display controller.
type Dev struct {
	t    Transport
	rect image.Rectangle

	// next is lazily allocated on the first Draw that cannot take the
	// full-frame fast path. Write skips it.
	next   *image1bit.VerticalLSB
	halted bool
}

// NewI2C returns a Dev that communicates with a SH1107 over I²C.
//
// opts can be nil to use DefaultOpts.
func NewI2C(bus i2c.Bus, opts *Opts) (*Dev, error) {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.Addr == 0 {
		o.Addr = DefaultOpts.Addr
	}
	return newDev(NewI2CTransport(bus, o.Addr), &o)
}

// NewSPI returns a Dev that communicates with a SH1107 over 4-wire SPI.
//
// dc is the data/command select pin and cs the chip select pin; pass nil for
// either when the wiring omits it. The port is configured for Mode0, 8-bit
// transfers at up to 3.3MHz.
func NewSPI(p spi.Port, dc, cs gpio.PinOut, opts *Opts) (*Dev, error) {
	if dc == nil {
		dc = NullPin
	}
	if cs == nil {
		cs = NullPin
	}
	c, err := p.Connect(3300*physic.KiloHertz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	return newDev(NewSPITransport(c, dc, cs), &o)
}

// newDev is the initialization code shared by both transports.
func newDev(t Transport, opts *Opts) (*Dev, error) {
	if opts.W < 8 || opts.W > 128 || opts.W%8 != 0 {
		return nil, fmt.Errorf("sh1107: invalid width %d", opts.W)
	}
	if opts.H < 8 || opts.H > 128 || opts.H%8 != 0 {
		return nil, fmt.Errorf("sh1107: invalid height %d", opts.H)
	}

	d := &Dev{
		t:    t,
		rect: image.Rect(0, 0, opts.W, opts.H),
	}
	if err := t.Init(); err != nil {
		return nil, err
	}
	if err := d.sendCommands(initCmds(opts)...); err != nil {
		return nil, err
	}
	return d, nil
}

// initCmds is the power-up sequence. Values follow the SH1107 datasheet
// defaults; the charge pump is enabled for modules without external VCC.
func initCmds(opts *Opts) []Command {
	return []Command{
		DisplayOn(false),
		MemAddressMode(0), // page addressing
		StartLine(0),
		SegmentRemap(opts.Rotated),
		ReverseComDir(opts.Rotated),
		Multiplex(uint8(opts.H - 1)),
		DisplayOffset(0),
		DisplayClockDiv{Frequency: 5, DivideRatio: 0},
		PreChargePeriod{Discharge: 2, Precharge: 2},
		VcomhDeselect(Vcomh077),
		ChargePump(true),
		Contrast(0x80),
		DisplayOn(true),
	}
}

func (d *Dev) String() string {
	return fmt.Sprintf("sh1107.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

// ColorModel implements display.Drawer. The SH1107 is monochrome.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
//
// It draws synchronously; once it returns the display is updated. A
// full-frame image1bit.VerticalLSB source is passed through without
// conversion.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errHalted
	}
	var next []byte
	if img, ok := src.(*image1bit.VerticalLSB); ok && r == d.rect && img.Rect == d.rect && sp.X == 0 && sp.Y == 0 {
		// Exact size, full frame, vertical LSB encoding: fast path.
		next = img.Pix
	} else {
		if d.next == nil {
			d.next = image1bit.NewVerticalLSB(d.rect)
		}
		draw.Src.Draw(d.next, r, src, sp)
		next = d.next.Pix
	}
	return d.t.SendData(next)
}

// Write writes a buffer of pixels to the display.
//
// Each byte covers 8 vertically stacked pixels, least significant bit on
// top; the buffer is the W×H/8 bytes of image1bit.VerticalLSB.Pix. The
// content is transported as-is.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted {
		return 0, errHalted
	}
	if len(pixels) != d.rect.Dx()*d.rect.Dy()/8 {
		return 0, fmt.Errorf("sh1107: invalid pixel stream length; expected %d bytes, got %d bytes", d.rect.Dx()*d.rect.Dy()/8, len(pixels))
	}
	if err := d.t.SendData(pixels); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// SetContrast changes the screen contrast.
func (d *Dev) SetContrast(level byte) error {
	if d.halted {
		return errHalted
	}
	return d.sendCommands(Contrast(level))
}

// SetDisplayStartLine scrolls the panel to start from the given RAM line.
//
// line must be between 0 and 127.
func (d *Dev) SetDisplayStartLine(line byte) error {
	if d.halted {
		return errHalted
	}
	if line > 127 {
		return fmt.Errorf("sh1107: invalid start line %d", line)
	}
	return d.sendCommands(StartLine(line))
}

// Invert the display (black on white vs white on black).
func (d *Dev) Invert(blackOnWhite bool) error {
	if d.halted {
		return errHalted
	}
	return d.sendCommands(Invert(blackOnWhite))
}

// AllOn lights every pixel regardless of RAM content while on is true; RAM
// is preserved and shown again once turned off.
func (d *Dev) AllOn(on bool) error {
	if d.halted {
		return errHalted
	}
	return d.sendCommands(AllOn(on))
}

// Halt powers off the panel. After Halt the device rejects further
// operations until it is re-initialized.
func (d *Dev) Halt() error {
	d.halted = true
	return d.sendCommands(DisplayOn(false))
}

func (d *Dev) sendCommands(cmds ...Command) error {
	for _, c := range cmds {
		if err := Send(d.t, c); err != nil {
			return err
		}
	}
	return nil
}

var _ display.Drawer = &Dev{}
