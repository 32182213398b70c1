package sh1107

import "fmt"

// SH1107 register opcodes. See the command table in the SH1107 datasheet,
// section "Command Description".
const (
	setLowColumn      = 0x00
	setHighColumn     = 0x10
	setMemoryMode     = 0x20
	setContrast       = 0x81
	setSegmentRemap   = 0xA0
	setEntireOn       = 0xA4
	setNormalInverse  = 0xA6
	setMultiplexRatio = 0xA8
	setChargePump     = 0xAD
	setDisplayOnOff   = 0xAE
	setPageAddress    = 0xB0
	setComOutputDir   = 0xC0
	setDisplayOffset  = 0xD3
	setDisplayClock   = 0xD5
	setPrecharge      = 0xD9
	setComPins        = 0xDA
	setVcomDeselect   = 0xDB
	setStartLine      = 0xDC
	noOperation       = 0xE3
)

// Command is a single SH1107 controller operation.
//
// The set of commands is closed: every command encodes to exactly one wire
// sequence of one or two bytes. Numeric parameters are raw magnitudes and are
// not range checked beyond the truncation the encoding itself performs.
type Command interface {
	// encode returns the wire bytes and their count. The backing array is
	// sized for longer encodings than the SH1107 currently uses; bytes past
	// n are padding and must never be transmitted.
	encode() (data [7]byte, n int)
}

// Send encodes c and writes it to t in command mode.
func Send(t Transport, c Command) error {
	data, n := c.encode()
	return t.SendCommands(data[:n])
}

// Contrast sets the output current. Higher is brighter. Default is 0x80.
type Contrast uint8

func (c Contrast) encode() ([7]byte, int) {
	return [7]byte{setContrast, byte(c)}, 2
}

// AllOn lights every pixel regardless of RAM content when true.
type AllOn bool

func (c AllOn) encode() ([7]byte, int) {
	return [7]byte{setEntireOn | bit(bool(c))}, 1
}

// Invert reverses the lit/unlit mapping of RAM content.
type Invert bool

func (c Invert) encode() ([7]byte, int) {
	return [7]byte{setNormalInverse | bit(bool(c))}, 1
}

// DisplayOn switches the panel on or off.
type DisplayOn bool

func (c DisplayOn) encode() ([7]byte, int) {
	return [7]byte{setDisplayOnOff | bit(bool(c))}, 1
}

// ColumnAddressLow sets the lower 4 bits of the column address.
type ColumnAddressLow uint8

func (c ColumnAddressLow) encode() ([7]byte, int) {
	return [7]byte{setLowColumn | (byte(c) & 0xF)}, 1
}

// ColumnAddressHigh sets the upper 4 bits of the column address.
type ColumnAddressHigh uint8

func (c ColumnAddressHigh) encode() ([7]byte, int) {
	return [7]byte{setHighColumn | (byte(c) & 0xF)}, 1
}

// MemAddressMode selects page (0) or vertical (1) addressing.
type MemAddressMode uint8

func (c MemAddressMode) encode() ([7]byte, int) {
	return [7]byte{setMemoryMode | byte(c)}, 1
}

// PageAddress selects the page written by subsequent data bytes.
type PageAddress Page

func (c PageAddress) encode() ([7]byte, int) {
	return [7]byte{setPageAddress | byte(c)}, 1
}

// StartLine sets the display start line, 0-127.
type StartLine uint8

func (c StartLine) encode() ([7]byte, int) {
	return [7]byte{setStartLine, byte(c)}, 2
}

// SegmentRemap reverses the column order when true.
type SegmentRemap bool

func (c SegmentRemap) encode() ([7]byte, int) {
	return [7]byte{setSegmentRemap | bit(bool(c))}, 1
}

// Multiplex sets the multiplex ratio: the number of scanned rows minus one.
type Multiplex uint8

func (c Multiplex) encode() ([7]byte, int) {
	return [7]byte{setMultiplexRatio, byte(c)}, 2
}

// ReverseComDir scans from COM[N-1] to COM0 when true, where N is the
// multiplex ratio.
type ReverseComDir bool

func (c ReverseComDir) encode() ([7]byte, int) {
	return [7]byte{setComOutputDir | (bit(bool(c)) << 3)}, 1
}

// DisplayOffset sets the vertical shift, 0-127.
type DisplayOffset uint8

func (c DisplayOffset) encode() ([7]byte, int) {
	return [7]byte{setDisplayOffset, byte(c)}, 2
}

// ComPinConfig selects alternative (true) or sequential (false) COM pin
// wiring.
type ComPinConfig bool

func (c ComPinConfig) encode() ([7]byte, int) {
	return [7]byte{setComPins, 0x02 | (bit(bool(c)) << 4)}, 2
}

// DisplayClockDiv configures the display clock. Frequency adjusts the
// internal oscillator, increasing with higher values; DivideRatio is the
// divide ratio minus one. Both are 4-bit fields.
type DisplayClockDiv struct {
	Frequency   uint8
	DivideRatio uint8
}

func (c DisplayClockDiv) encode() ([7]byte, int) {
	return [7]byte{setDisplayClock, ((c.Frequency & 0xF) << 4) | (c.DivideRatio & 0xF)}, 2
}

// PreChargePeriod configures the discharge (phase 1) and pre-charge
// (phase 2) periods in display clocks. Both are 4-bit fields.
type PreChargePeriod struct {
	Discharge uint8
	Precharge uint8
}

func (c PreChargePeriod) encode() ([7]byte, int) {
	return [7]byte{setPrecharge, ((c.Discharge & 0xF) << 4) | (c.Precharge & 0xF)}, 2
}

// VcomhDeselect sets the common-electrode deselect voltage.
type VcomhDeselect VcomhLevel

func (c VcomhDeselect) encode() ([7]byte, int) {
	return [7]byte{setVcomDeselect, byte(c)}, 2
}

// Noop does nothing.
type Noop struct{}

func (Noop) encode() ([7]byte, int) {
	return [7]byte{noOperation}, 1
}

// ChargePump enables or disables the built-in DC-DC converter.
type ChargePump bool

func (c ChargePump) encode() ([7]byte, int) {
	return [7]byte{setChargePump, 0x8A | bit(bool(c))}, 2
}

func bit(on bool) byte {
	if on {
		return 1
	}
	return 0
}

// Page identifies one of the sixteen 8-row bands of display RAM.
type Page uint8

// All SH1107 pages.
const (
	Page0 Page = iota
	Page1
	Page2
	Page3
	Page4
	Page5
	Page6
	Page7
	Page8
	Page9
	Page10
	Page11
	Page12
	Page13
	Page14
	Page15
)

// PageFromRow returns the page containing the given RAM row. Rows above 127
// do not exist on the SH1107 and are rejected.
func PageFromRow(row uint8) (Page, error) {
	if row > 127 {
		return 0, fmt.Errorf("sh1107: row %d out of range", row)
	}
	return Page(row / 8), nil
}

// VcomhLevel is a common-electrode deselect voltage preset.
type VcomhLevel uint8

// Deselect voltage presets, as fractions of Vcc.
const (
	Vcomh065  VcomhLevel = 0x22 // 0.65 × Vcc
	Vcomh077  VcomhLevel = 0x35 // 0.77 × Vcc, power-on default
	Vcomh083  VcomhLevel = 0x3E // 0.83 × Vcc
	VcomhAuto VcomhLevel = 0x40 // follows the charge pump
)
