package sh1107

import (
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

// SPITransport drives the SH1107 over a 4-wire SPI link: the byte stream
// plus a data/command select pin and a chip select pin.
//
// Pass NullPin for dc on 3-wire wirings where the line is strapped in
// hardware, and for cs when the SPI driver asserts chip select itself.
type SPITransport struct {
	c  conn.Conn
	dc gpio.PinOut
	cs gpio.PinOut
}

// NewSPITransport returns a Transport writing to c, framed by cs and routed
// by dc.
func NewSPITransport(c conn.Conn, dc, cs gpio.PinOut) *SPITransport {
	return &SPITransport{c: c, dc: dc, cs: cs}
}

func (t *SPITransport) String() string {
	return "sh1107.SPITransport{" + t.c.String() + "}"
}

// Init implements Transport. It deselects the controller.
func (t *SPITransport) Init() error {
	if err := t.cs.Out(gpio.High); err != nil {
		return &PinError{Err: err}
	}
	return nil
}

// SendCommands implements Transport. The sequence is streamed with the
// data/command line low, bracketed by chip select. On failure the pins stay
// wherever the failing step left them.
func (t *SPITransport) SendCommands(cmds []byte) error {
	return t.send(cmds, gpio.Low)
}

// SendData implements Transport. Identical framing to SendCommands, with
// the data/command line high.
func (t *SPITransport) SendData(buf []byte) error {
	return t.send(buf, gpio.High)
}

func (t *SPITransport) send(b []byte, dc gpio.Level) error {
	if err := t.dc.Out(dc); err != nil {
		return &PinError{Err: err}
	}
	if err := t.cs.Out(gpio.Low); err != nil {
		return &PinError{Err: err}
	}
	if err := t.c.Tx(b, nil); err != nil {
		return &CommError{Err: err}
	}
	if err := t.cs.Out(gpio.High); err != nil {
		return &PinError{Err: err}
	}
	return nil
}
