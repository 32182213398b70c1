package sh1107

import (
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

// I²C control bytes: the first byte of every transaction tells the SH1107
// whether the rest of the stream is commands or display data.
const (
	i2cCmd  = 0x00
	i2cData = 0x40
)

// dataChunkLen is the number of data bytes written per page. One SH1107 page
// holds 64 bytes on the 64x128 panel layout.
const dataChunkLen = 64

// I2CTransport drives the SH1107 over an I²C bus.
type I2CTransport struct {
	c conn.Conn
}

// NewI2CTransport returns a Transport that addresses the controller at addr
// on the given bus. Common addresses are 0x3C and 0x3D.
func NewI2CTransport(bus i2c.Bus, addr uint16) *I2CTransport {
	return &I2CTransport{c: &i2c.Dev{Bus: bus, Addr: addr}}
}

func (t *I2CTransport) String() string {
	return "sh1107.I2CTransport{" + t.c.String() + "}"
}

// Init implements Transport. The I²C wiring needs no setup.
func (t *I2CTransport) Init() error {
	return nil
}

// SendCommands implements Transport. The command bytes go out as a single
// transaction prefixed with the command control byte.
func (t *I2CTransport) SendCommands(cmds []byte) error {
	buf := make([]byte, 0, len(cmds)+1)
	buf = append(buf, i2cCmd)
	buf = append(buf, cmds...)
	if err := t.c.Tx(buf, nil); err != nil {
		return &CommError{Err: err}
	}
	return nil
}

// SendData implements Transport.
//
// The buffer is written page by page, 64 bytes at a time starting at page 0.
// Each page is selected with a 4-byte control transaction before its data
// goes out prefixed with the data control byte. An empty buffer produces no
// bus activity. On failure the call returns immediately; pages already
// written remain written.
//
// The SH1107 has 16 pages, so buffers beyond 16 chunks (1024 bytes) are out
// of contract: the page counter keeps incrementing and from 0x10 on the
// select byte aliases the upper-column commands.
func (t *I2CTransport) SendData(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	writebuf := make([]byte, 0, dataChunkLen+1)
	for page := byte(0); len(buf) > 0; page++ {
		chunk := buf
		if len(chunk) > dataChunkLen {
			chunk = chunk[:dataChunkLen]
		}
		buf = buf[len(chunk):]

		err := t.c.Tx([]byte{
			i2cCmd,        // control: commands follow
			page,          // page address
			setLowColumn,  // lower column address
			setHighColumn, // upper column address, base 0x10
		}, nil)
		if err != nil {
			return &CommError{Err: err}
		}

		writebuf = append(writebuf[:0], i2cData)
		writebuf = append(writebuf, chunk...)
		if err := t.c.Tx(writebuf, nil); err != nil {
			return &CommError{Err: err}
		}
	}
	return nil
}
