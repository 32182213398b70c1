package sh1107

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Transport delivers encoded commands and pixel data to the controller over
// a concrete bus.
//
// Implementations never retry and never block beyond what the underlying bus
// call blocks for. A failed call short-circuits the remaining steps of that
// call and leaves the hardware state wherever the failing step left it; the
// caller must treat any error as "display state possibly inconsistent".
//
// A Transport owns its bus and pin handles for its lifetime and performs no
// locking: the caller must guarantee exclusive access to the underlying bus.
type Transport interface {
	// Init performs one-time setup. Call it exactly once, before any send.
	Init() error

	// SendCommands sends a short command-mode byte sequence.
	SendCommands(cmds []byte) error

	// SendData sends an arbitrarily long pixel-data buffer in data mode.
	SendData(buf []byte) error
}

// CommError reports a write rejected or aborted by the underlying bus.
type CommError struct {
	Err error
}

func (e *CommError) Error() string {
	return "sh1107: bus write failed: " + e.Err.Error()
}

func (e *CommError) Unwrap() error {
	return e.Err
}

// PinError reports a failed GPIO level change. Transports without a pin
// axis (I²C) never return it.
type PinError struct {
	Err error
}

func (e *PinError) Error() string {
	return "sh1107: pin write failed: " + e.Err.Error()
}

func (e *PinError) Unwrap() error {
	return e.Err
}

// NullPin is an always-succeeding gpio.PinOut for wirings that omit a pin,
// such as the data/command line on a 3-wire SPI display.
var NullPin gpio.PinOut = nullPin{}

type nullPin struct{}

func (nullPin) String() string {
	return "sh1107.NullPin"
}

// Halt implements conn.Resource.
func (nullPin) Halt() error {
	return nil
}

// Name returns the name of the GPIO pin.
func (nullPin) Name() string {
	return "NULL"
}

// Number returns the number of the GPIO pin.
func (nullPin) Number() int {
	return -1
}

func (nullPin) Function() string {
	return "Out"
}

// Out accepts the level and drives nothing.
func (nullPin) Out(gpio.Level) error {
	return nil
}

func (nullPin) PWM(gpio.Duty, physic.Frequency) error {
	return nil
}
