package sh1107

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// defaultInitOps is the power-up sequence for DefaultOpts, one command
// frame per write.
var defaultInitOps = []i2ctest.IO{
	{Addr: testAddr, W: []byte{0x00, 0xAE}},       // display off
	{Addr: testAddr, W: []byte{0x00, 0x20}},       // page addressing
	{Addr: testAddr, W: []byte{0x00, 0xDC, 0x00}}, // start line 0
	{Addr: testAddr, W: []byte{0x00, 0xA0}},       // no segment remap
	{Addr: testAddr, W: []byte{0x00, 0xC0}},       // normal scan direction
	{Addr: testAddr, W: []byte{0x00, 0xA8, 0x3F}}, // multiplex 64-1
	{Addr: testAddr, W: []byte{0x00, 0xD3, 0x00}}, // no offset
	{Addr: testAddr, W: []byte{0x00, 0xD5, 0x50}}, // clock divider
	{Addr: testAddr, W: []byte{0x00, 0xD9, 0x22}}, // pre-charge
	{Addr: testAddr, W: []byte{0x00, 0xDB, 0x35}}, // VCOMH 0.77*Vcc
	{Addr: testAddr, W: []byte{0x00, 0xAD, 0x8B}}, // charge pump on
	{Addr: testAddr, W: []byte{0x00, 0x81, 0x80}}, // contrast
	{Addr: testAddr, W: []byte{0x00, 0xAF}},       // display on
}

func TestNewI2C(t *testing.T) {
	bus := i2ctest.Playback{Ops: defaultInitOps}
	dev, err := NewI2C(&bus, nil)
	if err != nil {
		t.Fatalf("NewI2C() failed: %v", err)
	}
	if got, want := dev.String(), "sh1107.Dev{128x64}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := dev.Bounds(), image.Rect(0, 0, 128, 64); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if dev.ColorModel() != image1bit.BitModel {
		t.Error("ColorModel() did not return image1bit.BitModel")
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewI2CRotated(t *testing.T) {
	bus := i2ctest.Playback{Ops: func() []i2ctest.IO {
		ops := append([]i2ctest.IO(nil), defaultInitOps...)
		ops[3] = i2ctest.IO{Addr: testAddr, W: []byte{0x00, 0xA1}} // segment remap
		ops[4] = i2ctest.IO{Addr: testAddr, W: []byte{0x00, 0xC8}} // reversed scan
		return ops
	}()}
	if _, err := NewI2C(&bus, &Opts{W: 128, H: 64, Rotated: true, Addr: testAddr}); err != nil {
		t.Fatalf("NewI2C() failed: %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewI2CInvalidOpts(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts Opts
	}{
		{"width zero", Opts{W: 0, H: 64}},
		{"width not multiple of 8", Opts{W: 100, H: 64}},
		{"width too large", Opts{W: 256, H: 64}},
		{"height zero", Opts{W: 128, H: 0}},
		{"height not multiple of 8", Opts{W: 128, H: 63}},
		{"height too large", Opts{W: 128, H: 192}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			bus := i2ctest.Playback{DontPanic: true}
			if _, err := NewI2C(&bus, &tc.opts); err == nil {
				t.Error("NewI2C() should reject the options")
			}
			if bus.Count != 0 {
				t.Errorf("no bus writes expected, got %d", bus.Count)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	buf := make([]byte, 128*64/8)
	for i := range buf {
		buf[i] = byte(i)
	}

	bus := i2ctest.Playback{Ops: dataOps(buf)}
	dev := &Dev{t: NewI2CTransport(&bus, testAddr), rect: image.Rect(0, 0, 128, 64)}

	n, err := dev.Write(buf)
	if err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if n != len(buf) {
		t.Errorf("Write() = %d, want %d", n, len(buf))
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestWriteInvalidSize(t *testing.T) {
	bus := i2ctest.Playback{DontPanic: true}
	dev := &Dev{t: NewI2CTransport(&bus, testAddr), rect: image.Rect(0, 0, 128, 64)}

	if _, err := dev.Write(make([]byte, 100)); err == nil {
		t.Error("Write() should reject a short buffer")
	}
	if _, err := dev.Write(make([]byte, 128*64/8+1)); err == nil {
		t.Error("Write() should reject a long buffer")
	}
	if bus.Count != 0 {
		t.Errorf("no bus writes expected, got %d", bus.Count)
	}
}

func TestDrawFastPath(t *testing.T) {
	rect := image.Rect(0, 0, 128, 64)
	img := image1bit.NewVerticalLSB(rect)
	img.SetBit(3, 10, image1bit.On)

	bus := i2ctest.Playback{Ops: dataOps(img.Pix)}
	dev := &Dev{t: NewI2CTransport(&bus, testAddr), rect: rect}

	if err := dev.Draw(rect, img, image.Point{}); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}
	if dev.next != nil {
		t.Error("full-frame VerticalLSB draw should not allocate a conversion buffer")
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestDrawSlowPath(t *testing.T) {
	rect := image.Rect(0, 0, 128, 64)

	// An 8x8 white square lands in the first 8 bytes of page 0.
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.Set(x, y, color.White)
		}
	}
	want := make([]byte, 128*64/8)
	for i := 0; i < 8; i++ {
		want[i] = 0xFF
	}

	bus := i2ctest.Playback{Ops: dataOps(want)}
	dev := &Dev{t: NewI2CTransport(&bus, testAddr), rect: rect}

	if err := dev.Draw(rect, src, image.Point{}); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSetContrast(t *testing.T) {
	bus := i2ctest.Playback{
		Ops: []i2ctest.IO{{Addr: testAddr, W: []byte{0x00, 0x81, 0x3A}}},
	}
	dev := &Dev{t: NewI2CTransport(&bus, testAddr), rect: image.Rect(0, 0, 128, 64)}
	if err := dev.SetContrast(0x3A); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSetDisplayStartLine(t *testing.T) {
	bus := i2ctest.Playback{
		Ops: []i2ctest.IO{{Addr: testAddr, W: []byte{0x00, 0xDC, 0x05}}},
	}
	dev := &Dev{t: NewI2CTransport(&bus, testAddr), rect: image.Rect(0, 0, 128, 64)}
	if err := dev.SetDisplayStartLine(5); err != nil {
		t.Fatal(err)
	}
	if err := dev.SetDisplayStartLine(128); err == nil {
		t.Error("SetDisplayStartLine(128) should fail")
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestInvert(t *testing.T) {
	bus := i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: testAddr, W: []byte{0x00, 0xA7}},
			{Addr: testAddr, W: []byte{0x00, 0xA6}},
		},
	}
	dev := &Dev{t: NewI2CTransport(&bus, testAddr), rect: image.Rect(0, 0, 128, 64)}
	if err := dev.Invert(true); err != nil {
		t.Fatal(err)
	}
	if err := dev.Invert(false); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestAllOn(t *testing.T) {
	bus := i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: testAddr, W: []byte{0x00, 0xA5}},
			{Addr: testAddr, W: []byte{0x00, 0xA4}},
		},
	}
	dev := &Dev{t: NewI2CTransport(&bus, testAddr), rect: image.Rect(0, 0, 128, 64)}
	if err := dev.AllOn(true); err != nil {
		t.Fatal(err)
	}
	if err := dev.AllOn(false); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestHalt(t *testing.T) {
	bus := i2ctest.Playback{
		Ops:       []i2ctest.IO{{Addr: testAddr, W: []byte{0x00, 0xAE}}},
		DontPanic: true,
	}
	dev := &Dev{t: NewI2CTransport(&bus, testAddr), rect: image.Rect(0, 0, 128, 64)}

	if err := dev.Halt(); err != nil {
		t.Fatalf("Halt() failed: %v", err)
	}

	// After Halt the device rejects everything without touching the bus.
	if err := dev.SetContrast(0x10); err != errHalted {
		t.Errorf("SetContrast() after Halt = %v, want %v", err, errHalted)
	}
	if err := dev.Invert(true); err != errHalted {
		t.Errorf("Invert() after Halt = %v, want %v", err, errHalted)
	}
	if err := dev.AllOn(true); err != errHalted {
		t.Errorf("AllOn() after Halt = %v, want %v", err, errHalted)
	}
	if err := dev.SetDisplayStartLine(0); err != errHalted {
		t.Errorf("SetDisplayStartLine() after Halt = %v, want %v", err, errHalted)
	}
	if _, err := dev.Write(make([]byte, 128*64/8)); err != errHalted {
		t.Errorf("Write() after Halt = %v, want %v", err, errHalted)
	}
	if err := dev.Draw(dev.Bounds(), image.NewRGBA(dev.Bounds()), image.Point{}); err != errHalted {
		t.Errorf("Draw() after Halt = %v, want %v", err, errHalted)
	}
	if bus.Count != 1 {
		t.Errorf("bus writes = %d, want 1", bus.Count)
	}
}

func TestDataOpsChunkShape(t *testing.T) {
	// The 1024-byte full frame of a 128x64 panel spans pages 0-15.
	ops := dataOps(make([]byte, 128*64/8))
	if len(ops) != 32 {
		t.Fatalf("ops = %d, want 32", len(ops))
	}
	if diff := cmp.Diff(ops[30].W, []byte{0x00, 0x0F, 0x00, 0x10}); diff != "" {
		t.Errorf("last page select difference (-got +want):\n%s", diff)
	}
	if got := len(ops[31].W); got != dataChunkLen+1 {
		t.Errorf("last data write = %d bytes, want %d", got, dataChunkLen+1)
	}
}
