//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"machine"

	"manageaudio/hal/vfd"

	"tinygo.org/x/drivers/ssd1306"
)

type tinyGoHAL struct {
	logger *uartLogger
	gpio   GPIO
	disp   *vfd.Controller
	adc    *tinyGoADC
	flash  Flash
	clock  *tinyGoClock
	sys    tinyGoSystem
}

// Board wiring.
const (
	pinSelect = machine.GP10
	pinUp     = machine.GP11
	pinDown   = machine.GP12
	pinRelay1 = machine.GP13
	pinRelay2 = machine.GP14
	pinRelay3 = machine.GP15

	// boardSampleRate is the pace of the conversion goroutine.
	boardSampleRate = 9600
)

// New returns a Raspberry Pi Pico HAL.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// Display: 128x32 SSD1306 on I2C0 (GP4 SDA, GP5 SCL) standing in for the VFD.
// Audio: left on ADC0 (GP26), right on ADC1 (GP27).
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	machine.I2C0.Configure(machine.I2CConfig{Frequency: 400 * machine.KHz})
	oled := ssd1306.NewI2C(machine.I2C0)
	oled.Configure(ssd1306.Config{Width: 128, Height: 32, Address: 0x3C, VccState: ssd1306.SWITCHCAPVCC})
	oled.ClearDisplay()
	disp := vfd.New(1, 10, &oled)
	disp.SetPalette(vfd.MonochromePalette)

	pins := []GPIOPin{
		newMachinePin(PinSelect, pinSelect, GPIOCapInput|GPIOCapPullUp),
		newMachinePin(PinUp, pinUp, GPIOCapInput|GPIOCapPullUp),
		newMachinePin(PinDown, pinDown, GPIOCapInput|GPIOCapPullUp),
		newMachinePin(PinRelay1, pinRelay1, GPIOCapOutput),
		newMachinePin(PinRelay2, pinRelay2, GPIOCapOutput),
		newMachinePin(PinRelay3, pinRelay3, GPIOCapOutput),
	}

	return &tinyGoHAL{
		logger: logger,
		gpio:   pinList(pins),
		disp:   disp,
		adc:    newTinyGoADC([]machine.Pin{machine.ADC0, machine.ADC1}, boardSampleRate),
		flash:  newRP2Flash(),
		clock:  newTinyGoClock(),
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Display() Display { return h.disp }
func (h *tinyGoHAL) GPIO() GPIO       { return h.gpio }
func (h *tinyGoHAL) ADC() ADC         { return h.adc }
func (h *tinyGoHAL) Flash() Flash     { return h.flash }
func (h *tinyGoHAL) Clock() Clock     { return h.clock }
func (h *tinyGoHAL) System() System   { return h.sys }
