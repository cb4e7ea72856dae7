//go:generate tinygo flash -target=xiao

package main

import (
	"machine"
	"time"
)

var (
	adcCoolant machine.ADC
	adcFuel    machine.ADC
	uart       = machine.UART0

	// Glow relay state
	glowOn bool

	// ADC averaging - running sums and counts
	coolantSum      uint32
	fuelSum         uint32
	coolantCount    int // Current count of samples (resets after N samples)
	fuelCount       int // Current count of samples (resets after N samples)
	ignoreCountdown int

	// Timing
	lastADCRead time.Time

	// Serial buffer for reading glow commands
	serialBuffer [8]byte
	serialPos    int
)

func main() {
	// Configure the glow relay output, off at boot
	PIN_GLOW_OUTPUT.Configure(machine.PinConfig{Mode: machine.PinOutput})
	PIN_GLOW_OUTPUT.Low()

	// Oil switch and glow button sit between their pin and GND
	PIN_OIL_SWITCH.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	PIN_GLOW_BUTTON.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	// Configure sender ADC pins
	PIN_COOLANT_ADC.Configure(machine.PinConfig{Mode: machine.PinInput})
	PIN_FUEL_ADC.Configure(machine.PinConfig{Mode: machine.PinInput})

	adcCoolant = machine.ADC{Pin: PIN_COOLANT_ADC}
	adcFuel = machine.ADC{Pin: PIN_FUEL_ADC}

	adcConfig := machine.ADCConfig{
		Reference:  ADC_REFERENCE_MV,
		Resolution: ADC_RESOLUTION,
	}

	adcCoolant.Configure(adcConfig)
	adcFuel.Configure(adcConfig)

	// Configure UART for frames out, glow commands in
	uart.Configure(machine.UARTConfig{
		BaudRate: UART_BAUD_RATE,
	})

	// Initialize timing
	lastADCRead = time.Now()

	// Main loop
	for {
		now := time.Now()

		// Check for serial input (non-blocking)
		processSerial()

		// Read both senders at the same time and rate (every 1ms)
		if now.Sub(lastADCRead) >= time.Duration(SAMPLE_INTERVAL_MS)*time.Millisecond {
			readCoolantADC()
			readFuelADC()
			lastADCRead = now
		}

		// Check if we've collected N samples for either sender and output
		if coolantCount >= NUM_SAMPLES || fuelCount >= NUM_SAMPLES {
			outputFrame()
			// Reset and start accumulating again
			coolantSum = 0
			coolantCount = 0
			fuelSum = 0
			fuelCount = 0
		}

		// Small delay to prevent tight loop (but still allow precise timing)
		time.Sleep(100 * time.Microsecond)
	}
}

func readCoolantADC() {
	if ignoreCountdown > 0 {
		// Ignore this sample
		ignoreCountdown--
		return
	}

	value := adcCoolant.Get()
	coolantSum += uint32(value)
	coolantCount++
}

func readFuelADC() {
	if ignoreCountdown > 0 {
		// Ignore this sample
		ignoreCountdown--
		return
	}

	value := adcFuel.Get()
	fuelSum += uint32(value)
	fuelCount++
}

func outputFrame() {
	// Calculate average for coolant (use actual count, up to NUM_SAMPLES)
	coolantN := coolantCount
	if coolantN > NUM_SAMPLES {
		coolantN = NUM_SAMPLES
	}
	if coolantN == 0 {
		coolantN = 1 // Avoid division by zero
	}
	coolantAvg := uint16(coolantSum / uint32(coolantN))

	// Calculate average for fuel (use actual count, up to NUM_SAMPLES)
	fuelN := fuelCount
	if fuelN > NUM_SAMPLES {
		fuelN = NUM_SAMPLES
	}
	if fuelN == 0 {
		fuelN = 1 // Avoid division by zero
	}
	fuelAvg := uint16(fuelSum / uint32(fuelN))

	// Get timestamp in unix microseconds
	now := time.Now()
	timestampMicros := now.UnixNano() / 1000 // Convert nanoseconds to microseconds

	// Output format: "unix_micros,oil,coolant,fuel,button\n"
	// Example: "1234567890123,1,512,300,0\n"
	print(timestampMicros)
	print(",")
	// Raw switch level; the host maps the polarity
	if PIN_OIL_SWITCH.Get() {
		print("1")
	} else {
		print("0")
	}
	print(",")
	print(coolantAvg)
	print(",")
	print(fuelAvg)
	print(",")
	// Pullup wiring, the button reads low while pressed
	if !PIN_GLOW_BUTTON.Get() {
		print("1")
	} else {
		print("0")
	}
	print("\n")
}

func processSerial() {
	// Read available bytes from serial
	for uart.Buffered() > 0 {
		data, err := uart.ReadByte()
		if err != nil {
			break
		}

		// Check for newline (end of line)
		if data == '\n' || data == '\r' {
			if serialPos == 1 {
				// Exactly one digit, process the glow command
				setGlowOutput(serialBuffer[0] == '1')
			}
			// Reset buffer regardless of length
			serialPos = 0
			continue
		}

		// Ignore whitespace
		if data == ' ' || data == '\t' {
			continue
		}

		// Only accept '0' or '1', one character per command
		if data == '0' || data == '1' {
			if serialPos < 1 {
				serialBuffer[serialPos] = data
				serialPos++
			}
			// Additional digits are ignored until newline
		} else {
			// Invalid character - reset buffer
			serialPos = 0
		}
	}
}

func setGlowOutput(on bool) {
	stateChanged := glowOn != on
	glowOn = on

	if on {
		PIN_GLOW_OUTPUT.High()
	} else {
		PIN_GLOW_OUTPUT.Low()
	}

	// The relay switching injects noise into the senders; drop a few samples
	if stateChanged {
		ignoreCountdown = IGNORE_SAMPLES_AFTER_CHANGE
		coolantSum = 0
		fuelSum = 0
		coolantCount = 0
		fuelCount = 0
	}
}
