package main

import "machine"

const (
	// Sampling configuration
	SAMPLE_INTERVAL_MS          = 1  // ADC read interval in milliseconds (same for both senders)
	NUM_SAMPLES                 = 50 // Samples averaged per frame (50 ms at 1 kHz = 20 frames/sec)
	IGNORE_SAMPLES_AFTER_CHANGE = 10 // Ignore this many samples after the glow relay switches

	// ADC configuration
	ADC_REFERENCE_MV = 3300 // Reference voltage in millivolts (3.3V)
	ADC_RESOLUTION   = 10   // ADC resolution in bits (10-bit = 0-1023, matches the sender calibrations)

	// Digital pins
	PIN_OIL_SWITCH  = machine.D7 // Oil pressure switch against GND, pullup
	PIN_GLOW_BUTTON = machine.D8 // Glow plug button against GND, pullup
	PIN_GLOW_OUTPUT = machine.D9 // Glow plug relay

	// Sender ADC pins
	PIN_COOLANT_ADC = machine.A1
	PIN_FUEL_ADC    = machine.A2

	// Serial configuration
	// Baud rate calculation: Format "unix_micros,oil,coolant,fuel,button\n"
	// Example: "1234567890123456,1,1023,1023,1\n" = ~32 bytes max per line
	// 20 frames/sec * 32 bytes/line = 640 bytes/sec
	// UART 8N1: 10 bits/byte = 6,400 baud minimum
	// 115200 provides ~18x headroom
	UART_BAUD_RATE = 115200
)
