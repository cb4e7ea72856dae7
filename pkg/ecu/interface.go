package ecu

// Device defines the interface for sensor sources (real MCU or simulated engine).
type Device interface {
	Connect() error
	Close() error
	Frames() <-chan RawFrame
	SetGlow(on bool) error
	IsConnected() bool
}

// Ensure Serial implements Device.
var _ Device = (*Serial)(nil)

// Ensure Mock implements Device.
var _ Device = (*Mock)(nil)
