package ecu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"

	"github.com/itohio/govic/pkg/logger"
)

const (
	// DefaultBaudRate is the standard baud rate for XIAO SAMD21.
	DefaultBaudRate = 115200
	// DefaultBufferSize is the default size for the frames channel buffer.
	DefaultBufferSize = 100
	// MaxCount is the largest raw sender reading (10-bit ADC).
	MaxCount = 1023
)

// RawFrame represents one sensor snapshot from the MCU.
type RawFrame struct {
	Timestamp  time.Time
	OilLevel   bool   // Raw oil switch pin level
	Coolant    uint16 // 10-bit ADC reading (0-1023)
	Fuel       uint16 // 10-bit ADC reading (0-1023)
	GlowButton bool   // Glow plug button pressed
}

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial represents a connection to the sensor MCU.
type Serial struct {
	port     string
	baudRate int
	bufSize  int
	log      *logger.Logger

	conn      serial.Port
	frames    chan RawFrame
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool
}

// New creates a new Serial device with the specified port, baud rate, and buffer size.
func New(port string, baudRate int, bufSize int, log *logger.Logger) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if bufSize == 0 {
		bufSize = DefaultBufferSize
	}
	if log == nil {
		log = logger.Nop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Serial{
		port:      port,
		baudRate:  baudRate,
		bufSize:   bufSize,
		log:       log.Named("ecu"),
		frames:    make(chan RawFrame, bufSize),
		ctx:       ctx,
		cancel:    cancel,
		connected: false,
	}
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, name := range ports {
		result = append(result, Port{
			Name:        name,
			Description: name,
		})
	}

	return result, nil
}

// Connect connects to the serial port and starts reading frames.
func (d *Serial) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return fmt.Errorf("already connected")
	}

	mode := &serial.Mode{
		BaudRate: d.baudRate,
	}

	port, err := serial.Open(d.port, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}

	d.conn = port
	d.connected = true

	// Start reading frames in a goroutine
	go d.readFrames()

	return nil
}

// Close closes the connection and stops reading frames.
func (d *Serial) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}

	// Cancel context to stop reading goroutine
	d.cancel()

	// Close serial port
	if d.conn != nil {
		if err := d.conn.Close(); err != nil {
			d.log.Warnw("error closing serial port", "err", err)
		}
		d.conn = nil
	}

	d.connected = false

	// Close frames channel
	close(d.frames)

	return nil
}

// Frames returns the channel for reading sensor frames.
func (d *Serial) Frames() <-chan RawFrame {
	return d.frames
}

// SetGlow sends the glow plug output command to the MCU.
func (d *Serial) SetGlow(on bool) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.connected {
		return fmt.Errorf("not connected")
	}

	cmd := "0\n"
	if on {
		cmd = "1\n"
	}

	_, err := d.conn.Write([]byte(cmd))
	if err != nil {
		return fmt.Errorf("failed to send glow command: %w", err)
	}

	return nil
}

// IsConnected returns whether the device is currently connected.
func (d *Serial) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

// readFrames reads lines from the serial port and parses them into RawFrame.
func (d *Serial) readFrames() {
	defer func() {
		if r := recover(); r != nil {
			d.log.Errorw("panic in readFrames", "panic", r)
		}
	}()

	scanner := bufio.NewScanner(d.conn)
	for {
		select {
		case <-d.ctx.Done():
			return
		default:
			if !scanner.Scan() {
				// Scanner stopped (EOF or error)
				if err := scanner.Err(); err != nil {
					if err != io.EOF {
						d.log.Warnw("error reading from serial port", "err", err)
					}
				}
				return
			}

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			frame, err := parseLine(line)
			if err != nil {
				d.log.Warnw("failed to parse frame", "line", line, "err", err)
				continue
			}

			// Send frame to channel (non-blocking)
			select {
			case d.frames <- frame:
			case <-d.ctx.Done():
				return
			default:
				// Channel full, log and skip
				d.log.Debugw("frames channel full, dropping frame")
			}
		}
	}
}

// parseLine parses a line from the MCU into a RawFrame.
// Format: unix_micros,oil,coolant,fuel,button
// Example: 1234567890123,0,512,300,1
func parseLine(line string) (RawFrame, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 5 {
		return RawFrame{}, fmt.Errorf("invalid line format: expected 5 comma-separated values, got %d", len(parts))
	}

	// Parse timestamp (unix microseconds)
	timestampMicros, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return RawFrame{}, fmt.Errorf("invalid timestamp: %w", err)
	}
	timestamp := time.Unix(0, timestampMicros*1000) // Convert microseconds to nanoseconds

	// Parse oil switch level (single digit)
	if parts[1] != "0" && parts[1] != "1" {
		return RawFrame{}, fmt.Errorf("invalid oil level: expected 0 or 1, got %q", parts[1])
	}
	oil := parts[1] == "1"

	// Parse coolant sender (10-bit ADC)
	coolant, err := strconv.ParseUint(parts[2], 10, 16)
	if err != nil {
		return RawFrame{}, fmt.Errorf("invalid coolant reading: %w", err)
	}
	if coolant > MaxCount {
		return RawFrame{}, fmt.Errorf("coolant reading out of range: %d (max %d)", coolant, MaxCount)
	}

	// Parse fuel sender (10-bit ADC)
	fuel, err := strconv.ParseUint(parts[3], 10, 16)
	if err != nil {
		return RawFrame{}, fmt.Errorf("invalid fuel reading: %w", err)
	}
	if fuel > MaxCount {
		return RawFrame{}, fmt.Errorf("fuel reading out of range: %d (max %d)", fuel, MaxCount)
	}

	// Parse glow button state (single digit)
	if parts[4] != "0" && parts[4] != "1" {
		return RawFrame{}, fmt.Errorf("invalid button state: expected 0 or 1, got %q", parts[4])
	}
	button := parts[4] == "1"

	return RawFrame{
		Timestamp:  timestamp,
		OilLevel:   oil,
		Coolant:    uint16(coolant),
		Fuel:       uint16(fuel),
		GlowButton: button,
	}, nil
}
