package ecu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAveraged_SlidingWindow(t *testing.T) {
	cond := Averaged(3, 10)

	in := make(chan RawFrame, 10)
	out := cond(in)

	now := time.Now()

	// Send 5 frames with increasing analog values
	for i := 0; i < 5; i++ {
		in <- RawFrame{
			Timestamp: now.Add(time.Duration(i) * time.Millisecond),
			Coolant:   uint16(500 + i*10),
			Fuel:      uint16(300 + i*10),
		}
	}
	close(in)

	var frames []RawFrame
	for f := range out {
		frames = append(frames, f)
	}

	require.Len(t, frames, 5, "one conditioned frame per input frame")

	// First output has a window of one, so it passes through unchanged.
	assert.Equal(t, uint16(500), frames[0].Coolant)

	// Third output averages 500, 510, 520.
	assert.Equal(t, uint16(510), frames[2].Coolant)
	assert.Equal(t, uint16(310), frames[2].Fuel)

	// Fifth output averages 520, 530, 540 (window slid past the oldest).
	assert.Equal(t, uint16(530), frames[4].Coolant)
}

func TestAveraged_DigitalPassThrough(t *testing.T) {
	cond := Averaged(4, 10)

	in := make(chan RawFrame, 10)
	out := cond(in)

	// Oil clears and the button is pressed only on the newest frame; neither
	// state must be smeared by the window.
	in <- RawFrame{OilLevel: true, Coolant: 500, Fuel: 300}
	in <- RawFrame{OilLevel: true, Coolant: 500, Fuel: 300}
	in <- RawFrame{OilLevel: false, Coolant: 500, Fuel: 300, GlowButton: true}
	close(in)

	var frames []RawFrame
	for f := range out {
		frames = append(frames, f)
	}

	require.Len(t, frames, 3)
	assert.True(t, frames[1].OilLevel)
	assert.False(t, frames[2].OilLevel)
	assert.True(t, frames[2].GlowButton)
}

func TestAveraged_EmptyChannel(t *testing.T) {
	cond := Averaged(3, 10)

	in := make(chan RawFrame)
	out := cond(in)

	close(in)

	// Should close immediately (nothing to average)
	_, ok := <-out
	assert.False(t, ok, "Output channel should be closed")
}

func TestAveraged_InvalidWindow(t *testing.T) {
	cond := Averaged(0, 10)

	in := make(chan RawFrame, 1)
	out := cond(in)

	in <- RawFrame{Coolant: 512, Fuel: 256}
	close(in)

	f, ok := <-out
	require.True(t, ok)
	assert.Equal(t, uint16(512), f.Coolant)
	assert.Equal(t, uint16(256), f.Fuel)
}

func TestWithConditioner(t *testing.T) {
	dev := NewMock(nil)

	// Nil conditioner returns the device unchanged.
	assert.Equal(t, Device(dev), WithConditioner(dev, nil))

	wrapped := WithConditioner(dev, Averaged(4, 10))
	assert.NotEqual(t, Device(dev), wrapped)
	assert.False(t, wrapped.IsConnected())

	// Frames is stable across calls.
	assert.Equal(t, wrapped.Frames(), wrapped.Frames())
}
