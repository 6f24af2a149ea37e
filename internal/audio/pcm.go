// Package audio converts synthesized speech to playable form and plays it.
package audio

import (
	"encoding/binary"
	"time"
)

// Format of every payload produced by the speech providers.
const (
	SampleRate    = 24000
	Channels      = 1
	BitsPerSample = 16
)

// DecodePCM16 converts little-endian signed 16-bit samples to floats in
// [-1, 1). A trailing odd byte is ignored.
func DecodePCM16(pcm []byte) []float32 {
	out := make([]float32, len(pcm)/2)
	for i := range out {
		v := int16(binary.LittleEndian.Uint16(pcm[2*i:]))
		out[i] = float32(v) / 32768.0
	}
	return out
}

// Silent reports whether pcm holds no audible sample. Speech providers
// occasionally return a zero-filled buffer instead of an error.
func Silent(pcm []byte) bool {
	for _, v := range DecodePCM16(pcm) {
		if v != 0 {
			return false
		}
	}
	return true
}

// Duration returns the playback length of mono 16-bit pcm at sampleRate.
func Duration(pcm []byte, sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	samples := len(pcm) / (BitsPerSample / 8) / Channels
	return time.Duration(samples) * time.Second / time.Duration(sampleRate)
}
