package main

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// chime is a fixed-length sine streamer for lifecycle feedback
type chime struct {
	freq      float64
	phase     float64
	remaining int
}

func newChime(freq float64, duration time.Duration) *chime {
	return &chime{freq: freq, remaining: sampleRate.N(duration)}
}

func (c *chime) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if c.remaining <= 0 {
			return i, false
		}
		v := 0.2 * math.Sin(2*math.Pi*c.phase)
		samples[i][0] = v
		samples[i][1] = v
		c.phase += c.freq / float64(sampleRate)
		if c.phase >= 1 {
			c.phase -= 1
		}
		c.remaining--
	}
	return len(samples), true
}

func (c *chime) Err() error { return nil }

// soundBoard plays short tones on ability lifecycle events. Audio
// failures degrade to silence rather than aborting the sandbox
type soundBoard struct {
	mixer   *beep.Mixer
	enabled bool
}

func newSoundBoard(mute bool) *soundBoard {
	sb := &soundBoard{mixer: &beep.Mixer{}}
	if mute {
		return sb
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return sb
	}
	speaker.Play(sb.mixer)
	sb.enabled = true
	return sb
}

func (sb *soundBoard) play(freq float64, duration time.Duration) {
	if !sb.enabled {
		return
	}
	speaker.Lock()
	sb.mixer.Add(newChime(freq, duration))
	speaker.Unlock()
}

func (sb *soundBoard) close() {
	if sb.enabled {
		speaker.Close()
	}
}
