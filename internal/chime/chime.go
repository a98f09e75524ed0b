// Package chime plays the short tone cues of the candle game through the
// system speaker.
package chime

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// Cue names understood by Play.
const (
	CueWon    = "won"
	CueLost   = "lost"
	CueUnlock = "unlock"
)

const sampleRate = beep.SampleRate(44100)

type note struct {
	freq float64
	dur  time.Duration
}

// freq 0 is a rest
var cues = map[string][]note{
	CueWon:    {{523.25, 120 * time.Millisecond}, {659.25, 120 * time.Millisecond}, {783.99, 120 * time.Millisecond}, {1046.5, 240 * time.Millisecond}},
	CueLost:   {{392.0, 150 * time.Millisecond}, {0, 40 * time.Millisecond}, {311.13, 150 * time.Millisecond}, {0, 40 * time.Millisecond}, {261.63, 300 * time.Millisecond}},
	CueUnlock: {{880, 60 * time.Millisecond}, {1318.5, 90 * time.Millisecond}},
}

// Sequence renders a cue as a finite streamer.
func Sequence(sr beep.SampleRate, cue string) (beep.Streamer, error) {
	notes, ok := cues[cue]
	if !ok {
		return nil, fmt.Errorf("chime: unknown cue %q", cue)
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		if n.freq == 0 {
			parts = append(parts, beep.Silence(sr.N(n.dur)))
			continue
		}
		tone, err := generators.SineTone(sr, n.freq)
		if err != nil {
			return nil, fmt.Errorf("chime: tone %.2fHz: %w", n.freq, err)
		}
		parts = append(parts, beep.Take(sr.N(n.dur), tone))
	}
	return beep.Seq(parts...), nil
}

// Speaker plays cues on the audio device.
type Speaker struct {
	log *slog.Logger
}

// NewSpeaker initializes the audio device.
func NewSpeaker(logger *slog.Logger) (*Speaker, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("chime: init speaker: %w", err)
	}
	return &Speaker{log: logger}, nil
}

// Play queues the cue and returns immediately.
func (s *Speaker) Play(cue string) {
	st, err := Sequence(sampleRate, cue)
	if err != nil {
		s.log.Debug("chime skipped", "err", err)
		return
	}
	speaker.Play(st)
}

// Silent drops every cue.
type Silent struct{}

func (Silent) Play(string) {}

// Recorder remembers played cues in order.
type Recorder struct{ Cues []string }

func (r *Recorder) Play(cue string) { r.Cues = append(r.Cues, cue) }
