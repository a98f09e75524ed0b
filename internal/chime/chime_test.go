package chime

import (
	"testing"

	"github.com/gopxl/beep"
)

func TestSequenceLength(t *testing.T) {
	for cue, notes := range cues {
		t.Run(cue, func(t *testing.T) {
			st, err := Sequence(sampleRate, cue)
			if err != nil {
				t.Fatalf("Sequence: %v", err)
			}
			want := 0
			for _, n := range notes {
				want += sampleRate.N(n.dur)
			}
			buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
			buf.Append(st)
			if buf.Len() != want {
				t.Errorf("samples = %d, want %d", buf.Len(), want)
			}
		})
	}
}

func TestSequenceUnknownCue(t *testing.T) {
	if _, err := Sequence(sampleRate, "kazoo"); err == nil {
		t.Fatal("expected error for unknown cue")
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Play(CueWon)
	r.Play(CueUnlock)
	if len(r.Cues) != 2 || r.Cues[0] != CueWon {
		t.Fatalf("cues = %v", r.Cues)
	}
	Silent{}.Play(CueLost)
}
