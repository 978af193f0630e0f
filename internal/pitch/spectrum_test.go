package pitch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyquest/internal/music"
)

const testSampleRate = 44100.0

// synthWindow renders one analysis window of summed sine tones. The per-tone
// amplitude keeps Hann sidelobes below the peak floor so only true partials
// register as peaks.
func synthWindow(freqs ...float64) []float64 {
	const amp = 0.05
	out := make([]float64, WindowSize)
	for i := range out {
		t := float64(i) / testSampleRate
		for _, f := range freqs {
			out[i] += amp * math.Sin(2*math.Pi*f*t)
		}
	}
	return out
}

func TestHarmonicSuppressionKeepsLowestPartial(t *testing.T) {
	f := 220.0
	peaks := []peak{
		{freq: f, magDB: -12},
		{freq: 2 * f, magDB: -10}, // louder than the fundamental
		{freq: 3 * f, magDB: -20},
	}
	fundamentals := selectFundamentals(peaks)
	require.Len(t, fundamentals, 1)
	assert.InDelta(t, f, fundamentals[0].freq, 1e-9)
}

func TestHarmonicSuppressionToleratesDetunedOvertones(t *testing.T) {
	peaks := []peak{
		{freq: 200, magDB: -10},
		{freq: 408, magDB: -15}, // 2.04x: within 5% of 2, rejected
		{freq: 452, magDB: -15}, // 2.26x: not a harmonic, kept
	}
	fundamentals := selectFundamentals(peaks)
	require.Len(t, fundamentals, 2)
	assert.InDelta(t, 200.0, fundamentals[0].freq, 1e-9)
	assert.InDelta(t, 452.0, fundamentals[1].freq, 1e-9)
}

func TestAnalyzeWindowSingleNote(t *testing.T) {
	c4 := music.MustNote("C4")
	notes := analyzeWindow(synthWindow(c4.Frequency()), testSampleRate)
	assert.True(t, notes.Equal(music.NewNoteSet(c4)), "got %v", notes.Notes())
}

func TestAnalyzeWindowChord(t *testing.T) {
	chord := music.MustNotes("C4", "E4", "G4")
	freqs := make([]float64, len(chord))
	for i, n := range chord {
		freqs[i] = n.Frequency()
	}
	notes := analyzeWindow(synthWindow(freqs...), testSampleRate)
	assert.True(t, notes.Equal(music.NewNoteSet(chord...)), "got %v", notes.Notes())
}

func TestAnalyzeWindowSuppressesOvertones(t *testing.T) {
	// A played note with its first two overtones collapses to one detection.
	c3 := music.MustNote("C3")
	f := c3.Frequency()
	notes := analyzeWindow(synthWindow(f, 2*f, 3*f), testSampleRate)
	assert.True(t, notes.Equal(music.NewNoteSet(c3)), "got %v", notes.Notes())
}

func TestAnalyzeWindowSilence(t *testing.T) {
	notes := analyzeWindow(make([]float64, WindowSize), testSampleRate)
	assert.Equal(t, 0, notes.Len())
}

func TestAnalyzeWindowIgnoresOutOfBandSignal(t *testing.T) {
	// 30 Hz rumble and a 2 kHz whistle sit outside the 60-1050 Hz band.
	notes := analyzeWindow(synthWindow(30, 2000), testSampleRate)
	assert.Equal(t, 0, notes.Len(), "got %v", notes.Notes())
}
