package pitch

import (
	"math"
	"sort"

	"github.com/mjibson/go-dsp/fft"

	"keyquest/internal/music"
)

const (
	// WindowSize is the analysis window in samples. 8192 at 44.1 kHz gives
	// ~5.4 Hz bins, enough to separate adjacent piano semitones down to ~60 Hz.
	WindowSize = 8192

	peakFloorDB       = -50.0
	minFreqHz         = 60.0  // ~C2
	maxFreqHz         = 1050.0 // ~C6
	harmonicTolerance = 0.05
	maxFundamentals   = 5
)

type peak struct {
	freq  float64
	magDB float64
}

// magnitudeSpectrum returns the Hann-windowed magnitude spectrum in dBFS,
// one value per bin up to Nyquist.
func magnitudeSpectrum(samples []float64) []float64 {
	n := len(samples)
	windowed := make([]float64, n)
	for i, s := range samples {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = s * w
	}

	spectrum := fft.FFTReal(windowed)
	half := n / 2
	mags := make([]float64, half)
	for i := 0; i < half; i++ {
		// Normalize so a full-scale sine lands near 0 dB: the Hann window
		// halves the coherent gain, hence the factor 4/N.
		amp := 4 * cmplxAbs(spectrum[i]) / float64(n)
		if amp <= 0 {
			mags[i] = math.Inf(-1)
			continue
		}
		mags[i] = 20 * math.Log10(amp)
	}
	return mags
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

// findPeaks picks local maxima above the loudness floor inside the musically
// relevant band.
func findPeaks(mags []float64, binWidth float64) []peak {
	var peaks []peak
	for i := 1; i < len(mags)-1; i++ {
		m := mags[i]
		if m <= peakFloorDB || m <= mags[i-1] || m <= mags[i+1] {
			continue
		}
		freq := float64(i) * binWidth
		if freq < minFreqHz || freq > maxFreqHz {
			continue
		}
		peaks = append(peaks, peak{freq: freq, magDB: m})
	}
	return peaks
}

// selectFundamentals keeps, in descending loudness order, only peaks that are
// not harmonics of an already-accepted fundamental: a candidate is rejected
// when its frequency ratio to any accepted peak is within 5% of an integer
// >= 2. A struck piano note produces peaks at integer multiples of its
// fundamental; without this filter every note would ghost an octave ladder.
func selectFundamentals(peaks []peak) []peak {
	sorted := make([]peak, len(peaks))
	copy(sorted, peaks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].magDB > sorted[j].magDB })

	var fundamentals []peak
	for _, cand := range sorted {
		harmonic := false
		for _, f := range fundamentals {
			ratio := cand.freq / f.freq
			nearest := math.Round(ratio)
			if nearest > 1 && math.Abs(ratio-nearest) < harmonicTolerance {
				harmonic = true
				break
			}
		}
		if !harmonic {
			fundamentals = append(fundamentals, cand)
		}
	}
	return fundamentals
}

// analyzeWindow runs the per-frame pipeline: spectrum, peaks, harmonic
// suppression, then the strongest fundamentals mapped to note names.
func analyzeWindow(samples []float64, sampleRate float64) music.NoteSet {
	mags := magnitudeSpectrum(samples)
	binWidth := sampleRate / float64(len(samples))

	peaks := findPeaks(mags, binWidth)
	if len(peaks) == 0 {
		return music.NewNoteSet()
	}

	fundamentals := selectFundamentals(peaks)
	if len(fundamentals) > maxFundamentals {
		fundamentals = fundamentals[:maxFundamentals]
	}

	notes := music.NewNoteSet()
	for _, f := range fundamentals {
		if n, ok := music.FromFrequency(f.freq); ok {
			notes.Add(n)
		}
	}
	return notes
}
