package pitch

import (
	"sync"

	"go.uber.org/zap"

	"keyquest/internal/music"
)

// InputStream is a live audio capture handle. The analyzer consumes frames
// read-only and closes the stream when stopped; it never owns device
// selection or permission handling.
type InputStream interface {
	// SampleRate is the capture rate in Hz.
	SampleRate() int
	// Frames yields chunks of mono samples in [-1, 1]. The channel closes
	// when the underlying device goes away.
	Frames() <-chan []float64
	// Close releases the underlying capture resources.
	Close() error
}

// Analyzer turns an input stream into a stable, de-harmonized set of
// currently-sounding note names, suitable for polyphonic chord detection.
type Analyzer struct {
	log *zap.Logger

	mu      sync.Mutex
	running bool
	stream  InputStream
	stop    chan struct{}
	done    chan struct{}

	notesMu sync.RWMutex
	notes   music.NoteSet
}

func NewAnalyzer(log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{
		log:   log,
		notes: music.NewNoteSet(),
	}
}

// Start begins periodic analysis of the stream. Calling Start while already
// running is a no-op; the second stream is not consumed or closed.
func (a *Analyzer) Start(stream InputStream) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running {
		return
	}
	a.running = true
	a.stream = stream
	a.stop = make(chan struct{})
	a.done = make(chan struct{})
	go a.loop(stream, a.stop, a.done)
}

// Stop halts analysis, waits for the frame loop to exit, and releases the
// stream. Safe to call when not running.
func (a *Analyzer) Stop() {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return
	}
	a.running = false
	stream := a.stream
	a.stream = nil
	close(a.stop)
	done := a.done
	a.mu.Unlock()

	<-done
	if err := stream.Close(); err != nil {
		a.log.Warn("close input stream", zap.Error(err))
	}
	a.publish(music.NewNoteSet())
}

// Running reports whether the analyzer is currently listening.
func (a *Analyzer) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// CurrentNotes returns the latest detected note set. Empty when not running
// or when no qualifying signal is present.
func (a *Analyzer) CurrentNotes() music.NoteSet {
	a.notesMu.RLock()
	defer a.notesMu.RUnlock()
	return a.notes.Clone()
}

func (a *Analyzer) loop(stream InputStream, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	sampleRate := float64(stream.SampleRate())
	window := make([]float64, 0, WindowSize*2)

	for {
		select {
		case <-stop:
			return
		case chunk, ok := <-stream.Frames():
			if !ok {
				return
			}
			window = append(window, chunk...)
			if len(window) < WindowSize {
				continue
			}
			window = window[len(window)-WindowSize:]
			a.analyzeFrame(window, sampleRate)
		}
	}
}

// analyzeFrame runs one analysis pass. A panic inside the pipeline skips the
// frame and the loop continues; a glitchy frame must never stop listening.
func (a *Analyzer) analyzeFrame(window []float64, sampleRate float64) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Debug("analysis frame skipped", zap.Any("panic", r))
		}
	}()
	a.publish(analyzeWindow(window, sampleRate))
}

// publish replaces the current set only if it differs, so equivalent frames
// produced by timing jitter do not churn readers.
func (a *Analyzer) publish(notes music.NoteSet) {
	a.notesMu.Lock()
	defer a.notesMu.Unlock()
	if a.notes.Equal(notes) {
		return
	}
	a.notes = notes
}
