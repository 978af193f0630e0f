package pitch

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"keyquest/internal/music"
)

type fakeStream struct {
	frames chan []float64
	closed atomic.Int32
}

func newFakeStream() *fakeStream {
	return &fakeStream{frames: make(chan []float64, 8)}
}

func (s *fakeStream) SampleRate() int          { return int(testSampleRate) }
func (s *fakeStream) Frames() <-chan []float64 { return s.frames }
func (s *fakeStream) Close() error {
	s.closed.Add(1)
	return nil
}

func waitForNotes(t *testing.T, a *Analyzer, want music.NoteSet) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if a.CurrentNotes().Equal(want) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("notes = %v, want %v", a.CurrentNotes().Notes(), want.Notes())
}

func TestAnalyzerDetectsFromStream(t *testing.T) {
	a := NewAnalyzer(zap.NewNop())
	stream := newFakeStream()
	a.Start(stream)
	defer a.Stop()

	c4 := music.MustNote("C4")
	stream.frames <- synthWindow(c4.Frequency())
	waitForNotes(t, a, music.NewNoteSet(c4))

	// Silence clears the published set.
	stream.frames <- make([]float64, WindowSize)
	waitForNotes(t, a, music.NewNoteSet())
}

func TestAnalyzerAccumulatesShortChunks(t *testing.T) {
	a := NewAnalyzer(zap.NewNop())
	stream := newFakeStream()
	a.Start(stream)
	defer a.Stop()

	e4 := music.MustNote("E4")
	window := synthWindow(e4.Frequency())
	// Deliver the window in capture-sized chunks; detection still fires once
	// a full window has accumulated.
	for off := 0; off < len(window); off += 1024 {
		stream.frames <- window[off : off+1024]
	}
	waitForNotes(t, a, music.NewNoteSet(e4))
}

func TestAnalyzerStartIsIdempotent(t *testing.T) {
	a := NewAnalyzer(zap.NewNop())
	first := newFakeStream()
	second := newFakeStream()

	a.Start(first)
	a.Start(second) // no-op: must not open a second capture session
	assert.True(t, a.Running())

	a.Stop()
	assert.False(t, a.Running())
	assert.Equal(t, int32(1), first.closed.Load(), "first stream should be released")
	assert.Equal(t, int32(0), second.closed.Load(), "second stream was never adopted")
}

func TestAnalyzerStopReleasesAndClears(t *testing.T) {
	a := NewAnalyzer(zap.NewNop())
	stream := newFakeStream()
	a.Start(stream)

	g4 := music.MustNote("G4")
	stream.frames <- synthWindow(g4.Frequency())
	waitForNotes(t, a, music.NewNoteSet(g4))

	a.Stop()
	require.Equal(t, int32(1), stream.closed.Load())
	assert.Equal(t, 0, a.CurrentNotes().Len(), "stopped analyzer publishes an empty set")

	// Stop when not running is safe.
	a.Stop()
	assert.Equal(t, int32(1), stream.closed.Load())
}

func TestAnalyzerStopsWhenStreamEnds(t *testing.T) {
	a := NewAnalyzer(zap.NewNop())
	stream := newFakeStream()
	a.Start(stream)
	close(stream.frames)

	// The loop exits on its own; Stop still cleans up without hanging.
	time.Sleep(20 * time.Millisecond)
	a.Stop()
	assert.False(t, a.Running())
}
