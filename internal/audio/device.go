// Package audio owns microphone capture. The device manager is constructed
// once at the application root and injected into whatever needs a live
// input stream; there is no package-level capture state.
package audio

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gen2brain/malgo"
	"go.uber.org/zap"

	"keyquest/internal/pitch"
)

// DeviceError indicates the input device is unavailable or access was
// denied. It is retryable: the analyzer stays stopped and the user can try
// again.
type DeviceError struct {
	Op  string
	Err error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("audio device: %s: %v", e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }

const captureSampleRate = 44100

// DeviceManager opens exclusive capture sessions on the system microphone.
type DeviceManager struct {
	log *zap.Logger
}

func NewDeviceManager(log *zap.Logger) *DeviceManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &DeviceManager{log: log}
}

// OpenMicrophone acquires the default capture device and returns a live
// stream of mono float64 frames. On partial failure every already-acquired
// resource is released before the error is returned.
func (m *DeviceManager) OpenMicrophone() (pitch.InputStream, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		m.log.Debug("malgo", zap.String("message", message))
	})
	if err != nil {
		return nil, &DeviceError{Op: "init context", Err: err}
	}

	config := malgo.DefaultDeviceConfig(malgo.Capture)
	config.Capture.Format = malgo.FormatF32
	config.Capture.Channels = 1
	config.SampleRate = captureSampleRate
	config.Alsa.NoMMap = 1

	s := &micStream{
		ctx:    ctx,
		frames: make(chan []float64, 8),
	}

	callbacks := malgo.DeviceCallbacks{
		Data: func(output, input []byte, frameCount uint32) {
			if len(input) == 0 {
				return
			}
			frame := bytesToSamples(input)
			select {
			case s.frames <- frame:
			default:
				// Drop when the consumer lags; fresher frames matter more.
			}
		},
	}

	device, err := malgo.InitDevice(ctx.Context, config, callbacks)
	if err != nil {
		_ = ctx.Uninit()
		ctx.Free()
		return nil, &DeviceError{Op: "init device", Err: err}
	}
	if err := device.Start(); err != nil {
		device.Uninit()
		_ = ctx.Uninit()
		ctx.Free()
		return nil, &DeviceError{Op: "start capture", Err: err}
	}

	s.device = device
	m.log.Info("microphone capture started", zap.Int("sample_rate", captureSampleRate))
	return s, nil
}

type micStream struct {
	ctx    *malgo.AllocatedContext
	device *malgo.Device
	frames chan []float64
}

func (s *micStream) SampleRate() int          { return captureSampleRate }
func (s *micStream) Frames() <-chan []float64 { return s.frames }

// Close stops the device before closing the frame channel so the data
// callback cannot send after close.
func (s *micStream) Close() error {
	err := s.device.Stop()
	s.device.Uninit()
	if uerr := s.ctx.Uninit(); err == nil {
		err = uerr
	}
	s.ctx.Free()
	close(s.frames)
	if err != nil {
		return &DeviceError{Op: "release capture", Err: err}
	}
	return nil
}

func bytesToSamples(b []byte) []float64 {
	out := make([]float64, len(b)/4)
	for i := range out {
		bits := binary.LittleEndian.Uint32(b[i*4:])
		out[i] = float64(math.Float32frombits(bits))
	}
	return out
}
