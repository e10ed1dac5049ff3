package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

const (
	sampleRate   = 44100
	channelCount = 2
)

var (
	otoCtx     *oto.Context
	otoOnce    sync.Once
	otoInitErr error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		otoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return otoCtx, otoInitErr
}

// SFXPlayer plays one-shot sound effects through the system audio device.
// Effects are decoded fully into memory before playback starts; files are
// short clips, not music. Master scales every event volume.
type SFXPlayer struct {
	Master float64
}

// NewSFXPlayer initialises the shared audio device context.
func NewSFXPlayer() (*SFXPlayer, error) {
	if _, err := initOto(); err != nil {
		return nil, fmt.Errorf("audio device init: %w", err)
	}
	return &SFXPlayer{Master: 1}, nil
}

// Play decodes uri (a .mp3 or .wav path) and starts playback at the given
// volume. The returned handle's Done channel closes when the clip ends.
func (s *SFXPlayer) Play(uri string, volume float64) (Handle, error) {
	pcm, err := decodeFile(uri)
	if err != nil {
		return nil, err
	}
	ctx, err := initOto()
	if err != nil {
		return nil, err
	}
	volume *= s.Master
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}

	p := ctx.NewPlayer(bytes.NewReader(pcm))
	p.SetVolume(volume)
	p.Play()

	h := &sfxHandle{player: p, done: make(chan struct{})}
	go h.monitor()
	return h, nil
}

type sfxHandle struct {
	player *oto.Player
	done   chan struct{}

	mu     sync.Mutex
	closed bool
	once   sync.Once
}

func (h *sfxHandle) monitor() {
	for {
		h.mu.Lock()
		closed := h.closed
		h.mu.Unlock()
		if closed || !h.player.IsPlaying() {
			h.finish()
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func (h *sfxHandle) finish() {
	h.once.Do(func() { close(h.done) })
}

func (h *sfxHandle) Done() <-chan struct{} { return h.done }

// Dispose stops playback immediately. Idempotent.
func (h *sfxHandle) Dispose() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	h.mu.Unlock()

	_ = h.player.Close()
	h.finish()
}

// decodeFile returns the clip as 44.1kHz stereo s16le PCM.
func decodeFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		return decodeMP3(f)
	case ".wav":
		return decodeWAV(f)
	default:
		return nil, fmt.Errorf("unsupported sound format %q", ext)
	}
}

func decodeMP3(f *os.File) ([]byte, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("decoding mp3: %w", err)
	}
	// go-mp3 always emits 44.1kHz stereo s16le.
	return io.ReadAll(dec)
}

func decodeWAV(f *os.File) ([]byte, error) {
	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decoding wav: %w", err)
	}
	if dec.BitDepth != 16 {
		return nil, fmt.Errorf("unsupported wav bit depth %d", dec.BitDepth)
	}
	if int(dec.SampleRate) != sampleRate {
		return nil, fmt.Errorf("unsupported wav sample rate %d", dec.SampleRate)
	}
	mono := dec.NumChans == 1

	out := make([]byte, 0, len(buf.Data)*2)
	for _, s := range buf.Data {
		lo, hi := byte(uint16(s)&0xff), byte(uint16(s)>>8)
		out = append(out, lo, hi)
		if mono {
			out = append(out, lo, hi)
		}
	}
	return out, nil
}
