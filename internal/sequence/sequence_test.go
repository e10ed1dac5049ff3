package sequence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalDurationScansEveryTrack(t *testing.T) {
	s := &PosableCharacterSequence{
		Head:   []TransformEvent{{Start: 0, End: 2}},
		Mouth:  []MouthEvent{{Start: 1, End: 4.5, Value: MouthOpen}},
		Sounds: []SoundEvent{{Start: 3, URI: "pop.mp3", Volume: 1}},
	}
	assert.Equal(t, 4.5, s.TotalDuration())
}

func TestTotalDurationUsesStartWhenNoEnd(t *testing.T) {
	s := &PosableCharacterSequence{
		Sounds: []SoundEvent{{Start: 7.25, URI: "boing.wav", Volume: 0.5}},
	}
	assert.Equal(t, 7.25, s.TotalDuration())
}

func TestTotalDurationEmptySequence(t *testing.T) {
	s := &PosableCharacterSequence{}
	assert.Equal(t, 0.0, s.TotalDuration())
}

func TestEndBeforeStartIsInstantaneous(t *testing.T) {
	e := TransformEvent{Start: 3, End: 1}
	assert.Equal(t, 3.0, e.EndTime())

	b := BoolEvent{Start: 2, Value: true}
	assert.Equal(t, 2.0, b.EndTime())
}

func TestMatrixTranslateThenScale(t *testing.T) {
	tr := CharacterTransform{TranslateX: 10, TranslateY: -4, ScaleX: 2, ScaleY: 0.5}
	m := tr.Matrix()
	// A point is scaled first, then offset by the raw translation.
	assert.Equal(t, Affine{A: 2, B: 0, TX: 10, C: 0, D: 0.5, TY: -4}, m)
}

func TestLerpComponentWise(t *testing.T) {
	a := Identity()
	b := CharacterTransform{TranslateX: 10, ScaleX: 2, ScaleY: 1}
	mid := Lerp(a, b, 0.5)
	assert.Equal(t, 5.0, mid.TranslateX)
	assert.Equal(t, 0.0, mid.TranslateY)
	assert.Equal(t, 1.5, mid.ScaleX)
	assert.Equal(t, 1.0, mid.ScaleY)
}

func TestMouthDefaultFallback(t *testing.T) {
	for _, at := range []float64{0, 1.5, 100} {
		assert.Equal(t, MouthClosed, MouthAt(nil, at, MouthClosed))
	}
}

func TestMouthIntervalLookup(t *testing.T) {
	track := []MouthEvent{
		{Start: 0, End: 1, Value: MouthOpen},
		{Start: 1, End: 2, Value: MouthClosed},
	}
	assert.Equal(t, MouthOpen, MouthAt(track, 0.5, MouthClosed))
	assert.Equal(t, MouthClosed, MouthAt(track, 1.5, MouthClosed))
}

func TestDiscreteFirstMatchInAuthoredOrder(t *testing.T) {
	// Overlapping intervals: authored order decides, not start time.
	track := []BoolEvent{
		{Start: 1, End: 3, Value: false},
		{Start: 0, End: 4, Value: true},
	}
	assert.False(t, BoolValueAt(track, 2, true))
	assert.True(t, BoolValueAt(track, 0.5, false))
}

func TestDiscreteInstantaneousEvent(t *testing.T) {
	track := []BoolEvent{{Start: 1, Value: false}}
	assert.False(t, BoolValueAt(track, 1, true))
	assert.True(t, BoolValueAt(track, 1.01, true))
}

func TestDefaultsTable(t *testing.T) {
	d := Defaults()
	assert.Equal(t, Identity(), d.Transform)
	assert.Equal(t, MouthClosed, d.Mouth)
	assert.True(t, d.EyeOpen)
	assert.True(t, d.HandVisible)
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.yaml")
	data := `
head:
  - start: 0
    end: 2
    target: {translateX: 10, translateY: 0, scaleX: 2, scaleY: 1}
mouth:
  - start: 0.5
    end: 1
    value: open
sounds:
  - start: 1.5
    uri: assets/pop.mp3
    volume: 0.8
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, s.Head, 1)
	assert.Equal(t, 10.0, s.Head[0].Target.TranslateX)
	require.Len(t, s.Mouth, 1)
	assert.Equal(t, MouthOpen, s.Mouth[0].Value)
	require.Len(t, s.Sounds, 1)
	assert.Equal(t, "assets/pop.mp3", s.Sounds[0].URI)
	assert.Equal(t, 2.0, s.TotalDuration())
}

func TestLoadFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.json")
	data := `{"leftEye":[{"start":0,"end":0.2,"value":false}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, s.LeftEye, 1)
	assert.False(t, s.LeftEye[0].Value)
}
