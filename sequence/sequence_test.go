package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amiika/midilib/event"
)

func TestNoteToLength(t *testing.T) {
	s := New(480)
	cases := map[string]float64{
		"whole":             4,
		"half":              2,
		"quarter":           1,
		"eighth":            0.5,
		"8th":               0.5,
		"sixteenth":         0.25,
		"16th":              0.25,
		"thirty second":     0.125,
		"32nd":              0.125,
		"sixty fourth":      0.0625,
		"64th":              0.0625,
		"dotted quarter":    1.5,
		"dotted eighth":     0.75,
		" Quarter ":         1,
		"quarter triplet":   2.0 / 3,
		"dotted half":       3,
		"dotted 8th":        0.75,
		"sixteenth triplet": 0.25 * 2 / 3,
		"dotted  quarter":   1.5,
		"eighth\ttriplet":   0.5 * 2 / 3,
	}
	for name, want := range cases {
		got, err := s.NoteToLength(name)
		require.NoError(t, err, name)
		assert.InDelta(t, want, got, 1e-9, name)
	}
}

func TestNoteToDelta(t *testing.T) {
	s := New(480)
	cases := map[string]uint32{
		"quarter":         480,
		"sixteenth":       120,
		"8th triplet":     160,
		"quarter triplet": 320,
		"dotted quarter":  720,
		"whole":           1920,
	}
	for name, want := range cases {
		got, err := s.NoteToDelta(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestUnknownNote(t *testing.T) {
	s := New(480)
	for _, name := range []string{"", "crotchet", "dotted", "triplet", "quarterly", "dottedquarter", "quartertriplet", "dotted triplet"} {
		_, err := s.NoteToDelta(name)
		assert.ErrorIs(t, err, ErrUnknownNote, name)
	}
	_, err := s.NoteToLength("crotchet")
	assert.Contains(t, err.Error(), `"crotchet"`)
}

func TestLengthToDelta(t *testing.T) {
	s := New(96)
	assert.Equal(t, uint32(96), s.LengthToDelta(1))
	assert.Equal(t, uint32(24), s.LengthToDelta(0.25))
	assert.Equal(t, uint32(0), s.LengthToDelta(0))
	assert.Equal(t, uint32(0), s.LengthToDelta(-1))
}

func TestDefaults(t *testing.T) {
	s := New(0)
	assert.Equal(t, uint32(480), s.PPQN())
	assert.Equal(t, "Unnamed Sequence", s.Name())
	assert.Equal(t, uint32(500000), s.Tempo())
	assert.Equal(t, 120.0, s.BPM())
}

func TestTempo(t *testing.T) {
	s := New(480)
	tr := s.NewTrack()
	assert.Equal(t, uint32(500000), s.Tempo())

	tr.Events = append(tr.Events, event.NewTempo(60, 0))
	assert.Equal(t, uint32(1000000), s.Tempo())
	assert.Equal(t, 60.0, s.BPM())
	assert.Equal(t, 2.0, s.PulsesToSeconds(960))
}

func TestNewTrack(t *testing.T) {
	s := New(480)
	t1 := s.NewTrack()
	t2 := s.NewTrack()
	require.Len(t, s.Tracks, 2)
	assert.Same(t, t1, s.Tracks[0])
	assert.Same(t, t2, s.Tracks[1])
	assert.Equal(t, s, t1.Sequence())

	assert.Equal(t, "Unnamed", s.Name())
	t1.SetName("Song")
	assert.Equal(t, "Song", s.Name())
}

func TestTrackQuantizeThroughSequence(t *testing.T) {
	s := New(480)
	tr := s.NewTrack()
	tr.Events = append(tr.Events, event.NewController(0, 1, 1, 250))
	tr.RecalcTimes(0)

	require.NoError(t, tr.QuantizeNote("eighth"))
	assert.Equal(t, uint32(240), tr.Events[0].Time)
	assert.Equal(t, uint32(240), tr.Events[0].Delta)

	assert.ErrorIs(t, tr.QuantizeNote("breve"), ErrUnknownNote)
}
