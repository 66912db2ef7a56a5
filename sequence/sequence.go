package sequence

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	. "github.com/amiika/midilib/shared"

	"github.com/amiika/midilib/event"
	"github.com/amiika/midilib/track"
)

var ErrUnknownNote = errors.New("unrecognized note-length name")

// note lengths in quarter notes
var NoteToLengthTable = map[string]float64{
	"whole":         4.0,
	"half":          2.0,
	"quarter":       1.0,
	"eighth":        0.5,
	"8th":           0.5,
	"sixteenth":     0.25,
	"16th":          0.25,
	"thirty second": 0.125,
	"thirtysecond":  0.125,
	"32nd":          0.125,
	"sixty fourth":  0.0625,
	"sixtyfourth":   0.0625,
	"64th":          0.0625,
}

var noteNameRe = regexp.MustCompile(`^(dotted\s+)?(.*?)(\s+triplet)?$`)

type Sequence struct {
	Tracks []*track.Track
	ppqn   uint32
}

func New(ppqn uint32) *Sequence {
	if ppqn == 0 {
		ppqn = DEFAULT_PPQN
	}
	return &Sequence{
		Tracks: []*track.Track{},
		ppqn:   ppqn,
	}
}

func (s *Sequence) PPQN() uint32 {
	return s.ppqn
}

// NewTrack creates a track bound to s and appends it to s.Tracks.
func (s *Sequence) NewTrack() *track.Track {
	t := track.New(s)
	s.Tracks = append(s.Tracks, t)
	return t
}

// Name is the name of the first track.
func (s *Sequence) Name() string {
	if len(s.Tracks) == 0 {
		return UnnamedSequence
	}
	return s.Tracks[0].Name()
}

// Tempo returns microseconds per quarter note, read from the first tempo
// event of the first track.
func (s *Sequence) Tempo() uint32 {
	if len(s.Tracks) == 0 {
		return DEFAULT_TEMPO
	}
	for _, e := range s.Tracks[0].Events {
		if !e.IsMeta(event.MetaTempo) {
			continue
		}
		data := e.Data()
		if len(data) != 3 {
			continue
		}
		return uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
	}
	return DEFAULT_TEMPO
}

func (s *Sequence) BPM() float64 {
	return 60000000.0 / float64(s.Tempo())
}

func (s *Sequence) PulsesToSeconds(pulses uint32) float64 {
	return float64(pulses) / float64(s.ppqn) * 60.0 / s.BPM()
}

// LengthToDelta converts a length in quarter notes to ticks.
func (s *Sequence) LengthToDelta(length float64) uint32 {
	if length <= 0 {
		return 0
	}
	// triplet lengths are not exact in binary
	return uint32(math.Floor(float64(s.ppqn)*length + 1e-9))
}

// NoteToLength converts a note name to a length in quarter notes. Names
// may be prefixed with "dotted " and suffixed with " triplet", separated
// by whitespace: "dotted quarter" is valid, "dottedquarter" is not.
func (s *Sequence) NoteToLength(name string) (float64, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	m := noteNameRe.FindStringSubmatch(name)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNote, name)
	}
	length, ok := NoteToLengthTable[strings.TrimSpace(m[2])]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNote, name)
	}
	if m[1] != "" {
		length *= 1.5
	}
	if m[3] != "" {
		length = length * 2 / 3
	}
	return length, nil
}

func (s *Sequence) NoteToDelta(name string) (uint32, error) {
	length, err := s.NoteToLength(name)
	if err != nil {
		return 0, err
	}
	return s.LengthToDelta(length), nil
}
