package track

import (
	"cmp"
	"errors"
	"iter"
	"slices"

	. "github.com/amiika/midilib/shared"

	charmlog "github.com/charmbracelet/log"

	"github.com/amiika/midilib/event"
)

var ErrInvalidGrid = errors.New("quantize grid must be at least one tick")

// Sequence is what a track needs from the sequence that owns it.
type Sequence interface {
	PPQN() uint32
	LengthToDelta(length float64) uint32
	NoteToDelta(name string) (uint32, error)
}

// Track is an ordered list of events belonging to one sequence.
//
// Events may be edited directly; callers doing so are expected to run
// RecalcTimes or RecalcDeltaFromTimes afterwards.
type Track struct {
	Events       []*event.Event
	ChannelsUsed uint16 // bit n set when channel n appears, filled by the reader
	instrument   []byte
	sequence     Sequence
	logger       *charmlog.Logger
}

func New(seq Sequence) *Track {
	return &Track{
		Events:   []*event.Event{},
		sequence: seq,
		logger:   NewLogger("track"),
	}
}

func (t *Track) Sequence() Sequence {
	return t.sequence
}

func (t *Track) nameEvent() *event.Event {
	for _, e := range t.Events {
		if e.IsMeta(event.MetaTrackName) {
			return e
		}
	}
	return nil
}

func (t *Track) Name() string {
	if e := t.nameEvent(); e != nil {
		return e.Text()
	}
	return UnnamedTrack
}

// SetName updates the track name event, or inserts one at the head of the
// list with a zero delta.
func (t *Track) SetName(name string) {
	if e := t.nameEvent(); e != nil {
		e.SetData([]byte(name))
		return
	}
	t.Events = slices.Insert(t.Events, 0, event.NewMeta(event.MetaTrackName, []byte(name), 0))
}

// Instrument is only cached on the track, it is not read from the events.
func (t *Track) Instrument() string {
	return string(t.instrument)
}

func (t *Track) SetInstrument(name string) {
	t.instrument = []byte(name)
}

func (t *Track) SetInstrumentData(data []byte) {
	t.instrument = slices.Clone(data)
}

func (t *Track) Len() int {
	return len(t.Events)
}

// All yields the events in list order.
func (t *Track) All() iter.Seq2[int, *event.Event] {
	return func(yield func(int, *event.Event) bool) {
		for i, e := range t.Events {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Merge adds copies of events to the track. Both lists are timed from
// their own start, then the result is sorted by time with deltas rebuilt.
// The track keeps at most one track name: incoming name events are dropped
// when the track already has one, and only the first is kept otherwise.
func (t *Track) Merge(events []*event.Event) {
	incoming := event.CloneAll(events)
	t.RecalcTimes(0)
	t.RecalcTimesOf(0, incoming)
	named := t.nameEvent() != nil
	incoming = slices.DeleteFunc(incoming, func(e *event.Event) bool {
		if !e.IsMeta(event.MetaTrackName) {
			return false
		}
		if named {
			return true
		}
		named = true
		return false
	})
	t.Events = append(t.Events, incoming...)
	t.RecalcDeltaFromTimes(0)
	t.logger.Debug("merged", "added", len(incoming), "len", len(t.Events))
}

// QuantizeLength snaps every event to a grid of length quarter notes.
func (t *Track) QuantizeLength(length float64) error {
	return t.quantize(t.sequence.LengthToDelta(length))
}

// QuantizeNote snaps every event to a grid given by a note name such as
// "sixteenth", "8th triplet" or "dotted quarter".
func (t *Track) QuantizeNote(name string) error {
	grid, err := t.sequence.NoteToDelta(name)
	if err != nil {
		return err
	}
	return t.quantize(grid)
}

func (t *Track) quantize(grid uint32) error {
	if grid == 0 {
		return ErrInvalidGrid
	}
	t.logger.Debug("quantize", "grid", grid, "events", len(t.Events))
	for _, e := range t.Events {
		e.QuantizeTo(grid)
	}
	t.RecalcDeltaFromTimes(0)
	return nil
}

func (t *Track) RecalcTimes(start int) {
	t.RecalcTimesOf(start, t.Events)
}

// RecalcTimesOf sets Time from the deltas of list[start:], continuing
// from the time of list[start-1]. Note-on sustains and per-kind waits are
// updated on the way.
func (t *Track) RecalcTimesOf(start int, list []*event.Event) {
	if start < 0 || start >= len(list) {
		return
	}
	ppqn := float64(t.sequence.PPQN())
	var now uint32
	if start > 0 {
		now = list[start-1].Time
	}
	last := map[event.Kind]*event.Event{}
	for _, e := range list[start:] {
		now += e.Delta
		e.Time = now
		kind := e.Kind()
		if kind == event.NoteOff && e.On != nil {
			e.On.Sustain = float64(int64(e.Time)-int64(e.On.Time)) / ppqn
		}
		if prev, ok := last[kind]; ok {
			e.Wait = float64(e.Time-prev.Time) / ppqn
		} else {
			e.Wait = float64(e.Time) / ppqn
		}
		last[kind] = e
	}
}

func (t *Track) RecalcDeltaFromTimes(start int) {
	t.RecalcDeltaFromTimesOf(start, t.Events)
}

// RecalcDeltaFromTimesOf stable sorts list[start:] by Time and rebuilds
// the deltas. The first sorted event gets its delta from tick 0, not from
// list[start-1], so a partial pass re-zeroes the deltas at start.
func (t *Track) RecalcDeltaFromTimesOf(start int, list []*event.Event) {
	if start < 0 || start >= len(list) {
		return
	}
	sub := list[start:]
	slices.SortStableFunc(sub, func(a, b *event.Event) int {
		return cmp.Compare(a.Time, b.Time)
	})
	var prev uint32
	for _, e := range sub {
		e.Delta = e.Time - prev
		prev = e.Time
	}
}

// Sort is RecalcDeltaFromTimes over the whole list.
func (t *Track) Sort() {
	t.RecalcDeltaFromTimes(0)
}
