package smfio

import (
	"errors"
	"fmt"

	. "github.com/amiika/midilib/shared"

	charmlog "github.com/charmbracelet/log"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/amiika/midilib/event"
	"github.com/amiika/midilib/sequence"
	"github.com/amiika/midilib/track"
)

var ErrTimeFormat = errors.New("only metric time formats are supported")

// FromSMF builds a sequence from a decoded file. Every track gets its
// times computed and its channel usage filled in.
func FromSMF(f *smf.SMF) (*sequence.Sequence, error) {
	ticks, ok := f.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrTimeFormat, f.TimeFormat)
	}
	logger := NewLogger("smfio")
	seq := sequence.New(uint32(ticks))
	for i, tr := range f.Tracks {
		t := seq.NewTrack()
		Convert(t, tr, logger)
		logger.Debug("read track", "track", i, "name", t.Name(), "events", t.Len(), "channels", Channels(t.ChannelsUsed))
	}
	return seq, nil
}

/*
Convert appends the events of tr to t.

	noteOn(A), noteOff(A) → linked
	noteOn(A), noteOn(A), noteOff(A), noteOff(A) → first on with first off
	noteOff(A) alone → kept, without note-on
*/
func Convert(t *track.Track, tr smf.Track, logger *charmlog.Logger) {
	pending := map[[2]uint8][]*event.Event{}
	carry := uint32(0) // delta of dropped end-of-track events
	for _, ev := range tr {
		e := event.FromMessage(ev.Delta+carry, ev.Message)
		carry = 0
		if e.IsMeta(event.MetaEndOfTrack) {
			carry = e.Delta
			continue
		}
		if ch, ok := e.Channel(); ok {
			t.ChannelsUsed |= 1 << ch
		}
		switch e.Kind() {
		case event.NoteOn:
			ch, key, _ := e.Note()
			k := [2]uint8{ch, key}
			pending[k] = append(pending[k], e)
		case event.NoteOff:
			ch, key, _ := e.Note()
			k := [2]uint8{ch, key}
			if ons := pending[k]; len(ons) > 0 {
				e.On = ons[0]
				pending[k] = ons[1:]
			} else {
				logger.Warn("note off without note on", "channel", ch, "key", key)
			}
		}
		t.Events = append(t.Events, e)
	}
	t.RecalcTimes(0)
}

// ToSMF encodes every track of seq, after sorting it.
func ToSMF(seq *sequence.Sequence) (*smf.SMF, error) {
	f := smf.New()
	f.TimeFormat = smf.MetricTicks(seq.PPQN())
	var errs error
	for i, t := range seq.Tracks {
		t.Sort()
		if err := f.Add(Export(t)); err != nil {
			errs = errors.Join(errs, fmt.Errorf("track %d: %w", i, err))
		}
	}
	return f, errs
}

// Export converts t to a closed smf.Track, using the current deltas.
func Export(t *track.Track) smf.Track {
	tr := smf.Track{}
	for _, e := range t.Events {
		if e.IsMeta(event.MetaEndOfTrack) {
			continue
		}
		tr.Add(e.Delta, e.Message)
	}
	tr.Close(0)
	return tr
}
