package event

import (
	"bytes"
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type Kind uint8

const (
	Unknown Kind = iota
	NoteOff
	NoteOn
	PolyPressure
	Controller
	ProgramChange
	ChannelPressure
	PitchBend
	SystemExclusive
	Meta
)

func (k Kind) String() string {
	switch k {
	case NoteOff:
		return "NoteOff"
	case NoteOn:
		return "NoteOn"
	case PolyPressure:
		return "PolyPressure"
	case Controller:
		return "Controller"
	case ProgramChange:
		return "ProgramChange"
	case ChannelPressure:
		return "ChannelPressure"
	case PitchBend:
		return "PitchBend"
	case SystemExclusive:
		return "SystemExclusive"
	case Meta:
		return "Meta"
	default:
		return "Unknown"
	}
}

// meta sub-types
const (
	MetaSequenceNumber = 0x00
	MetaText           = 0x01
	MetaCopyright      = 0x02
	MetaTrackName      = 0x03
	MetaInstrument     = 0x04
	MetaLyric          = 0x05
	MetaMarker         = 0x06
	MetaCuePoint       = 0x07
	MetaChannelPrefix  = 0x20
	MetaEndOfTrack     = 0x2F
	MetaTempo          = 0x51
	MetaSMPTEOffset    = 0x54
	MetaTimeSignature  = 0x58
	MetaKeySignature   = 0x59
	MetaSequencer      = 0x7F
)

// Event is one timed message of a track.
//
// Delta is owned by whoever built the list; Time, Wait and Sustain are
// recomputed by the track's reconciliation passes.
type Event struct {
	Delta   uint32
	Time    uint32
	Wait    float64 // seconds since the previous event of the same kind
	Sustain float64 // note-on only: seconds until the matching note-off
	On      *Event  // note-off only: the note-on it ends, may be nil
	Message smf.Message
}

// FromMessage copies msg into a new event.
func FromMessage(delta uint32, msg []byte) *Event {
	return &Event{
		Delta:   delta,
		Message: smf.Message(bytes.Clone(msg)),
	}
}

func NewNoteOn(ch, key, vel uint8, delta uint32) *Event {
	return &Event{Delta: delta, Message: smf.Message(midi.NoteOn(ch, key, vel))}
}

func NewNoteOff(ch, key, vel uint8, delta uint32, on *Event) *Event {
	return &Event{Delta: delta, On: on, Message: smf.Message(midi.NoteOffVelocity(ch, key, vel))}
}

func NewController(ch, controller, value uint8, delta uint32) *Event {
	return &Event{Delta: delta, Message: smf.Message(midi.ControlChange(ch, controller, value))}
}

func NewProgramChange(ch, program uint8, delta uint32) *Event {
	return &Event{Delta: delta, Message: smf.Message(midi.ProgramChange(ch, program))}
}

func NewTempo(bpm float64, delta uint32) *Event {
	return &Event{Delta: delta, Message: smf.MetaTempo(bpm)}
}

func NewMeta(metaType byte, data []byte, delta uint32) *Event {
	return &Event{Delta: delta, Message: metaMessage(metaType, data)}
}

func metaMessage(metaType byte, data []byte) smf.Message {
	msg := []byte{0xFF, metaType}
	msg = append(msg, encodeVLQ(uint32(len(data)))...)
	msg = append(msg, data...)
	return smf.Message(msg)
}

func (e *Event) Kind() Kind {
	if len(e.Message) == 0 {
		return Unknown
	}
	status := e.Message[0]
	switch status {
	case 0xFF:
		return Meta
	case 0xF0, 0xF7:
		return SystemExclusive
	}
	switch status >> 4 {
	case 0x8:
		return NoteOff
	case 0x9:
		if len(e.Message) > 2 && e.Message[2] == 0 {
			return NoteOff
		}
		return NoteOn
	case 0xA:
		return PolyPressure
	case 0xB:
		return Controller
	case 0xC:
		return ProgramChange
	case 0xD:
		return ChannelPressure
	case 0xE:
		return PitchBend
	}
	return Unknown
}

// Channel reports the channel of a channel voice message.
func (e *Event) Channel() (uint8, bool) {
	switch e.Kind() {
	case Meta, SystemExclusive, Unknown:
		return 0, false
	}
	var ch uint8
	if !midi.Message(e.Message).GetChannel(&ch) {
		return 0, false
	}
	return ch, true
}

// Note reports channel and key of note-on and note-off events.
func (e *Event) Note() (ch, key uint8, ok bool) {
	var vel uint8
	switch e.Kind() {
	case NoteOn:
		ok = midi.Message(e.Message).GetNoteOn(&ch, &key, &vel)
	case NoteOff:
		ok = midi.Message(e.Message).GetNoteEnd(&ch, &key)
	}
	return
}

func (e *Event) IsMeta(metaType byte) bool {
	return e.Kind() == Meta && len(e.Message) > 1 && e.Message[1] == metaType
}

func (e *Event) MetaType() (byte, bool) {
	if e.Kind() != Meta || len(e.Message) < 2 {
		return 0, false
	}
	return e.Message[1], true
}

// Data returns the payload of a meta event, nil for other kinds.
func (e *Event) Data() []byte {
	if e.Kind() != Meta || len(e.Message) < 3 {
		return nil
	}
	n, size, ok := decodeVLQ(e.Message[2:])
	if !ok {
		return nil
	}
	start := 2 + size
	end := start + int(n)
	if end > len(e.Message) {
		end = len(e.Message)
	}
	return e.Message[start:end]
}

// SetData replaces the payload of a meta event. Other kinds are left as is.
func (e *Event) SetData(data []byte) {
	metaType, ok := e.MetaType()
	if !ok {
		return
	}
	e.Message = metaMessage(metaType, data)
}

func (e *Event) Text() string {
	return string(e.Data())
}

// QuantizeTo snaps Time to the nearest multiple of grid, rounding halves up.
func (e *Event) QuantizeTo(grid uint32) {
	if grid == 0 {
		return
	}
	diff := e.Time % grid
	e.Time -= diff
	if diff >= grid/2 {
		e.Time += grid
	}
}

// Clone returns a copy of the event with its own message bytes. On still
// points to the original note-on.
func (e *Event) Clone() *Event {
	e2 := &Event{}
	*e2 = *e
	e2.Message = smf.Message(bytes.Clone(e.Message))
	return e2
}

// CloneAll clones every event of list. Note-off links pointing inside list
// are redirected to the matching clones.
func CloneAll(list []*Event) []*Event {
	clones := make([]*Event, len(list))
	index := make(map[*Event]*Event, len(list))
	for i, e := range list {
		clones[i] = e.Clone()
		index[e] = clones[i]
	}
	for _, c := range clones {
		if c.On == nil {
			continue
		}
		if on, ok := index[c.On]; ok {
			c.On = on
		}
	}
	return clones
}

func (e *Event) String() string {
	s := fmt.Sprintf("%d +%d %s", e.Time, e.Delta, e.Kind())
	switch e.Kind() {
	case NoteOn, NoteOff:
		ch, key, _ := e.Note()
		s += fmt.Sprintf(" ch%d %s", ch, midi.Note(key))
	case Meta:
		metaType, _ := e.MetaType()
		switch metaType {
		case MetaText, MetaCopyright, MetaTrackName, MetaInstrument, MetaLyric, MetaMarker, MetaCuePoint:
			s += fmt.Sprintf(" 0x%02X <%s>", metaType, e.Text())
		default:
			s += fmt.Sprintf(" 0x%02X %v", metaType, e.Data())
		}
	default:
		if ch, ok := e.Channel(); ok {
			s += fmt.Sprintf(" ch%d %v", ch, []byte(e.Message[1:]))
		}
	}
	return "{" + s + "}"
}
