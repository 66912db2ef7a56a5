package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	. "github.com/amiika/midilib/shared"

	charmlog "github.com/charmbracelet/log"
	"gitlab.com/gomidi/quantizer/lib/quantizer"

	"github.com/amiika/midilib/sequence"
	"github.com/amiika/midilib/smfio"
)

// Edit applies config to seq: merge, then quantize, then names and
// instruments. The quantizer engine re-reads the file, so the returned
// sequence may not be seq.
func Edit(seq *sequence.Sequence, config Config, logger *charmlog.Logger) (*sequence.Sequence, error) {
	if config.Merge && len(seq.Tracks) > 1 {
		first := seq.Tracks[0]
		for i, t := range seq.Tracks[1:] {
			first.Merge(t.Events)
			first.ChannelsUsed |= t.ChannelsUsed
			logger.Debug("merged track", "src", i+1, "len", first.Len())
		}
		seq.Tracks = seq.Tracks[:1]
	}

	if config.Quantize != "" {
		switch config.Engine {
		case "", EngineGrid:
			for i, t := range seq.Tracks {
				if err := t.QuantizeNote(config.Quantize); err != nil {
					return nil, fmt.Errorf("track %d: %w", i, err)
				}
			}
			logger.Info("quantized", "grid", config.Quantize, "tracks", len(seq.Tracks))
		case EngineQuantizer:
			q, err := quantizeFile(seq)
			if err != nil {
				return nil, err
			}
			seq = q
			logger.Info("quantized with gomidi quantizer", "tracks", len(seq.Tracks))
		default:
			return nil, fmt.Errorf("unknown quantize engine %q", config.Engine)
		}
	}

	for i, name := range config.Names {
		if i < 0 || i >= len(seq.Tracks) {
			logger.Warn("tried to rename non-existent track", "track", i)
			continue
		}
		seq.Tracks[i].SetName(name)
	}
	for i, instrument := range config.Instruments {
		if i < 0 || i >= len(seq.Tracks) {
			logger.Warn("tried to set instrument of non-existent track", "track", i)
			continue
		}
		seq.Tracks[i].SetInstrument(instrument)
	}
	return seq, nil
}

func quantizeFile(seq *sequence.Sequence) (*sequence.Sequence, error) {
	var in, out bytes.Buffer
	if err := smfio.Write(&in, seq); err != nil {
		return nil, err
	}
	if err := quantizer.Quantize(&in, &out); err != nil {
		return nil, fmt.Errorf("quantizer: %w", err)
	}
	return smfio.Read(&out)
}

func PrintInfo(w io.Writer, seq *sequence.Sequence) {
	fmt.Fprintf(w, "Sequence: %s\n", seq.Name())
	fmt.Fprintf(w, "Ticks per quarter note: %d\n", seq.PPQN())
	fmt.Fprintf(w, "Tempo: %.2f BPM\n", seq.BPM())
	for i, t := range seq.Tracks {
		fmt.Fprintf(w, "Track %d: %s\n", i, t.Name())
		if t.Instrument() != "" {
			fmt.Fprintf(w, "  Instrument: %s\n", t.Instrument())
		}
		fmt.Fprintf(w, "  Events: %d\n", t.Len())
		channels := Channels(t.ChannelsUsed)
		if len(channels) > 0 {
			names := []string{}
			for _, ch := range channels {
				names = append(names, ChannelName(ch))
			}
			fmt.Fprintf(w, "  Channels used: %s\n", strings.Join(names, ", "))
		}
	}
}
