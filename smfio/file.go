package smfio

import (
	"fmt"
	"io"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/amiika/midilib/sequence"
)

func Read(r io.Reader) (*sequence.Sequence, error) {
	f, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("reading SMF: %w", err)
	}
	return FromSMF(f)
}

func ReadFile(filepath string) (*sequence.Sequence, error) {
	f, err := smf.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath, err)
	}
	return FromSMF(f)
}

func Write(w io.Writer, seq *sequence.Sequence) error {
	f, err := ToSMF(seq)
	if err != nil {
		return err
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing SMF: %w", err)
	}
	return nil
}

func WriteFile(filepath string, seq *sequence.Sequence) error {
	f, err := ToSMF(seq)
	if err != nil {
		return err
	}
	if err := f.WriteFile(filepath); err != nil {
		return fmt.Errorf("writing %s: %w", filepath, err)
	}
	return nil
}
