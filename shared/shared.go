package shared

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
)

const (
	NUM_CHANNELS       = 16
	PERCUSSION_CHANNEL = 9
	DEFAULT_PPQN       = 480

	// quarter note at 120 BPM
	DEFAULT_TEMPO = 500000
)

const (
	UnnamedTrack    = "Unnamed"
	UnnamedSequence = "Unnamed Sequence"
)

var LogLevel = charmlog.InfoLevel

func NewLogger(prefix string) *charmlog.Logger {
	return charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Level:           LogLevel,
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          prefix,
	})
}

func ChannelName(ch int) string {
	switch ch {
	case PERCUSSION_CHANNEL:
		return "percussion"
	default:
		return fmt.Sprintf("channel %d", ch+1)
	}
}

// Channels lists the channel numbers whose bit is set in mask.
func Channels(mask uint16) []int {
	res := []int{}
	for ch := 0; ch < NUM_CHANNELS; ch++ {
		if mask&(1<<ch) != 0 {
			res = append(res, ch)
		}
	}
	return res
}
