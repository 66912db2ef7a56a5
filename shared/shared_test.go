package shared

import (
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestChannels(t *testing.T) {
	assert.Equal(t, []int{}, Channels(0))
	assert.Equal(t, []int{0, 9, 15}, Channels(1<<0|1<<9|1<<15))
}

func TestChannelName(t *testing.T) {
	assert.Equal(t, "channel 1", ChannelName(0))
	assert.Equal(t, "percussion", ChannelName(PERCUSSION_CHANNEL))
	assert.Equal(t, "channel 16", ChannelName(15))
}

func TestNewLogger(t *testing.T) {
	old := LogLevel
	defer func() { LogLevel = old }()

	LogLevel = charmlog.DebugLevel
	logger := NewLogger("test")
	assert.Equal(t, charmlog.DebugLevel, logger.GetLevel())
	assert.Equal(t, "test", logger.GetPrefix())
}
