package fbhost

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, DefaultListenAddr, cfg.listenAddr)
	require.Equal(t, DefaultChannelCapacity, cfg.channelCapacity)
}

func TestWithListenAddrOverrides(t *testing.T) {
	cfg := applyConfig([]Option{WithListenAddr("127.0.0.1:0")})
	require.Equal(t, "127.0.0.1:0", cfg.listenAddr)
}

func TestWithListenAddrIgnoresEmpty(t *testing.T) {
	cfg := applyConfig([]Option{WithListenAddr("")})
	require.Equal(t, DefaultListenAddr, cfg.listenAddr)
}

func TestWithChannelCapacityIgnoresNonPositive(t *testing.T) {
	cfg := applyConfig([]Option{WithChannelCapacity(0), WithChannelCapacity(-5)})
	require.Equal(t, DefaultChannelCapacity, cfg.channelCapacity)
}

func TestWithAcceptRetryBackoff(t *testing.T) {
	cfg := applyConfig([]Option{WithAcceptRetryBackoff(5 * time.Millisecond, 50 * time.Millisecond)})
	require.Equal(t, 5*time.Millisecond, cfg.acceptRetryFast)
	require.Equal(t, 50*time.Millisecond, cfg.acceptRetrySteady)
}

func TestConfigValidateRejectsEmptyListenAddr(t *testing.T) {
	cfg := defaultConfig()
	cfg.listenAddr = ""
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestConfigValidateRejectsNonPositiveCapacity(t *testing.T) {
	cfg := defaultConfig()
	cfg.channelCapacity = 0
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
