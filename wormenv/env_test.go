package wormenv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEnvUint(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected uint8
	}{
		{"valid", "12", 12},
		{"max", "255", 255},
		{"overflow", "256", 7},
		{"negative", "-1", 7},
		{"garbage", "abc", 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("WORMCELL_TEST_UINT", tc.value)
			require.Equal(t, tc.expected, getEnvUint[uint8]("WORMCELL_TEST_UINT", 7))
		})
	}

	t.Run("unset", func(t *testing.T) {
		require.Equal(t, uint8(7), getEnvUint[uint8]("WORMCELL_TEST_UNSET_UINT", 7))
	})
}

func TestConfigDefaults(t *testing.T) {
	for _, name := range []string{
		"WORMCELL_LOG_LEVEL", "WORMCELL_WRITERS", "WORMCELL_READERS",
		"WORMCELL_STRICT", "WORMCELL_LATEBIND_VALUE", "WORMCELL_OTEL_METRICS_NAMESPACE",
	} {
		t.Setenv(name, "")
	}
	// empty strings are set values: numeric parsers fall back, string getters do not
	require.Equal(t, "", WormcellLogLevel())
	require.Equal(t, uint(8), WormcellWriters())
	require.Equal(t, uint(16), WormcellReaders())
	require.False(t, WormcellStrict())
	require.Equal(t, 42, WormcellLateBindValue())
	require.Equal(t, "", WormcellOtelMetricsNamespace())
}

func TestConfigOverrides(t *testing.T) {
	t.Setenv("WORMCELL_WRITERS", "3")
	t.Setenv("WORMCELL_STRICT", "true")
	t.Setenv("WORMCELL_LATEBIND_VALUE", "-5")

	require.Equal(t, uint(3), WormcellWriters())
	require.True(t, WormcellStrict())
	require.Equal(t, -5, WormcellLateBindValue())
}
