package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/config"
)

func TestSetupTracing_DisabledIsNoop(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.TelemetryCfg
	}{
		{name: "switched off", cfg: config.TelemetryCfg{Enabled: false, OtlpEndpoint: "localhost:4317"}},
		{name: "no endpoint", cfg: config.TelemetryCfg{Enabled: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Telemetry: tt.cfg}
			assert.False(t, Enabled(cfg))

			tp, err := SetupTracing(cfg)
			require.NoError(t, err)
			assert.Nil(t, tp)
		})
	}
}

func TestSampler(t *testing.T) {
	assert.Contains(t, sampler(0).Description(), "AlwaysOnSampler")
	assert.Contains(t, sampler(1.5).Description(), "AlwaysOnSampler")
	assert.Contains(t, sampler(0.25).Description(), "TraceIDRatioBased{0.25}")
}
