package tracing

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/appointmenttech-api/internal/config"
)

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), config.TracingConfig{Enabled: false}, zerolog.Nop())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSampler(t *testing.T) {
	assert.Equal(t, "AlwaysOnSampler", Sampler("always_on", "").Description())
	assert.Equal(t, "AlwaysOffSampler", Sampler("always_off", "").Description())
	assert.Equal(t, "TraceIDRatioBased{0.5}", Sampler("traceidratio", "0.5").Description())
	assert.Contains(t, Sampler("", "").Description(), "ParentBased")
}
