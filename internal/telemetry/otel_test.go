package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_NoEndpointIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), "preptrack-api", "")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestExporterOptions(t *testing.T) {
	tests := []struct {
		endpoint string
		wantOpts int
		wantErr  bool
	}{
		{endpoint: "localhost:4318", wantOpts: 2},
		{endpoint: "127.0.0.1:4318", wantOpts: 2},
		{endpoint: "collector", wantOpts: 2},
		{endpoint: "http://collector:4318", wantOpts: 2},
		{endpoint: "https://collector:4318", wantOpts: 1},
		{endpoint: "https://collector:4318/otlp/v1/traces", wantOpts: 2},
		{endpoint: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			opts, err := exporterOptions(tt.endpoint)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, opts, tt.wantOpts)
		})
	}
}
