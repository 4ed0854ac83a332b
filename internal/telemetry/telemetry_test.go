package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	shutdown := Setup(context.Background(), "shiftdesk", "", false, zap.NewNop())
	assert.NoError(t, shutdown(context.Background()))
}
