package mapper

import (
	"context"
	"testing"

	"github.com/multiedit/lsp-broker/src/broker/entity"
	"github.com/multiedit/lsp-broker/src/broker/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextSessionUUIDRoundTrip(t *testing.T) {
	id := factory.UUID()
	ctx := SessionUUIDToContext(context.Background(), id)

	got, err := ContextToSessionUUID(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestContextToSessionUUIDMissing(t *testing.T) {
	_, err := ContextToSessionUUID(context.Background())
	assert.Error(t, err)
}

func TestRequestToSharedEditParams(t *testing.T) {
	t.Run("valid params", func(t *testing.T) {
		req := factory.JSONRPCRequest(entity.MethodSharedEdit, entity.SharedEditParams{
			URI:   "file:///repo/a.go",
			Epoch: 3,
		})
		params, err := RequestToSharedEditParams(req)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), params.Epoch)
	})

	t.Run("malformed params", func(t *testing.T) {
		req := factory.JSONRPCRequest(entity.MethodSharedEdit, "not an object")
		_, err := RequestToSharedEditParams(req)
		assert.Error(t, err)
	})
}
