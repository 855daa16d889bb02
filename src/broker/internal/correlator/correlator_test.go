package correlator

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/multiedit/lsp-broker/src/broker/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRegisterResolve(t *testing.T) {
	c := New()
	serverID := uuid.Must(uuid.NewV4())

	done := c.Register(serverID, "req-1")
	assert.True(t, c.Pending("req-1"))
	assert.Equal(t, 1, c.Count())

	ok := c.Resolve("req-1", Result{Payload: []byte(`"ok"`)})
	require.True(t, ok)
	assert.False(t, c.Pending("req-1"))
	assert.Equal(t, 0, c.Count())

	res := <-done
	assert.NoError(t, res.Err)
	assert.Equal(t, []byte(`"ok"`), res.Payload)
}

func TestResolveUnknown(t *testing.T) {
	c := New()
	assert.False(t, c.Resolve("missing", Result{}))
}

func TestResolveTwice(t *testing.T) {
	c := New()
	serverID := uuid.Must(uuid.NewV4())

	done := c.Register(serverID, "req-1")
	require.True(t, c.Resolve("req-1", Result{}))

	// Second resolution finds no entry and must not re-deliver.
	assert.False(t, c.Resolve("req-1", Result{}))
	<-done
	select {
	case <-done:
		t.Fatal("result delivered twice")
	default:
	}
}

func TestCancelServer(t *testing.T) {
	c := New()
	serverA := uuid.Must(uuid.NewV4())
	serverB := uuid.Must(uuid.NewV4())

	doneA1 := c.Register(serverA, "a-1")
	doneA2 := c.Register(serverA, "a-2")
	doneB := c.Register(serverB, "b-1")

	cancelled := c.CancelServer(serverA)
	assert.Equal(t, 2, cancelled)

	for _, done := range []<-chan Result{doneA1, doneA2} {
		res := <-done
		require.Error(t, res.Err)
		assert.True(t, errors.IsRequestCancelled(res.Err))
	}

	// The other server's entry is untouched and still resolvable.
	assert.True(t, c.Pending("b-1"))
	require.True(t, c.Resolve("b-1", Result{}))
	res := <-doneB
	assert.NoError(t, res.Err)
}

func TestCancelServerEmpty(t *testing.T) {
	c := New()
	assert.Equal(t, 0, c.CancelServer(uuid.Must(uuid.NewV4())))
}

func TestLateResolutionAfterCancel(t *testing.T) {
	c := New()
	serverID := uuid.Must(uuid.NewV4())

	done := c.Register(serverID, "req-1")
	c.CancelServer(serverID)

	// A reply arriving after cancellation resolves to nobody.
	assert.False(t, c.Resolve("req-1", Result{Payload: []byte(`"late"`)}))
	res := <-done
	assert.True(t, errors.IsRequestCancelled(res.Err))
}
