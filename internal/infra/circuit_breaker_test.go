package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestCB(now *time.Time) *CircuitBreaker {
	cb := NewCircuitBreaker(DefaultCBConfig("test"))
	cb.now = func() time.Time { return *now }
	return cb
}

var errRelay = errors.New("relay down")

func TestCircuitBreaker_AbreTrasFallosConsecutivos(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	cb := newTestCB(&now)

	for i := 0; i < 2; i++ {
		assert.ErrorIs(t, cb.Execute(func() error { return errRelay }), errRelay)
	}
	assert.Equal(t, CBClosed, cb.State())

	assert.ErrorIs(t, cb.Execute(func() error { return errRelay }), errRelay)
	assert.Equal(t, CBOpen, cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_ExitoReiniciaElConteo(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	cb := newTestCB(&now)

	_ = cb.Execute(func() error { return errRelay })
	_ = cb.Execute(func() error { return errRelay })
	assert.NoError(t, cb.Execute(func() error { return nil }))
	_ = cb.Execute(func() error { return errRelay })
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_SemiAbiertoTrasTimeout(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	cb := newTestCB(&now)
	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errRelay })
	}
	assert.Equal(t, CBOpen, cb.State())

	now = now.Add(2 * time.Minute)
	assert.Equal(t, CBHalfOpen, cb.State())

	// a failed probe opens it again
	_ = cb.Execute(func() error { return errRelay })
	assert.Equal(t, CBOpen, cb.State())

	now = now.Add(2 * time.Minute)
	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCBState_String(t *testing.T) {
	assert.Equal(t, "closed", CBClosed.String())
	assert.Equal(t, "open", CBOpen.String())
	assert.Equal(t, "half-open", CBHalfOpen.String())
	assert.Equal(t, "unknown", CBState(9).String())
}
