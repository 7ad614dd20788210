package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBreakerIsClosed(t *testing.T) {
	b := New("vets-cache")

	assert.Equal(t, "vets-cache", b.Name())
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "closed", b.State().String())
	assert.False(t, b.IsOpen())
	assert.True(t, b.Allow())
}

func TestBreakerTransitions(t *testing.T) {
	// step is one recorded call: fail or succeed, and what the breaker should
	// report afterwards.
	type step struct {
		fail     bool
		degraded bool
		opened   bool
		closed   bool
	}
	tests := []struct {
		name  string
		opts  []Option
		steps []step
		open  bool
	}{
		{
			name: "opens on the threshold failure",
			opts: []Option{WithFailureThreshold(3)},
			steps: []step{
				{fail: true},
				{fail: true},
				{fail: true, degraded: true, opened: true},
			},
			open: true,
		},
		{
			name: "a success forgets earlier failures",
			opts: []Option{WithFailureThreshold(2)},
			steps: []step{
				{fail: true},
				{fail: false},
				{fail: true},
			},
			open: false,
		},
		{
			name: "closes after enough successes",
			opts: []Option{WithFailureThreshold(1), WithSuccessThreshold(2)},
			steps: []step{
				{fail: true, degraded: true, opened: true},
				{fail: false, degraded: true},
				{fail: false, closed: true},
			},
			open: false,
		},
		{
			name: "a failure while open restarts the success count",
			opts: []Option{WithFailureThreshold(1), WithSuccessThreshold(2)},
			steps: []step{
				{fail: true, degraded: true, opened: true},
				{fail: false, degraded: true},
				{fail: true, degraded: true},
				{fail: false, degraded: true},
			},
			open: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("vets-cache", tt.opts...)
			for i, s := range tt.steps {
				if s.fail {
					useFallback, change := b.RecordFailure()
					assert.Equal(t, s.degraded, useFallback, "step %d fallback", i)
					assert.Equal(t, s.opened, change.Opened, "step %d opened", i)
					continue
				}
				usePrimary, change := b.RecordSuccess()
				assert.Equal(t, !s.degraded, usePrimary, "step %d primary", i)
				assert.Equal(t, s.closed, change.Closed, "step %d closed", i)
			}
			assert.Equal(t, tt.open, b.IsOpen())
		})
	}
}

func TestBreakerReset(t *testing.T) {
	b := New("vets-cache", WithFailureThreshold(1))
	b.RecordFailure()
	require.True(t, b.IsOpen())

	b.Reset()

	assert.Equal(t, StateClosed, b.State())
	assert.True(t, b.Allow())
}

func TestBreakerAllowsProbeAfterCooldown(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	b := New("vets-cache", WithFailureThreshold(1), WithCooldown(time.Minute), WithClock(func() time.Time { return now }))

	b.RecordFailure()
	assert.False(t, b.Allow())

	now = now.Add(59 * time.Second)
	assert.False(t, b.Allow())

	now = now.Add(time.Second)
	assert.True(t, b.Allow())
	assert.Equal(t, StateOpen, b.State())
}
