package watch

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSchedulerEvery(t *testing.T) {
	s, err := NewScheduler(nil)
	require.NoError(t, err)

	var runs atomic.Int32
	id, err := s.Every("refresh", 20*time.Millisecond, func() { runs.Add(1) })
	require.NoError(t, err)
	require.NotEmpty(t, id)

	s.Start()
	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop())
}

func TestSchedulerRejectsNonPositiveInterval(t *testing.T) {
	s, err := NewScheduler(nil)
	require.NoError(t, err)
	s.Start()
	t.Cleanup(func() { _ = s.Stop() })

	_, err = s.Every("refresh", 0, func() {})
	require.Error(t, err)
}
