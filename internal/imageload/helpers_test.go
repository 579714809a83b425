package imageload

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdinline/internal/metrics"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	return img
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(w, h)))
	return buf.Bytes()
}

// countingRecorder counts fetch results and pass outcomes.
type countingRecorder struct {
	metrics.NoopRecorder

	mu       sync.Mutex
	results  map[metrics.ResultLabel]int
	outcomes map[metrics.PassOutcome]int
	retries  int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		results:  map[metrics.ResultLabel]int{},
		outcomes: map[metrics.PassOutcome]int{},
	}
}

func (c *countingRecorder) IncFetchResult(r metrics.ResultLabel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[r]++
}

func (c *countingRecorder) IncPassOutcome(o metrics.PassOutcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outcomes[o]++
}

func (c *countingRecorder) IncFetchRetry(string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.retries++
}

func (c *countingRecorder) outcome(o metrics.PassOutcome) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcomes[o]
}

func (c *countingRecorder) result(r metrics.ResultLabel) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results[r]
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond)
}
