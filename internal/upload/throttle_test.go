package upload

import (
	"bytes"
	"io"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualClock struct {
	t time.Time
}

func (c *manualClock) Now() time.Time          { return c.t }
func (c *manualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestThrottle_BoundsUpdatesAndDeliversFinal(t *testing.T) {
	gaps := []time.Duration{1, 7, 13, 20, 33, 49}

	for _, gap := range gaps {
		gap := gap * time.Millisecond
		t.Run(gap.String(), func(t *testing.T) {
			clock := &manualClock{t: time.Unix(0, 0)}
			var observed []Progress
			th := NewThrottleWithClock(50*time.Millisecond, func(p Progress) {
				observed = append(observed, p)
			}, clock.Now)

			const total = 1000
			const events = 200
			start := clock.Now()
			for i := 1; i <= events; i++ {
				th.Report(Progress{Loaded: int64(i * total / events), Total: total})
				if i < events {
					clock.Advance(gap)
				}
			}
			elapsed := clock.Now().Sub(start)

			bound := int(math.Ceil(float64(elapsed)/float64(50*time.Millisecond))) + 1
			assert.LessOrEqual(t, len(observed), bound)
			require.NotEmpty(t, observed)
			last := observed[len(observed)-1]
			assert.Equal(t, int64(total), last.Loaded)
			assert.Equal(t, 100.0, last.Percent())
		})
	}
}

func TestThrottle_FinalInsideWindowIsForwarded(t *testing.T) {
	clock := &manualClock{t: time.Unix(0, 0)}
	var observed []Progress
	th := NewThrottleWithClock(50*time.Millisecond, func(p Progress) { observed = append(observed, p) }, clock.Now)

	assert.True(t, th.Report(Progress{Loaded: 10, Total: 100}))
	clock.Advance(5 * time.Millisecond)
	assert.False(t, th.Report(Progress{Loaded: 60, Total: 100}))
	clock.Advance(5 * time.Millisecond)
	assert.True(t, th.Report(Progress{Loaded: 100, Total: 100}))
	assert.False(t, th.Report(Progress{Loaded: 100, Total: 100}))

	require.Len(t, observed, 2)
	assert.Equal(t, 100.0, observed[1].Percent())
}

func TestThrottle_FlushForwardsPending(t *testing.T) {
	clock := &manualClock{t: time.Unix(0, 0)}
	var observed []Progress
	th := NewThrottleWithClock(50*time.Millisecond, func(p Progress) { observed = append(observed, p) }, clock.Now)

	th.Report(Progress{Loaded: 1, Total: 0})
	clock.Advance(time.Millisecond)
	th.Report(Progress{Loaded: 2, Total: 0})
	th.Flush()
	th.Flush()

	require.Len(t, observed, 2)
	assert.Equal(t, int64(2), observed[1].Loaded)
}

func TestReader_ReportsFinalAtEOF(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 4096)
	var reports []Progress
	r := NewReader(bytes.NewReader(payload), int64(len(payload)), func(p Progress) {
		reports = append(reports, p)
	})

	buf := make([]byte, 1000)
	n, err := io.CopyBuffer(io.Discard, r, buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), n)

	require.NotEmpty(t, reports)
	last := reports[len(reports)-1]
	assert.True(t, last.Done())
	assert.Equal(t, int64(len(payload)), r.Loaded())

	for _, p := range reports[:len(reports)-1] {
		assert.False(t, p.Done())
	}
}

func TestReader_UnknownTotal(t *testing.T) {
	var last Progress
	r := NewReader(bytes.NewReader([]byte("hello")), 0, func(p Progress) { last = p })

	_, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, Progress{Loaded: 5, Total: 5}, last)
}
