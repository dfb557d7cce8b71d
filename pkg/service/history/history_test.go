package history

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAssignsIDAndTimestamp(t *testing.T) {
	svc := New()

	rec := svc.Append("s1", Record{Source: "USD", Target: "EUR", Amount: 100, Result: 85, Rate: 0.85})
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.Timestamp.IsZero())

	// Pre-set fields are kept.
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rec2 := svc.Append("s1", Record{ID: "fixed-id", Timestamp: fixed})
	assert.Equal(t, "fixed-id", rec2.ID)
	assert.Equal(t, fixed, rec2.Timestamp)
}

func TestRecentBoundsAndOrder(t *testing.T) {
	svc := New()
	for i := 0; i < 15; i++ {
		svc.Append("s1", Record{Amount: float64(i)})
	}

	recent := svc.Recent("s1", 0)
	require.Len(t, recent, DisplayLimit)
	// Newest last, oldest dropped.
	assert.Equal(t, float64(5), recent[0].Amount)
	assert.Equal(t, float64(14), recent[len(recent)-1].Amount)

	all := svc.All("s1")
	assert.Len(t, all, 15)

	assert.Empty(t, svc.Recent("other-session", 0))
}

func TestSessionsAreIsolated(t *testing.T) {
	svc := New()
	svc.Append("a", Record{Amount: 1})
	svc.Append("b", Record{Amount: 2})

	assert.Len(t, svc.All("a"), 1)
	assert.Len(t, svc.All("b"), 1)
	assert.Equal(t, float64(1), svc.All("a")[0].Amount)
}

func TestExportCSV(t *testing.T) {
	svc := New()
	svc.Append("s1", Record{Source: "USD", Target: "EUR", Amount: 100, Result: 85, Rate: 0.85})
	svc.Append("s1", Record{Source: "BTC", Target: "USD", Amount: 1, Result: 0, Rate: 0, Failed: true})

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV("s1", &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"timestamp", "source", "target", "amount", "result", "rate", "failed"}, rows[0])
	assert.Equal(t, "USD", rows[1][1])
	assert.Equal(t, "100", rows[1][3])
	assert.Equal(t, "true", rows[2][6])
}

func TestConcurrentAppends(t *testing.T) {
	svc := New()
	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 20; j++ {
				svc.Append("s1", Record{Amount: float64(n*100 + j)})
			}
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
	assert.Len(t, svc.All("s1"), 200)
}
