package exchange

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoricalSeries(t *testing.T) {
	fiat := &fakeChain{name: "fiat", rates: map[string]float64{"USD/EUR": 0.85}}
	svc, _ := newTestService(fiat, &fakeChain{}, &fakeChain{})

	points, err := svc.HistoricalSeries(context.Background(), "USD", "EUR", 7)
	require.NoError(t, err)
	require.Len(t, points, 7)

	for _, p := range points {
		assert.True(t, p.Simulated)
		assert.InDelta(t, 0.85, p.Rate, 0.85*0.05+1e-9)
		_, err := time.Parse("2006-01-02", p.Date)
		assert.NoError(t, err)
	}

	// Oldest first, ending today.
	assert.Equal(t, time.Now().Format("2006-01-02"), points[len(points)-1].Date)
	assert.True(t, points[0].Date < points[len(points)-1].Date)
}

func TestHistoricalSeriesDefaultsDays(t *testing.T) {
	fiat := &fakeChain{name: "fiat", rates: map[string]float64{"USD/EUR": 0.85}}
	svc, _ := newTestService(fiat, &fakeChain{}, &fakeChain{})

	points, err := svc.HistoricalSeries(context.Background(), "USD", "EUR", 0)
	require.NoError(t, err)
	assert.Len(t, points, DefaultSeriesDays)
}

func TestHistoricalSeriesRequiresCurrentRate(t *testing.T) {
	fiat := &fakeChain{name: "fiat", err: errors.New("upstream down")}
	svc, _ := newTestService(fiat, &fakeChain{}, &fakeChain{})

	points, err := svc.HistoricalSeries(context.Background(), "USD", "EUR", 7)
	require.Error(t, err)
	assert.Nil(t, points)
	assert.Contains(t, err.Error(), "no current rate to simulate around")
}
