package exchange

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/quotly/quotly/pkg/domain"
)

// DefaultSeriesDays is the series length when the caller does not ask for one.
const DefaultSeriesDays = 7

// HistoricalSeries fabricates a daily rate series around the current rate,
// varying each point by up to ±5%. Every point is tagged Simulated; no
// historical endpoint is queried and this data must never be presented as
// real market history.
func (s *Service) HistoricalSeries(ctx context.Context, source, target string, days int) ([]domain.HistoricalPoint, error) {
	if days <= 0 {
		days = DefaultSeriesDays
	}

	quote, err := s.Resolve(ctx, source, target)
	if err != nil {
		return nil, err
	}
	if quote.Error {
		return nil, fmt.Errorf("no current rate to simulate around: %s", quote.ErrorDetail)
	}

	today := time.Now()
	points := make([]domain.HistoricalPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		variance := rand.Float64()*0.10 - 0.05
		points = append(points, domain.HistoricalPoint{
			Date:      today.AddDate(0, 0, -i).Format("2006-01-02"),
			Rate:      quote.Rate * (1 + variance),
			Simulated: true,
		})
	}
	return points, nil
}
