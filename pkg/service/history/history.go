// Package history keeps session-scoped conversion records. Records are
// append-only and live for the process lifetime; display is bounded to the
// most recent entries while the full sequence stays exportable.
package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DisplayLimit bounds how many records Recent returns by default.
const DisplayLimit = 10

// Record is one conversion performed in a session.
type Record struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Target    string    `json:"target"`
	Amount    float64   `json:"amount"`
	Result    float64   `json:"result"`
	Rate      float64   `json:"rate"`
	Failed    bool      `json:"failed"`
}

// Service stores conversion records per session id.
type Service struct {
	mu       sync.RWMutex
	sessions map[string][]Record
}

// New creates an empty history service.
func New() *Service {
	return &Service{sessions: make(map[string][]Record)}
}

// Append records a conversion for the session and returns the stored record
// with its assigned id.
func (s *Service) Append(sessionID string, rec Record) Record {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], rec)
	return rec
}

// Recent returns up to limit most recent records, newest last. A limit of
// zero or less falls back to DisplayLimit.
func (s *Service) Recent(sessionID string, limit int) []Record {
	if limit <= 0 {
		limit = DisplayLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.sessions[sessionID]
	if len(records) > limit {
		records = records[len(records)-limit:]
	}
	out := make([]Record, len(records))
	copy(out, records)
	return out
}

// All returns the full record sequence for a session.
func (s *Service) All(sessionID string) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.sessions[sessionID]
	out := make([]Record, len(records))
	copy(out, records)
	return out
}

// ExportCSV writes the session's full history as CSV.
func (s *Service) ExportCSV(sessionID string, w io.Writer) error {
	records := s.All(sessionID)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "source", "target", "amount", "result", "rate", "failed"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Timestamp.UTC().Format(time.RFC3339),
			rec.Source,
			rec.Target,
			fmt.Sprintf("%g", rec.Amount),
			fmt.Sprintf("%g", rec.Result),
			fmt.Sprintf("%g", rec.Rate),
			fmt.Sprintf("%t", rec.Failed),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
