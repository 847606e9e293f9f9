package core

import (
	"context"
	"fmt"
	"math"

	"interntrack.com/interntrack/core/model"
	"interntrack.com/interntrack/core/store"
)

// AttendanceStats aggregates a set of attendance records. AverageHours only
// counts records that have a computed total, i.e. closed days.
type AttendanceStats struct {
	Total        int     `json:"total"`
	Present      int     `json:"present"`
	Late         int     `json:"late"`
	Absent       int     `json:"absent"`
	AverageHours float64 `json:"averageHours"`
}

// Stats computes attendance statistics, optionally scoped to one user.
func (s *AttendanceService) Stats(ctx context.Context, userID string) (*AttendanceStats, error) {
	records, err := s.records.FindAll(ctx, store.AttendanceFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("list attendance records: %w", err)
	}

	stats := &AttendanceStats{Total: len(records)}
	sum := 0.0
	closed := 0
	for _, rec := range records {
		switch rec.Status {
		case model.StatusPresent:
			stats.Present++
		case model.StatusLate:
			stats.Late++
		case model.StatusAbsent:
			stats.Absent++
		}
		if rec.TotalHours != nil {
			sum += *rec.TotalHours
			closed++
		}
	}
	if closed > 0 {
		stats.AverageHours = math.Round(sum/float64(closed)*100) / 100
	}
	return stats, nil
}
