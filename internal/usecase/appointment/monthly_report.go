package appointment

import (
	"context"
	"fmt"
	"sort"
	"time"

	domain "github.com/barberking/booking-api/internal/domain/appointment"
)

// MonthlyReportRow is the per-month rollup over archived appointments.
// Revenue counts completed visits only; other statuses count toward total.
type MonthlyReportRow struct {
	Month     string  `json:"month"`
	Completed int     `json:"completed"`
	Cancelled int     `json:"cancelled"`
	Total     int     `json:"total"`
	Revenue   float64 `json:"revenue"`
}

type MonthlyReport struct {
	repo domain.Repository
}

func NewMonthlyReport(repo domain.Repository) *MonthlyReport {
	return &MonthlyReport{repo: repo}
}

// Execute groups archived history by calendar month of the start timestamp,
// newest month first. The window is months*30 days back from now, matching
// how the reports were always cut.
func (uc *MonthlyReport) Execute(
	ctx context.Context,
	months int,
	now time.Time,
) ([]MonthlyReportRow, error) {

	if months <= 0 {
		months = 12
	}

	from := now.Add(-time.Duration(months) * 30 * 24 * time.Hour)

	history, err := uc.repo.QueryHistory(ctx, from)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]*MonthlyReportRow)
	for _, ap := range history {
		start := ap.StartTime.In(now.Location())
		key := fmt.Sprintf("%04d-%02d", start.Year(), int(start.Month()))

		row, ok := byMonth[key]
		if !ok {
			row = &MonthlyReportRow{Month: key}
			byMonth[key] = row
		}

		row.Total++
		switch domain.Status(ap.Status) {
		case domain.StatusCompleted:
			row.Completed++
			row.Revenue += ap.Price
		case domain.StatusCancelled:
			row.Cancelled++
		}
	}

	rows := make([]MonthlyReportRow, 0, len(byMonth))
	for _, row := range byMonth {
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Month > rows[j].Month
	})

	return rows, nil
}
