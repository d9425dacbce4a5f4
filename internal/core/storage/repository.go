package storage

import (
	"context"
	"errors"
	"time"

	v1 "github.com/ren887400-crypto/manhwa/internal/api/v1"
)

// ErrValidation is returned when a write is rejected before touching the
// database (e.g. empty page path). Nothing is persisted in that case.
var ErrValidation = errors.New("page view failed validation")

// EventRecorder defines the write side of the store: one page view plus its
// two derived counters, committed as a single transaction.
type EventRecorder interface {
	// RecordPageView appends the raw page view and bumps the popular-pages
	// and daily-visits counters atomically. On success pv.ID and
	// pv.Timestamp are populated from the database.
	RecordPageView(ctx context.Context, pv *v1.PageView) error
}

// StatsReader defines the read side: pure queries over current store state.
// All date arithmetic uses the database clock, not the caller's.
type StatsReader interface {
	Overview(ctx context.Context) (*Overview, error)
	DailyViews(ctx context.Context) ([]DateCount, error)
	HourlyViews(ctx context.Context) ([]HourCount, error)
	PopularPages(ctx context.Context, limit int) ([]PopularPage, error)
	RecentViews(ctx context.Context, limit int) ([]RecentView, error)
	ViewsByDevice(ctx context.Context) ([]DimensionCount, error)
	// ViewsByCountry returns every country's count; callers truncate.
	ViewsByCountry(ctx context.Context) ([]DimensionCount, error)
}

// Overview is the headline-numbers read model.
type Overview struct {
	TotalViews     int64 `json:"total_views"`
	UniquePages    int64 `json:"unique_pages"`
	TodayViews     int64 `json:"today_views"`
	YesterdayViews int64 `json:"yesterday_views"`
}

// DateCount is one day of the trailing daily-views window. Date is
// formatted "2006-01-02"; days with zero views are absent, not zero.
type DateCount struct {
	Date  string `json:"date"`
	Views int64  `json:"views"`
}

// HourCount is one hour bucket of today's views, Hour formatted "15:00".
type HourCount struct {
	Hour  string `json:"hour"`
	Views int64  `json:"views"`
}

// PopularPage is one row of the per-page counter table.
type PopularPage struct {
	PagePath  string `json:"page_path"`
	PageTitle string `json:"page_title"`
	ViewCount int64  `json:"view_count"`
}

// RecentView is one row of the most-recent-views listing.
type RecentView struct {
	PagePath  string    `json:"page_path"`
	PageTitle string    `json:"page_title"`
	Timestamp time.Time `json:"timestamp"`
}

// DimensionCount is a raw views-per-label row (device type or country).
// Percentages are computed by the reporting layer, not in SQL.
type DimensionCount struct {
	Label string
	Views int64
}
