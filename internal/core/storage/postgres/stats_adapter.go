package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ren887400-crypto/manhwa/internal/core/storage"
)

// StatsAdapter implements storage.StatsReader using PostgreSQL.
// All queries are read-only over the raw table and the counter tables;
// reads run at the engine's default isolation, stale relative to in-flight
// writes is fine.
type StatsAdapter struct {
	db *sql.DB
}

// NewStatsAdapter creates a new StatsAdapter sharing the given connection.
func NewStatsAdapter(db *sql.DB) *StatsAdapter {
	return &StatsAdapter{db: db}
}

// Overview returns the headline numbers from one round trip.
func (a *StatsAdapter) Overview(ctx context.Context) (*storage.Overview, error) {
	var o storage.Overview
	err := a.db.QueryRowContext(ctx, queryOverview).Scan(
		&o.TotalViews,
		&o.UniquePages,
		&o.TodayViews,
		&o.YesterdayViews,
	)
	if err != nil {
		return nil, fmt.Errorf("query overview: %w", err)
	}
	return &o, nil
}

// DailyViews returns the trailing 30-day window, ascending by date.
func (a *StatsAdapter) DailyViews(ctx context.Context) ([]storage.DateCount, error) {
	rows, err := a.db.QueryContext(ctx, queryDailyViews)
	if err != nil {
		return nil, fmt.Errorf("query daily views: %w", err)
	}
	defer rows.Close()

	var results []storage.DateCount
	for rows.Next() {
		var day time.Time
		var views int64
		if err := rows.Scan(&day, &views); err != nil {
			return nil, fmt.Errorf("scan daily views row: %w", err)
		}
		results = append(results, storage.DateCount{
			Date:  day.Format("2006-01-02"),
			Views: views,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily views: %w", err)
	}
	return results, nil
}

// HourlyViews returns today's hour buckets, ascending by hour.
func (a *StatsAdapter) HourlyViews(ctx context.Context) ([]storage.HourCount, error) {
	rows, err := a.db.QueryContext(ctx, queryHourlyViews)
	if err != nil {
		return nil, fmt.Errorf("query hourly views: %w", err)
	}
	defer rows.Close()

	var results []storage.HourCount
	for rows.Next() {
		var hc storage.HourCount
		if err := rows.Scan(&hc.Hour, &hc.Views); err != nil {
			return nil, fmt.Errorf("scan hourly views row: %w", err)
		}
		results = append(results, hc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hourly views: %w", err)
	}
	return results, nil
}

// PopularPages returns the top-limit counter rows by view count.
func (a *StatsAdapter) PopularPages(ctx context.Context, limit int) ([]storage.PopularPage, error) {
	rows, err := a.db.QueryContext(ctx, queryPopularPages, limit)
	if err != nil {
		return nil, fmt.Errorf("query popular pages: %w", err)
	}
	defer rows.Close()

	var results []storage.PopularPage
	for rows.Next() {
		var pp storage.PopularPage
		if err := rows.Scan(&pp.PagePath, &pp.PageTitle, &pp.ViewCount); err != nil {
			return nil, fmt.Errorf("scan popular pages row: %w", err)
		}
		results = append(results, pp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate popular pages: %w", err)
	}
	return results, nil
}

// RecentViews returns the newest limit raw rows, newest first.
func (a *StatsAdapter) RecentViews(ctx context.Context, limit int) ([]storage.RecentView, error) {
	rows, err := a.db.QueryContext(ctx, queryRecentViews, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent views: %w", err)
	}
	defer rows.Close()

	var results []storage.RecentView
	for rows.Next() {
		var rv storage.RecentView
		if err := rows.Scan(&rv.PagePath, &rv.PageTitle, &rv.Timestamp); err != nil {
			return nil, fmt.Errorf("scan recent views row: %w", err)
		}
		results = append(results, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent views: %w", err)
	}
	return results, nil
}

// ViewsByDevice returns raw per-device counts, descending by views.
func (a *StatsAdapter) ViewsByDevice(ctx context.Context) ([]storage.DimensionCount, error) {
	return a.queryDimension(ctx, queryViewsByDevice, "device")
}

// ViewsByCountry returns raw per-country counts, descending.
func (a *StatsAdapter) ViewsByCountry(ctx context.Context) ([]storage.DimensionCount, error) {
	return a.queryDimension(ctx, queryViewsByCountry, "country")
}

func (a *StatsAdapter) queryDimension(ctx context.Context, query, label string) ([]storage.DimensionCount, error) {
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query views by %s: %w", label, err)
	}
	defer rows.Close()

	var results []storage.DimensionCount
	for rows.Next() {
		var dc storage.DimensionCount
		if err := rows.Scan(&dc.Label, &dc.Views); err != nil {
			return nil, fmt.Errorf("scan views by %s row: %w", label, err)
		}
		results = append(results, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate views by %s: %w", label, err)
	}
	return results, nil
}
