package reporting

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ren887400-crypto/manhwa/internal/core/storage"
)

// countryLimit caps the country breakdown; percentages are still taken
// against the full total before truncation.
const countryLimit = 10

// summaryPopularLimit is how many popular pages the combined dashboard
// payload carries.
const summaryPopularLimit = 10

// Service implements the read-only stats layer over the store.
// It holds no state of its own; everything lives in the store and the
// counter tables maintained by the write path.
type Service struct {
	reader storage.StatsReader
}

// NewService creates a new reporting service.
func NewService(reader storage.StatsReader) *Service {
	if reader == nil {
		panic("reporting: reader must not be nil")
	}
	return &Service{reader: reader}
}

// Overview returns the headline numbers.
func (s *Service) Overview(ctx context.Context) (*storage.Overview, error) {
	return s.reader.Overview(ctx)
}

// DailyViews returns the trailing 30-day window, ascending by date.
func (s *Service) DailyViews(ctx context.Context) ([]storage.DateCount, error) {
	rows, err := s.reader.DailyViews(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []storage.DateCount{}
	}
	return rows, nil
}

// HourlyViews returns today's hour buckets, ascending by hour.
func (s *Service) HourlyViews(ctx context.Context) ([]storage.HourCount, error) {
	rows, err := s.reader.HourlyViews(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []storage.HourCount{}
	}
	return rows, nil
}

// PopularPages returns the top-limit pages by view count.
func (s *Service) PopularPages(ctx context.Context, limit int) ([]storage.PopularPage, error) {
	rows, err := s.reader.PopularPages(ctx, limit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []storage.PopularPage{}
	}
	return rows, nil
}

// RecentViews returns the newest limit page views.
func (s *Service) RecentViews(ctx context.Context, limit int) ([]storage.RecentView, error) {
	rows, err := s.reader.RecentViews(ctx, limit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []storage.RecentView{}
	}
	return rows, nil
}

// ViewsByDevice returns the device breakdown with percentages.
func (s *Service) ViewsByDevice(ctx context.Context) ([]DeviceStat, error) {
	counts, err := s.reader.ViewsByDevice(ctx)
	if err != nil {
		return nil, err
	}

	total := sumViews(counts)
	stats := make([]DeviceStat, len(counts))
	for i, dc := range counts {
		stats[i] = DeviceStat{
			Device:     dc.Label,
			Views:      dc.Views,
			Percentage: percentage(dc.Views, total),
		}
	}
	return stats, nil
}

// ViewsByCountry returns the country breakdown with percentages, capped at
// the top ten countries by views.
func (s *Service) ViewsByCountry(ctx context.Context) ([]CountryStat, error) {
	counts, err := s.reader.ViewsByCountry(ctx)
	if err != nil {
		return nil, err
	}

	total := sumViews(counts)
	if len(counts) > countryLimit {
		counts = counts[:countryLimit]
	}

	stats := make([]CountryStat, len(counts))
	for i, dc := range counts {
		stats[i] = CountryStat{
			Country:    dc.Label,
			Views:      dc.Views,
			Percentage: percentage(dc.Views, total),
		}
	}
	return stats, nil
}

// Summarize fans out the dashboard reads concurrently and combines them.
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	var summary Summary

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		o, err := s.Overview(gctx)
		if err != nil {
			return fmt.Errorf("summary overview: %w", err)
		}
		summary.Overview = o
		return nil
	})
	g.Go(func() error {
		rows, err := s.DailyViews(gctx)
		if err != nil {
			return fmt.Errorf("summary daily views: %w", err)
		}
		summary.Daily = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.PopularPages(gctx, summaryPopularLimit)
		if err != nil {
			return fmt.Errorf("summary popular pages: %w", err)
		}
		summary.Popular = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.ViewsByDevice(gctx)
		if err != nil {
			return fmt.Errorf("summary device breakdown: %w", err)
		}
		summary.Devices = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.ViewsByCountry(gctx)
		if err != nil {
			return fmt.Errorf("summary country breakdown: %w", err)
		}
		summary.Countries = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &summary, nil
}

func sumViews(counts []storage.DimensionCount) int64 {
	var total int64
	for _, dc := range counts {
		total += dc.Views
	}
	return total
}

// percentage computes views*100/total rounded half-up to two decimal
// places. A zero total yields 0 rather than a division.
func percentage(views, total int64) float64 {
	if total == 0 {
		return 0
	}
	pct := decimal.NewFromInt(views).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(total)).
		Round(2)
	return pct.InexactFloat64()
}
