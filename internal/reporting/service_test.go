package reporting

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ren887400-crypto/manhwa/internal/core/storage"
)

// readerStub implements storage.StatsReader with canned data per method.
type readerStub struct {
	overview  *storage.Overview
	daily     []storage.DateCount
	hourly    []storage.HourCount
	popular   []storage.PopularPage
	recent    []storage.RecentView
	devices   []storage.DimensionCount
	countries []storage.DimensionCount

	popularLimit int
	recentLimit  int

	err error
}

func (r *readerStub) Overview(context.Context) (*storage.Overview, error) {
	return r.overview, r.err
}

func (r *readerStub) DailyViews(context.Context) ([]storage.DateCount, error) {
	return r.daily, r.err
}

func (r *readerStub) HourlyViews(context.Context) ([]storage.HourCount, error) {
	return r.hourly, r.err
}

func (r *readerStub) PopularPages(_ context.Context, limit int) ([]storage.PopularPage, error) {
	r.popularLimit = limit
	return r.popular, r.err
}

func (r *readerStub) RecentViews(_ context.Context, limit int) ([]storage.RecentView, error) {
	r.recentLimit = limit
	return r.recent, r.err
}

func (r *readerStub) ViewsByDevice(context.Context) ([]storage.DimensionCount, error) {
	return r.devices, r.err
}

func (r *readerStub) ViewsByCountry(context.Context) ([]storage.DimensionCount, error) {
	return r.countries, r.err
}

func TestService_ViewsByDevicePercentages(t *testing.T) {
	svc := NewService(&readerStub{
		devices: []storage.DimensionCount{
			{Label: "Mobile", Views: 2},
			{Label: "Desktop", Views: 1},
		},
	})

	stats, err := svc.ViewsByDevice(context.Background())
	require.NoError(t, err)
	require.Equal(t, []DeviceStat{
		{Device: "Mobile", Views: 2, Percentage: 66.67},
		{Device: "Desktop", Views: 1, Percentage: 33.33},
	}, stats)

	// The returned views always sum to the full total.
	var sum int64
	for _, d := range stats {
		sum += d.Views
	}
	require.Equal(t, int64(3), sum)
}

func TestService_ViewsByDeviceZeroTotal(t *testing.T) {
	svc := NewService(&readerStub{})

	stats, err := svc.ViewsByDevice(context.Background())
	require.NoError(t, err)
	require.Empty(t, stats)
}

func TestService_ViewsByDeviceSingleRowIsHundredPercent(t *testing.T) {
	svc := NewService(&readerStub{
		devices: []storage.DimensionCount{{Label: "Mobile", Views: 1}},
	})

	stats, err := svc.ViewsByDevice(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 1)
	require.Equal(t, float64(100), stats[0].Percentage)
}

func TestService_ViewsByCountryTruncatesAfterTotalling(t *testing.T) {
	counts := make([]storage.DimensionCount, 12)
	for i := range counts {
		counts[i] = storage.DimensionCount{
			Label: string(rune('A' + i)),
			// 12 countries, 1 view each: every percentage is against 12.
			Views: 1,
		}
	}

	svc := NewService(&readerStub{countries: counts})

	stats, err := svc.ViewsByCountry(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 10)
	for _, cs := range stats {
		require.Equal(t, 8.33, cs.Percentage)
	}
}

func TestService_EmptyListsAreNonNil(t *testing.T) {
	svc := NewService(&readerStub{})

	daily, err := svc.DailyViews(context.Background())
	require.NoError(t, err)
	require.NotNil(t, daily)
	require.Empty(t, daily)

	hourly, err := svc.HourlyViews(context.Background())
	require.NoError(t, err)
	require.NotNil(t, hourly)

	popular, err := svc.PopularPages(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, popular)

	recent, err := svc.RecentViews(context.Background(), 20)
	require.NoError(t, err)
	require.NotNil(t, recent)
}

func TestService_SummarizeCombinesAllReads(t *testing.T) {
	stub := &readerStub{
		overview: &storage.Overview{TotalViews: 3, UniquePages: 2, TodayViews: 3},
		daily:    []storage.DateCount{{Date: "2026-08-30", Views: 3}},
		popular:  []storage.PopularPage{{PagePath: "/home", PageTitle: "Home", ViewCount: 2}},
		devices:  []storage.DimensionCount{{Label: "Mobile", Views: 3}},
		countries: []storage.DimensionCount{
			{Label: "US", Views: 2},
			{Label: "JP", Views: 1},
		},
	}
	svc := NewService(stub)

	summary, err := svc.Summarize(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(3), summary.Overview.TotalViews)
	require.Len(t, summary.Daily, 1)
	require.Len(t, summary.Popular, 1)
	require.Equal(t, 10, stub.popularLimit)
	require.Equal(t, float64(100), summary.Devices[0].Percentage)
	require.Equal(t, 66.67, summary.Countries[0].Percentage)
}

func TestService_SummarizePropagatesFirstError(t *testing.T) {
	svc := NewService(&readerStub{err: errors.New("db down")})

	_, err := svc.Summarize(context.Background())
	require.Error(t, err)
	require.ErrorContains(t, err, "db down")
}
