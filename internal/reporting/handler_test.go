package reporting

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ren887400-crypto/manhwa/internal/core/storage"
)

func newStatsRouter(stub *readerStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewService(stub).RegisterRoutes(r)
	return r
}

func doGet(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestHandleOverview(t *testing.T) {
	r := newStatsRouter(&readerStub{
		overview: &storage.Overview{
			TotalViews:     100,
			UniquePages:    7,
			TodayViews:     11,
			YesterdayViews: 23,
		},
	})

	resp := doGet(t, r, "/api/stats/overview")
	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]int64
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Equal(t, int64(100), body["total_views"])
	require.Equal(t, int64(7), body["unique_pages"])
	require.Equal(t, int64(11), body["today_views"])
	require.Equal(t, int64(23), body["yesterday_views"])
}

func TestHandleDailyViews_EmptyIsJSONArray(t *testing.T) {
	r := newStatsRouter(&readerStub{})

	resp := doGet(t, r, "/api/stats/daily")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "[]", resp.Body.String())
}

func TestHandlePopularPages_LimitParsing(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantLimit int
	}{
		{"default", "/api/stats/popular", 10},
		{"explicit", "/api/stats/popular?limit=3", 3},
		{"garbage falls back", "/api/stats/popular?limit=abc", 10},
		{"non-positive falls back", "/api/stats/popular?limit=-2", 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := &readerStub{}
			r := newStatsRouter(stub)

			resp := doGet(t, r, tc.path)
			require.Equal(t, http.StatusOK, resp.Code)
			require.Equal(t, tc.wantLimit, stub.popularLimit)
		})
	}
}

func TestHandleRecentViews_DefaultLimit(t *testing.T) {
	stub := &readerStub{
		recent: []storage.RecentView{
			{PagePath: "/home", PageTitle: "Home", Timestamp: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)},
		},
	}
	r := newStatsRouter(stub)

	resp := doGet(t, r, "/api/stats/recent")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, 20, stub.recentLimit)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	require.Equal(t, "/home", rows[0]["page_path"])
}

func TestHandleViewsByDevice(t *testing.T) {
	r := newStatsRouter(&readerStub{
		devices: []storage.DimensionCount{{Label: "Mobile", Views: 1}},
	})

	resp := doGet(t, r, "/api/stats/device")
	require.Equal(t, http.StatusOK, resp.Code)

	var rows []DeviceStat
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &rows))
	require.Equal(t, []DeviceStat{{Device: "Mobile", Views: 1, Percentage: 100}}, rows)
}

func TestHandleViewsByCountry(t *testing.T) {
	r := newStatsRouter(&readerStub{
		countries: []storage.DimensionCount{
			{Label: "US", Views: 3},
			{Label: "JP", Views: 1},
		},
	})

	resp := doGet(t, r, "/api/stats/country")
	require.Equal(t, http.StatusOK, resp.Code)

	var rows []CountryStat
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &rows))
	require.Equal(t, []CountryStat{
		{Country: "US", Views: 3, Percentage: 75},
		{Country: "JP", Views: 1, Percentage: 25},
	}, rows)
}

func TestHandlers_StoreFailureReturns500(t *testing.T) {
	r := newStatsRouter(&readerStub{err: errors.New("db down")})

	for _, path := range []string{
		"/api/stats/overview",
		"/api/stats/daily",
		"/api/stats/hourly",
		"/api/stats/popular",
		"/api/stats/recent",
		"/api/stats/device",
		"/api/stats/country",
		"/api/stats/summary",
	} {
		resp := doGet(t, r, path)
		require.Equal(t, http.StatusInternalServerError, resp.Code, "path %s", path)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		require.NotEmpty(t, body["error"], "path %s", path)
	}
}

func TestHandleSummary(t *testing.T) {
	r := newStatsRouter(&readerStub{
		overview: &storage.Overview{TotalViews: 1, UniquePages: 1, TodayViews: 1},
		daily:    []storage.DateCount{{Date: "2026-08-30", Views: 1}},
		popular:  []storage.PopularPage{{PagePath: "/home", ViewCount: 1}},
		devices:  []storage.DimensionCount{{Label: "Mobile", Views: 1}},
		countries: []storage.DimensionCount{
			{Label: "US", Views: 1},
		},
	})

	resp := doGet(t, r, "/api/stats/summary")
	require.Equal(t, http.StatusOK, resp.Code)

	var summary Summary
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &summary))
	require.Equal(t, int64(1), summary.Overview.TotalViews)
	require.Len(t, summary.Devices, 1)
	require.Equal(t, float64(100), summary.Devices[0].Percentage)
}
