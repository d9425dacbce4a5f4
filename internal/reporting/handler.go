package reporting

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	httperr "github.com/ren887400-crypto/manhwa/internal/core/errors"
)

const (
	defaultPopularLimit = 10
	defaultRecentLimit  = 20
)

// RegisterRoutes registers all stats API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/api/stats/overview", s.HandleOverview)
	r.GET("/api/stats/daily", s.HandleDailyViews)
	r.GET("/api/stats/hourly", s.HandleHourlyViews)
	r.GET("/api/stats/popular", s.HandlePopularPages)
	r.GET("/api/stats/recent", s.HandleRecentViews)
	r.GET("/api/stats/device", s.HandleViewsByDevice)
	r.GET("/api/stats/country", s.HandleViewsByCountry)
	r.GET("/api/stats/summary", s.HandleSummary)
}

// HandleOverview handles GET /api/stats/overview.
func (s *Service) HandleOverview(c *gin.Context) {
	o, err := s.Overview(c.Request.Context())
	if err != nil {
		writeQueryError(c, "overview", err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// HandleDailyViews handles GET /api/stats/daily.
func (s *Service) HandleDailyViews(c *gin.Context) {
	rows, err := s.DailyViews(c.Request.Context())
	if err != nil {
		writeQueryError(c, "daily views", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// HandleHourlyViews handles GET /api/stats/hourly.
func (s *Service) HandleHourlyViews(c *gin.Context) {
	rows, err := s.HourlyViews(c.Request.Context())
	if err != nil {
		writeQueryError(c, "hourly views", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// HandlePopularPages handles GET /api/stats/popular?limit=N.
func (s *Service) HandlePopularPages(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), defaultPopularLimit)
	rows, err := s.PopularPages(c.Request.Context(), limit)
	if err != nil {
		writeQueryError(c, "popular pages", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// HandleRecentViews handles GET /api/stats/recent?limit=N.
func (s *Service) HandleRecentViews(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), defaultRecentLimit)
	rows, err := s.RecentViews(c.Request.Context(), limit)
	if err != nil {
		writeQueryError(c, "recent views", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// HandleViewsByDevice handles GET /api/stats/device.
func (s *Service) HandleViewsByDevice(c *gin.Context) {
	rows, err := s.ViewsByDevice(c.Request.Context())
	if err != nil {
		writeQueryError(c, "device breakdown", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// HandleViewsByCountry handles GET /api/stats/country.
func (s *Service) HandleViewsByCountry(c *gin.Context) {
	rows, err := s.ViewsByCountry(c.Request.Context())
	if err != nil {
		writeQueryError(c, "country breakdown", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// HandleSummary handles GET /api/stats/summary.
func (s *Service) HandleSummary(c *gin.Context) {
	summary, err := s.Summarize(c.Request.Context())
	if err != nil {
		writeQueryError(c, "summary", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// parseLimit returns the parsed positive limit or the fallback; bad input
// is not an error, it just gets the default.
func parseLimit(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func writeQueryError(c *gin.Context, what string, err error) {
	slog.Error("Stats query failed", "query", what, "error", err)
	c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
		ErrorType: httperr.HttpInternalError,
		Error:     err.Error(),
	})
}
