package ingestion

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/ren887400-crypto/manhwa/internal/api/v1"
	httperr "github.com/ren887400-crypto/manhwa/internal/core/errors"
	"github.com/ren887400-crypto/manhwa/internal/core/storage"
	"github.com/ren887400-crypto/manhwa/internal/core/useragent"
)

const (
	msgTracked       = "Page view tracked"
	msgInvalidJSON   = "invalid JSON body"
	msgPersistFailed = "failed to track page view"
)

// TrackHandler handles HTTP POST requests for page-view tracking.
// The raw insert and both counter updates happen in one transaction; a
// failure anywhere leaves nothing behind, and nothing is retried.
func (s *Service) TrackHandler(c *gin.Context) {
	var req v1.TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("Invalid track request body", "error", err)
		c.JSON(http.StatusBadRequest, httperr.TrackResponse{Success: false, Error: msgInvalidJSON})
		return
	}

	if err := req.Validate(); err != nil {
		slog.Warn("Track request failed validation", "error", err)
		c.JSON(http.StatusBadRequest, httperr.TrackResponse{Success: false, Error: err.Error()})
		return
	}

	ua := c.GetHeader("User-Agent")
	country := c.GetHeader(countryHeader)
	if country == "" {
		country = v1.CountryUnknown
	}

	pv := &v1.PageView{
		PagePath:   req.PagePath,
		PageTitle:  req.PageTitle,
		UserAgent:  ua,
		Referrer:   req.Referrer,
		DeviceType: useragent.DetectDevice(ua),
		Country:    country,
	}

	if err := s.recorder.RecordPageView(c.Request.Context(), pv); err != nil {
		if errors.Is(err, storage.ErrValidation) {
			slog.Warn("Page view rejected by store", "error", err, "page_path", req.PagePath)
			c.JSON(http.StatusBadRequest, httperr.TrackResponse{Success: false, Error: err.Error()})
			return
		}

		slog.Error("Failed to persist page view", "error", err, "page_path", req.PagePath)
		c.JSON(http.StatusInternalServerError, httperr.TrackResponse{Success: false, Error: msgPersistFailed})
		return
	}

	slog.Info("Tracked page view",
		"id", pv.ID,
		"page_path", pv.PagePath,
		"device_type", pv.DeviceType,
		"country", pv.Country)

	c.JSON(http.StatusOK, httperr.TrackResponse{Success: true, Message: msgTracked})
}
