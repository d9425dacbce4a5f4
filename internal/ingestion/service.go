package ingestion

import (
	"github.com/gin-gonic/gin"

	"github.com/ren887400-crypto/manhwa/internal/core/storage"
)

// countryHeader is the trusted geo header stamped by the edge proxy.
// The gateway takes it at face value; sanitizing it is the proxy's job.
const countryHeader = "CF-IPCountry"

type Service struct {
	recorder storage.EventRecorder
}

func NewService(recorder storage.EventRecorder) *Service {
	if recorder == nil {
		panic("ingestion: recorder must not be nil")
	}
	return &Service{recorder: recorder}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/track", s.TrackHandler)
}
