package v1

import (
	"fmt"
	"strings"
	"time"
)

// Device type labels stored on a page view. Derived from the user-agent
// string at ingestion time, never recomputed afterwards.
const (
	DeviceMobile  = "Mobile"
	DeviceTablet  = "Tablet"
	DeviceDesktop = "Desktop"
	DeviceUnknown = "Unknown"
)

// CountryUnknown is stored when the trusted geo header is absent.
const CountryUnknown = "Unknown"

// PageView is the atomic unit of the system: one tracked view of one page.
// Rows are immutable once written; the per-page and per-day counters are
// maintained in the same transaction as the insert.
type PageView struct {
	// ID is the surrogate key assigned by the database (BIGSERIAL).
	// Zero until the row is persisted.
	ID int64 `json:"-"`

	// PagePath is the tracked path (e.g. "/series/42/chapter-3").
	// This field is REQUIRED; an empty path fails the whole ingestion.
	PagePath string `json:"page_path"`

	// PageTitle is the human-readable title as reported by the client.
	// Optional; the popular-pages counter keeps the last-seen value.
	PageTitle string `json:"page_title"`

	// Timestamp is the server-assigned creation instant. Set by the
	// database default on insert, not by the client.
	Timestamp time.Time `json:"timestamp"`

	// UserAgent is the raw user-agent header. May be empty.
	UserAgent string `json:"-"`

	// Referrer is the referring URL as reported by the client. Optional.
	Referrer string `json:"referrer,omitempty"`

	// DeviceType is one of the Device* constants, derived from UserAgent.
	DeviceType string `json:"device_type"`

	// Country is the ISO-ish country code from the trusted geo header,
	// or CountryUnknown.
	Country string `json:"country"`
}

// TrackRequest is the JSON body of a track call. Field names match the
// client tracker payload.
type TrackRequest struct {
	PagePath  string `json:"pagePath"`
	PageTitle string `json:"pageTitle"`
	Referrer  string `json:"referrer"`
}

// Validate ensures the request carries the required fields.
func (r *TrackRequest) Validate() error {
	if strings.TrimSpace(r.PagePath) == "" {
		return fmt.Errorf("pagePath is required")
	}
	return nil
}
