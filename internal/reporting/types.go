package reporting

import (
	"github.com/ren887400-crypto/manhwa/internal/core/storage"
)

// DeviceStat is one row of the device breakdown. Percentage is views as a
// share of all recorded views, rounded half-up to two decimal places.
type DeviceStat struct {
	Device     string  `json:"device"`
	Views      int64   `json:"views"`
	Percentage float64 `json:"percentage"`
}

// CountryStat is one row of the country breakdown, same semantics as
// DeviceStat keyed by country code.
type CountryStat struct {
	Country    string  `json:"country"`
	Views      int64   `json:"views"`
	Percentage float64 `json:"percentage"`
}

// Summary is the one-call dashboard payload: the individual stats reads
// combined into a single response.
type Summary struct {
	Overview  *storage.Overview     `json:"overview"`
	Daily     []storage.DateCount   `json:"daily"`
	Popular   []storage.PopularPage `json:"popular_pages"`
	Devices   []DeviceStat          `json:"devices"`
	Countries []CountryStat         `json:"countries"`
}
