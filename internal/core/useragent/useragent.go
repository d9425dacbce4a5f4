// Package useragent classifies raw user-agent strings into coarse device types.
package useragent

import (
	"strings"

	v1 "github.com/ren887400-crypto/manhwa/internal/api/v1"
)

var tabletMarkers = []string{"tablet", "ipad", "playbook", "silk"}

var mobileMarkers = []string{
	"mobile", "iphone", "ipod", "blackberry",
	"opera mini", "iemobile", "wpdesktop",
}

// DetectDevice maps a user-agent string to one of the v1.Device* labels.
// Matching is case-insensitive on substrings. Tablets are checked first
// because tablet user agents routinely contain mobile markers too; Android
// without "mobi" is a tablet by convention. An empty string is Unknown.
func DetectDevice(ua string) string {
	if ua == "" {
		return v1.DeviceUnknown
	}

	lower := strings.ToLower(ua)

	for _, m := range tabletMarkers {
		if strings.Contains(lower, m) {
			return v1.DeviceTablet
		}
	}
	if strings.Contains(lower, "android") && !strings.Contains(lower, "mobi") {
		return v1.DeviceTablet
	}

	for _, m := range mobileMarkers {
		if strings.Contains(lower, m) {
			return v1.DeviceMobile
		}
	}

	return v1.DeviceDesktop
}
