package scan

import (
	"fmt"
	"strings"
)

// Fixed mDNS service categories browsed on every scan. The set is
// compiled-in and corresponds to the four supported media ecosystems.
const (
	// CategoryBluesound is advertised by Bluesound players.
	CategoryBluesound = "_musc._tcp"

	// CategoryWebService is the generic HTTP service category. Volumio
	// devices advertise here without a dedicated category of their own.
	CategoryWebService = "_http._tcp"

	// CategorySpotifyConnect is advertised by Spotify Connect endpoints.
	CategorySpotifyConnect = "_spotify-connect._tcp"

	// CategoryQobuzConnect is advertised by Qobuz Connect endpoints.
	CategoryQobuzConnect = "_qobuz-connect._tcp"
)

// Categories returns the fixed set of service categories browsed during a
// scan session.
func Categories() []string {
	return []string{
		CategoryBluesound,
		CategoryWebService,
		CategorySpotifyConnect,
		CategoryQobuzConnect,
	}
}

// DeviceType classifies a device by the service category it was discovered
// through. Values are the camelCase identifiers used on the wire.
type DeviceType string

const (
	DeviceTypeBluesound      DeviceType = "bluesound"
	DeviceTypeVolumio        DeviceType = "volumio"
	DeviceTypeSpotifyConnect DeviceType = "spotifyConnect"
	DeviceTypeQobuzConnect   DeviceType = "qobuzConnect"
	DeviceTypeGeneric        DeviceType = "generic"
)

// ClassifyService maps a service category to a DeviceType. The generic web
// service category only classifies as Volumio when the advertised full name
// contains "volumio" (case-insensitive); everything unrecognized is Generic.
func ClassifyService(category, fullName string) DeviceType {
	switch category {
	case CategoryBluesound:
		return DeviceTypeBluesound
	case CategoryWebService:
		if strings.Contains(strings.ToLower(fullName), "volumio") {
			return DeviceTypeVolumio
		}
		return DeviceTypeGeneric
	case CategorySpotifyConnect:
		return DeviceTypeSpotifyConnect
	case CategoryQobuzConnect:
		return DeviceTypeQobuzConnect
	default:
		return DeviceTypeGeneric
	}
}

// ShortName derives a display name from an advertised full service name by
// taking the substring up to the first dot.
func ShortName(fullName string) string {
	name, _, _ := strings.Cut(fullName, ".")
	return name
}

// DiscoveredService is a single service resolved on a device. A device
// carries at most one entry per service category; repeat resolutions for the
// same category update the entry in place.
type DiscoveredService struct {
	// ServiceType is the mDNS service category (e.g. "_musc._tcp").
	ServiceType string `json:"serviceType"`

	// Port is the advertised service port.
	Port uint16 `json:"port"`

	// DeviceType is the classification derived from the category.
	DeviceType DeviceType `json:"deviceType"`

	// LastSeenMs is the elapsed time since scan start when this service
	// was last resolved.
	LastSeenMs uint64 `json:"lastSeenMs"`
}

// Device is a discovered network device, keyed by its IPv4 address.
type Device struct {
	// Name is the advertised name of the most recent resolver.
	Name string `json:"name"`

	// IP is the device's non-link-local IPv4 address.
	IP string `json:"ip"`

	// DiscoveryTimeMs is the minimum elapsed time since scan start across
	// every service merged into this device. It never increases.
	DiscoveryTimeMs uint64 `json:"discoveryTimeMs"`

	// Services are the services resolved on this device, one per category.
	Services []DiscoveredService `json:"services"`
}

// String returns a human-readable summary of the device.
func (d *Device) String() string {
	return fmt.Sprintf("%s (%s) with %d service(s)", d.Name, d.IP, len(d.Services))
}

// addOrUpdateService upserts the service entry for the given category.
func (d *Device) addOrUpdateService(category string, port uint16, deviceType DeviceType, elapsedMs uint64) {
	for i := range d.Services {
		if d.Services[i].ServiceType == category {
			d.Services[i].Port = port
			d.Services[i].DeviceType = deviceType
			d.Services[i].LastSeenMs = elapsedMs
			return
		}
	}
	d.Services = append(d.Services, DiscoveredService{
		ServiceType: category,
		Port:        port,
		DeviceType:  deviceType,
		LastSeenMs:  elapsedMs,
	})
}

// clone returns a deep copy safe to hand out without holding any lock.
func (d *Device) clone() Device {
	out := *d
	out.Services = make([]DiscoveredService, len(d.Services))
	copy(out.Services, d.Services)
	return out
}
