package scan

import "sync"

// Registry holds the devices discovered during the current session, keyed by
// IP address. All methods are safe for concurrent use; the lock is only held
// for the duration of a single read or mutation.
type Registry struct {
	mu      sync.Mutex
	devices map[string]*Device
}

// NewRegistry creates an empty device registry.
func NewRegistry() *Registry {
	return &Registry{devices: make(map[string]*Device)}
}

// Merge folds one resolved service into the registry and returns a deep copy
// of the resulting device record.
//
// A new record gets discoveryTimeMs = elapsedMs. An existing record keeps the
// minimum discovery time seen so far, takes the latest name unconditionally,
// and upserts the service entry for the category.
func (r *Registry) Merge(ip, name, category string, port uint16, deviceType DeviceType, elapsedMs uint64) Device {
	r.mu.Lock()
	defer r.mu.Unlock()

	device, ok := r.devices[ip]
	if !ok {
		device = &Device{
			Name:            name,
			IP:              ip,
			DiscoveryTimeMs: elapsedMs,
		}
		r.devices[ip] = device
	}

	if elapsedMs < device.DiscoveryTimeMs {
		device.DiscoveryTimeMs = elapsedMs
	}
	device.Name = name
	device.addOrUpdateService(category, port, deviceType, elapsedMs)

	return device.clone()
}

// Devices returns an independent snapshot of all current records. Order is
// unspecified.
func (r *Registry) Devices() []Device {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Device, 0, len(r.devices))
	for _, device := range r.devices {
		out = append(out, device.clone())
	}
	return out
}

// Len returns the number of devices currently recorded.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.devices)
}

// Clear discards all records.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices = make(map[string]*Device)
}
