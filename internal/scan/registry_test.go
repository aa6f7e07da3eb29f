package scan

import (
	"testing"
)

func TestRegistry_MergeCreatesDevice(t *testing.T) {
	r := NewRegistry()

	got := r.Merge("10.0.0.5", "Living Room", CategoryBluesound, 11000, DeviceTypeBluesound, 120)

	if got.IP != "10.0.0.5" || got.Name != "Living Room" {
		t.Errorf("Merge() = %+v, wrong identity", got)
	}
	if got.DiscoveryTimeMs != 120 {
		t.Errorf("DiscoveryTimeMs = %d, want 120", got.DiscoveryTimeMs)
	}
	if len(got.Services) != 1 {
		t.Fatalf("len(Services) = %d, want 1", len(got.Services))
	}
	svc := got.Services[0]
	if svc.ServiceType != CategoryBluesound || svc.Port != 11000 || svc.DeviceType != DeviceTypeBluesound || svc.LastSeenMs != 120 {
		t.Errorf("service entry = %+v", svc)
	}
}

func TestRegistry_MergeTwoCategoriesSameAddress(t *testing.T) {
	r := NewRegistry()

	r.Merge("10.0.0.5", "Living Room", CategoryBluesound, 11000, DeviceTypeBluesound, 120)
	got := r.Merge("10.0.0.5", "Living Room", CategorySpotifyConnect, 1234, DeviceTypeSpotifyConnect, 340)

	if got.DiscoveryTimeMs != 120 {
		t.Errorf("DiscoveryTimeMs = %d, want minimum 120", got.DiscoveryTimeMs)
	}
	if len(got.Services) != 2 {
		t.Fatalf("len(Services) = %d, want 2", len(got.Services))
	}
	if got.Services[0].ServiceType != CategoryBluesound || got.Services[0].LastSeenMs != 120 {
		t.Errorf("first service = %+v", got.Services[0])
	}
	if got.Services[1].ServiceType != CategorySpotifyConnect || got.Services[1].Port != 1234 || got.Services[1].LastSeenMs != 340 {
		t.Errorf("second service = %+v", got.Services[1])
	}
	if n := r.Len(); n != 1 {
		t.Errorf("Len() = %d, want 1 device", n)
	}
}

func TestRegistry_MergeSameCategoryUpdatesInPlace(t *testing.T) {
	r := NewRegistry()

	r.Merge("10.0.0.5", "old-name", CategoryWebService, 80, DeviceTypeGeneric, 200)
	got := r.Merge("10.0.0.5", "new-name", CategoryWebService, 8080, DeviceTypeVolumio, 450)

	if len(got.Services) != 1 {
		t.Fatalf("len(Services) = %d, want 1 (no duplicate per category)", len(got.Services))
	}
	svc := got.Services[0]
	if svc.Port != 8080 || svc.DeviceType != DeviceTypeVolumio || svc.LastSeenMs != 450 {
		t.Errorf("service not overwritten in place: %+v", svc)
	}
	if got.Name != "new-name" {
		t.Errorf("Name = %q, want last resolver's name", got.Name)
	}
}

func TestRegistry_DiscoveryTimeIsMonotonicMinimum(t *testing.T) {
	r := NewRegistry()

	elapsed := []uint64{300, 150, 600, 150, 90}
	want := []uint64{300, 150, 150, 150, 90}
	categories := []string{
		CategoryBluesound, CategoryWebService, CategorySpotifyConnect,
		CategoryQobuzConnect, "_airplay._tcp",
	}

	for i, ms := range elapsed {
		got := r.Merge("10.0.0.9", "dev", categories[i], 80, DeviceTypeGeneric, ms)
		if got.DiscoveryTimeMs != want[i] {
			t.Errorf("after merge %d: DiscoveryTimeMs = %d, want %d", i, got.DiscoveryTimeMs, want[i])
		}
	}
}

func TestRegistry_DevicesReturnsIndependentSnapshot(t *testing.T) {
	r := NewRegistry()
	r.Merge("10.0.0.5", "dev", CategoryBluesound, 11000, DeviceTypeBluesound, 100)

	snap := r.Devices()
	if len(snap) != 1 {
		t.Fatalf("len(Devices()) = %d, want 1", len(snap))
	}
	snap[0].Name = "mutated"
	snap[0].Services[0].Port = 1

	again := r.Devices()
	if again[0].Name != "dev" || again[0].Services[0].Port != 11000 {
		t.Errorf("snapshot mutation leaked into the registry: %+v", again[0])
	}
}

func TestRegistry_Clear(t *testing.T) {
	r := NewRegistry()
	r.Merge("10.0.0.5", "dev", CategoryBluesound, 11000, DeviceTypeBluesound, 100)
	r.Merge("10.0.0.6", "dev2", CategoryWebService, 80, DeviceTypeGeneric, 200)

	r.Clear()

	if n := r.Len(); n != 0 {
		t.Errorf("Len() after Clear = %d, want 0", n)
	}
	if devices := r.Devices(); len(devices) != 0 {
		t.Errorf("Devices() after Clear = %v, want empty", devices)
	}
}
