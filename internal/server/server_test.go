package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/muurk/lanscan/internal/scan"
)

// fakeController is a canned scan session for handler tests.
type fakeController struct {
	scanning bool
	devices  []scan.Device
	startErr error
	stopErr  error
	starts   int
	stops    int
}

func (c *fakeController) Start() error {
	c.starts++
	if c.startErr != nil {
		return c.startErr
	}
	c.scanning = true
	return nil
}

func (c *fakeController) Stop() error {
	c.stops++
	if c.stopErr != nil {
		return c.stopErr
	}
	c.scanning = false
	return nil
}

func (c *fakeController) IsScanning() bool       { return c.scanning }
func (c *fakeController) Devices() []scan.Device { return c.devices }

func newTestServer(t *testing.T, ctrl Controller) *Server {
	t.Helper()
	srv, err := New(&Config{Listen: "127.0.0.1:0"}, ctrl, NewHub())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv
}

func TestHandleStart(t *testing.T) {
	ctrl := &fakeController{}
	srv := newTestServer(t, ctrl)

	rec := httptest.NewRecorder()
	srv.handleStart(rec, httptest.NewRequest(http.MethodPost, "/api/scan/start", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp statusResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Scanning {
		t.Error("response should report scanning after start")
	}
	if ctrl.starts != 1 {
		t.Errorf("Start called %d times, want 1", ctrl.starts)
	}
}

func TestHandleStartFailure(t *testing.T) {
	ctrl := &fakeController{startErr: errors.New("daemon init failed: no multicast")}
	srv := newTestServer(t, ctrl)

	rec := httptest.NewRecorder()
	srv.handleStart(rec, httptest.NewRequest(http.MethodPost, "/api/scan/start", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error == "" {
		t.Error("error body should carry the failure message")
	}
}

func TestHandleStop(t *testing.T) {
	ctrl := &fakeController{scanning: true}
	srv := newTestServer(t, ctrl)

	rec := httptest.NewRecorder()
	srv.handleStop(rec, httptest.NewRequest(http.MethodPost, "/api/scan/stop", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp statusResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Scanning {
		t.Error("response should report idle after stop")
	}
}

func TestHandleStatus(t *testing.T) {
	ctrl := &fakeController{scanning: true}
	srv := newTestServer(t, ctrl)

	rec := httptest.NewRecorder()
	srv.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/api/scan/status", nil))

	var resp statusResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Scanning {
		t.Error("status should report scanning")
	}
}

func TestHandleDevices(t *testing.T) {
	ctrl := &fakeController{
		devices: []scan.Device{
			{
				Name:            "Living Room",
				IP:              "10.0.0.5",
				DiscoveryTimeMs: 120,
				Services: []scan.DiscoveredService{
					{ServiceType: scan.CategoryBluesound, Port: 11000, DeviceType: scan.DeviceTypeBluesound, LastSeenMs: 120},
				},
			},
		},
	}
	srv := newTestServer(t, ctrl)

	rec := httptest.NewRecorder()
	srv.handleDevices(rec, httptest.NewRequest(http.MethodGet, "/api/devices", nil))

	var devices []scan.Device
	if err := json.NewDecoder(rec.Body).Decode(&devices); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(devices) != 1 || devices[0].IP != "10.0.0.5" {
		t.Fatalf("devices = %+v", devices)
	}
	if devices[0].Services[0].DeviceType != scan.DeviceTypeBluesound {
		t.Errorf("deviceType = %q, want camelCase enum value", devices[0].Services[0].DeviceType)
	}
}

func TestHandleDevicesEmpty(t *testing.T) {
	srv := newTestServer(t, &fakeController{})

	rec := httptest.NewRecorder()
	srv.handleDevices(rec, httptest.NewRequest(http.MethodGet, "/api/devices", nil))

	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("empty device list body = %q, want JSON array", body)
	}
}
