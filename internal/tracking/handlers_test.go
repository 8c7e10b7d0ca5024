package tracking

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func passthrough(c *fiber.Ctx) error { return c.Next() }

func newTestApp(svc *Service) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app.Group("/tracking"), svc, passthrough)
	return app
}

func createTestSession(t *testing.T, app *fiber.App) Session {
	t.Helper()
	body, _ := json.Marshal(CreateSessionRequest{DeviceID: "device-1"})
	req := httptest.NewRequest(http.MethodPost, "/tracking/sessions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create session status: %v", err)
	}
	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return session
}

func TestTrackingHandlersFlow(t *testing.T) {
	svc := NewService(nil, nil, testOpts())
	app := newTestApp(svc)
	session := createTestSession(t, app)

	req := httptest.NewRequest(http.MethodPost, "/tracking/sessions/"+session.ID+"/start", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("start status: %v", err)
	}

	fixBody, _ := json.Marshal(testFix(0, 0, 0))
	req = httptest.NewRequest(http.MethodPost, "/tracking/sessions/"+session.ID+"/fixes", bytes.NewReader(fixBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusAccepted {
		t.Fatalf("push fix status: %v", err)
	}

	errBody, _ := json.Marshal(SensorErrorRequest{Code: "timeout"})
	req = httptest.NewRequest(http.MethodPost, "/tracking/sessions/"+session.ID+"/sensor-errors", bytes.NewReader(errBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNoContent {
		t.Fatalf("sensor error status: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/tracking/sessions/"+session.ID+"/snapshot", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("snapshot status: %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/tracking/sessions/"+session.ID+"/pause", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("pause status: %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/tracking/sessions/"+session.ID+"/reset", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("reset status: %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/tracking/sessions/"+session.ID+"/end", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("end status: %v", err)
	}

	var summary Summary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.SessionID != session.ID {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestTrackingHandlersBadRequests(t *testing.T) {
	svc := NewService(nil, nil, testOpts())
	app := newTestApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/tracking/sessions", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for missing device_id")
	}

	req = httptest.NewRequest(http.MethodPost, "/tracking/sessions", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for malformed body")
	}

	session := createTestSession(t, app)

	req = httptest.NewRequest(http.MethodPost, "/tracking/sessions/"+session.ID+"/fixes", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for malformed fix")
	}

	req = httptest.NewRequest(http.MethodPost, "/tracking/sessions/"+session.ID+"/sensor-errors", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for missing code")
	}
}

func TestTrackingHandlersNotFound(t *testing.T) {
	svc := NewService(nil, nil, testOpts())
	app := newTestApp(svc)

	paths := []struct {
		method string
		path   string
		body   []byte
	}{
		{http.MethodPost, "/tracking/sessions/nope/start", nil},
		{http.MethodPost, "/tracking/sessions/nope/pause", nil},
		{http.MethodPost, "/tracking/sessions/nope/reset", nil},
		{http.MethodPost, "/tracking/sessions/nope/end", nil},
		{http.MethodGet, "/tracking/sessions/nope/snapshot", nil},
		{http.MethodPost, "/tracking/sessions/nope/fixes", []byte(`{"timestamp_ms":0,"lat":0,"lon":0}`)},
		{http.MethodPost, "/tracking/sessions/nope/sensor-errors", []byte(`{"code":"timeout"}`)},
	}
	for _, tc := range paths {
		req := httptest.NewRequest(tc.method, tc.path, bytes.NewReader(tc.body))
		if tc.body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := app.Test(req)
		if err != nil || resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s %s: expected 404, got %d (%v)", tc.method, tc.path, resp.StatusCode, err)
		}
	}
}

func TestTrackingHandlersSnapshotAfterFixes(t *testing.T) {
	svc := NewService(nil, nil, testOpts())
	app := newTestApp(svc)
	session := createTestSession(t, app)

	req := httptest.NewRequest(http.MethodPost, "/tracking/sessions/"+session.ID+"/start", nil)
	if _, err := app.Test(req); err != nil {
		t.Fatalf("start: %v", err)
	}

	for i, ts := range []int64{0, 1000, 2000} {
		fix := testFix(ts, 0, float64(i)*0.0001)
		body, _ := json.Marshal(fix)
		req = httptest.NewRequest(http.MethodPost, "/tracking/sessions/"+session.ID+"/fixes", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if _, err := app.Test(req); err != nil {
			t.Fatalf("push fix: %v", err)
		}
	}

	time.Sleep(100 * time.Millisecond)

	req = httptest.NewRequest(http.MethodGet, "/tracking/sessions/"+session.ID+"/snapshot", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("snapshot status: %v", err)
	}
	var snap map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if dist, _ := snap["distance_m"].(float64); dist <= 0 {
		t.Fatalf("expected distance in snapshot, got %v", snap)
	}
}
