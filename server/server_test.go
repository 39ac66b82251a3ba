package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanAdrianRavikumar/disaster-routing-system/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Storage.SensorDB = filepath.Join(t.TempDir(), "reports.db")
	cfg.Rescue.QueueCapacity = 5

	core, err := NewCore(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { core.Close() })

	ts := httptest.NewServer(NewRouter(cfg, core))
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, payload any) (*http.Response, map[string]any) {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func seedTriangle(t *testing.T, base string) {
	t.Helper()
	for _, n := range []map[string]any{
		{"id": "A", "name": "City Hall", "latitude": 6.9200, "longitude": 79.8600},
		{"id": "B", "name": "Market", "latitude": 6.9300, "longitude": 79.8550},
		{"id": "C", "name": "School", "latitude": 6.9400, "longitude": 79.8500},
	} {
		resp, _ := doJSON(t, http.MethodPost, base+"/api/nodes", n)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	for _, e := range []map[string]any{
		{"id": "AB", "from": "A", "to": "B", "weight": 5.0, "bidirectional": true},
		{"id": "BC", "from": "B", "to": "C", "weight": 5.0, "bidirectional": true},
		{"id": "AC", "from": "A", "to": "C", "weight": 20.0, "bidirectional": true},
	} {
		resp, _ := doJSON(t, http.MethodPost, base+"/api/edges", e)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
}

func TestRouteQueryEndToEnd(t *testing.T) {
	ts := newTestServer(t)
	seedTriangle(t, ts.URL)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/route?start=A&end=C", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{"A", "B", "C"}, body["path"])
	assert.Equal(t, 10.0, body["distance"])

	// A sensor report on B-C forces the direct road.
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/sensors/s1/data",
		map[string]any{"edgeId": "BC", "obstacleType": "flood", "description": "road under water"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/sensors/s2/data",
		map[string]any{"data": "BC-rev:flood:road under water"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/route?start=A&end=C", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{"A", "C"}, body["path"])
	assert.Equal(t, 20.0, body["distance"])

	// Clearing both sensors restores the short route.
	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/sensors/s1/obstacle", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/sensors/s2/obstacle", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/route?start=A&end=C", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 10.0, body["distance"])
}

func TestRouteQueryErrors(t *testing.T) {
	ts := newTestServer(t)
	seedTriangle(t, ts.URL)

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/route?start=A", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/route?start=A&end=Z", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestShelterLifecycle(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/shelters",
		map[string]any{"shelterId": "S1", "name": "School", "capacity": 1, "latitude": 6.94, "longitude": 79.85})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Duplicate id conflicts.
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/shelters",
		map[string]any{"shelterId": "S1", "name": "Again", "capacity": 3, "latitude": 0, "longitude": 0})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Non-positive capacity is invalid.
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/shelters",
		map[string]any{"shelterId": "S2", "name": "Zero", "capacity": 0, "latitude": 0, "longitude": 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/shelters/S1/checkin",
		map[string]any{"occupantToken": "fam-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "fam-1", body["occupantToken"])

	// Shelter is full now.
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/shelters/S1/checkin",
		map[string]any{"occupantToken": "fam-2"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/shelters/S1/population", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1.0, body["population"])

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/shelters/S1/checkout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "fam-1", body["occupantToken"])

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/shelters/S1/checkout", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestNearestShelterSkipsFullOverAPI(t *testing.T) {
	ts := newTestServer(t)
	seedTriangle(t, ts.URL)

	// S-near sits at node B, S-far at node C; both capacity 1.
	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/shelters",
		map[string]any{"shelterId": "S-near", "name": "Near", "capacity": 1, "latitude": 6.9300, "longitude": 79.8550})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/shelters",
		map[string]any{"shelterId": "S-far", "name": "Far", "capacity": 1, "latitude": 6.9400, "longitude": 79.8500})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Occupy the near shelter.
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/shelters/S-near/checkin",
		map[string]any{"occupantToken": "fam-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet,
		fmt.Sprintf("%s/api/nearest-shelter-path?userLat=%f&userLng=%f", ts.URL, 6.9200, 79.8600), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "S-far", body["shelterId"])
	assert.Equal(t, []any{"A", "B", "C"}, body["path"])

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/nearest-shelter-path?userLat=bad", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRescueQueueOverAPI(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/rescue/enqueue",
		map[string]any{"familyName": "Perera", "address": "12 Lake Rd", "childrenCount": 0, "elderlyCount": 1})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 3.0, body["priority"])
	assert.NotEmpty(t, body["requestId"])

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/rescue/enqueue",
		map[string]any{"familyName": "Silva", "address": "4 Hill St", "childrenCount": 2, "elderlyCount": 1})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/rescue/peek", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Silva", body["familyName"])

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/rescue/status", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2.0, body["size"])
	assert.Equal(t, false, body["isEmpty"])

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/rescue/dequeue", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Silva", body["familyName"])

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/rescue/dequeue", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Perera", body["familyName"])

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/rescue/dequeue", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRescueQueueFullOverAPI(t *testing.T) {
	ts := newTestServer(t)

	for i := 0; i < 5; i++ {
		resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/rescue/enqueue",
			map[string]any{"familyName": fmt.Sprintf("Family %d", i)})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/rescue/enqueue",
		map[string]any{"familyName": "One too many"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSensorReportsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	seedTriangle(t, ts.URL)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/sensors/s1/data",
		map[string]any{"edgeId": "AB", "obstacleType": "debris", "description": "fallen tree"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/sensor-reports", nil)
	require.NoError(t, err)
	httpResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer httpResp.Body.Close()
	require.Equal(t, http.StatusOK, httpResp.StatusCode)

	var reports []map[string]any
	require.NoError(t, json.NewDecoder(httpResp.Body).Decode(&reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "AB", reports[0]["edgeId"])
	assert.Equal(t, "s1", reports[0]["sensorId"])
}

func TestAdminClearAndHealth(t *testing.T) {
	ts := newTestServer(t)
	seedTriangle(t, ts.URL)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/admin/clear", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/route?start=A&end=C", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/healthz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}
