package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/reelpilot-org/reelpilot/pkg/config"
	"github.com/reelpilot-org/reelpilot/pkg/device"
	"github.com/reelpilot-org/reelpilot/pkg/planner"
	"github.com/reelpilot-org/reelpilot/pkg/scriptwriter"
	"github.com/reelpilot-org/reelpilot/pkg/store"
	"github.com/reelpilot-org/reelpilot/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, port device.Port) (*Server, *memoryStore) {
	t.Helper()
	st := newMemoryStore()
	srv := NewServer(config.HTTPConfig{}, st,
		&stubPlanner{plan: &types.RecordingPlan{
			Title:          "Plan",
			RecordingSteps: []types.ActionStep{{Type: types.ActionTap, Description: "x", Target: &types.Point{X: 1, Y: 2}}},
		}},
		&stubWriter{script: &types.VoiceoverScript{Script: "hi", TotalDurationMS: 1000}},
		port, nil)
	return srv, st
}

func TestCreateAndGetVideo(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	body := `{"title": "Dark Mode", "description": "toggle it"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/videos", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d, body: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	videoID, _ := resp["id"].(string)
	if videoID == "" {
		t.Fatalf("id missing in response: %v", resp)
	}
	if resp["stage"] != "idea" {
		t.Fatalf("expected stage idea, got %v", resp["stage"])
	}

	getW := httptest.NewRecorder()
	getReq, _ := http.NewRequest(http.MethodGet, "/api/v1/videos/"+videoID, nil)
	srv.Engine().ServeHTTP(getW, getReq)
	if getW.Code != http.StatusOK {
		t.Fatalf("get endpoint returned %d", getW.Code)
	}
}

func TestCreateVideoRequiresTitle(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/videos", strings.NewReader(`{"description": "no title"}`))
	req.Header.Set("Content-Type", "application/json")
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetVideoNotFound(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/videos/vid_missing", nil)
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGeneratePlanWithoutDevice(t *testing.T) {
	srv, st := newTestServer(t, nil)

	video := types.NewVideo(types.VideoIdea{Title: "T"})
	_ = st.SaveVideo(context.Background(), video)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/videos/"+video.ID+"/plan", strings.NewReader(`{"deviceId": "sim-1"}`))
	req.Header.Set("Content-Type", "application/json")
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without a device, got %d", w.Code)
	}
}

func TestGeneratePlanAndScript(t *testing.T) {
	srv, st := newTestServer(t, &nullPort{})

	video := types.NewVideo(types.VideoIdea{Title: "T"})
	_ = st.SaveVideo(context.Background(), video)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/videos/"+video.ID+"/plan", strings.NewReader(`{"deviceId": "sim-1"}`))
	req.Header.Set("Content-Type", "application/json")
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("plan endpoint returned %d: %s", w.Code, w.Body.String())
	}

	stored, err := st.GetVideo(context.Background(), video.ID)
	if err != nil || stored.Plan == nil || stored.Stage != types.StagePlan {
		t.Fatalf("plan not persisted: %+v err %v", stored, err)
	}

	sw := httptest.NewRecorder()
	sreq, _ := http.NewRequest(http.MethodPost, "/api/v1/videos/"+video.ID+"/script", nil)
	srv.Engine().ServeHTTP(sw, sreq)

	if sw.Code != http.StatusOK {
		t.Fatalf("script endpoint returned %d: %s", sw.Code, sw.Body.String())
	}

	stored, _ = st.GetVideo(context.Background(), video.ID)
	if stored.Script == nil || stored.Stage != types.StageScript {
		t.Fatalf("script not persisted: %+v", stored)
	}
}

func TestGenerateScriptWithoutPlan(t *testing.T) {
	srv, st := newTestServer(t, nil)

	video := types.NewVideo(types.VideoIdea{Title: "T"})
	_ = st.SaveVideo(context.Background(), video)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/videos/"+video.ID+"/script", nil)
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 without a plan, got %d", w.Code)
	}
}

func TestAPIKeyMiddleware(t *testing.T) {
	st := newMemoryStore()
	srv := NewServer(config.HTTPConfig{APIKey: "secret"}, st, &stubPlanner{}, &stubWriter{}, nil, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/videos", nil)
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	req, _ = http.NewRequest(http.MethodGet, "/api/v1/videos", nil)
	req.Header.Set("X-API-Key", "secret")
	w = httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with api key, got %d", w.Code)
	}

	req, _ = http.NewRequest(http.MethodGet, "/api/v1/videos", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with bearer token, got %d", w.Code)
	}

	req, _ = http.NewRequest(http.MethodGet, "/api/v1/videos", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong bearer token, got %d", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("health endpoint returned %d", w.Code)
	}

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["status"] != "healthy" {
		t.Fatalf("expected healthy status, got %v", resp)
	}
}

type stubPlanner struct {
	plan *types.RecordingPlan
	err  error
}

func (s *stubPlanner) GeneratePlan(ctx context.Context, req planner.PlanRequest, port device.Port) (*types.RecordingPlan, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.plan, nil
}

type stubWriter struct {
	script *types.VoiceoverScript
	err    error
}

func (s *stubWriter) GenerateScript(ctx context.Context, req scriptwriter.ScriptRequest) (*types.VoiceoverScript, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.script, nil
}

// nullPort satisfies device.Port without doing anything.
type nullPort struct{}

func (nullPort) TakeScreenshot(ctx context.Context, deviceID string) (*device.Screenshot, error) {
	return &device.Screenshot{Format: "png"}, nil
}
func (nullPort) ListElements(ctx context.Context, deviceID string) ([]device.Element, error) {
	return nil, nil
}
func (nullPort) TapAt(ctx context.Context, deviceID string, x, y int) error    { return nil }
func (nullPort) Swipe(ctx context.Context, deviceID, direction string) error   { return nil }
func (nullPort) TypeText(ctx context.Context, deviceID, text string, submit bool) error {
	return nil
}
func (nullPort) TerminateAllApps(ctx context.Context, deviceID string) error { return nil }
func (nullPort) PressButton(ctx context.Context, deviceID string, button device.Button) error {
	return nil
}

type memoryStore struct {
	videos map[string]*types.Video
	mu     sync.RWMutex
}

func newMemoryStore() *memoryStore {
	return &memoryStore{videos: make(map[string]*types.Video)}
}

func (m *memoryStore) Open(ctx context.Context) error { return nil }
func (m *memoryStore) Close() error                   { return nil }

func (m *memoryStore) SaveVideo(ctx context.Context, video *types.Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *video
	m.videos[video.ID] = &cp
	return nil
}

func (m *memoryStore) GetVideo(ctx context.Context, id string) (*types.Video, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.videos[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *memoryStore) ListVideos(ctx context.Context) ([]types.Video, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.Video, 0, len(m.videos))
	for _, v := range m.videos {
		out = append(out, *v)
	}
	return out, nil
}

func (m *memoryStore) DeleteVideo(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.videos[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.videos, id)
	return nil
}

var _ store.Store = (*memoryStore)(nil)
