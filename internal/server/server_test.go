package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridpack/pkg/board"
	apperrors "github.com/matzehuels/gridpack/pkg/errors"
	"github.com/matzehuels/gridpack/pkg/grid"
	"github.com/matzehuels/gridpack/pkg/observability"
	"github.com/matzehuels/gridpack/pkg/planner"
	"github.com/matzehuels/gridpack/pkg/store"
)

const sampleBoardJSON = `{
  "name": "home",
  "grid": {"box_size": 40, "columns": 4, "rows": 3},
  "widgets": [
    {"id": "a", "label": "clock", "x": 0, "y": 0, "width": 2, "height": 1},
    {"id": "b", "x": 2, "y": 0, "width": 2, "height": 2}
  ]
}`

func newTestServer(t *testing.T, opts ...Option) (*httptest.Server, store.Store) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	srv := New(planner.NewRunner(nil, nil, logger), st, logger, opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, st
}

func do(t *testing.T, ts *httptest.Server, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, r)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, data
}

func decodeAs[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return v
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, data := do(t, ts, http.MethodGet, "/healthz", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := decodeAs[map[string]string](t, data); got["status"] != "ok" {
		t.Errorf("body = %s", data)
	}
}

func TestCheck(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, data := do(t, ts, http.MethodPost, "/v1/check", sampleBoardJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}
	res := decodeAs[planner.CheckResult](t, data)
	if res.Occupied != 6 || !res.OK() {
		t.Errorf("result = %+v", res)
	}

	overlapping := strings.Replace(sampleBoardJSON, `"width": 2, "height": 1`, `"width": 3, "height": 1`, 1)
	resp, data = do(t, ts, http.MethodPost, "/v1/check", overlapping)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("overlap status = %d: %s", resp.StatusCode, data)
	}
	if e := decodeAs[errorResponse](t, data); e.Code != apperrors.ErrCodeOverlap {
		t.Errorf("error = %+v", e)
	}
}

func TestPlace(t *testing.T) {
	ts, _ := newTestServer(t)

	body := `{"board": ` + sampleBoardJSON + `, "width": 2, "height": 1}`
	resp, data := do(t, ts, http.MethodPost, "/v1/place", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}
	res := decodeAs[planner.PlaceResult](t, data)
	if res.Slot != grid.Found(grid.Position{X: 0, Y: 1}) {
		t.Errorf("slot = %+v", res.Slot)
	}

	body = `{"board": ` + sampleBoardJSON + `, "width": 9, "height": 9}`
	_, data = do(t, ts, http.MethodPost, "/v1/place", body)
	if res := decodeAs[planner.PlaceResult](t, data); res.Slot.Found {
		t.Errorf("oversized placement found %+v", res.Slot)
	}
}

func TestRepairDefaultPolicy(t *testing.T) {
	ts, _ := newTestServer(t, WithPolicy("keep"))

	shrunk := strings.Replace(sampleBoardJSON, `"columns": 4, "rows": 3`, `"columns": 2, "rows": 2`, 1)
	resp, data := do(t, ts, http.MethodPost, "/v1/repair", `{"board": `+shrunk+`}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}
	res := decodeAs[planner.RepairResult](t, data)
	if len(res.Kept) != 1 || res.Kept[0] != "b" || len(res.Board.Widgets) != 2 {
		t.Errorf("result = %+v", res)
	}

	_, data = do(t, ts, http.MethodPost, "/v1/repair", `{"board": `+shrunk+`, "policy": "drop"}`)
	if res := decodeAs[planner.RepairResult](t, data); len(res.Dropped) != 1 {
		t.Errorf("explicit policy ignored: %+v", res)
	}
}

func TestSnap(t *testing.T) {
	ts, _ := newTestServer(t)

	body := `{"grid": {"box_size": 10, "columns": 3, "rows": 3}, "x": 21, "y": 0, "limit": 2}`
	resp, data := do(t, ts, http.MethodPost, "/v1/snap", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}
	res := decodeAs[planner.SnapResult](t, data)
	if len(res.Points) != 2 || res.Points[0].Position != (grid.Position{X: 2, Y: 0}) {
		t.Errorf("points = %+v", res.Points)
	}
}

func TestBadRequests(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   apperrors.Code
	}{
		{"malformed json", "/v1/check", "{", http.StatusBadRequest, apperrors.ErrCodeInvalidInput},
		{"unknown field", "/v1/check", `{"colour": 1}`, http.StatusBadRequest, apperrors.ErrCodeInvalidInput},
		{"missing board", "/v1/place", `{"width": 1, "height": 1}`, http.StatusBadRequest, apperrors.ErrCodeInvalidInput},
		{"zero size", "/v1/place", `{"board": ` + sampleBoardJSON + `, "width": 0, "height": 1}`, http.StatusBadRequest, apperrors.ErrCodeInvalidSize},
		{"bad policy", "/v1/repair", `{"board": ` + sampleBoardJSON + `, "policy": "shrink"}`, http.StatusBadRequest, apperrors.ErrCodeInvalidInput},
		{"bad grid", "/v1/snap", `{"grid": {"box_size": 0}}`, http.StatusBadRequest, apperrors.ErrCodeInvalidGrid},
		{"oversized grid", "/v1/snap", `{"grid": {"box_size": 1, "columns": 1000000, "rows": 1000000}}`, http.StatusBadRequest, apperrors.ErrCodeInvalidGrid},
		{"oversized board", "/v1/check", `{"name": "big", "grid": {"box_size": 1, "columns": 4294967296, "rows": 4294967296}, "widgets": []}`, http.StatusBadRequest, apperrors.ErrCodeInvalidGrid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := do(t, ts, http.MethodPost, tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d: %s", resp.StatusCode, tt.status, data)
			}
			if e := decodeAs[errorResponse](t, data); e.Code != tt.code {
				t.Errorf("code = %s, want %s", e.Code, tt.code)
			}
		})
	}
}

func TestBoards(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, data := do(t, ts, http.MethodGet, "/v1/boards/home", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing board status = %d: %s", resp.StatusCode, data)
	}

	resp, data = do(t, ts, http.MethodPut, "/v1/boards/home", sampleBoardJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put status = %d: %s", resp.StatusCode, data)
	}

	resp, data = do(t, ts, http.MethodGet, "/v1/boards/home", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d: %s", resp.StatusCode, data)
	}
	if b := decodeAs[board.Board](t, data); len(b.Widgets) != 2 || b.Grid.Columns != 4 {
		t.Errorf("board = %+v", b)
	}

	resp, data = do(t, ts, http.MethodGet, "/v1/boards", "")
	if got := decodeAs[map[string][]string](t, data)["boards"]; resp.StatusCode != http.StatusOK || len(got) != 1 || got[0] != "home" {
		t.Errorf("list = %d %s", resp.StatusCode, data)
	}

	resp, _ = do(t, ts, http.MethodDelete, "/v1/boards/home", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}
	resp, _ = do(t, ts, http.MethodDelete, "/v1/boards/home", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d", resp.StatusCode)
	}
}

func TestPutBoardRejects(t *testing.T) {
	ts, st := newTestServer(t)

	resp, _ := do(t, ts, http.MethodPut, "/v1/boards/work", sampleBoardJSON)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("name mismatch status = %d", resp.StatusCode)
	}

	overlapping := strings.Replace(sampleBoardJSON, `"x": 2, "y": 0`, `"x": 1, "y": 0`, 1)
	resp, _ = do(t, ts, http.MethodPut, "/v1/boards/home", overlapping)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("overlap status = %d", resp.StatusCode)
	}
	if _, err := st.Get(context.Background(), "home"); !apperrors.Is(err, apperrors.ErrCodeBoardNotFound) {
		t.Error("overlapping board was stored")
	}

	unnamed := strings.Replace(sampleBoardJSON, `"name": "home",`, "", 1)
	resp, data := do(t, ts, http.MethodPut, "/v1/boards/home", unnamed)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("unnamed body status = %d: %s", resp.StatusCode, data)
	}
}

func TestAddWidget(t *testing.T) {
	ts, st := newTestServer(t)
	ctx := context.Background()

	b, err := board.Unmarshal([]byte(sampleBoardJSON))
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Put(ctx, b); err != nil {
		t.Fatal(err)
	}

	resp, data := do(t, ts, http.MethodPost, "/v1/boards/home/widgets", `{"width": 2, "height": 2, "label": "notes"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}
	res := decodeAs[planner.AddResult](t, data)
	if res.Widget.X != 0 || res.Widget.Y != 1 || res.Widget.Label != "notes" {
		t.Errorf("widget = %+v", res.Widget)
	}

	stored, _ := st.Get(ctx, "home")
	if len(stored.Widgets) != 3 {
		t.Errorf("stored board has %d widgets, want 3", len(stored.Widgets))
	}

	resp, data = do(t, ts, http.MethodPost, "/v1/boards/home/widgets", `{"width": 4, "height": 1}`)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("full board status = %d: %s", resp.StatusCode, data)
	}
	if e := decodeAs[errorResponse](t, data); e.Code != apperrors.ErrCodeNoSpace {
		t.Errorf("code = %s, want NO_SPACE", e.Code)
	}

	resp, _ = do(t, ts, http.MethodPost, "/v1/boards/nope/widgets", `{"width": 1, "height": 1}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing board status = %d", resp.StatusCode)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	routes   []string
	statuses []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, route string, status int, _ time.Duration) {
	h.routes = append(h.routes, route)
	h.statuses = append(h.statuses, status)
}

func TestRequestHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	ts, _ := newTestServer(t)
	do(t, ts, http.MethodGet, "/v1/boards/missing", "")

	if len(hooks.routes) != 1 || hooks.routes[0] != "/v1/boards/{name}" || hooks.statuses[0] != http.StatusNotFound {
		t.Errorf("hooks saw routes %v statuses %v", hooks.routes, hooks.statuses)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	st, _ := store.NewFileStore(t.TempDir())
	srv := New(planner.NewRunner(nil, nil, logger), st, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

