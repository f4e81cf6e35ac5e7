// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/tomtom215/debiai-data-provider/internal/config"
	"github.com/tomtom215/debiai-data-provider/internal/project"
	"github.com/tomtom215/debiai-data-provider/internal/provider/memory"
	"github.com/tomtom215/debiai-data-provider/internal/registry"
)

type testServer struct {
	handler  *Handler
	router   http.Handler
	registry *registry.Registry
	projects map[string]*memory.Project
}

// setupRouterTest serves fresh copies of the example projects.
// mutate, when set, adjusts the configuration before the router is built.
func setupRouterTest(t *testing.T, mutate func(*config.Config)) *testServer {
	t.Helper()

	cfg := config.Default()
	cfg.Security.RateLimitDisabled = true
	cfg.API.CompressionEnabled = false
	if mutate != nil {
		mutate(cfg)
	}

	reg := registry.New()
	projects := make(map[string]*memory.Project)
	for _, p := range memory.Examples() {
		if _, err := reg.Add(context.Background(), p, ""); err != nil {
			t.Fatalf("Add(%s): %v", p.Name(), err)
		}
		projects[p.Name()] = p
	}

	h := NewHandler(reg, cfg)
	h.SetReady(true)
	return &testServer{
		handler:  h,
		router:   NewRouter(h, cfg).Setup(),
		registry: reg,
		projects: projects,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}

func expectErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	expectStatus(t, rec, status)
	resp := decode[APIResponse](t, rec)
	if resp.Success || resp.Error == nil {
		t.Fatalf("expected an error envelope, got %s", rec.Body.String())
	}
	if resp.Error.Code != code {
		t.Errorf("error code = %q, want %q", resp.Error.Code, code)
	}
}

func TestRouter_Info(t *testing.T) {
	t.Parallel()
	s := setupRouterTest(t, func(c *config.Config) {
		c.API.MaxSampleData = 50
		c.API.CanDelete.Models = false
	})

	rec := s.do(t, http.MethodGet, "/info", nil)
	expectStatus(t, rec, http.StatusOK)

	got := decode[map[string]any](t, rec)
	want := map[string]any{
		"version":                "0.0.0",
		"maxSampleIdByRequest":   float64(10000),
		"maxSampleDataByRequest": float64(50),
		"maxResultByRequest":     float64(5000),
		"canDelete": map[string]any{
			"projects":   true,
			"selections": true,
			"models":     false,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("/info mismatch (-want +got):\n%s", diff)
	}
}

func TestRouter_ListProjects(t *testing.T) {
	t.Parallel()
	s := setupRouterTest(t, nil)

	rec := s.do(t, http.MethodGet, "/projects", nil)
	expectStatus(t, rec, http.StatusOK)

	got := decode[map[string]project.Overview](t, rec)
	if len(got) != 2 {
		t.Fatalf("got %d projects, want 2", len(got))
	}

	plain := got["MyProject"]
	if plain.NbSamples == nil || *plain.NbSamples != 3 {
		t.Errorf("MyProject nbSamples = %v, want 3", plain.NbSamples)
	}
	if plain.NbModels == nil || *plain.NbModels != 0 {
		t.Errorf("MyProject nbModels = %v, want 0", plain.NbModels)
	}
	if plain.CreationDate == nil || *plain.CreationDate != 1704067200000 {
		t.Errorf("MyProject creationDate = %v, want 1704067200000", plain.CreationDate)
	}
	if plain.UpdateDate != nil {
		t.Errorf("MyProject updateDate = %v, want null", *plain.UpdateDate)
	}

	withResults := got["MyProjectWithResults"]
	if withResults.NbModels == nil || *withResults.NbModels != 2 {
		t.Errorf("MyProjectWithResults nbModels = %v, want 2", withResults.NbModels)
	}
}

// brokenProject fails every sample count after registration.
type brokenProject struct {
	fail bool
}

func (b *brokenProject) Name() string { return "broken" }

func (b *brokenProject) SampleIDs(context.Context) ([]project.ID, error) {
	if b.fail {
		return nil, errors.New("source offline")
	}
	return project.StringIDs("a"), nil
}

func (b *brokenProject) SampleCount(context.Context) (int, error) {
	if b.fail {
		return 0, errors.New("source offline")
	}
	return 1, nil
}

func TestRouter_ListProjectsSkipsBrokenProject(t *testing.T) {
	t.Parallel()
	s := setupRouterTest(t, nil)

	broken := &brokenProject{}
	if _, err := s.registry.Add(context.Background(), broken, ""); err != nil {
		t.Fatalf("Add: %v", err)
	}
	broken.fail = true

	rec := s.do(t, http.MethodGet, "/projects", nil)
	expectStatus(t, rec, http.StatusOK)
	got := decode[map[string]any](t, rec)
	if _, ok := got["broken"]; ok {
		t.Error("broken project should be left out of the listing")
	}
	if len(got) != 2 {
		t.Errorf("got %d projects, want 2", len(got))
	}

	rec = s.do(t, http.MethodGet, "/projects/broken", nil)
	expectErrorCode(t, rec, http.StatusInternalServerError, ErrCodeInternalError)
}

func TestRouter_GetProject(t *testing.T) {
	t.Parallel()
	s := setupRouterTest(t, nil)

	rec := s.do(t, http.MethodGet, "/projects/MyProjectWithResults", nil)
	expectStatus(t, rec, http.StatusOK)

	var got struct {
		Name    string `json:"name"`
		Columns []struct {
			Name     string  `json:"name"`
			Category string  `json:"category"`
			Type     *string `json:"type"`
			Group    *string `json:"group"`
		} `json:"columns"`
		ExpectedResults []struct {
			Name string `json:"name"`
		} `json:"expectedResults"`
		NbSamples *int `json:"nbSamples"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got.Name != "MyProjectWithResults" {
		t.Errorf("name = %q", got.Name)
	}
	names := make([]string, len(got.Columns))
	for i, c := range got.Columns {
		names[i] = c.Name
	}
	if diff := cmp.Diff([]string{"My context 1", "My context 2", "My groundtruth 1"}, names); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	if got.Columns[2].Category != "groundtruth" {
		t.Errorf("category = %q, want groundtruth", got.Columns[2].Category)
	}
	if len(got.ExpectedResults) != 4 {
		t.Errorf("expectedResults has %d columns, want 4", len(got.ExpectedResults))
	}
	if got.NbSamples == nil || *got.NbSamples != 3 {
		t.Errorf("nbSamples = %v, want 3", got.NbSamples)
	}
}

func TestRouter_UnknownProject(t *testing.T) {
	t.Parallel()
	s := setupRouterTest(t, nil)

	paths := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/projects/nope", nil},
		{http.MethodGet, "/projects/nope/data-id-list", nil},
		{http.MethodPost, "/projects/nope/data", []string{"a"}},
		{http.MethodGet, "/projects/nope/models", nil},
		{http.MethodGet, "/projects/nope/selections", nil},
		{http.MethodDelete, "/projects/nope", nil},
	}
	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			rec := s.do(t, p.method, p.path, p.body)
			expectErrorCode(t, rec, http.StatusNotFound, ErrCodeNotFound)
		})
	}
}

func TestRouter_DataIDList(t *testing.T) {
	t.Parallel()
	s := setupRouterTest(t, nil)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"all", "", []string{"image-1", "image-2", "image-3"}},
		{"inclusive window", "?from=1&to=2", []string{"image-2", "image-3"}},
		{"from only", "?from=2", []string{"image-3"}},
		{"to only", "?to=0", []string{"image-1"}},
		{"past the end", "?from=1&to=99", []string{"image-2", "image-3"}},
		{"empty window", "?from=5&to=9", []string{}},
		{"analysis params", "?from=0&to=0&analysisId=a1&analysisStart=true&analysisEnd=false", []string{"image-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, "/projects/MyProject/data-id-list"+tt.query, nil)
			expectStatus(t, rec, http.StatusOK)
			got := decode[[]string](t, rec)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRouter_DataIDListRejectsBadQuery(t *testing.T) {
	t.Parallel()
	s := setupRouterTest(t, nil)

	tests := []struct {
		query string
		code  string
	}{
		{"?from=abc", ErrCodeBadRequest},
		{"?to=1.5", ErrCodeBadRequest},
		{"?analysisStart=maybe", ErrCodeBadRequest},
		{"?from=-1", ErrCodeValidationFailed},
		{"?to=-3", ErrCodeValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, "/projects/MyProject/data-id-list"+tt.query, nil)
			expectErrorCode(t, rec, http.StatusBadRequest, tt.code)
		})
	}
}

func TestRouter_Data(t *testing.T) {
	t.Parallel()
	s := setupRouterTest(t, nil)

	rec := s.do(t, http.MethodPost, "/projects/MyProject/data", []string{"image-1", "image-3"})
	expectStatus(t, rec, http.StatusOK)

	got := decode[map[string][]any](t, rec)
	want := map[string][]any{
		"image-1": {"A", 0.28, float64(8)},
		"image-3": {"C", 0.5, float64(19)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestRouter_DataErrors(t *testing.T) {
	t.Parallel()
	s := setupRouterTest(t, func(c *config.Config) { c.API.MaxSampleData = 2 })

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"unknown sample", []string{"image-1", "image-404"}, http.StatusNotFound, ErrCodeNotFound},
		{"too many ids", []string{"image-1", "image-2", "image-3"}, http.StatusRequestEntityTooLarge, ErrCodeRequestTooLarge},
		{"not an array", `{"ids": []}`, http.StatusBadRequest, ErrCodeBadRequest},
		{"fractional id", `[1.5]`, http.StatusBadRequest, ErrCodeBadRequest},
		{"malformed json", `[`, http.StatusBadRequest, ErrCodeBadRequest},
		{"null body", `null`, http.StatusBadRequest, ErrCodeBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/projects/MyProject/data", tt.body)
			expectErrorCode(t, rec, tt.status, tt.code)
		})
	}

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/projects/MyProject/data", nil)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		expectErrorCode(t, rec, http.StatusBadRequest, ErrCodeBadRequest)
	})

	t.Run("empty list", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/projects/MyProject/data", `[]`)
		expectStatus(t, rec, http.StatusOK)
		if got := strings.TrimSpace(rec.Body.String()); got != "{}" {
			t.Errorf("body = %s, want {}", got)
		}
	})
}

func TestRouter_Models(t *testing.T) {
	t.Parallel()
	s := setupRouterTest(t, nil)

	rec := s.do(t, http.MethodGet, "/projects/MyProjectWithResults/models", nil)
	expectStatus(t, rec, http.StatusOK)
	got := decode[[]project.Model](t, rec)
	want := []project.Model{
		{ID: "model_1", Name: "model_1", ResultCount: 2},
		{ID: "model_2", Name: "model_2", ResultCount: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("models mismatch (-want +got):\n%s", diff)
	}

	rec = s.do(t, http.MethodGet, "/projects/MyProject/models", nil)
	expectStatus(t, rec, http.StatusOK)
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("models of a project without results = %s, want []", body)
	}
}

func TestRouter_ModelResults(t *testing.T) {
	t.Parallel()
	s := setupRouterTest(t, nil)

	rec := s.do(t, http.MethodGet, "/projects/MyProjectWithResults/models/model_2/evaluated-data-id-list", nil)
	expectStatus(t, rec, http.StatusOK)
	if diff := cmp.Diff([]string{"image-1", "image-2"}, decode[[]string](t, rec)); diff != "" {
		t.Errorf("evaluated ids mismatch (-want +got):\n%s", diff)
	}

	// image-3 was never evaluated and is left out.
	rec = s.do(t, http.MethodPost, "/projects/MyProjectWithResults/models/model_2/results",
		[]string{"image-2", "image-3"})
	expectStatus(t, rec, http.StatusOK)
	got := decode[map[string][]any](t, rec)
	want := map[string][]any{
		"image-2": {float64(5), 0.6, float64(-2), float64(2)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}

	rec = s.do(t, http.MethodPost, "/projects/MyProjectWithResults/models/model_9/results", []string{"image-1"})
	expectErrorCode(t, rec, http.StatusNotFound, ErrCodeNotFound)

	rec = s.do(t, http.MethodGet, "/projects/MyProjectWithResults/models/model_9/evaluated-data-id-list", nil)
	expectErrorCode(t, rec, http.StatusNotFound, ErrCodeNotFound)
}

func TestRouter_DeleteModel(t *testing.T) {
	t.Parallel()
	s := setupRouterTest(t, nil)

	rec := s.do(t, http.MethodDelete, "/projects/MyProjectWithResults/models/model_1", nil)
	expectStatus(t, rec, http.StatusNoContent)

	rec = s.do(t, http.MethodGet, "/projects/MyProjectWithResults/models", nil)
	got := decode[[]project.Model](t, rec)
	if len(got) != 1 || got[0].ID != "model_2" {
		t.Errorf("models after delete = %+v, want only model_2", got)
	}

	rec = s.do(t, http.MethodDelete, "/projects/MyProjectWithResults/models/model_1", nil)
	expectErrorCode(t, rec, http.StatusNotFound, ErrCodeNotFound)
}

func TestRouter_Selections(t *testing.T) {
	t.Parallel()
	s := setupRouterTest(t, nil)
	base := "/projects/MyProject/selections"

	rec := s.do(t, http.MethodGet, base, nil)
	expectStatus(t, rec, http.StatusOK)
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("initial selections = %s, want []", body)
	}

	rec = s.do(t, http.MethodPost, base, map[string]any{"name": "hard cases", "idList": []string{"image-1", "image-3"}})
	expectStatus(t, rec, http.StatusNoContent)

	rec = s.do(t, http.MethodGet, base, nil)
	selections := decode[[]project.Selection](t, rec)
	if len(selections) != 1 || selections[0].Name != "hard cases" || selections[0].NbSamples != 2 {
		t.Fatalf("selections = %+v", selections)
	}

	rec = s.do(t, http.MethodDelete, base+"/"+selections[0].ID, nil)
	expectStatus(t, rec, http.StatusNoContent)

	rec = s.do(t, http.MethodDelete, base+"/"+selections[0].ID, nil)
	expectErrorCode(t, rec, http.StatusNotFound, ErrCodeNotFound)
}

func TestRouter_CreateSelectionErrors(t *testing.T) {
	t.Parallel()
	s := setupRouterTest(t, nil)
	base := "/projects/MyProject/selections"

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"missing name", map[string]any{"idList": []string{"image-1"}}, http.StatusBadRequest, ErrCodeValidationFailed},
		{"missing ids", map[string]any{"name": "x"}, http.StatusBadRequest, ErrCodeValidationFailed},
		{"duplicate ids", map[string]any{"name": "x", "idList": []string{"image-1", "image-1"}}, http.StatusBadRequest, ErrCodeBadRequest},
		{"unknown sample", map[string]any{"name": "x", "idList": []string{"image-9"}}, http.StatusNotFound, ErrCodeNotFound},
		{"not json", "name=x", http.StatusBadRequest, ErrCodeBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, base, tt.body)
			expectErrorCode(t, rec, tt.status, tt.code)
		})
	}
}

func TestRouter_DeleteProject(t *testing.T) {
	t.Parallel()
	s := setupRouterTest(t, nil)

	rec := s.do(t, http.MethodDelete, "/projects/MyProject", nil)
	expectStatus(t, rec, http.StatusOK)
	if diff := cmp.Diff(MessageResponse{Message: "Project deleted"}, decode[MessageResponse](t, rec)); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}

	if !s.projects["MyProject"].Deleted() {
		t.Error("declaration deletion was not called")
	}
	if _, err := s.registry.Resolve("MyProject"); !project.IsNotFound(err) {
		t.Errorf("project still registered: %v", err)
	}

	rec = s.do(t, http.MethodGet, "/projects/MyProject", nil)
	expectErrorCode(t, rec, http.StatusNotFound, ErrCodeNotFound)
}

func TestRouter_DeletionsDisabled(t *testing.T) {
	t.Parallel()
	s := setupRouterTest(t, func(c *config.Config) {
		c.API.CanDelete = config.CanDeleteConfig{}
	})

	paths := []string{
		"/projects/MyProjectWithResults",
		"/projects/MyProjectWithResults/models/model_1",
		"/projects/MyProjectWithResults/selections/any",
	}
	for _, p := range paths {
		rec := s.do(t, http.MethodDelete, p, nil)
		expectErrorCode(t, rec, http.StatusForbidden, ErrCodeForbidden)
	}
	if s.projects["MyProjectWithResults"].Deleted() {
		t.Error("project deleted although deletions are disabled")
	}
}

func TestRouter_EscapedProjectName(t *testing.T) {
	t.Parallel()
	s := setupRouterTest(t, nil)

	samples := project.NewTable(project.StringIDs("x")).MustSetColumn("c", 1)
	for _, name := range []string{"Project 1", "team/project"} {
		p, err := memory.New(name, samples)
		if err != nil {
			t.Fatalf("memory.New: %v", err)
		}
		if _, err := s.registry.Add(context.Background(), p, ""); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	for _, path := range []string{"/projects/Project%201", "/projects/team%2Fproject"} {
		rec := s.do(t, http.MethodGet, path+"/data-id-list", nil)
		expectStatus(t, rec, http.StatusOK)
		if diff := cmp.Diff([]string{"x"}, decode[[]string](t, rec)); diff != "" {
			t.Errorf("%s ids mismatch (-want +got):\n%s", path, diff)
		}
	}
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()
	s := setupRouterTest(t, nil)

	rec := s.do(t, http.MethodGet, "/health/live", nil)
	expectStatus(t, rec, http.StatusOK)

	rec = s.do(t, http.MethodGet, "/health/ready", nil)
	expectStatus(t, rec, http.StatusOK)
	resp := decode[APIResponse](t, rec)
	if !resp.Success {
		t.Errorf("ready response not successful: %s", rec.Body.String())
	}

	s.handler.SetReady(false)
	rec = s.do(t, http.MethodGet, "/health/ready", nil)
	expectErrorCode(t, rec, http.StatusServiceUnavailable, ErrCodeServiceUnavailable)
}

func TestRouter_Homepage(t *testing.T) {
	t.Parallel()
	s := setupRouterTest(t, nil)

	rec := s.do(t, http.MethodGet, "/", nil)
	expectStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{"<li>MyProject</li>", "<li>MyProjectWithResults</li>", "/swagger/index.html"} {
		if !strings.Contains(body, want) {
			t.Errorf("homepage does not contain %q", want)
		}
	}

	disabled := setupRouterTest(t, func(c *config.Config) { c.API.HomepageEnabled = false })
	rec = disabled.do(t, http.MethodGet, "/", nil)
	expectErrorCode(t, rec, http.StatusNotFound, ErrCodeNotFound)
}

func TestRouter_HomepageEscapesNames(t *testing.T) {
	t.Parallel()
	s := setupRouterTest(t, nil)

	p, err := memory.New("<script>x</script>", project.NewTable(project.StringIDs("a")))
	if err != nil {
		t.Fatalf("memory.New: %v", err)
	}
	if _, err := s.registry.Add(context.Background(), p, ""); err != nil {
		t.Fatalf("Add: %v", err)
	}

	rec := s.do(t, http.MethodGet, "/", nil)
	if strings.Contains(rec.Body.String(), "<script>x</script>") {
		t.Error("project name was not escaped")
	}
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	t.Parallel()
	s := setupRouterTest(t, nil)

	rec := s.do(t, http.MethodGet, "/does-not-exist", nil)
	expectErrorCode(t, rec, http.StatusNotFound, ErrCodeNotFound)

	rec = s.do(t, http.MethodPut, "/info", nil)
	expectErrorCode(t, rec, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed)
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()
	s := setupRouterTest(t, nil)

	_ = s.do(t, http.MethodGet, "/projects/MyProject", nil)
	rec := s.do(t, http.MethodGet, "/metrics", nil)
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `endpoint="/projects/{projectId}"`) {
		t.Error("metrics are not labelled with the route pattern")
	}

	disabled := setupRouterTest(t, func(c *config.Config) { c.API.MetricsEnabled = false })
	rec = disabled.do(t, http.MethodGet, "/metrics", nil)
	expectStatus(t, rec, http.StatusNotFound)
}
