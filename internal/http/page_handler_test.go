package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pagecraft/internal/domain"
	"pagecraft/internal/repository"
)

type mockPageRepo struct {
	pages  map[int64]domain.Page
	nextID int64
}

func newMockPageRepo() *mockPageRepo {
	return &mockPageRepo{pages: make(map[int64]domain.Page), nextID: 1}
}

func (m *mockPageRepo) Create(_ context.Context, page domain.Page) (domain.Page, error) {
	page.ID = m.nextID
	m.nextID++
	page.CreatedAt = time.Now().UTC()
	page.UpdatedAt = page.CreatedAt
	m.pages[page.ID] = page
	return page, nil
}

func (m *mockPageRepo) List(_ context.Context, params repository.ListParams) ([]domain.Page, int64, error) {
	params.Normalize([]string{"id"}, "id")
	all := make([]domain.Page, 0, len(m.pages))
	for id := int64(1); id < m.nextID; id++ {
		if p, ok := m.pages[id]; ok {
			all = append(all, p)
		}
	}
	total := int64(len(all))
	start := params.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + params.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (m *mockPageRepo) ListByProject(_ context.Context, projectID int64, params repository.ListParams) ([]domain.Page, int64, error) {
	params.Normalize([]string{"id"}, "id")
	matched := make([]domain.Page, 0)
	for id := int64(1); id < m.nextID; id++ {
		if p, ok := m.pages[id]; ok && p.ProjectID == projectID {
			matched = append(matched, p)
		}
	}
	return matched, int64(len(matched)), nil
}

func (m *mockPageRepo) GetByID(_ context.Context, id int64) (domain.Page, error) {
	page, ok := m.pages[id]
	if !ok {
		return domain.Page{}, repository.ErrNotFound
	}
	return page, nil
}

func (m *mockPageRepo) Update(_ context.Context, id int64, fields map[string]any) (domain.Page, error) {
	page, ok := m.pages[id]
	if !ok {
		return domain.Page{}, repository.ErrNotFound
	}
	if len(fields) == 0 {
		return domain.Page{}, repository.ErrNoFields
	}
	if v, ok := fields["width"]; ok {
		page.Width = v.(int)
	}
	if v, ok := fields["height"]; ok {
		page.Height = v.(int)
	}
	if v, ok := fields["background_color"]; ok {
		page.BackgroundColor = v.(string)
	}
	m.pages[id] = page
	return page, nil
}

func (m *mockPageRepo) Delete(_ context.Context, id int64) (domain.Page, error) {
	page, ok := m.pages[id]
	if !ok {
		return domain.Page{}, repository.ErrNotFound
	}
	delete(m.pages, id)
	return page, nil
}

func setupPageRouter(repo repository.PageRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPageHandler(zap.NewNop(), repo)
	r := gin.New()
	pages := r.Group("/api/v1/pages")
	pages.POST("", h.Create)
	pages.GET("", h.List)
	pages.GET("/project", h.ListByProject)
	pages.GET("/:id", h.Get)
	pages.PUT("/:id", h.Update)
	pages.DELETE("/:id", h.Delete)
	return r
}

func TestPageHandlerCreate_AppliesDefaults(t *testing.T) {
	r := setupPageRouter(newMockPageRepo())

	rec := performRequest(r, http.MethodPost, "/api/v1/pages", map[string]any{
		"project_id": 1,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	data := decodeBody(t, rec)["data"].(map[string]any)
	if data["width"].(float64) != 1920 || data["height"].(float64) != 1080 {
		t.Fatalf("expected default dimensions, got %vx%v", data["width"], data["height"])
	}
	if data["background_color"] != "#FFFFFF" {
		t.Fatalf("expected default background, got %v", data["background_color"])
	}
}

func TestPageHandlerUpdate_NotFound(t *testing.T) {
	r := setupPageRouter(newMockPageRepo())

	rec := performRequest(r, http.MethodPut, "/api/v1/pages/999", map[string]any{
		"width": 500,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for nonexistent page, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != true {
		t.Fatalf("expected error envelope")
	}
}

func TestPageHandlerUpdate_NoFields(t *testing.T) {
	repo := newMockPageRepo()
	r := setupPageRouter(repo)

	if rec := performRequest(r, http.MethodPost, "/api/v1/pages", map[string]any{
		"project_id": 1, "width": 800, "height": 600,
	}); rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", rec.Code)
	}

	rec := performRequest(r, http.MethodPut, "/api/v1/pages/1", map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty update, got %d", rec.Code)
	}
}

func TestPageHandlerList_PaginationEnvelope(t *testing.T) {
	repo := newMockPageRepo()
	r := setupPageRouter(repo)

	for i := 0; i < 15; i++ {
		if rec := performRequest(r, http.MethodPost, "/api/v1/pages", map[string]any{
			"project_id": 1, "width": 800, "height": 600,
		}); rec.Code != http.StatusCreated {
			t.Fatalf("create failed: %d", rec.Code)
		}
	}

	rec := performRequest(r, http.MethodGet, "/api/v1/pages?page=2&limit=10", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	pagination, ok := body["pagination"].(map[string]any)
	if !ok {
		t.Fatalf("expected pagination block, got %v", body)
	}
	if pagination["totalCount"].(float64) != 15 {
		t.Fatalf("expected totalCount 15, got %v", pagination["totalCount"])
	}
	if pagination["totalPages"].(float64) != 2 {
		t.Fatalf("expected totalPages 2, got %v", pagination["totalPages"])
	}
	if pagination["currentPage"].(float64) != 2 {
		t.Fatalf("expected currentPage 2, got %v", pagination["currentPage"])
	}
	data := body["data"].([]any)
	if len(data) != 5 {
		t.Fatalf("expected 5 rows on page 2, got %d", len(data))
	}
}

func TestPageHandlerListByProject_RequiresProjectID(t *testing.T) {
	r := setupPageRouter(newMockPageRepo())

	rec := performRequest(r, http.MethodGet, "/api/v1/pages/project", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without project_id, got %d", rec.Code)
	}
}

func TestPageHandlerDelete_ReturnsDeletedRow(t *testing.T) {
	repo := newMockPageRepo()
	r := setupPageRouter(repo)

	if rec := performRequest(r, http.MethodPost, "/api/v1/pages", map[string]any{
		"project_id": 1, "width": 800, "height": 600,
	}); rec.Code != http.StatusCreated {
		t.Fatalf("create failed")
	}

	rec := performRequest(r, http.MethodDelete, "/api/v1/pages/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := decodeBody(t, rec)["data"].(map[string]any)
	if data["id"].(float64) != 1 {
		t.Fatalf("expected deleted row in response, got %v", data)
	}

	rec = performRequest(r, http.MethodGet, "/api/v1/pages/1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestPageHandlerInvalidID(t *testing.T) {
	r := setupPageRouter(newMockPageRepo())

	rec := performRequest(r, http.MethodGet, "/api/v1/pages/abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", rec.Code)
	}
}
