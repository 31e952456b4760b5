package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"repuestos/internal/model"
	"repuestos/internal/service"
	"repuestos/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepuestoService lets each test script the service outcome.
type stubRepuestoService struct {
	getAll  func() ([]model.Repuesto, error)
	getByID func(id uint) (*model.Repuesto, error)
	create  func(req service.CreateRepuestoRequest) (*model.Repuesto, error)
	update  func(id uint, req service.UpdateRepuestoRequest) (*model.Repuesto, error)
	delete  func(id uint) error
	restore func(id uint) (*model.Repuesto, error)
}

func (s *stubRepuestoService) GetAll(context.Context) ([]model.Repuesto, error) {
	return s.getAll()
}

func (s *stubRepuestoService) GetPage(_ context.Context, page, limit int) ([]model.Repuesto, int64, error) {
	rows, err := s.getAll()
	return rows, int64(len(rows)), err
}

func (s *stubRepuestoService) GetByID(_ context.Context, id uint) (*model.Repuesto, error) {
	return s.getByID(id)
}

func (s *stubRepuestoService) Create(_ context.Context, req service.CreateRepuestoRequest) (*model.Repuesto, error) {
	return s.create(req)
}

func (s *stubRepuestoService) Update(_ context.Context, id uint, req service.UpdateRepuestoRequest) (*model.Repuesto, error) {
	return s.update(id, req)
}

func (s *stubRepuestoService) Delete(_ context.Context, id uint) error {
	return s.delete(id)
}

func (s *stubRepuestoService) Restore(_ context.Context, id uint) (*model.Repuesto, error) {
	return s.restore(id)
}

const handlerTestSecret = "handler-test-secret"

func newTestRouter(t *testing.T, svc service.RepuestoService) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", handlerTestSecret)
	gin.SetMode(gin.TestMode)

	router := gin.New()
	NewRepuestoHandler(svc).RegisterRoutes(router.Group(""))
	return router
}

func bearerFor(t *testing.T, role string) string {
	t.Helper()
	issuer := token.NewIssuer([]byte(handlerTestSecret), time.Hour, time.Hour)
	signed, _, _, err := issuer.Issue(&model.User{ID: 1, Username: "tester", Email: "t@t.com", Role: role})
	require.NoError(t, err)
	return "Bearer " + signed
}

func doRequest(router *gin.Engine, method, path, body, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sampleRepuesto(id uint) *model.Repuesto {
	return &model.Repuesto{
		BaseModel:     model.BaseModel{ID: id, IsActive: true, CreatedAt: time.Now().UTC()},
		Name:          "Filtro",
		Description:   "D",
		Price:         decimal.NewFromFloat(25.50),
		StockQuantity: 100,
	}
}

func TestListRequiresAuth(t *testing.T) {
	router := newTestRouter(t, &stubRepuestoService{})

	rec := doRequest(router, http.MethodGet, "/api/repuestos", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMutationsRequireAdminRole(t *testing.T) {
	router := newTestRouter(t, &stubRepuestoService{})

	rec := doRequest(router, http.MethodDelete, "/api/repuestos/1", "", bearerFor(t, model.RoleUser))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListReturnsEntities(t *testing.T) {
	svc := &stubRepuestoService{
		getAll: func() ([]model.Repuesto, error) { return []model.Repuesto{*sampleRepuesto(1)}, nil },
	}
	router := newTestRouter(t, svc)

	rec := doRequest(router, http.MethodGet, "/api/repuestos", "", bearerFor(t, model.RoleUser))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Filtro")
}

func TestListPaginatedEnvelope(t *testing.T) {
	svc := &stubRepuestoService{
		getAll: func() ([]model.Repuesto, error) { return []model.Repuesto{*sampleRepuesto(1)}, nil },
	}
	router := newTestRouter(t, svc)

	rec := doRequest(router, http.MethodGet, "/api/repuestos?page=1&limit=10", "", bearerFor(t, model.RoleUser))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pagination"`)
}

func TestGetByIDNotFound(t *testing.T) {
	svc := &stubRepuestoService{
		getByID: func(id uint) (*model.Repuesto, error) {
			return nil, fmt.Errorf("id %d: %w", id, service.ErrNotFound)
		},
	}
	router := newTestRouter(t, svc)

	rec := doRequest(router, http.MethodGet, "/api/repuestos/42", "", bearerFor(t, model.RoleUser))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetByIDInvalidID(t *testing.T) {
	router := newTestRouter(t, &stubRepuestoService{})

	rec := doRequest(router, http.MethodGet, "/api/repuestos/abc", "", bearerFor(t, model.RoleUser))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReturnsLocationHeader(t *testing.T) {
	svc := &stubRepuestoService{
		create: func(req service.CreateRepuestoRequest) (*model.Repuesto, error) {
			return sampleRepuesto(5), nil
		},
	}
	router := newTestRouter(t, svc)

	body := `{"name":"Filtro","description":"D","price":25.50,"stock_quantity":100}`
	rec := doRequest(router, http.MethodPost, "/api/repuestos", body, bearerFor(t, model.RoleAdmin))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/repuestos/5", rec.Header().Get("Location"))
}

func TestCreateDuplicateConflict(t *testing.T) {
	svc := &stubRepuestoService{
		create: func(req service.CreateRepuestoRequest) (*model.Repuesto, error) {
			return nil, fmt.Errorf("repuesto %q: %w", req.Name, service.ErrAlreadyExists)
		},
	}
	router := newTestRouter(t, svc)

	body := `{"name":"Filtro","description":"D","price":25.50,"stock_quantity":100}`
	rec := doRequest(router, http.MethodPost, "/api/repuestos", body, bearerFor(t, model.RoleAdmin))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateValidation(t *testing.T) {
	router := newTestRouter(t, &stubRepuestoService{})
	admin := bearerFor(t, model.RoleAdmin)

	// missing name
	rec := doRequest(router, http.MethodPost, "/api/repuestos",
		`{"description":"D","price":25.50,"stock_quantity":100}`, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// non-positive price
	rec = doRequest(router, http.MethodPost, "/api/repuestos",
		`{"name":"Filtro","description":"D","price":0,"stock_quantity":100}`, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// negative stock
	rec = doRequest(router, http.MethodPost, "/api/repuestos",
		`{"name":"Filtro","description":"D","price":25.50,"stock_quantity":-1}`, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// stock of zero is allowed at the validation layer
	called := false
	svc := &stubRepuestoService{
		create: func(req service.CreateRepuestoRequest) (*model.Repuesto, error) {
			called = true
			return sampleRepuesto(1), nil
		},
	}
	router = newTestRouter(t, svc)
	rec = doRequest(router, http.MethodPost, "/api/repuestos",
		`{"name":"Filtro","description":"D","price":25.50,"stock_quantity":0}`, bearerFor(t, model.RoleAdmin))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, called)
}

func TestUpdateStatusMapping(t *testing.T) {
	body := `{"name":"Filtro","description":"D","price":25.50,"stock_quantity":100}`

	svc := &stubRepuestoService{
		update: func(id uint, req service.UpdateRepuestoRequest) (*model.Repuesto, error) {
			return nil, fmt.Errorf("id %d: %w", id, service.ErrNotFound)
		},
	}
	router := newTestRouter(t, svc)
	rec := doRequest(router, http.MethodPut, "/api/repuestos/42", body, bearerFor(t, model.RoleAdmin))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	svc.update = func(id uint, req service.UpdateRepuestoRequest) (*model.Repuesto, error) {
		return nil, fmt.Errorf("repuesto %q: %w", req.Name, service.ErrAlreadyExists)
	}
	rec = doRequest(router, http.MethodPut, "/api/repuestos/42", body, bearerFor(t, model.RoleAdmin))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeleteStatusMapping(t *testing.T) {
	svc := &stubRepuestoService{
		delete: func(id uint) error { return nil },
	}
	router := newTestRouter(t, svc)

	rec := doRequest(router, http.MethodDelete, "/api/repuestos/1", "", bearerFor(t, model.RoleAdmin))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "deleted")

	svc.delete = func(id uint) error { return fmt.Errorf("id %d: %w", id, service.ErrNotFound) }
	rec = doRequest(router, http.MethodDelete, "/api/repuestos/42", "", bearerFor(t, model.RoleAdmin))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRestoreStatusMapping(t *testing.T) {
	svc := &stubRepuestoService{
		restore: func(id uint) (*model.Repuesto, error) { return sampleRepuesto(id), nil },
	}
	router := newTestRouter(t, svc)

	rec := doRequest(router, http.MethodGet, "/api/repuestos/1/restore", "", bearerFor(t, model.RoleAdmin))
	assert.Equal(t, http.StatusOK, rec.Code)

	svc.restore = func(id uint) (*model.Repuesto, error) {
		return nil, fmt.Errorf("id %d: %w", id, service.ErrAlreadyActive)
	}
	rec = doRequest(router, http.MethodGet, "/api/repuestos/1/restore", "", bearerFor(t, model.RoleAdmin))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.restore = func(id uint) (*model.Repuesto, error) {
		return nil, fmt.Errorf("id %d: %w", id, service.ErrNotFound)
	}
	rec = doRequest(router, http.MethodGet, "/api/repuestos/42/restore", "", bearerFor(t, model.RoleAdmin))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
