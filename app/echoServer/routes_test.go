package echoServer_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Touati-Fadwa/Micro-books/app/echoServer"
	bookctrl "github.com/Touati-Fadwa/Micro-books/app/echoServer/controller/book"
	borrowctrl "github.com/Touati-Fadwa/Micro-books/app/echoServer/controller/borrowing"
	categoryctrl "github.com/Touati-Fadwa/Micro-books/app/echoServer/controller/category"
	"github.com/Touati-Fadwa/Micro-books/app/echoServer/validation"
	"github.com/Touati-Fadwa/Micro-books/model"
	borrowsvc "github.com/Touati-Fadwa/Micro-books/service/borrowing"
	categorysvc "github.com/Touati-Fadwa/Micro-books/service/category"
	utiljwt "github.com/Touati-Fadwa/Micro-books/util/jwt"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type categorySvcMock struct {
	createFn func(ctx context.Context, name string) (*model.Category, error)
}

func (m *categorySvcMock) List(ctx context.Context) ([]model.Category, error) { return nil, nil }
func (m *categorySvcMock) Detail(ctx context.Context, id int64) (*model.Category, error) {
	return &model.Category{ID: id, Name: "Roman"}, nil
}
func (m *categorySvcMock) Create(ctx context.Context, name string) (*model.Category, error) {
	return m.createFn(ctx, name)
}
func (m *categorySvcMock) Rename(ctx context.Context, id int64, name string) (*model.Category, error) {
	return nil, nil
}
func (m *categorySvcMock) Delete(ctx context.Context, id int64) error { return nil }

type borrowSvcMock struct {
	listByStudentFn func(ctx context.Context, studentID int64) ([]model.BorrowingDetail, error)
}

func (m *borrowSvcMock) Create(ctx context.Context, in borrowsvc.CreateInput) (*model.Borrowing, error) {
	return nil, nil
}
func (m *borrowSvcMock) Return(ctx context.Context, id int64) (*model.Borrowing, error) {
	return nil, nil
}
func (m *borrowSvcMock) Delete(ctx context.Context, id int64) error { return nil }
func (m *borrowSvcMock) ListAll(ctx context.Context) ([]model.BorrowingDetail, error) {
	return []model.BorrowingDetail{}, nil
}
func (m *borrowSvcMock) ListByStudent(ctx context.Context, studentID int64) ([]model.BorrowingDetail, error) {
	if m.listByStudentFn == nil {
		return []model.BorrowingDetail{}, nil
	}
	return m.listByStudentFn(ctx, studentID)
}

func newTestServer(t *testing.T, catSvc categorysvc.Service, borSvc borrowsvc.Service) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Validator = validation.New()
	log := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
	v := validator.New()
	echoServer.Register(e, echoServer.C{
		Book:      &bookctrl.Controller{Svc: nil, V: v, Log: log},
		Category:  &categoryctrl.Controller{Svc: catSvc, V: v, Log: log},
		Borrowing: &borrowctrl.Controller{Svc: borSvc, V: v, Log: log},
		JWTSecret: testSecret,
	})
	return e
}

func token(t *testing.T, userID int64, role string) string {
	t.Helper()
	tok, err := utiljwt.Issue(testSecret, userID, role, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestHealth_NoTokenRequired(t *testing.T) {
	e := newTestServer(t, &categorySvcMock{}, &borrowSvcMock{})
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.Equal(t, "OK", m["status"])
}

func TestMissingToken_Unauthorized(t *testing.T) {
	e := newTestServer(t, &categorySvcMock{}, &borrowSvcMock{})
	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGarbageToken_Unauthorized(t *testing.T) {
	e := newTestServer(t, &categorySvcMock{}, &borrowSvcMock{})
	req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(`{"name":"Roman"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStudentOnAdminRoute_Forbidden(t *testing.T) {
	e := newTestServer(t, &categorySvcMock{}, &borrowSvcMock{})
	req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(`{"name":"Roman"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, token(t, 7, "student"))
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminCreatesCategory(t *testing.T) {
	created := ""
	cat := &categorySvcMock{
		createFn: func(ctx context.Context, name string) (*model.Category, error) {
			created = name
			return &model.Category{ID: 1, Name: name}, nil
		},
	}
	e := newTestServer(t, cat, &borrowSvcMock{})
	req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(`{"name":"Roman"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, token(t, 1, "admin"))
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Roman", created)
}

func TestStudentListing_ScopedToCaller(t *testing.T) {
	var gotID int64
	bor := &borrowSvcMock{
		listByStudentFn: func(ctx context.Context, studentID int64) ([]model.BorrowingDetail, error) {
			gotID = studentID
			return []model.BorrowingDetail{}, nil
		},
	}
	e := newTestServer(t, &categorySvcMock{}, bor)
	req := httptest.NewRequest(http.MethodGet, "/api/borrowings/student", nil)
	req.Header.Set(echo.HeaderAuthorization, token(t, 7, "student"))
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), gotID)
}

func TestAdminListingAllowed(t *testing.T) {
	e := newTestServer(t, &categorySvcMock{}, &borrowSvcMock{})
	req := httptest.NewRequest(http.MethodGet, "/api/borrowings", nil)
	req.Header.Set(echo.HeaderAuthorization, token(t, 1, "admin"))
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnknownRoute_NotFoundPayload(t *testing.T) {
	e := newTestServer(t, &categorySvcMock{}, &borrowSvcMock{})
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.Equal(t, "Route not found", m["message"])
}
