// AngelaMos | 2026
// handler_test.go

package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"github.com/angelamos/storeratings/internal/middleware"
)

func stubAuth(userID, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), middleware.UserIDKey, userID)
			ctx = context.WithValue(ctx, middleware.UserRoleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := NewService(NewRepository(sqlx.NewDb(db, "sqlmock")))
	handler := NewHandler(svc, DashboardConfig{
		StoreCount:  func(context.Context) (int, error) { return 7, nil },
		RatingCount: func(context.Context) (int, error) { return 42, nil },
	})
	return handler, mock
}

func TestDashboardAggregatesCounts(t *testing.T) {
	handler, mock := newTestHandler(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	r := chi.NewRouter()
	handler.RegisterRoutes(r, stubAuth("admin-1", "admin"), middleware.RequireAdmin)

	req := httptest.NewRequest(http.MethodGet, "/users/stats/dashboard", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	var stats DashboardStats
	if err := json.Unmarshal(rr.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.UserCount != 12 || stats.StoreCount != 7 || stats.RatingCount != 42 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestUserRoutesRejectNonAdmin(t *testing.T) {
	handler, _ := newTestHandler(t)

	r := chi.NewRouter()
	handler.RegisterRoutes(
		r,
		stubAuth("user-1", "normal_user"),
		middleware.RequireAdmin,
	)

	paths := []string{"/users", "/users/stats/dashboard", "/users/user-2"}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusForbidden {
			t.Fatalf("%s status = %d, want 403", path, rr.Code)
		}
	}
}
