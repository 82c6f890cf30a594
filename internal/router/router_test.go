package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/user/watchbox/internal/handler"
	"github.com/user/watchbox/internal/metrics"
	"github.com/user/watchbox/internal/middleware"
	"github.com/user/watchbox/internal/model"
	"github.com/user/watchbox/internal/store"
)

type stubCatalog struct{}

func (stubCatalog) FetchPopularMovies(context.Context, string) []model.Movie { return []model.Movie{} }
func (stubCatalog) SearchMovies(context.Context, string) []model.Movie       { return []model.Movie{} }
func (stubCatalog) FetchMovieCredits(context.Context, string) []model.CastMember {
	return []model.CastMember{}
}
func (stubCatalog) FetchMoviePage(_ context.Context, id string) (*model.Movie, error) {
	return &model.Movie{ID: id}, nil
}
func (stubCatalog) FetchGenres() []model.Genre { return []model.Genre{} }

type stubUsers struct{}

func (stubUsers) Create(_ context.Context, d model.SignupData) (*model.User, error) {
	return &model.User{ID: "u", Email: d.Email}, nil
}
func (stubUsers) VerifyLogin(context.Context, model.LoginData) *model.User { return nil }
func (stubUsers) FindByID(_ context.Context, id string) (*model.User, error) {
	return &model.User{ID: id}, nil
}

type stubSource struct{}

func (stubSource) Add(_ context.Context, m model.Movie, userID string) (*model.WatchlistItem, error) {
	return &model.WatchlistItem{ID: "w", UserID: userID, MovieID: m.ID}, nil
}
func (stubSource) Remove(context.Context, string, string) error { return nil }
func (stubSource) ListByUser(context.Context, string) ([]model.WatchlistItem, error) {
	return nil, nil
}

func setupRouter(t *testing.T) (*gin.Engine, *metrics.Collector) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := handler.RegisterValidators(); err != nil {
		t.Fatalf("RegisterValidators() unexpected error: %v", err)
	}

	auth := store.NewAuthStore(store.NewMemoryStorage(), store.NewTokenCodec("test"))
	t.Cleanup(auth.Close)
	collector := metrics.NewCollector(prometheus.NewRegistry())
	collector.RecordCatalog("popular", metrics.ResultOK)

	limiter := middleware.NewIPRateLimiter(0.001, 1)
	t.Cleanup(limiter.Stop)

	h := handler.NewHandler(stubCatalog{}, stubUsers{}, auth,
		store.NewWatchlistStore(stubSource{}, collector), store.NewFilterStore(2025))

	r := gin.New()
	RegisterRoutes(r, h, Deps{Session: auth, AuthLimiter: limiter, Metrics: collector.Handler()})
	return r, collector
}

func TestRegisterRoutes_Public(t *testing.T) {
	r, _ := setupRouter(t)

	for _, path := range []string{
		"/health",
		"/api/genres",
		"/api/movies/popular",
		"/api/movies/search?q=godfather",
		"/api/movies/tt0068646",
		"/api/movies/tt0068646/credits",
		"/api/filters",
		"/auth/session",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, w.Code)
		}
	}
}

func TestRegisterRoutes_WatchlistProtected(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/watchlist", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRegisterRoutes_AuthRateLimited(t *testing.T) {
	r, _ := setupRouter(t)

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@example.com","password":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "192.0.2.1:5555"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := send(); code != http.StatusUnauthorized {
		t.Fatalf("first login status = %d, want 401", code)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Fatalf("second login status = %d, want 429", code)
	}
}

func TestRegisterRoutes_Metrics(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `watchbox_catalog_requests_total{op="popular",result="ok"} 1`) {
		t.Errorf("metrics output missing catalog counter:\n%s", w.Body.String())
	}
}
