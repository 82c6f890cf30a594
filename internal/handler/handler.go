package handler

import (
	"context"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/user/watchbox/internal/model"
	"github.com/user/watchbox/internal/store"
)

// Catalog 影片目录，由 *service.CatalogService 实现
type Catalog interface {
	FetchPopularMovies(ctx context.Context, pageToken string) []model.Movie
	SearchMovies(ctx context.Context, query string) []model.Movie
	FetchMovieCredits(ctx context.Context, id string) []model.CastMember
	FetchMoviePage(ctx context.Context, id string) (*model.Movie, error)
	FetchGenres() []model.Genre
}

// Users 用户仓库，由 *repository.UserRepository 实现
type Users interface {
	Create(ctx context.Context, data model.SignupData) (*model.User, error)
	VerifyLogin(ctx context.Context, data model.LoginData) *model.User
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// Handler HTTP 处理器
// 进程内只有一个会话，三个 store 由 main 创建后注入
type Handler struct {
	catalog   Catalog
	users     Users
	auth      *store.AuthStore
	watchlist *store.WatchlistStore
	filters   *store.FilterStore
}

// NewHandler 创建处理器
func NewHandler(catalog Catalog, users Users, auth *store.AuthStore, watchlist *store.WatchlistStore, filters *store.FilterStore) *Handler {
	return &Handler{
		catalog:   catalog,
		users:     users,
		auth:      auth,
		watchlist: watchlist,
		filters:   filters,
	}
}

var imdbIDPattern = regexp.MustCompile(`^tt\d{7,}$`)

// RegisterValidators 注册自定义校验标签 imdbid
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("imdbid", func(fl validator.FieldLevel) bool {
		return imdbIDPattern.MatchString(fl.Field().String())
	})
}
