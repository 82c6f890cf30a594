package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/patrickmn/go-cache"
	"github.com/user/watchbox/internal/metrics"
	"github.com/user/watchbox/internal/model"
	"github.com/user/watchbox/internal/utils"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ErrMovieNotFound 影片不存在
var ErrMovieNotFound = errors.New("movie not found")

const (
	placeholderPoster   = "/placeholder-poster.jpg"
	placeholderBackdrop = "/placeholder-backdrop.jpg"
	noOverview          = "No overview available"
	unknownTitle        = "Unknown Title"
	unknownName         = "Unknown"
	unknownRole         = "Unknown Role"

	minSearchLength = 2
	searchLimit     = 20
	maxCast         = 15
)

var genres = []model.Genre{
	{ID: "Action", Name: "Action"},
	{ID: "Adventure", Name: "Adventure"},
	{ID: "Animation", Name: "Animation"},
	{ID: "Comedy", Name: "Comedy"},
	{ID: "Crime", Name: "Crime"},
	{ID: "Documentary", Name: "Documentary"},
	{ID: "Drama", Name: "Drama"},
	{ID: "Family", Name: "Family"},
	{ID: "Fantasy", Name: "Fantasy"},
	{ID: "History", Name: "History"},
	{ID: "Horror", Name: "Horror"},
	{ID: "Music", Name: "Music"},
	{ID: "Mystery", Name: "Mystery"},
	{ID: "Romance", Name: "Romance"},
	{ID: "Sci-Fi", Name: "Science Fiction"},
	{ID: "Thriller", Name: "Thriller"},
	{ID: "War", Name: "War"},
	{ID: "Western", Name: "Western"},
}

// CatalogService 影片目录服务（imdbapi.dev）
// 列表类请求失败时降级为空列表，详情请求失败时返回错误
type CatalogService struct {
	baseURL     string
	client      *utils.HTTPClient
	cache       *cache.Cache
	searchCache *utils.SearchCache[[]model.Movie]
	cacheTTL    time.Duration
	group       singleflight.Group
	metrics     metrics.Recorder
}

// NewCatalogService 创建目录服务，cacheTTL 为 0 时不缓存
func NewCatalogService(baseURL string, timeout, cacheTTL time.Duration, rec metrics.Recorder) *CatalogService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	cleanup := cacheTTL
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &CatalogService{
		baseURL:     strings.TrimRight(baseURL, "/"),
		client:      utils.NewHTTPClient(timeout),
		cache:       utils.NewCache(cleanup),
		searchCache: utils.NewSearchCache[[]model.Movie](256, cacheTTL),
		cacheTTL:    cacheTTL,
		metrics:     rec,
	}
}

// FetchPopularMovies 获取热门影片
func (s *CatalogService) FetchPopularMovies(ctx context.Context, pageToken string) []model.Movie {
	key := "popular:" + pageToken
	if v, ok := s.cacheGet(key); ok {
		s.metrics.RecordCatalog("popular", metrics.ResultCache)
		return v.([]model.Movie)
	}

	params := url.Values{}
	params.Set("types", "MOVIE")
	params.Set("sortBy", "SORT_BY_POPULARITY")
	params.Set("sortOrder", "ASC")
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	var resp imdbTitlesResponse
	if err := s.client.GetJSON(ctx, s.baseURL+"/titles?"+params.Encode(), &resp); err != nil {
		log.Printf("[Catalog] 获取热门影片失败: %v", err)
		s.metrics.RecordCatalog("popular", metrics.ResultError)
		return []model.Movie{}
	}

	movies := normalizeTitles(resp.Titles)
	s.cacheSet(key, movies)
	s.metrics.RecordCatalog("popular", listResult(len(movies)))
	return movies
}

// SearchMovies 搜索影片，关键词少于 2 个字符时直接返回空列表
func (s *CatalogService) SearchMovies(ctx context.Context, query string) []model.Movie {
	if utf8.RuneCountInString(query) < minSearchLength {
		return []model.Movie{}
	}

	if movies, ok := s.searchCache.Get(query); ok {
		s.metrics.RecordCatalog("search", metrics.ResultCache)
		return movies
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", fmt.Sprint(searchLimit))

	var resp imdbSearchResponse
	if err := s.client.GetJSON(ctx, s.baseURL+"/search/titles?"+params.Encode(), &resp); err != nil {
		log.Printf("[Catalog] 搜索影片失败 (query: %s): %v", query, err)
		s.metrics.RecordCatalog("search", metrics.ResultError)
		return []model.Movie{}
	}

	movies := normalizeTitles(resp.Results)
	s.searchCache.Set(query, movies)
	s.metrics.RecordCatalog("search", listResult(len(movies)))
	return movies
}

// FetchMovieDetails 获取影片详情
// 同一 ID 的并发请求只会发出一次
func (s *CatalogService) FetchMovieDetails(ctx context.Context, id string) (*model.Movie, error) {
	key := "detail:" + id
	if v, ok := s.cacheGet(key); ok {
		s.metrics.RecordCatalog("detail", metrics.ResultCache)
		m := *v.(*model.Movie)
		return &m, nil
	}

	// 共享的请求不跟随单个调用方取消，超时仍由 HTTP 客户端控制；
	// 调用方取消时只是自己提前返回
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		return s.fetchMovieDetails(fetchCtx, id)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	val, err := res.Val, res.Err
	if err != nil {
		log.Printf("[Catalog] 获取影片详情失败 (ID: %s): %v", id, err)
		s.metrics.RecordCatalog("detail", metrics.ResultError)
		return nil, err
	}

	movie := val.(*model.Movie)
	s.cacheSet(key, movie)
	s.metrics.RecordCatalog("detail", metrics.ResultOK)
	m := *movie
	return &m, nil
}

func (s *CatalogService) fetchMovieDetails(ctx context.Context, id string) (*model.Movie, error) {
	var title *imdbTitle
	err := s.client.GetJSON(ctx, s.baseURL+"/titles/"+url.PathEscape(id), &title)
	if err != nil {
		var statusErr *utils.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrMovieNotFound, id)
		}
		return nil, fmt.Errorf("catalog detail: %w", err)
	}
	if title == nil {
		return nil, fmt.Errorf("%w: %s", ErrMovieNotFound, id)
	}

	movie := normalizeTitle(*title)
	return &movie, nil
}

// FetchMovieCredits 获取演员表，只保留演员，最多 15 人
func (s *CatalogService) FetchMovieCredits(ctx context.Context, id string) []model.CastMember {
	key := "credits:" + id
	if v, ok := s.cacheGet(key); ok {
		s.metrics.RecordCatalog("credits", metrics.ResultCache)
		return v.([]model.CastMember)
	}

	var resp imdbCreditsResponse
	if err := s.client.GetJSON(ctx, s.baseURL+"/titles/"+url.PathEscape(id)+"/credits", &resp); err != nil {
		log.Printf("[Catalog] 获取演员表失败 (ID: %s): %v", id, err)
		s.metrics.RecordCatalog("credits", metrics.ResultError)
		return []model.CastMember{}
	}

	cast := normalizeCredits(resp)
	s.cacheSet(key, cast)
	s.metrics.RecordCatalog("credits", metrics.ResultOK)
	return cast
}

// FetchMoviePage 并发获取详情与演员表
// 演员表失败不影响详情
func (s *CatalogService) FetchMoviePage(ctx context.Context, id string) (*model.Movie, error) {
	var (
		movie *model.Movie
		cast  []model.CastMember
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.FetchMovieDetails(gctx, id)
		if err != nil {
			return err
		}
		movie = m
		return nil
	})
	g.Go(func() error {
		cast = s.FetchMovieCredits(gctx, id)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	movie.Cast = cast
	return movie, nil
}

// FetchGenres 固定的类型列表
func (s *CatalogService) FetchGenres() []model.Genre {
	out := make([]model.Genre, len(genres))
	copy(out, genres)
	return out
}

func (s *CatalogService) cacheGet(key string) (interface{}, bool) {
	if s.cacheTTL <= 0 {
		return nil, false
	}
	return s.cache.Get(key)
}

func (s *CatalogService) cacheSet(key string, value interface{}) {
	if s.cacheTTL <= 0 {
		return
	}
	s.cache.Set(key, value, s.cacheTTL)
}

func normalizeTitles(titles []imdbTitle) []model.Movie {
	movies := make([]model.Movie, 0, len(titles))
	for _, t := range titles {
		movies = append(movies, normalizeTitle(t))
	}
	return movies
}

// normalizeTitle 把 imdbapi 的影片结构转换为本地结构
func normalizeTitle(t imdbTitle) model.Movie {
	m := model.Movie{
		ID:          t.ID,
		Title:       firstNonEmpty(t.PrimaryTitle, t.OriginalTitle, unknownTitle),
		Overview:    firstNonEmpty(utils.StripHTML(t.Plot), noOverview),
		PosterURL:   placeholderPoster,
		BackdropURL: placeholderBackdrop,
		ReleaseYear: t.StartYear,
		Genres:      t.Genres,
	}
	if t.PrimaryImage != nil && t.PrimaryImage.URL != "" {
		m.PosterURL = t.PrimaryImage.URL
		m.BackdropURL = t.PrimaryImage.URL
	}
	if t.Rating != nil {
		m.Rating = t.Rating.AggregateRating
	}
	if m.Genres == nil {
		m.Genres = []string{}
	}
	if t.RuntimeSeconds != nil && *t.RuntimeSeconds > 0 {
		minutes := *t.RuntimeSeconds / 60
		m.Runtime = &minutes
	}
	return m
}

func normalizeCredits(resp imdbCreditsResponse) []model.CastMember {
	cast := []model.CastMember{}
	if resp.Credits == nil {
		return cast
	}

	for _, edge := range resp.Credits.Edges {
		if len(cast) == maxCast {
			break
		}
		node := edge.Node
		if node.Category == nil || (node.Category.Text != "Actor" && node.Category.Text != "Actress") {
			continue
		}

		member := model.CastMember{
			Name:      unknownName,
			Character: unknownRole,
		}
		if node.Name != nil {
			if node.Name.NameText != nil && node.Name.NameText.Text != "" {
				member.Name = node.Name.NameText.Text
			}
			if node.Name.PrimaryImage != nil {
				member.ProfileURL = node.Name.PrimaryImage.URL
			}
		}
		if len(node.Characters) > 0 && node.Characters[0].Name != "" {
			member.Character = node.Characters[0].Name
		}
		cast = append(cast, member)
	}
	return cast
}

// listResult 成功但没有数据时记为 empty
func listResult(n int) string {
	if n == 0 {
		return metrics.ResultEmpty
	}
	return metrics.ResultOK
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
