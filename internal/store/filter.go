package store

import (
	"slices"

	"github.com/user/watchbox/internal/model"
)

const (
	minYear   = 1900
	maxRating = 10
)

// FilterState 筛选条件，YearRange 为闭区间
type FilterState struct {
	SelectedGenres []string `json:"selectedGenres"`
	YearRange      [2]int   `json:"yearRange"`
	MinRating      float64  `json:"minRating"`
}

// FilterStore 本地筛选条件，不持久化
type FilterStore struct {
	cell        *Cell[FilterState]
	currentYear int
}

// NewFilterStore 创建筛选 store，currentYear 在创建时固定
func NewFilterStore(currentYear int) *FilterStore {
	s := &FilterStore{currentYear: currentYear}
	s.cell = newCell(s.defaults())
	return s
}

func (s *FilterStore) defaults() FilterState {
	return FilterState{
		SelectedGenres: []string{},
		YearRange:      [2]int{minYear, s.currentYear},
		MinRating:      0,
	}
}

// State 当前状态
func (s *FilterStore) State() FilterState {
	return s.cell.Get()
}

// Subscribe 订阅状态变化
func (s *FilterStore) Subscribe(fn func(FilterState)) func() {
	return s.cell.Subscribe(fn)
}

// SetGenres 设置选中的类型，去重并保持顺序
func (s *FilterStore) SetGenres(genres []string) {
	selected := make([]string, 0, len(genres))
	for _, g := range genres {
		if !slices.Contains(selected, g) {
			selected = append(selected, g)
		}
	}
	s.cell.update(func(st FilterState) FilterState {
		st.SelectedGenres = selected
		return st
	})
}

// ToggleGenre 未选中则加入，已选中则移除
func (s *FilterStore) ToggleGenre(genre string) {
	s.cell.update(func(st FilterState) FilterState {
		if slices.Contains(st.SelectedGenres, genre) {
			st.SelectedGenres = slices.DeleteFunc(slices.Clone(st.SelectedGenres), func(g string) bool {
				return g == genre
			})
		} else {
			st.SelectedGenres = append(slices.Clone(st.SelectedGenres), genre)
		}
		return st
	})
}

// SetYearRange 设置年份区间，from > to 时交换
func (s *FilterStore) SetYearRange(from, to int) {
	if from > to {
		from, to = to, from
	}
	s.cell.update(func(st FilterState) FilterState {
		st.YearRange = [2]int{from, to}
		return st
	})
}

// SetMinRating 设置最低评分，限制在 [0, 10]
func (s *FilterStore) SetMinRating(rating float64) {
	if rating < 0 {
		rating = 0
	}
	if rating > maxRating {
		rating = maxRating
	}
	s.cell.update(func(st FilterState) FilterState {
		st.MinRating = rating
		return st
	})
}

// Reset 恢复默认值
func (s *FilterStore) Reset() {
	s.cell.set(s.defaults())
}

// Apply 按当前条件筛选影片，年份未知（0）的影片不受年份区间限制
func (s *FilterStore) Apply(movies []model.Movie) []model.Movie {
	st := s.cell.Get()
	out := make([]model.Movie, 0, len(movies))
	for _, m := range movies {
		if st.matches(m) {
			out = append(out, m)
		}
	}
	return out
}

func (st FilterState) matches(m model.Movie) bool {
	if len(st.SelectedGenres) > 0 {
		hit := false
		for _, g := range m.Genres {
			if slices.Contains(st.SelectedGenres, g) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if m.ReleaseYear != 0 && (m.ReleaseYear < st.YearRange[0] || m.ReleaseYear > st.YearRange[1]) {
		return false
	}
	return m.Rating >= st.MinRating
}
