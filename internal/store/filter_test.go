package store

import (
	"slices"
	"testing"

	"github.com/user/watchbox/internal/model"
)

func TestFilterDefaults(t *testing.T) {
	s := NewFilterStore(2025)
	st := s.State()

	if st.SelectedGenres == nil || len(st.SelectedGenres) != 0 {
		t.Errorf("SelectedGenres = %#v, want empty slice", st.SelectedGenres)
	}
	if st.YearRange != [2]int{1900, 2025} {
		t.Errorf("YearRange = %v", st.YearRange)
	}
	if st.MinRating != 0 {
		t.Errorf("MinRating = %v", st.MinRating)
	}
}

func TestToggleGenre_TwiceRestores(t *testing.T) {
	s := NewFilterStore(2025)
	s.SetGenres([]string{"Drama"})

	s.ToggleGenre("Action")
	if got := s.State().SelectedGenres; !slices.Equal(got, []string{"Drama", "Action"}) {
		t.Fatalf("after first toggle = %v", got)
	}
	s.ToggleGenre("Action")
	if got := s.State().SelectedGenres; !slices.Equal(got, []string{"Drama"}) {
		t.Fatalf("after second toggle = %v", got)
	}
}

func TestToggleGenre_DoesNotAliasPreviousState(t *testing.T) {
	s := NewFilterStore(2025)
	s.SetGenres([]string{"Drama", "Action"})
	before := s.State()

	s.ToggleGenre("Drama")
	if !slices.Equal(before.SelectedGenres, []string{"Drama", "Action"}) {
		t.Errorf("previous snapshot mutated: %v", before.SelectedGenres)
	}
}

func TestSetGenres_Dedupes(t *testing.T) {
	s := NewFilterStore(2025)
	s.SetGenres([]string{"Drama", "Crime", "Drama"})
	if got := s.State().SelectedGenres; !slices.Equal(got, []string{"Drama", "Crime"}) {
		t.Errorf("SelectedGenres = %v", got)
	}
}

func TestSetYearRange(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     [2]int
	}{
		{"ordered", 1990, 2000, [2]int{1990, 2000}},
		{"reversed", 2000, 1990, [2]int{1990, 2000}},
		{"single year", 1994, 1994, [2]int{1994, 1994}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewFilterStore(2025)
			s.SetYearRange(tt.from, tt.to)
			if got := s.State().YearRange; got != tt.want {
				t.Errorf("YearRange = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetMinRating_Clamps(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{7.5, 7.5},
		{11, 10},
	}
	for _, tt := range tests {
		s := NewFilterStore(2025)
		s.SetMinRating(tt.in)
		if got := s.State().MinRating; got != tt.want {
			t.Errorf("SetMinRating(%v) -> %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFilterReset(t *testing.T) {
	s := NewFilterStore(2025)
	s.SetGenres([]string{"Horror"})
	s.SetYearRange(1980, 1989)
	s.SetMinRating(6)

	s.Reset()
	st := s.State()
	if len(st.SelectedGenres) != 0 || st.YearRange != [2]int{1900, 2025} || st.MinRating != 0 {
		t.Errorf("state after Reset = %+v", st)
	}
}

func TestFilterApply(t *testing.T) {
	movies := []model.Movie{
		{ID: "tt1", Genres: []string{"Drama"}, ReleaseYear: 1994, Rating: 9.3},
		{ID: "tt2", Genres: []string{"Crime", "Drama"}, ReleaseYear: 1972, Rating: 9.2},
		{ID: "tt3", Genres: []string{"Action"}, ReleaseYear: 2008, Rating: 9.0},
		{ID: "tt4", Genres: []string{"Comedy"}, ReleaseYear: 0, Rating: 0},
	}

	tests := []struct {
		name  string
		setup func(s *FilterStore)
		want  []string
	}{
		{"defaults keep everything", func(s *FilterStore) {}, []string{"tt1", "tt2", "tt3", "tt4"}},
		{"genre any-of", func(s *FilterStore) { s.SetGenres([]string{"Drama", "Action"}) }, []string{"tt1", "tt2", "tt3"}},
		{"year range keeps unknown year", func(s *FilterStore) { s.SetYearRange(1990, 2000) }, []string{"tt1", "tt4"}},
		{"min rating", func(s *FilterStore) { s.SetMinRating(9.1) }, []string{"tt1", "tt2"}},
		{"combined", func(s *FilterStore) {
			s.SetGenres([]string{"Drama"})
			s.SetYearRange(1970, 1980)
			s.SetMinRating(9)
		}, []string{"tt2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewFilterStore(2025)
			tt.setup(s)

			var got []string
			for _, m := range s.Apply(movies) {
				got = append(got, m.ID)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}
