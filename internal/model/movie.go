package model

// Movie 归一化后的电影信息
type Movie struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Overview    string       `json:"overview"`
	PosterURL   string       `json:"posterUrl"`
	BackdropURL string       `json:"backdropUrl"`
	Rating      float64      `json:"rating"`
	ReleaseYear int          `json:"releaseYear"`
	Genres      []string     `json:"genres"`
	Runtime     *int         `json:"runtime,omitempty"` // 分钟，源数据缺失时为 nil
	Cast        []CastMember `json:"cast,omitempty"`
}

// CastMember 演员
type CastMember struct {
	Name       string `json:"name"`
	Character  string `json:"character"`
	ProfileURL string `json:"profileUrl,omitempty"`
}

// Genre 类型
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
