package model

import (
	"time"
)

// WatchlistItem 待看清单条目
// 同一 (UserID, MovieID) 不做唯一约束，重复添加会产生多条记录
type WatchlistItem struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID     string    `json:"userId" gorm:"column:user_id;type:uuid;index;not null"`
	MovieID    string    `json:"movieId" gorm:"column:movie_id;index;not null"`
	MovieTitle string    `json:"movieTitle" gorm:"column:movie_title"`
	PosterPath string    `json:"posterPath" gorm:"column:movie_poster_path"`
	AddedAt    time.Time `json:"addedAt" gorm:"column:added_at;index"`
}

// TableName 表名
func (WatchlistItem) TableName() string {
	return "watchlist"
}
