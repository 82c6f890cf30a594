package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/user/watchbox/internal/model"
	"gorm.io/gorm"
)

type WatchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// Add 加入待看清单，返回带 ID 和加入时间的新条目
// 不做 (user_id, movie_id) 去重
func (r *WatchlistRepository) Add(ctx context.Context, movie model.Movie, userID string) (*model.WatchlistItem, error) {
	item := &model.WatchlistItem{
		ID:         uuid.NewString(),
		UserID:     userID,
		MovieID:    movie.ID,
		MovieTitle: movie.Title,
		PosterPath: movie.PosterURL,
		AddedAt:    time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Remove 移出待看清单
func (r *WatchlistRepository) Remove(ctx context.Context, userID, movieID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&model.WatchlistItem{}).Error
}

// ListByUser 获取用户的待看清单，最新加入的在前
func (r *WatchlistRepository) ListByUser(ctx context.Context, userID string) ([]model.WatchlistItem, error) {
	var items []model.WatchlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
