package model

import (
	"time"
)

// User 用户模型（对外展示，不含密码）
type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	FavouriteGenre string `json:"favouriteGenre,omitempty"`
}

// UserRecord users 表记录
type UserRecord struct {
	ID                  string    `gorm:"primaryKey;type:uuid"`
	Name                string    `gorm:"not null"`
	Email               string    `gorm:"uniqueIndex;not null"`
	PasswordHash        string    `gorm:"column:password_hash;not null"`
	FavouriteMovieGenre *string   `gorm:"column:favourite_movie_genre"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
}

// TableName 表名
func (UserRecord) TableName() string {
	return "users"
}

// ToUser 转换为对外的用户结构
func (r *UserRecord) ToUser() *User {
	u := &User{
		ID:    r.ID,
		Name:  r.Name,
		Email: r.Email,
	}
	if r.FavouriteMovieGenre != nil {
		u.FavouriteGenre = *r.FavouriteMovieGenre
	}
	return u
}

// SignupData 注册请求
type SignupData struct {
	Name           string `json:"name" binding:"required,max=100"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6,max=72"`
	FavouriteGenre string `json:"favouriteGenre"`
}

// LoginData 登录请求
type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
