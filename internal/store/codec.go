package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/user/watchbox/internal/model"
)

var (
	// ErrSessionExpired 持久化的会话已过期
	ErrSessionExpired = errors.New("session expired")
	// ErrSessionMalformed 持久化的会话无法解析
	ErrSessionMalformed = errors.New("session malformed")
)

// PersistedSession 持久化内容
type PersistedSession struct {
	User      model.User
	ExpiresAt time.Time
}

// SessionCodec 会话序列化
type SessionCodec interface {
	Encode(s PersistedSession) (string, error)
	// Decode 按 now 判断是否过期
	Decode(blob string, now time.Time) (PersistedSession, error)
}

type sessionClaims struct {
	User model.User `json:"user"`
	jwt.RegisteredClaims
}

// TokenCodec 以 HS256 JWT 保存会话，防止本地文件被篡改
type TokenCodec struct {
	secret []byte
}

func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

func (c *TokenCodec) Encode(s PersistedSession) (string, error) {
	claims := &sessionClaims{
		User: s.User,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.User.ID,
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("签名会话失败: %w", err)
	}
	return signed, nil
}

func (c *TokenCodec) Decode(blob string, now time.Time) (PersistedSession, error) {
	token, err := jwt.ParseWithClaims(blob, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return PersistedSession{}, ErrSessionExpired
	}
	if err != nil {
		return PersistedSession{}, fmt.Errorf("%w: %v", ErrSessionMalformed, err)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.User.ID == "" {
		return PersistedSession{}, ErrSessionMalformed
	}

	return PersistedSession{
		User:      claims.User,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
