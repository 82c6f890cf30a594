package store

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/user/watchbox/internal/model"
)

// DefaultSessionTTL 会话有效期
const DefaultSessionTTL = 24 * time.Hour

// AuthState 登录状态
type AuthState struct {
	User            *model.User `json:"user"`
	IsAuthenticated bool        `json:"isAuthenticated"`
	ExpiresAt       *time.Time  `json:"expiresAt"`
}

// AuthStore 进程级登录会话
// 每个会话同一时刻只挂一个到期定时器，到期自动退出
type AuthStore struct {
	cell    *Cell[AuthState]
	storage Storage
	codec   SessionCodec
	ttl     time.Duration
	now     func() time.Time

	mu    sync.Mutex // 串行化所有会话操作，同时保护定时器
	timer *time.Timer
	gen   uint64 // 定时器代数，旧定时器触发时据此丢弃
}

// AuthOption 配置项
type AuthOption func(*AuthStore)

// WithSessionTTL 设置会话有效期
func WithSessionTTL(ttl time.Duration) AuthOption {
	return func(s *AuthStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock 替换时钟
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewAuthStore 创建登录会话 store，storage 为 nil 时不持久化
func NewAuthStore(storage Storage, codec SessionCodec, opts ...AuthOption) *AuthStore {
	if storage == nil {
		storage = NoopStorage{}
	}
	s := &AuthStore{
		cell:    newCell(AuthState{}),
		storage: storage,
		codec:   codec,
		ttl:     DefaultSessionTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State 当前状态
func (s *AuthStore) State() AuthState {
	return s.cell.Get()
}

// Subscribe 订阅状态变化
func (s *AuthStore) Subscribe(fn func(AuthState)) func() {
	return s.cell.Subscribe(fn)
}

// Login 建立会话：写入内存、持久化、挂上到期定时器（替换旧定时器）
func (s *AuthStore) Login(user model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt := s.now().Add(s.ttl)
	s.cell.set(AuthState{
		User:            &user,
		IsAuthenticated: true,
		ExpiresAt:       &expiresAt,
	})

	s.persistLocked(user, expiresAt)
	s.armTimerLocked(expiresAt)
}

// Logout 清空会话，可重复调用
func (s *AuthStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked()
}

// CheckSession 检查内存中的会话是否仍有效，过期则清空
// 没有会话时直接返回 false，不做任何修改
func (s *AuthStore) CheckSession() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.cell.Get()
	if state.ExpiresAt == nil {
		return false
	}
	if s.now().Before(*state.ExpiresAt) {
		return true
	}

	log.Printf("[AuthStore] 会话已过期 (用户: %s)", userID(state.User))
	s.clearLocked()
	return false
}

// Init 启动时从本地存储恢复会话
// 不存在则跳过；未过期则恢复并按剩余时间挂定时器；过期或无法解析则清空存储
func (s *AuthStore) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, ok, err := s.storage.Load()
	if err != nil {
		log.Printf("[AuthStore] 读取本地会话失败: %v", err)
		s.clearStorageLocked()
		return
	}
	if !ok {
		return
	}

	now := s.now()
	sess, err := s.codec.Decode(blob, now)
	if err != nil {
		if !errors.Is(err, ErrSessionExpired) {
			log.Printf("[AuthStore] 解析本地会话失败: %v", err)
		}
		s.clearStorageLocked()
		return
	}
	if !now.Before(sess.ExpiresAt) {
		s.clearStorageLocked()
		return
	}

	user := sess.User
	expiresAt := sess.ExpiresAt
	s.cell.set(AuthState{
		User:            &user,
		IsAuthenticated: true,
		ExpiresAt:       &expiresAt,
	})
	s.armTimerLocked(expiresAt)
	log.Printf("[AuthStore] 已恢复会话 (用户: %s, 到期: %s)", user.ID, expiresAt.Format(time.RFC3339))
}

// Close 停止定时器，不清理持久化的会话
func (s *AuthStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()
}

func (s *AuthStore) persistLocked(user model.User, expiresAt time.Time) {
	blob, err := s.codec.Encode(PersistedSession{User: user, ExpiresAt: expiresAt})
	if err != nil {
		log.Printf("[AuthStore] 序列化会话失败: %v", err)
		return
	}
	if err := s.storage.Save(blob); err != nil {
		log.Printf("[AuthStore] 保存会话失败: %v", err)
	}
}

func (s *AuthStore) clearLocked() {
	s.cell.set(AuthState{})
	s.clearStorageLocked()
	s.stopTimerLocked()
}

func (s *AuthStore) clearStorageLocked() {
	if err := s.storage.Clear(); err != nil {
		log.Printf("[AuthStore] 清理本地会话失败: %v", err)
	}
}

// armTimerLocked 取消旧定时器后挂新定时器，已过期则立即清空
func (s *AuthStore) armTimerLocked(expiresAt time.Time) {
	s.stopTimerLocked()

	remaining := expiresAt.Sub(s.now())
	if remaining <= 0 {
		s.clearLocked()
		return
	}

	gen := s.gen
	s.timer = time.AfterFunc(remaining, func() {
		s.expire(gen)
	})
}

func (s *AuthStore) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

func (s *AuthStore) expire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return
	}
	log.Printf("[AuthStore] 会话到期，自动退出 (用户: %s)", userID(s.cell.Get().User))
	s.clearLocked()
}

func userID(u *model.User) string {
	if u == nil {
		return "-"
	}
	return u.ID
}
