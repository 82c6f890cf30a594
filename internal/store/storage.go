package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage 本地持久化端口：读写一个不透明的字符串
type Storage interface {
	// Load 读取，ok 为 false 表示不存在
	Load() (blob string, ok bool, err error)
	Save(blob string) error
	Clear() error
}

// NewStorage 根据路径创建存储，路径为空时不持久化
func NewStorage(path string) Storage {
	if path == "" {
		return NoopStorage{}
	}
	return NewFileStorage(path)
}

// FileStorage 单文件存储
type FileStorage struct {
	mu   sync.Mutex
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) Load() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("读取会话文件失败: %w", err)
	}
	return string(data), true, nil
}

// Save 先写临时文件再重命名，避免留下半个文件
func (s *FileStorage) Save(blob string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("创建会话目录失败: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(blob); err != nil {
		tmp.Close()
		return fmt.Errorf("写入会话失败: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("设置会话文件权限失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("写入会话失败: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("保存会话失败: %w", err)
	}
	return nil
}

// Clear 删除文件，文件不存在不算错误
func (s *FileStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("删除会话文件失败: %w", err)
	}
	return nil
}

// MemoryStorage 内存存储
type MemoryStorage struct {
	mu    sync.Mutex
	blob  string
	exist bool
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Load() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blob, s.exist, nil
}

func (s *MemoryStorage) Save(blob string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob, s.exist = blob, true
	return nil
}

func (s *MemoryStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob, s.exist = "", false
	return nil
}

// NoopStorage 不持久化
type NoopStorage struct{}

func (NoopStorage) Load() (string, bool, error) { return "", false, nil }
func (NoopStorage) Save(string) error           { return nil }
func (NoopStorage) Clear() error                { return nil }
