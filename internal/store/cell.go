// Package store 进程级的响应式状态：登录会话、待看清单缓存、筛选条件。
//
// 每个 store 持有一个 Cell，只能通过 store 自己的方法修改；
// 外部只能读取当前值或订阅变化。store 之间互不订阅，
// 跨 store 的联动（例如退出登录时清空待看清单）由调用方显式完成。
package store

import (
	"sync"
)

// Cell 可订阅的状态容器
// 订阅回调在状态变更的同一调用栈中同步执行，回调内不能再修改同一个 store
type Cell[T any] struct {
	emitMu sync.Mutex // 串行化 写入+通知，保证订阅者按顺序看到每次变更
	mu     sync.RWMutex
	value  T

	listeners map[uint64]func(T)
	nextID    uint64
}

func newCell[T any](initial T) *Cell[T] {
	return &Cell[T]{
		value:     initial,
		listeners: make(map[uint64]func(T)),
	}
}

// Get 当前值
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Subscribe 订阅变化，立即以当前值回调一次，返回取消订阅函数
func (c *Cell[T]) Subscribe(fn func(T)) func() {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	current := c.value
	c.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

func (c *Cell[T]) set(v T) {
	c.update(func(T) T { return v })
}

// update 基于当前值计算新值，返回新值
func (c *Cell[T]) update(fn func(T) T) T {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	c.mu.Lock()
	next := fn(c.value)
	c.value = next
	listeners := make([]func(T), 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
	return next
}
