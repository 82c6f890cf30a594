package store

import (
	"context"
	"encoding/json"
	"log"
	"sort"

	"github.com/user/watchbox/internal/metrics"
	"github.com/user/watchbox/internal/model"
)

// WatchlistSource 待看清单的远端数据源
type WatchlistSource interface {
	Add(ctx context.Context, movie model.Movie, userID string) (*model.WatchlistItem, error)
	Remove(ctx context.Context, userID, movieID string) error
	ListByUser(ctx context.Context, userID string) ([]model.WatchlistItem, error)
}

// WatchlistState 待看清单缓存
// MovieIDs 始终等于 Items 的 MovieID 集合，只读
type WatchlistState struct {
	Items    []model.WatchlistItem
	MovieIDs map[string]struct{}
	Loading  bool
}

// newWatchlistState 由条目重新计算成员索引
func newWatchlistState(items []model.WatchlistItem, loading bool) WatchlistState {
	if items == nil {
		items = []model.WatchlistItem{}
	}
	ids := make(map[string]struct{}, len(items))
	for _, item := range items {
		ids[item.MovieID] = struct{}{}
	}
	return WatchlistState{Items: items, MovieIDs: ids, Loading: loading}
}

// MarshalJSON movieIds 输出为排序后的数组
func (s WatchlistState) MarshalJSON() ([]byte, error) {
	ids := make([]string, 0, len(s.MovieIDs))
	for id := range s.MovieIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	items := s.Items
	if items == nil {
		items = []model.WatchlistItem{}
	}
	return json.Marshal(struct {
		Items    []model.WatchlistItem `json:"items"`
		MovieIDs []string              `json:"movieIds"`
		Loading  bool                  `json:"loading"`
	}{items, ids, s.Loading})
}

// WatchlistStore 进程级待看清单缓存
// 远端操作成功后才更新缓存；并发的 Add/Remove 以完成顺序为准
type WatchlistStore struct {
	cell    *Cell[WatchlistState]
	source  WatchlistSource
	metrics metrics.Recorder
}

// NewWatchlistStore 创建待看清单 store
func NewWatchlistStore(source WatchlistSource, rec metrics.Recorder) *WatchlistStore {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &WatchlistStore{
		cell:    newCell(newWatchlistState(nil, false)),
		source:  source,
		metrics: rec,
	}
}

// State 当前状态
func (s *WatchlistStore) State() WatchlistState {
	return s.cell.Get()
}

// Items 当前条目（最新的在前）
func (s *WatchlistStore) Items() []model.WatchlistItem {
	return s.cell.Get().Items
}

// Subscribe 订阅状态变化
func (s *WatchlistStore) Subscribe(fn func(WatchlistState)) func() {
	return s.cell.Subscribe(fn)
}

// Load 从远端加载用户的待看清单，失败时重置为空，不返回错误
func (s *WatchlistStore) Load(ctx context.Context, userID string) {
	s.cell.update(func(st WatchlistState) WatchlistState {
		st.Loading = true
		return st
	})

	items, err := s.source.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("[WatchlistStore] 加载待看清单失败 (用户: %s): %v", userID, err)
		s.metrics.RecordWatchlist("load", metrics.ResultError)
		s.cell.set(newWatchlistState(nil, false))
		return
	}

	s.metrics.RecordWatchlist("load", metrics.ResultOK)
	s.cell.set(newWatchlistState(items, false))
}

// Add 加入待看清单，成功后插到最前面
func (s *WatchlistStore) Add(ctx context.Context, movie model.Movie, userID string) bool {
	item, err := s.source.Add(ctx, movie, userID)
	if err != nil {
		log.Printf("[WatchlistStore] 加入待看清单失败 (用户: %s, 影片: %s): %v", userID, movie.ID, err)
		s.metrics.RecordWatchlist("add", metrics.ResultError)
		return false
	}

	s.cell.update(func(st WatchlistState) WatchlistState {
		items := make([]model.WatchlistItem, 0, len(st.Items)+1)
		items = append(items, *item)
		items = append(items, st.Items...)
		return newWatchlistState(items, false)
	})
	s.metrics.RecordWatchlist("add", metrics.ResultOK)
	return true
}

// Remove 移出待看清单，只有远端成功时才更新缓存
func (s *WatchlistStore) Remove(ctx context.Context, movieID, userID string) bool {
	if err := s.source.Remove(ctx, userID, movieID); err != nil {
		log.Printf("[WatchlistStore] 移出待看清单失败 (用户: %s, 影片: %s): %v", userID, movieID, err)
		s.metrics.RecordWatchlist("remove", metrics.ResultError)
		return false
	}

	s.cell.update(func(st WatchlistState) WatchlistState {
		items := make([]model.WatchlistItem, 0, len(st.Items))
		for _, item := range st.Items {
			if item.MovieID != movieID {
				items = append(items, item)
			}
		}
		return newWatchlistState(items, false)
	})
	s.metrics.RecordWatchlist("remove", metrics.ResultOK)
	return true
}

// IsInWatchlist O(1) 成员判断，只读
func (s *WatchlistStore) IsInWatchlist(movieID string) bool {
	_, ok := s.cell.Get().MovieIDs[movieID]
	return ok
}

// Clear 重置为空（退出登录时调用）
func (s *WatchlistStore) Clear() {
	s.cell.set(newWatchlistState(nil, false))
}
