package handler

import (
	"context"
	"log"

	"github.com/user/watchbox/internal/store"
)

// RestoreSession 启动时恢复会话
// 账号已被删除则直接退出登录，否则加载待看清单
func (h *Handler) RestoreSession(ctx context.Context) {
	h.auth.Init()
	st := h.auth.State()
	if st.User == nil {
		return
	}
	if !h.userExists(ctx, st.User.ID) {
		return
	}
	h.watchlist.Load(ctx, st.User.ID)
}

// ClearWatchlistOnLogout 会话结束时清空待看清单，包括定时器到期
// 返回取消订阅函数
func (h *Handler) ClearWatchlistOnLogout() func() {
	return h.auth.Subscribe(func(st store.AuthState) {
		if st.User == nil {
			h.watchlist.Clear()
		}
	})
}

// userExists 确认会话中的用户仍存在，不存在则退出登录
// 查询出错时保留会话，避免后端抖动把人踢下线
func (h *Handler) userExists(ctx context.Context, id string) bool {
	user, err := h.users.FindByID(ctx, id)
	if err != nil {
		log.Printf("[Auth] 校验会话用户失败 (用户: %s): %v", id, err)
		return true
	}
	if user == nil {
		log.Printf("[Auth] 会话用户已不存在，退出登录 (用户: %s)", id)
		h.auth.Logout()
		h.watchlist.Clear()
		return false
	}
	return true
}
