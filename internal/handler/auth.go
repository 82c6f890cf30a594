package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/user/watchbox/internal/model"
	"github.com/user/watchbox/internal/repository"
	"github.com/user/watchbox/internal/utils"
)

const maxPasswordBytes = 72

// Signup 注册并直接登录
func (h *Handler) Signup(c *gin.Context) {
	var req model.SignupData
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}
	// bcrypt 只认前 72 字节，max=72 按字符计数拦不住多字节密码
	if len(req.Password) > maxPasswordBytes {
		utils.BadRequest(c, "密码不能超过 72 字节")
		return
	}

	user, err := h.users.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			utils.Conflict(c, "该邮箱已被注册")
			return
		}
		log.Printf("[Auth] 注册失败: %v", err)
		utils.InternalServerError(c, "注册失败")
		return
	}

	h.startSession(c, *user)
	utils.SuccessWithMessage(c, "注册成功", h.auth.State())
}

// Login 登录，成功后加载待看清单
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginData
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	user := h.users.VerifyLogin(c.Request.Context(), req)
	if user == nil {
		utils.Unauthorized(c, "邮箱或密码错误")
		return
	}

	h.startSession(c, *user)
	utils.SuccessWithMessage(c, "登录成功", h.auth.State())
}

// Logout 退出登录，先清会话再清待看清单
func (h *Handler) Logout(c *gin.Context) {
	h.auth.Logout()
	h.watchlist.Clear()
	utils.SuccessWithMessage(c, "已退出登录", h.auth.State())
}

// Session 当前会话，顺带检查是否过期以及用户是否仍存在
func (h *Handler) Session(c *gin.Context) {
	if !h.auth.CheckSession() {
		h.watchlist.Clear()
	} else if st := h.auth.State(); st.User != nil {
		h.userExists(c.Request.Context(), st.User.ID)
	}
	utils.Success(c, h.auth.State())
}

func (h *Handler) startSession(c *gin.Context, user model.User) {
	h.auth.Login(user)
	h.watchlist.Load(c.Request.Context(), user.ID)
}
