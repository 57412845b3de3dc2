package handler

import (
	"net/http"
	"time"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/config"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/service"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/utils/tokens"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users service.UserService
	cfg   *config.Config
}

func NewAuthHandler(users service.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, cfg: cfg}
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email" example:"admin@example.com"`
	Password string `json:"password" binding:"required"`
}

type LoginResp struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      *model.User `json:"user"`
}

// Login godoc
//
//	@Summary		Sign in
//	@Description	Exchange credentials for a bearer session token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.LoginReq	true	"Credentials"
//	@Success		200		{object}	serializer.Response{data=handler.LoginResp}
//	@Failure		401		{object}	serializer.Response
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	req := LoginReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}
	res, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	u := res.Data
	ttl := time.Duration(h.cfg.Auth.TokenTTLSec) * time.Second
	token, err := tokens.Issue(tokens.Identity{UserID: u.ID, Name: u.Name, Role: string(u.Role)}, h.cfg.Auth.JwtSecret, ttl)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, LoginResp{Token: token, ExpiresAt: time.Now().Add(ttl).UTC(), User: u}, res.Source)
}
