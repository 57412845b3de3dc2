package handler

import (
	"fmt"
	"net/http"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/serializer"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/service"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/apperr"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc     service.UserService
	avatars service.AvatarService
}

func NewUserHandler(s service.UserService, avatars service.AvatarService) *UserHandler {
	return &UserHandler{svc: s, avatars: avatars}
}

type ListUsersReq struct {
	Role  model.Role `form:"role" binding:"omitempty,oneof=admin team client"`
	Email string     `form:"email"`
}

type CreateUserReq struct {
	Name       string     `json:"name" binding:"required,max=120" example:"Jane Smith"`
	Email      string     `json:"email" binding:"required,email" example:"jane@example.com"`
	Role       model.Role `json:"role" binding:"omitempty,oneof=admin team client"`
	Password   string     `json:"password" binding:"required,min=6"`
	Position   string     `json:"position"`
	Department string     `json:"department"`
	Avatar     string     `json:"avatar"`
}

type AvatarURLResp struct {
	URL string `json:"url"`
}

// ListUsers godoc
//
//	@Summary	List users
//	@Tags		user
//	@Produce	json
//	@Param		role	query		string	false	"admin, team or client"
//	@Param		email	query		string	false	"Exact email"
//	@Success	200		{object}	serializer.Response{data=[]model.User}
//	@Router		/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	req := ListUsersReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFail(c, err)
		return
	}
	res, err := h.svc.List(c.Request.Context(), model.UserFilter{Role: req.Role, Email: req.Email})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, res.Data, res.Source)
}

// GetUser godoc
//
//	@Summary	Get user
//	@Tags		user
//	@Produce	json
//	@Param		id	path		integer	true	"User ID"
//	@Success	200	{object}	serializer.Response{data=model.User}
//	@Router		/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	res, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, res.Data, res.Source)
}

// CreateUser godoc
//
//	@Summary		Create user
//	@Description	The password is stored hashed and never returned
//	@Tags			user
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.CreateUserReq	true	"CreateUser payload"
//	@Success		201		{object}	serializer.Response{data=model.User}
//	@Failure		409		{object}	serializer.Response
//	@Router			/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	req := CreateUserReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}
	res, err := h.svc.Create(c.Request.Context(), service.NewUser{
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
		Password:   req.Password,
		Position:   req.Position,
		Department: req.Department,
		Avatar:     req.Avatar,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, res.Data, res.Source)
}

// UpdateUser godoc
//
//	@Summary	Update user
//	@Tags		user
//	@Accept		json
//	@Produce	json
//	@Param		id		path		integer			true	"User ID"
//	@Param		payload	body		model.UserPatch	true	"Fields to change"
//	@Success	200		{object}	serializer.Response{data=model.User}
//	@Failure	409		{object}	serializer.Response
//	@Router		/users/{id} [patch]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	patch := model.UserPatch{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindFail(c, err)
		return
	}
	res, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, res.Data, res.Source)
}

// DeleteUser godoc
//
//	@Summary	Delete user
//	@Tags		user
//	@Produce	json
//	@Param		id	path		integer	true	"User ID"
//	@Success	200	{object}	serializer.Response
//	@Router		/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	src, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	deleted(c, fmt.Sprintf("user %d deleted", id), id, src)
}

// UploadAvatar godoc
//
//	@Summary	Upload avatar
//	@Tags		user
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		id		path		integer	true	"User ID"
//	@Param		file	formData	file	true	"Image file"
//	@Success	200		{object}	serializer.Response{data=model.User}
//	@Failure	503		{object}	serializer.Response
//	@Router		/users/{id}/avatar [put]
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("file is required", err, apperr.FieldError{
			Field: "file", Rule: "required", Msg: "file is required",
		}))
		return
	}
	res, err := h.avatars.Upload(c.Request.Context(), id, fh)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, res.Data, res.Source)
}

// GetAvatar godoc
//
//	@Summary	Get avatar download URL
//	@Tags		user
//	@Produce	json
//	@Param		id	path		integer	true	"User ID"
//	@Success	200	{object}	serializer.Response{data=handler.AvatarURLResp}
//	@Router		/users/{id}/avatar [get]
func (h *UserHandler) GetAvatar(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	res, err := h.avatars.URL(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, AvatarURLResp{URL: res.Data}, res.Source)
}
