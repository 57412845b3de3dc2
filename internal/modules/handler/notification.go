package handler

import (
	"net/http"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/serializer"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/service"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/apperr"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(s service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: s}
}

type ListNotificationsReq struct {
	UserID     uint `form:"userId" binding:"required,min=1"`
	UnreadOnly bool `form:"unreadOnly"`
}

// UpdateNotificationsReq either flips one notification ({id, read}) or marks
// every notification of a user as read ({userId, markAllAsRead: true}).
type UpdateNotificationsReq struct {
	ID            FlexID `json:"id" swaggertype:"integer"`
	Read          *bool  `json:"read"`
	UserID        FlexID `json:"userId" swaggertype:"integer"`
	MarkAllAsRead bool   `json:"markAllAsRead"`
}

type MarkAllReadResp struct {
	UserID  uint  `json:"userId"`
	Updated int64 `json:"updated"`
}

// ListNotifications godoc
//
//	@Summary	List a user's notifications
//	@Tags		notification
//	@Produce	json
//	@Param		userId		query		integer	true	"Recipient"
//	@Param		unreadOnly	query		boolean	false	"Only unread"
//	@Success	200			{object}	serializer.Response{data=[]model.Notification}
//	@Failure	400			{object}	serializer.Response
//	@Router		/notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	req := ListNotificationsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFail(c, err)
		return
	}
	res, err := h.svc.List(c.Request.Context(), model.NotificationFilter{UserID: &req.UserID, UnreadOnly: req.UnreadOnly})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, res.Data, res.Source)
}

// UpdateNotifications godoc
//
//	@Summary		Mark notifications read
//	@Description	Send {id, read} to flip one notification or {userId, markAllAsRead: true} for all of a user's
//	@Tags			notification
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.UpdateNotificationsReq	true	"Update"
//	@Success		200		{object}	serializer.Response
//	@Router			/notifications [patch]
func (h *NotificationHandler) UpdateNotifications(c *gin.Context) {
	req := UpdateNotificationsReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}

	switch {
	case req.MarkAllAsRead:
		if req.UserID == 0 {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("userId is required", nil, apperr.FieldError{
				Field: "userId", Rule: "required", Msg: "userId is required with markAllAsRead",
			}))
			return
		}
		res, err := h.svc.MarkAllRead(c.Request.Context(), uint(req.UserID))
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, http.StatusOK, MarkAllReadResp{UserID: uint(req.UserID), Updated: res.Data}, res.Source)

	case req.ID != 0:
		read := true
		if req.Read != nil {
			read = *req.Read
		}
		res, err := h.svc.SetRead(c.Request.Context(), uint(req.ID), read)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, http.StatusOK, res.Data, res.Source)

	default:
		c.JSON(http.StatusBadRequest, serializer.ParamErr("id or userId with markAllAsRead is required", nil, apperr.FieldError{
			Field: "id", Rule: "required", Msg: "id is required",
		}))
	}
}
