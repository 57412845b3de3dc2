package handler

import (
	"net/http"
	"time"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/serializer"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/service"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/utils/tokens"
	"github.com/gin-gonic/gin"
)

type TimeEntryHandler struct {
	svc service.TimeEntryService
}

func NewTimeEntryHandler(s service.TimeEntryService) *TimeEntryHandler {
	return &TimeEntryHandler{svc: s}
}

type ListTimeEntriesReq struct {
	UserID    *uint      `form:"userId"`
	ProjectID *uint      `form:"projectId"`
	TaskID    *uint      `form:"taskId"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
}

// CreateTimeEntryReq takes the duration either as minutes or as hours.
type CreateTimeEntryReq struct {
	Date        time.Time `json:"date"`
	Minutes     *int      `json:"minutes" binding:"omitempty,gt=0"`
	Hours       *float64  `json:"hours" binding:"omitempty,gt=0"`
	Description string    `json:"description"`
	ProjectID   uint      `json:"projectId" binding:"required,min=1"`
	TaskID      *uint     `json:"taskId"`
}

type TimeEntryResp struct {
	model.TimeEntry
	Hours float64 `json:"hours"`
}

func toTimeEntryResp(e model.TimeEntry) TimeEntryResp {
	return TimeEntryResp{TimeEntry: e, Hours: e.Hours()}
}

// ListTimeEntries godoc
//
//	@Summary		List time entries
//	@Description	Non-admin callers only see their own entries
//	@Tags			time-entry
//	@Produce		json
//	@Param			userId		query		integer	false	"User (admins only)"
//	@Param			projectId	query		integer	false	"Project"
//	@Param			taskId		query		integer	false	"Task"
//	@Param			from		query		string	false	"From date (YYYY-MM-DD)"
//	@Param			to			query		string	false	"To date, exclusive (YYYY-MM-DD)"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]handler.TimeEntryResp}
//	@Failure		401	{object}	serializer.Response
//	@Router			/time-entries [get]
func (h *TimeEntryHandler) ListTimeEntries(c *gin.Context) {
	me, signedIn := tokens.FromContext(c.Request.Context())
	if !signedIn {
		c.JSON(http.StatusUnauthorized, serializer.CheckLogin())
		return
	}
	req := ListTimeEntriesReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFail(c, err)
		return
	}
	if req.UserID == nil || me.Role != string(model.RoleAdmin) {
		req.UserID = &me.UserID
	}

	res, err := h.svc.List(c.Request.Context(), model.TimeEntryFilter{
		UserID:    req.UserID,
		ProjectID: req.ProjectID,
		TaskID:    req.TaskID,
		From:      req.From,
		To:        req.To,
	})
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]TimeEntryResp, 0, len(res.Data))
	for _, e := range res.Data {
		out = append(out, toTimeEntryResp(e))
	}
	ok(c, http.StatusOK, out, res.Source)
}

// CreateTimeEntry godoc
//
//	@Summary		Log time
//	@Description	Logs time for the session user. Hours are converted to whole minutes.
//	@Tags			time-entry
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateTimeEntryReq	true	"Entry"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=handler.TimeEntryResp}
//	@Failure		401	{object}	serializer.Response
//	@Router			/time-entries [post]
func (h *TimeEntryHandler) CreateTimeEntry(c *gin.Context) {
	me, signedIn := tokens.FromContext(c.Request.Context())
	if !signedIn {
		c.JSON(http.StatusUnauthorized, serializer.CheckLogin())
		return
	}
	req := CreateTimeEntryReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}

	res, err := h.svc.Create(c.Request.Context(), service.NewTimeEntry{
		Date:        req.Date,
		Minutes:     req.Minutes,
		Hours:       req.Hours,
		Description: req.Description,
		UserID:      me.UserID,
		ProjectID:   req.ProjectID,
		TaskID:      req.TaskID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, toTimeEntryResp(*res.Data), res.Source)
}
