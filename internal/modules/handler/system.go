package handler

import (
	"net/http"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/service"
	"github.com/gin-gonic/gin"
)

// SystemHandler serves the dashboard endpoints: analytics, the activity trail
// and backend status.
type SystemHandler struct {
	analytics service.AnalyticsService
	activity  service.ActivityService
	status    service.StatusService
}

func NewSystemHandler(analytics service.AnalyticsService, activity service.ActivityService, status service.StatusService) *SystemHandler {
	return &SystemHandler{analytics: analytics, activity: activity, status: status}
}

type AnalyticsReq struct {
	Type  string `form:"type,default=summary" binding:"oneof=summary project-status task-status user-tasks recent-activity"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type ActivityReq struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// GetAnalytics godoc
//
//	@Summary	Dashboard aggregates
//	@Tags		analytics
//	@Produce	json
//	@Param		type	query		string	false	"summary, project-status, task-status, user-tasks or recent-activity"
//	@Param		limit	query		integer	false	"Entries for recent-activity"
//	@Success	200		{object}	serializer.Response
//	@Failure	400		{object}	serializer.Response
//	@Router		/analytics [get]
func (h *SystemHandler) GetAnalytics(c *gin.Context) {
	req := AnalyticsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFail(c, err)
		return
	}
	res, err := h.analytics.Compute(c.Request.Context(), service.AnalyticsKind(req.Type), req.Limit)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, res.Data, res.Source)
}

// ListActivity godoc
//
//	@Summary	Recent activity
//	@Tags		analytics
//	@Produce	json
//	@Param		limit	query		integer	false	"At most this many entries (default 20)"
//	@Success	200		{object}	serializer.Response{data=[]model.Activity}
//	@Router		/activity [get]
func (h *SystemHandler) ListActivity(c *gin.Context) {
	req := ActivityReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFail(c, err)
		return
	}
	ok(c, http.StatusOK, h.activity.Recent(c.Request.Context(), req.Limit), service.SourceMock)
}

// GetStatus godoc
//
//	@Summary		Backend status
//	@Description	Probes the primary store and reports whether mock data is being served
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	serializer.Response{data=service.SystemStatus}
//	@Router			/system/status [get]
func (h *SystemHandler) GetStatus(c *gin.Context) {
	st := h.status.Status(c.Request.Context())
	src := service.SourceReal
	if st.UsingMockData {
		src = service.SourceMock
	}
	ok(c, http.StatusOK, st, src)
}
