package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/service"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	svc service.ProjectService
}

func NewProjectHandler(s service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: s}
}

type ListProjectsReq struct {
	Status         model.ProjectStatus `form:"status" binding:"omitempty,oneof=not_started in_progress on_hold completed cancelled almost_complete"`
	ClientID       *uint               `form:"clientId"`
	MemberID       *uint               `form:"memberId"`
	DeadlineBefore *time.Time          `form:"deadlineBefore" time_format:"2006-01-02"`
}

type CreateProjectReq struct {
	Name        string              `json:"name" binding:"required,max=200" example:"Website Redesign"`
	Description string              `json:"description"`
	Status      model.ProjectStatus `json:"status" binding:"omitempty,oneof=not_started in_progress on_hold completed cancelled almost_complete"`
	Progress    int                 `json:"progress" binding:"min=0,max=100"`
	StartDate   *time.Time          `json:"startDate"`
	Deadline    *time.Time          `json:"deadline"`
	Budget      float64             `json:"budget" binding:"min=0"`
	Spent       float64             `json:"spent" binding:"min=0"`
	ClientID    *uint               `json:"clientId"`
	TeamMembers []uint              `json:"teamMembers"`
	Tags        []string            `json:"tags"`
	Priority    model.Priority      `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
}

// ListProjects godoc
//
//	@Summary		List projects
//	@Description	List projects, optionally filtered
//	@Tags			project
//	@Produce		json
//	@Param			status			query	string	false	"Project status"
//	@Param			clientId		query	integer	false	"Owning client"
//	@Param			memberId		query	integer	false	"Team member"
//	@Param			deadlineBefore	query	string	false	"Deadline before (YYYY-MM-DD)"
//	@Success		200	{object}	serializer.Response{data=[]model.Project}
//	@Router			/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	req := ListProjectsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFail(c, err)
		return
	}

	res, err := h.svc.List(c.Request.Context(), model.ProjectFilter{
		Status:         req.Status,
		ClientID:       req.ClientID,
		MemberID:       req.MemberID,
		DeadlineBefore: req.DeadlineBefore,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, res.Data, res.Source)
}

// GetProject godoc
//
//	@Summary	Get project
//	@Tags		project
//	@Produce	json
//	@Param		id	path		integer	true	"Project ID"
//	@Success	200	{object}	serializer.Response{data=model.Project}
//	@Failure	404	{object}	serializer.Response
//	@Router		/projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
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

// CreateProject godoc
//
//	@Summary	Create project
//	@Tags		project
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		handler.CreateProjectReq	true	"CreateProject payload"
//	@Success	201		{object}	serializer.Response{data=model.Project}
//	@Failure	400		{object}	serializer.Response
//	@Router		/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	req := CreateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}

	p := model.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Progress:    req.Progress,
		StartDate:   req.StartDate,
		Deadline:    req.Deadline,
		Budget:      req.Budget,
		Spent:       req.Spent,
		ClientID:    req.ClientID,
		TeamMembers: req.TeamMembers,
		Tags:        req.Tags,
		Priority:    req.Priority,
	}
	res, err := h.svc.Create(c.Request.Context(), &p)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, res.Data, res.Source)
}

// UpdateProject godoc
//
//	@Summary		Update project
//	@Description	Partially update a project; omitted fields are left untouched
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			id		path		integer				true	"Project ID"
//	@Param			payload	body		model.ProjectPatch	true	"Fields to change"
//	@Success		200		{object}	serializer.Response{data=model.Project}
//	@Router			/projects/{id} [patch]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	patch := model.ProjectPatch{}
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

// DeleteProject godoc
//
//	@Summary	Delete project
//	@Tags		project
//	@Produce	json
//	@Param		id	path		integer	true	"Project ID"
//	@Success	200	{object}	serializer.Response
//	@Router		/projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	src, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	deleted(c, fmt.Sprintf("project %d deleted", id), id, src)
}
