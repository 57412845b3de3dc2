package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/service"
	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	svc service.TaskService
}

func NewTaskHandler(s service.TaskService) *TaskHandler {
	return &TaskHandler{svc: s}
}

type ListTasksReq struct {
	ProjectID      *uint            `form:"projectId"`
	AssigneeID     *uint            `form:"assigneeId"`
	Status         model.TaskStatus `form:"status" binding:"omitempty,oneof=not_started in_progress under_review on_hold completed"`
	DeadlineBefore *time.Time       `form:"deadlineBefore" time_format:"2006-01-02"`
}

type CreateTaskReq struct {
	Title          string           `json:"title" binding:"required,max=200" example:"Design homepage mockups"`
	Description    string           `json:"description"`
	Status         model.TaskStatus `json:"status" binding:"omitempty,oneof=not_started in_progress under_review on_hold completed"`
	Priority       model.Priority   `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	ProjectID      uint             `json:"projectId" binding:"required,min=1"`
	AssigneeID     *uint            `json:"assigneeId"`
	Deadline       *time.Time       `json:"deadline"`
	EstimatedHours float64          `json:"estimatedHours" binding:"min=0"`
	ActualHours    float64          `json:"actualHours" binding:"min=0"`
	Tags           []string         `json:"tags"`
}

type CreateCommentReq struct {
	Text       string `json:"text" binding:"required,max=5000"`
	AuthorID   uint   `json:"authorId"`
	AuthorName string `json:"authorName"`
}

// ListTasks godoc
//
//	@Summary	List tasks
//	@Tags		task
//	@Produce	json
//	@Param		projectId		query		integer	false	"Owning project"
//	@Param		assigneeId		query		integer	false	"Assignee"
//	@Param		status			query		string	false	"Task status"
//	@Param		deadlineBefore	query		string	false	"Deadline before (YYYY-MM-DD)"
//	@Success	200				{object}	serializer.Response{data=[]model.Task}
//	@Router		/tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	req := ListTasksReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFail(c, err)
		return
	}
	res, err := h.svc.List(c.Request.Context(), model.TaskFilter{
		ProjectID:      req.ProjectID,
		AssigneeID:     req.AssigneeID,
		Status:         req.Status,
		DeadlineBefore: req.DeadlineBefore,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, res.Data, res.Source)
}

// GetTask godoc
//
//	@Summary		Get task
//	@Description	Get a task with its comments
//	@Tags			task
//	@Produce		json
//	@Param			id	path		integer	true	"Task ID"
//	@Success		200	{object}	serializer.Response{data=model.Task}
//	@Router			/tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
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

// CreateTask godoc
//
//	@Summary	Create task
//	@Tags		task
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		handler.CreateTaskReq	true	"CreateTask payload"
//	@Success	201		{object}	serializer.Response{data=model.Task}
//	@Router		/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	req := CreateTaskReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}
	t := model.Task{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		ProjectID:      req.ProjectID,
		AssigneeID:     req.AssigneeID,
		Deadline:       req.Deadline,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
		Tags:           req.Tags,
	}
	res, err := h.svc.Create(c.Request.Context(), &t)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, res.Data, res.Source)
}

// UpdateTask godoc
//
//	@Summary	Update task
//	@Tags		task
//	@Accept		json
//	@Produce	json
//	@Param		id		path		integer			true	"Task ID"
//	@Param		payload	body		model.TaskPatch	true	"Fields to change"
//	@Success	200		{object}	serializer.Response{data=model.Task}
//	@Router		/tasks/{id} [patch]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	patch := model.TaskPatch{}
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

// DeleteTask godoc
//
//	@Summary	Delete task
//	@Tags		task
//	@Produce	json
//	@Param		id	path		integer	true	"Task ID"
//	@Success	200	{object}	serializer.Response
//	@Failure	404	{object}	serializer.Response
//	@Router		/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	src, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	deleted(c, fmt.Sprintf("task %d deleted", id), id, src)
}

// ListComments godoc
//
//	@Summary	List task comments
//	@Tags		task
//	@Produce	json
//	@Param		id	path		integer	true	"Task ID"
//	@Success	200	{object}	serializer.Response{data=[]model.Comment}
//	@Router		/tasks/{id}/comments [get]
func (h *TaskHandler) ListComments(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	res, err := h.svc.Comments(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, res.Data, res.Source)
}

// AddComment godoc
//
//	@Summary		Comment on a task
//	@Description	The session user is the author when signed in
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Param			id		path		integer					true	"Task ID"
//	@Param			payload	body		handler.CreateCommentReq	true	"Comment"
//	@Success		201		{object}	serializer.Response{data=model.Comment}
//	@Router			/tasks/{id}/comments [post]
func (h *TaskHandler) AddComment(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	req := CreateCommentReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}
	res, err := h.svc.AddComment(c.Request.Context(), id, service.CommentInput{
		AuthorID:   req.AuthorID,
		AuthorName: req.AuthorName,
		Text:       req.Text,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, res.Data, res.Source)
}
