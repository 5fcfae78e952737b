package v1

import (
	"net/http"
	"strconv"

	"talentmatch-backend/internal/delivery/http/response"
	"talentmatch-backend/internal/domain"
	"talentmatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

// NewJobHandler registers job routes
func NewJobHandler(r *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := r.Group("/jobs")
	{
		jobs.POST("", handler.Create)
		jobs.GET("", handler.List)
		jobs.GET("/:id", handler.GetByID)
		jobs.PUT("/:id", handler.Update)
		jobs.PATCH("/:id/status", handler.UpdateStatus)
	}
}

// JobRequest is the request payload for creating or updating a job
type JobRequest struct {
	Title        string   `json:"title"`
	Department   string   `json:"department"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Status       string   `json:"status"`
}

// Create godoc
// @Summary      Create job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        body  body      JobRequest  true  "Job data"
// @Success      201   {object}  response.Response{data=domain.Job}
// @Failure      400   {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	job := &domain.Job{
		Title:        req.Title,
		Department:   req.Department,
		Description:  req.Description,
		Requirements: req.Requirements,
		Status:       req.Status,
	}

	if err := h.jobUC.CreateJob(c, job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created successfully", job)
}

// List godoc
// @Summary      List jobs
// @Tags         jobs
// @Produce      json
// @Param        page       query     int  false  "Page number"  default(1)
// @Param        page_size  query     int  false  "Page size"    default(10)
// @Success      200  {object}  response.Response{data=[]domain.Job}
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *JobHandler) List(c *gin.Context) {
	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "page_size", 10)

	jobs, total, err := h.jobUC.ListJobs(c, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Page(c, http.StatusOK, "Jobs retrieved", jobs, &domain.Pagination{
		Page:       page,
		TotalPages: totalPages(total, pageSize),
		TotalItems: total,
		PageSize:   pageSize,
	})
}

// GetByID godoc
// @Summary      Get job
// @Tags         jobs
// @Produce      json
// @Param        id  path      int  true  "Job ID"
// @Success      200 {object}  response.Response{data=domain.Job}
// @Failure      404 {object}  response.Response
// @Router       /jobs/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) GetByID(c *gin.Context) {
	id, ok := jobIDParam(c)
	if !ok {
		return
	}

	job, err := h.jobUC.GetJobDetails(c, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job retrieved", job)
}

// Update godoc
// @Summary      Update job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      int         true  "Job ID"
// @Param        body  body      JobRequest  true  "Job data"
// @Success      200   {object}  response.Response{data=domain.Job}
// @Failure      404   {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := jobIDParam(c)
	if !ok {
		return
	}

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	job := &domain.Job{
		ID:           id,
		Title:        req.Title,
		Department:   req.Department,
		Description:  req.Description,
		Requirements: req.Requirements,
		Status:       req.Status,
	}

	if err := h.jobUC.UpdateJob(c, job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated successfully", job)
}

// JobStatusRequest is the request payload for opening/closing a job
type JobStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus godoc
// @Summary      Open or close a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      int               true  "Job ID"
// @Param        body  body      JobStatusRequest  true  "Status"
// @Success      200   {object}  response.Response{data=domain.Job}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /jobs/{id}/status [patch]
// @Security     BearerAuth
func (h *JobHandler) UpdateStatus(c *gin.Context) {
	id, ok := jobIDParam(c)
	if !ok {
		return
	}

	var req JobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	job, err := h.jobUC.UpdateJobStatus(c, id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job status updated", job)
}

func jobIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.Validation("Invalid job ID"))
		return 0, false
	}
	return id, true
}

func totalPages(total int64, pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
