package v1

import (
	"net/http"
	"strconv"

	"talentmatch-backend/internal/delivery/http/response"
	"talentmatch-backend/internal/domain"
	"talentmatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

// NewCandidateHandler registers candidate routes
func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	candidates := r.Group("/candidates")
	{
		candidates.POST("", handler.Apply)
		candidates.GET("", handler.List)
		candidates.GET("/qualified", handler.ListQualified)
		candidates.GET("/statistics", handler.Statistics)
		candidates.GET("/:id", handler.GetByID)
		candidates.PUT("/:id", handler.Update)
		candidates.PATCH("/:id/status", handler.UpdateStatus)
		candidates.DELETE("/:id", handler.Delete)
		candidates.POST("/:id/message", handler.SendMessage)
	}
}

// ApplyRequest is the request payload for creating a candidature
type ApplyRequest struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	JobID      int64    `json:"job_id"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Education  string   `json:"education"`
	ResumeURL  string   `json:"resume_url"`
	Notes      string   `json:"notes"`
}

// Apply godoc
// @Summary      Create candidature
// @Description  Register a candidate against an open job. Computes the compatibility score and queues a confirmation email.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        body  body      ApplyRequest  true  "Candidature data"
// @Success      201   {object}  response.Response{data=domain.Candidate}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /candidates [post]
// @Security     BearerAuth
func (h *CandidateHandler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	candidate := &domain.Candidate{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		JobID:      req.JobID,
		Skills:     req.Skills,
		Experience: req.Experience,
		Education:  req.Education,
		ResumeURL:  req.ResumeURL,
		Notes:      req.Notes,
	}

	created, err := h.candidateUC.Apply(c, candidate)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Candidature created successfully", created)
}

// List godoc
// @Summary      List candidates
// @Description  List active candidates with optional job/status filters, text search and pagination
// @Tags         candidates
// @Produce      json
// @Param        job        query     int     false  "Job ID filter"
// @Param        status     query     string  false  "Status filter"
// @Param        search     query     string  false  "Search term (name or email)"
// @Param        page       query     int     false  "Page number"      default(1)
// @Param        page_size  query     int     false  "Page size"        default(10)
// @Param        sort       query     string  false  "Sort key"         default(-appliedAt)
// @Success      200  {object}  response.Response{data=[]domain.Candidate}
// @Router       /candidates [get]
// @Security     BearerAuth
func (h *CandidateHandler) List(c *gin.Context) {
	filter := domain.CandidateFilter{
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		Sort:     c.DefaultQuery("sort", "-appliedAt"),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "page_size", 10),
	}

	if jobStr := c.Query("job"); jobStr != "" && jobStr != "all" {
		jobID, err := strconv.ParseInt(jobStr, 10, 64)
		if err != nil {
			c.Error(apperror.Validation("Invalid job filter"))
			return
		}
		filter.JobID = &jobID
	}
	if filter.Status == "all" {
		filter.Status = ""
	}

	items, pagination, err := h.candidateUC.List(c, filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Page(c, http.StatusOK, "Candidates retrieved", items, pagination)
}

// ListQualified godoc
// @Summary      List qualified candidates
// @Description  Active candidates whose status progressed past intake (screening, interview, hired)
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Candidate}
// @Router       /candidates/qualified [get]
// @Security     BearerAuth
func (h *CandidateHandler) ListQualified(c *gin.Context) {
	items, err := h.candidateUC.ListQualified(c)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Qualified candidates retrieved", items)
}

// Statistics godoc
// @Summary      Candidate statistics
// @Description  Per-status counts and average compatibility score over active candidates
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.CandidateStatistics}
// @Router       /candidates/statistics [get]
// @Security     BearerAuth
func (h *CandidateHandler) Statistics(c *gin.Context) {
	stats, err := h.candidateUC.Statistics(c)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Statistics computed", stats)
}

// GetByID godoc
// @Summary      Get candidate
// @Tags         candidates
// @Produce      json
// @Param        id  path      int  true  "Candidate ID"
// @Success      200 {object}  response.Response{data=domain.Candidate}
// @Failure      404 {object}  response.Response
// @Router       /candidates/{id} [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	candidate, err := h.candidateUC.GetByID(c, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate retrieved", candidate)
}

// Update godoc
// @Summary      Update candidate
// @Description  Update profile fields. Email, job and active flag are immutable; initials follow the name.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true  "Candidate ID"
// @Param        body  body      domain.CandidateUpdate  true  "Fields to update"
// @Success      200   {object}  response.Response{data=domain.Candidate}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /candidates/{id} [put]
// @Security     BearerAuth
func (h *CandidateHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var upd domain.CandidateUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	candidate, err := h.candidateUC.Update(c, id, &upd)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate updated successfully", candidate)
}

// UpdateStatusRequest is the request payload for a status transition
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus godoc
// @Summary      Update candidate status
// @Description  Move the candidature to another status. Rejects values outside the five-state enumeration.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Candidate ID"
// @Param        body  body      UpdateStatusRequest  true  "Status update"
// @Success      200   {object}  response.Response{data=domain.Candidate}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /candidates/{id}/status [patch]
// @Security     BearerAuth
func (h *CandidateHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	candidate, err := h.candidateUC.UpdateStatus(c, id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Status updated successfully", candidate)
}

// Delete godoc
// @Summary      Delete candidate
// @Description  Soft delete: the record is flagged inactive, its email becomes reusable
// @Tags         candidates
// @Produce      json
// @Param        id  path      int  true  "Candidate ID"
// @Success      200 {object}  response.Response
// @Failure      404 {object}  response.Response
// @Router       /candidates/{id} [delete]
// @Security     BearerAuth
func (h *CandidateHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.candidateUC.Delete(c, id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate removed successfully", nil)
}

// MessageRequest is the request payload for messaging a candidate
type MessageRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SendMessage godoc
// @Summary      Message a candidate
// @Description  Queue an email to the candidate. Accepted means enqueued, delivery is best effort.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id    path      int             true  "Candidate ID"
// @Param        body  body      MessageRequest  true  "Message"
// @Success      202   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /candidates/{id}/message [post]
// @Security     BearerAuth
func (h *CandidateHandler) SendMessage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	if err := h.candidateUC.SendMessage(c, id, req.Subject, req.Message); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusAccepted, "Message queued for delivery", nil)
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.Validation("Invalid candidate ID"))
		return 0, false
	}
	return id, true
}

func intQuery(c *gin.Context, key string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}
