package v1

import (
	"net/http"

	"talentmatch-backend/internal/delivery/http/response"
	"talentmatch-backend/internal/domain"
	"talentmatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

// NewAuthHandler registers the public auth routes
func NewAuthHandler(r *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}
	r.POST("/auth/login", handler.Login)
}

// LoginRequest is the request payload for recruiter login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued session token
type LoginResponse struct {
	Token string `json:"token"`
}

// Login godoc
// @Summary      Recruiter login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  response.Response{data=LoginResponse}
// @Failure      401   {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	token, err := h.authUC.Login(c, req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", LoginResponse{Token: token})
}
