package auth

import (
	"errors"
	"net/http"

	"campusgate/internal/domain"
	"campusgate/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages the HTTP surface of the credential cache.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", h.Me)
	}
}

// Login exchanges cardnum/password for the session token. Registered for
// POST only; other verbs get 405 from the router.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "cardnum and password are required")
		return
	}

	token, err := h.service.Login(c.Request.Context(), domain.Credentials{
		Cardnum:   req.Cardnum,
		Password:  req.Password,
		GPassword: req.GPassword,
	}, req.Platform)
	if err != nil {
		switch {
		case errors.Is(err, ErrPlatformRequired):
			response.Error(c, http.StatusBadRequest, "PLATFORM_REQUIRED", "platform is required")
		case errors.Is(err, ErrUnauthorized):
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials")
		case errors.Is(err, ErrUpstreamUnavailable):
			response.Error(c, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "identity provider unavailable")
		default:
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "failed to log in")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token})
}

// Me returns the public view of the caller's identity.
func (h *Handler) Me(c *gin.Context) {
	session, err := IdentityFrom(c).Require()
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "login required")
		return
	}

	response.Success(c, http.StatusOK, MeResponse{
		Cardnum:   session.Cardnum,
		Name:      session.Name,
		Schoolnum: session.Schoolnum,
		Platform:  session.Platform,
		Token:     session.TokenHash,
		PersonID:  session.PersonID,
	})
}
