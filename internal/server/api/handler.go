package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/TusharG27x/codebuddy/internal/common"
	"github.com/TusharG27x/codebuddy/internal/server/models"
	"github.com/TusharG27x/codebuddy/internal/server/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserService interface {
	Register(ctx context.Context, name, email string, password []byte) (*models.User, string, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, string, error)
	Authenticate(token string) (string, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID, name, bio string) (*models.User, error)
	SessionValidity() time.Duration
}

type StudyService interface {
	Stats(ctx context.Context, userID string) (*models.Stats, error)
	Hint(ctx context.Context, userID, problem, code string) (string, error)
}

type Handler struct {
	users  UserService
	study  StudyService
	logger *zap.Logger
	secure bool
}

// NewHandler builds the route handlers. secure marks the session cookie
// Secure, which browsers require outside localhost.
func NewHandler(users UserService, study StudyService, logger *zap.Logger, secure bool) *Handler {
	return &Handler{users: users, study: study, logger: logger, secure: secure}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type profileRequest struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

type hintRequest struct {
	Code    string `json:"code"`
	Problem string `json:"problem"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithMessage(c, http.StatusBadRequest, "Please provide name, email and password")
		return
	}

	user, token, err := h.users.Register(c.Request.Context(), req.Name, req.Email, []byte(req.Password))
	switch {
	case errors.Is(err, common.ErrAlreadyExists):
		abortWithMessage(c, http.StatusBadRequest, "User already exists")
		return
	case errors.Is(err, services.ErrInvalidInput):
		abortWithMessage(c, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.internalError(c, "register", err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, user.SessionUser())
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithMessage(c, http.StatusBadRequest, "Please provide email and password")
		return
	}

	user, token, err := h.users.Login(c.Request.Context(), req.Email, []byte(req.Password))
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		abortWithMessage(c, http.StatusUnauthorized, "Invalid email or password")
		return
	case err != nil:
		h.internalError(c, "login", err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, user.SessionUser())
}

// Logout expires the cookie. It needs no valid session.
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(common.SessionCookieName, "", -1, "/", "", h.secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.users.Profile(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		h.userLookupError(c, "profile", err)
		return
	}
	c.JSON(http.StatusOK, user.Profile())
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithMessage(c, http.StatusBadRequest, "Invalid profile")
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), c.GetString(userIDKey), req.Name, req.Bio)
	if errors.Is(err, services.ErrInvalidInput) {
		abortWithMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.userLookupError(c, "update profile", err)
		return
	}
	c.JSON(http.StatusOK, user.Profile())
}

func (h *Handler) DashboardStats(c *gin.Context) {
	stats, err := h.study.Stats(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		h.userLookupError(c, "stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetHint(c *gin.Context) {
	var req hintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithMessage(c, http.StatusBadRequest, "Invalid request")
		return
	}

	hint, err := h.study.Hint(c.Request.Context(), c.GetString(userIDKey), req.Problem, req.Code)
	if errors.Is(err, services.ErrInvalidInput) {
		abortWithMessage(c, http.StatusBadRequest, "Please provide code to get a hint")
		return
	}
	if err != nil {
		h.userLookupError(c, "hint", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hint": hint})
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	maxAge := int(h.users.SessionValidity().Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(common.SessionCookieName, token, maxAge, "/", "", h.secure, true)
}

// userLookupError treats a vanished user as an invalid session.
func (h *Handler) userLookupError(c *gin.Context, op string, err error) {
	if errors.Is(err, common.ErrorNotFound) {
		abortWithMessage(c, http.StatusUnauthorized, "User not found")
		return
	}
	h.internalError(c, op, err)
}

func (h *Handler) internalError(c *gin.Context, op string, err error) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Error(err),
	)
	abortWithMessage(c, http.StatusInternalServerError, "Server error")
}
