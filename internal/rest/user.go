package rest

import (
	"net/http"
	"time"

	"github.com/flowblog/flowblog/domain"
	"github.com/flowblog/flowblog/internal/rest/middleware"
	"github.com/flowblog/flowblog/internal/rest/request"
	"github.com/flowblog/flowblog/internal/rest/response"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Service    domain.UserUsecase
	SessionTTL time.Duration
}

func NewUserHandler(svc domain.UserUsecase, sessionTTL time.Duration) *UserHandler {
	return &UserHandler{
		Service:    svc,
		SessionTTL: sessionTTL,
	}
}

func (h *UserHandler) SignUp(c *gin.Context) {
	var req request.SignUp
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	newUser, token, err := h.Service.SignUp(ctx, req.Username, req.Email, req.Password, req.VerificationCode)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, response.NewUserFromDomain(&newUser))
}

func (h *UserHandler) Login(c *gin.Context) {
	var req request.Login
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, token, err := h.Service.Login(ctx, req.Username, req.Password)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, response.NewUserFromDomain(&user))
}

func (h *UserHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookie)
	if err == nil && token != "" {
		ctx := c.Request.Context()
		if err := h.Service.Logout(ctx, token); err != nil {
			c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
			return
		}
	}

	h.clearSessionCookie(c)
	c.Status(http.StatusOK)
}

// Me returns the authenticated user's own record, email included.
func (h *UserHandler) Me(c *gin.Context) {
	userID, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Service.GetByID(ctx, userID.(int64))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewUserFromDomain(&user))
}

// Profile returns the public profile of any user.
func (h *UserHandler) Profile(c *gin.Context) {
	username := c.Param("username")

	ctx := c.Request.Context()
	user, err := h.Service.GetByUsername(ctx, username)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewUserFromDomain(&user))
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	var form request.UpdateProfile
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profilePic, ok := readImageFile(c, "profilePic", false)
	if !ok {
		return
	}

	userID, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Service.UpdateProfile(ctx, userID.(int64), domain.ProfileUpdate{
		Username:    form.Username,
		DisplayName: form.DisplayName,
		About:       form.About,
		ProfilePic:  profilePic,
	})
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewUserFromDomain(&user))
}

// RequestVerificationCode emails a code for the purpose baked in at route
// registration (signup or password reset).
func (h *UserHandler) RequestVerificationCode(purpose string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req request.RequestVerificationCode
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		if err := h.Service.RequestVerificationCode(ctx, req.Email, purpose); err != nil {
			c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
			return
		}

		c.Status(http.StatusOK)
	}
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req request.ResetPassword
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, token, err := h.Service.ResetPassword(ctx, req.Email, req.Password, req.VerificationCode)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, response.NewUserFromDomain(&user))
}

func (h *UserHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.SessionCookie, token, int(h.SessionTTL.Seconds()), "/", "", false, true)
}

func (h *UserHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
}
