package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapp/internal/app"
	"todoapp/internal/config"
	"todoapp/internal/transport/http/middleware"
	"todoapp/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
	session     config.SessionConfig
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"max=128"`
	Name     string `json:"name" binding:"max=64"`
	Password string `json:"password" binding:"max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"max=128"`
	Password string `json:"password" binding:"max=128"`
	Remember bool   `json:"remember"`
}

func NewAuthHandler(authService *app.AuthService, session config.SessionConfig) *AuthHandler {
	return &AuthHandler{authService: authService, session: session}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	user, err := h.authService.Register(app.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEmptyField),
			errors.Is(err, app.ErrInvalidEmail),
			errors.Is(err, app.ErrPasswordTooShort):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrEmailExists):
			response.Error(c, http.StatusBadRequest, response.CodeEmailExists, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "register failed")
		}
		return
	}

	response.OK(c, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	identity, err := h.authService.Login(c.Request.Context(), app.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Remember: req.Remember,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEmptyField):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrInvalidCredential):
			response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredentials, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "login failed")
		}
		return
	}

	// A plain login gets a browser-session cookie; "remember me" pins
	// the cookie lifetime to the server-side session TTL.
	maxAge := 0
	if req.Remember {
		maxAge = h.session.RememberTTLMinute * 60
	}
	c.SetCookie(h.session.CookieName, identity.Token, maxAge, "/", "", h.session.CookieSecure, true)

	response.OK(c, gin.H{
		"id":    identity.User.ID,
		"name":  identity.User.Name,
		"email": identity.User.Email,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(h.session.CookieName)
	if err == nil && token != "" {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "logout failed")
			return
		}
	}

	c.SetCookie(h.session.CookieName, "", -1, "/", "", h.session.CookieSecure, true)
	response.OK(c, nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "login required")
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch current user failed")
		return
	}
	if user == nil {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found")
		return
	}

	response.OK(c, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

func getUserIDFromContext(c *gin.Context) (uint, bool) {
	userIDAny, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := userIDAny.(uint)
	return userID, ok
}
