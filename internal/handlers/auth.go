package handlers

import (
	"errors"
	"net/http"
	"strings"

	"inkwell/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "auth/register.html", nil)
}

func (h *AuthHandler) Register(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	name := strings.TrimSpace(c.PostForm("name"))
	password := c.PostForm("password")

	if email == "" || !strings.Contains(email, "@") {
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{
			"Error": "Please enter a valid email address.",
			"Email": email, "Name": name,
		})
		return
	}
	if name == "" {
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{
			"Error": "Please enter your name.",
			"Email": email,
		})
		return
	}
	if len(password) < 6 {
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{
			"Error": "Password must be at least 6 characters.",
			"Email": email, "Name": name,
		})
		return
	}

	user, err := h.auth.Register(email, name, password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			Render(c, http.StatusConflict, "auth/register.html", gin.H{
				"Error": "That email is already registered. Log in instead.",
				"Email": email, "Name": name,
			})
			return
		}
		RenderError(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	h.establishSession(c, user.ID)
	c.Redirect(http.StatusFound, "/main")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	user, err := h.auth.Login(email, password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEmail):
			Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
				"Error": "That email does not exist. Please try again.",
				"Email": email,
			})
		case errors.Is(err, services.ErrInvalidPassword):
			Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
				"Error": "Password incorrect. Please try again.",
				"Email": email,
			})
		default:
			RenderError(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return
	}

	h.establishSession(c, user.ID)
	c.Redirect(http.StatusFound, "/main")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/main")
}

func (h *AuthHandler) establishSession(c *gin.Context, userID uint) {
	session := sessions.Default(c)
	session.Set("user_id", userID)
	session.Save()
}
