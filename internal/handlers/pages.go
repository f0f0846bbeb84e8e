package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageHandler serves the static site pages around the blog.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) Home(c *gin.Context) {
	Render(c, http.StatusOK, "pages/home.html", gin.H{"Title": "Home"})
}

func (h *PageHandler) Portfolio(c *gin.Context) {
	Render(c, http.StatusOK, "pages/portfolio.html", gin.H{"Title": "Portfolio"})
}

// SV renders the styled variant page with its two fixed template variables.
func (h *PageHandler) SV(c *gin.Context) {
	Render(c, http.StatusOK, "pages/sv.html", gin.H{
		"Style": "style.scc",
		"Score": 0,
	})
}

func (h *PageHandler) About(c *gin.Context) {
	Render(c, http.StatusOK, "pages/about.html", gin.H{"Title": "About Me"})
}
