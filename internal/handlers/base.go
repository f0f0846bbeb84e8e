package handlers

import (
	"inkwell/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	// Inject Current User
	if user := middleware.CurrentUser(c); user != nil {
		obj["CurrentUser"] = user
	}

	// Drain one-shot flash notices
	if _, ok := obj["Flashes"]; !ok {
		session := sessions.Default(c)
		if flashes := session.Flashes(); len(flashes) > 0 {
			session.Save()
			obj["Flashes"] = flashes
		}
	}

	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// RenderError renders the shared error page.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// Flash queues a one-shot notice for the next rendered page.
func Flash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	session.Save()
}
