package middleware

import (
	"net/http"

	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const CheckUserKey = "user"

// LoadUser resolves the session's user_id to a User and stores it in the
// request context. Anonymous requests pass through with nothing set.
func LoadUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if userID != nil {
			var user models.User
			if err := db.First(&user, userID).Error; err == nil {
				c.Set(CheckUserKey, &user)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the user LoadUser resolved, or nil for anonymous.
func CurrentUser(c *gin.Context) *models.User {
	if v, exists := c.Get(CheckUserKey); exists {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// AuthRequired sends anonymous requests to the login page with a one-shot
// notice.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			session := sessions.Default(c)
			session.AddFlash("You need to log in or register to do that.")
			session.Save()
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired gates authoring routes behind the fixed admin allow-list.
// Everyone else gets an explicit 403, not a redirect.
func AdminRequired(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !cfg.IsAdmin(user.ID) {
			obj := gin.H{"Error": "You are not allowed to do that."}
			if user != nil {
				obj["CurrentUser"] = user
			}
			c.HTML(http.StatusForbidden, "error.html", obj)
			c.Abort()
			return
		}
		c.Next()
	}
}
