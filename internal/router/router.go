package router

import (
	"inkwell/internal/config"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes wires every handler onto the engine. All dependencies come
// in through the arguments; nothing here reaches for globals.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	r.Use(middleware.LoadUser(db))

	authHandler := handlers.NewAuthHandler(services.NewAuthService(db))
	blogHandler := handlers.NewBlogHandler(services.NewContentService(db))
	pageHandler := handlers.NewPageHandler()
	contactHandler := handlers.NewContactHandler(services.NewMailService(cfg))

	// Static site pages
	r.GET("/", pageHandler.Home)
	r.GET("/portfolio", pageHandler.Portfolio)
	r.GET("/sv", pageHandler.SV)
	r.GET("/about", pageHandler.About)
	r.GET("/contact.html", contactHandler.Show)
	r.POST("/contact.html", contactHandler.Send)

	// Blog
	r.GET("/main", blogHandler.Index)
	r.GET("/post/:id", blogHandler.Detail)

	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Commenting needs a login
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/post/:id", blogHandler.CreateComment)
	}

	// Authoring is restricted to the admin allow-list
	admin := r.Group("/")
	admin.Use(middleware.AdminRequired(cfg))
	{
		admin.GET("/new-post", blogHandler.ShowCreate)
		admin.POST("/new-post", blogHandler.Create)
		admin.GET("/edit-post/:id", blogHandler.ShowEdit)
		admin.POST("/edit-post/:id", blogHandler.Update)
		admin.GET("/delete/:id", blogHandler.Delete)
	}
}
