package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/services"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	content *services.ContentService
}

func NewBlogHandler(content *services.ContentService) *BlogHandler {
	return &BlogHandler{content: content}
}

// Index lists every post. The template shows login/logout links based on
// the injected CurrentUser.
func (h *BlogHandler) Index(c *gin.Context) {
	posts, err := h.content.ListPosts()
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load posts.")
		return
	}

	Render(c, http.StatusOK, "blog/index.html", gin.H{
		"Title": "Blog",
		"Posts": posts,
	})
}

// Detail shows one post with its comments rendered as sanitized HTML.
func (h *BlogHandler) Detail(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	post, err := h.content.GetPost(id)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			RenderError(c, http.StatusNotFound, "That post does not exist.")
			return
		}
		RenderError(c, http.StatusInternalServerError, "Could not load the post.")
		return
	}

	comments, err := h.content.CommentsFor(post.ID)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load comments.")
		return
	}

	type renderedComment struct {
		models.Comment
		TextHTML template.HTML
	}
	rendered := make([]renderedComment, len(comments))
	for i, com := range comments {
		rendered[i] = renderedComment{
			Comment:  com,
			TextHTML: utils.RenderMarkdown(com.Text),
		}
	}

	Render(c, http.StatusOK, "blog/show.html", gin.H{
		"Title":    post.Title,
		"Post":     post,
		"Body":     utils.RenderMarkdown(post.Body),
		"Comments": rendered,
	})
}

// CreateComment handles the comment form on the post page. The route sits
// behind AuthRequired; the service rejects anonymous writers again as a
// backstop.
func (h *BlogHandler) CreateComment(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	text := strings.TrimSpace(c.PostForm("comment"))
	if text == "" {
		Flash(c, "Comments cannot be empty.")
		c.Redirect(http.StatusFound, "/post/"+c.Param("id"))
		return
	}

	if _, err := h.content.AddComment(user, id, text); err != nil {
		switch {
		case errors.Is(err, services.ErrAuthRequired):
			Flash(c, "You need to log in or register to comment.")
			c.Redirect(http.StatusFound, "/login")
		case errors.Is(err, services.ErrPostNotFound):
			RenderError(c, http.StatusNotFound, "That post does not exist.")
		default:
			RenderError(c, http.StatusInternalServerError, "Could not save your comment.")
		}
		return
	}

	c.Redirect(http.StatusFound, "/post/"+c.Param("id"))
}

func (h *BlogHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, "blog/new.html", gin.H{
		"Title":  "New Post",
		"Fields": services.PostFields{},
	})
}

func (h *BlogHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	fields, errMsg := postFormFields(c)
	if errMsg != "" {
		Render(c, http.StatusBadRequest, "blog/new.html", gin.H{
			"Title": "New Post", "Error": errMsg, "Fields": fields,
		})
		return
	}

	post, err := h.content.CreatePost(user, fields)
	if err != nil {
		if errors.Is(err, services.ErrTitleTaken) {
			Render(c, http.StatusConflict, "blog/new.html", gin.H{
				"Title": "New Post", "Error": "A post with that title already exists.", "Fields": fields,
			})
			return
		}
		RenderError(c, http.StatusInternalServerError, "Could not create the post.")
		return
	}

	c.Redirect(http.StatusFound, "/post/"+utils.UintToString(post.ID))
}

func (h *BlogHandler) ShowEdit(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	post, err := h.content.GetPost(id)
	if err != nil {
		RenderError(c, http.StatusNotFound, "That post does not exist.")
		return
	}

	Render(c, http.StatusOK, "blog/edit.html", gin.H{
		"Title": "Edit Post",
		"Post":  post,
		"Fields": services.PostFields{
			Title:    post.Title,
			Subtitle: post.Subtitle,
			Body:     post.Body,
			ImgURL:   post.ImgURL,
		},
	})
}

func (h *BlogHandler) Update(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	fields, errMsg := postFormFields(c)
	if errMsg != "" {
		Render(c, http.StatusBadRequest, "blog/edit.html", gin.H{
			"Title": "Edit Post", "Error": errMsg, "Fields": fields,
			"Post": &models.Post{ID: id},
		})
		return
	}

	post, err := h.content.UpdatePost(id, fields)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			RenderError(c, http.StatusNotFound, "That post does not exist.")
		case errors.Is(err, services.ErrTitleTaken):
			Render(c, http.StatusConflict, "blog/edit.html", gin.H{
				"Title": "Edit Post", "Error": "A post with that title already exists.",
				"Fields": fields, "Post": &models.Post{ID: id},
			})
		default:
			RenderError(c, http.StatusInternalServerError, "Could not update the post.")
		}
		return
	}

	c.Redirect(http.StatusFound, "/post/"+utils.UintToString(post.ID))
}

func (h *BlogHandler) Delete(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	if err := h.content.DeletePost(id); err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			RenderError(c, http.StatusNotFound, "That post does not exist.")
			return
		}
		RenderError(c, http.StatusInternalServerError, "Could not delete the post.")
		return
	}

	c.Redirect(http.StatusFound, "/main")
}

// postFormFields pulls the shared new/edit form fields and validates the
// required ones. Returns a message for the inline error slot when invalid.
func postFormFields(c *gin.Context) (services.PostFields, string) {
	fields := services.PostFields{
		Title:    strings.TrimSpace(c.PostForm("title")),
		Subtitle: strings.TrimSpace(c.PostForm("subtitle")),
		Body:     c.PostForm("body"),
		ImgURL:   strings.TrimSpace(c.PostForm("img_url")),
	}

	if fields.Title == "" {
		return fields, "Title is required."
	}
	if strings.TrimSpace(fields.Body) == "" {
		return fields, "The post body cannot be empty."
	}
	return fields, ""
}
