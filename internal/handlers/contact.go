package handlers

import (
	"net/http"
	"strings"

	"inkwell/internal/services"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	mail *services.MailService
}

func NewContactHandler(mail *services.MailService) *ContactHandler {
	return &ContactHandler{mail: mail}
}

func (h *ContactHandler) Show(c *gin.Context) {
	Render(c, http.StatusOK, "pages/contact.html", gin.H{"Title": "Contact Me"})
}

// Send relays the form by email. Delivery faults come back to the form as
// an inline error with the input preserved.
func (h *ContactHandler) Send(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))
	phone := strings.TrimSpace(c.PostForm("phone"))
	message := strings.TrimSpace(c.PostForm("message"))

	if name == "" || email == "" || message == "" {
		Render(c, http.StatusBadRequest, "pages/contact.html", gin.H{
			"Title": "Contact Me",
			"Error": "Name, email and message are required.",
			"Name":  name, "Email": email, "Phone": phone, "Message": message,
		})
		return
	}

	if err := h.mail.SendContactMessage(name, email, phone, message); err != nil {
		Render(c, http.StatusBadGateway, "pages/contact.html", gin.H{
			"Title": "Contact Me",
			"Error": "Your message could not be sent. Please try again later.",
			"Name":  name, "Email": email, "Phone": phone, "Message": message,
		})
		return
	}

	Render(c, http.StatusOK, "pages/contact.html", gin.H{
		"Title":   "Contact Me",
		"Success": "Successfully sent your message!",
	})
}
