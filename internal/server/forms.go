package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	inquirydomain "github.com/smallbiznis/storefront/internal/inquiry/domain"
)

func (s *Server) SubmitCorporateInquiry(c *gin.Context) {
	var req inquirydomain.CorporateInquiryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	inquiry, err := s.inquirySvc.SubmitCorporateInquiry(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"inquiry": inquiry,
		"message": "Inquiry submitted successfully",
	})
}

func (s *Server) SubmitContactForm(c *gin.Context) {
	var req inquirydomain.ContactFormInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	contact, err := s.inquirySvc.SubmitContactForm(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"contact": contact,
		"message": "Message sent successfully",
	})
}

func (s *Server) Subscribe(c *gin.Context) {
	var req inquirydomain.NewsletterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	newsletter, err := s.inquirySvc.Subscribe(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"newsletter": newsletter,
		"message":    "Subscribed successfully",
	})
}
