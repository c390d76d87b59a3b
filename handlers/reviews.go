package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/loanpilot/models"
	"gorm.io/gorm"
)

type ReviewHandler struct {
	db *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

type CreateReviewRequest struct {
	Name   string `json:"name" binding:"required"`
	Role   string `json:"role"`
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Text   string `json:"text" binding:"required"`
}

// Create submits a client review. Public endpoint. Reviews publish
// immediately; admins can unpublish them afterwards.
func (h *ReviewHandler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := req.Role
	if role == "" {
		role = "Client"
	}

	review := models.Review{
		Name:       req.Name,
		Role:       role,
		Rating:     req.Rating,
		Text:       req.Text,
		IsApproved: true,
	}
	if err := h.db.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit review"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review submitted successfully",
		"review":  review,
	})
}

// ListApproved returns published reviews, newest first. Public
// endpoint; backs the landing page.
func (h *ReviewHandler) ListApproved(c *gin.Context) {
	var reviews []models.Review
	if err := h.db.Where("is_approved = ?", true).Order("created_at desc").Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}

// ListAll returns every review including unpublished ones. Admin only.
func (h *ReviewHandler) ListAll(c *gin.Context) {
	var reviews []models.Review
	if err := h.db.Order("created_at desc").Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}

type UpdateReviewStatusRequest struct {
	IsApproved *bool `json:"is_approved" binding:"required"`
}

// UpdateStatus publishes or unpublishes a review. Admin only.
func (h *ReviewHandler) UpdateStatus(c *gin.Context) {
	var req UpdateReviewStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var review models.Review
	if err := h.db.First(&review, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	review.IsApproved = *req.IsApproved
	if err := h.db.Save(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}

	c.JSON(http.StatusOK, review)
}

// Delete removes a review. Admin only.
func (h *ReviewHandler) Delete(c *gin.Context) {
	var review models.Review
	if err := h.db.First(&review, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	if err := h.db.Delete(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
