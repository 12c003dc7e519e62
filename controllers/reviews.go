package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"journal-review-api/services"
)

// SubmitReviewRequest tolerates ratings sent as either a number or a string;
// the frontend has done both.
type SubmitReviewRequest struct {
	PaperID        uint        `json:"paperId"`
	ReviewerID     uint        `json:"reviewerId"`
	ReviewerName   string      `json:"reviewerName"`
	Rating         json.Number `json:"rating"`
	Recommendation string      `json:"recommendation"`
	Comments       string      `json:"comments"`
}

// SubmitReview records a completed review for a paper.
func SubmitReview(c *gin.Context) {
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body."})
		return
	}

	rating, err := req.Rating.Int64()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Rating must be a number."})
		return
	}

	review, err := services.NewReviewService(nil).SubmitReview(services.ReviewInput{
		PaperID:        req.PaperID,
		ReviewerID:     req.ReviewerID,
		ReviewerName:   req.ReviewerName,
		Rating:         int(rating),
		Recommendation: req.Recommendation,
		Comments:       req.Comments,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"review": review})
}

// GetReviewsByReviewer lists a reviewer's reviews, newest first.
func GetReviewsByReviewer(c *gin.Context) {
	reviewerID, err := paramUint(c, "reviewerId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid reviewer id."})
		return
	}

	reviews, err := services.NewReviewService(nil).ListByReviewer(reviewerID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"reviews": reviews})
}

// GetReviewsByPaper lists a paper's reviews, newest first.
func GetReviewsByPaper(c *gin.Context) {
	paperID, err := paramUint(c, "paperId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid paper id."})
		return
	}

	reviews, err := services.NewReviewService(nil).ListByPaper(paperID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"reviews": reviews})
}
