package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"journal-review-api/services"
)

type CreatePaperRequest struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Abstract      string   `json:"abstract"`
	Keywords      []string `json:"keywords"`
	Category      string   `json:"category"`
	WordCount     *int     `json:"wordCount"`
	SubmissionFee *float64 `json:"submissionFee"`
	PaymentStatus string   `json:"paymentStatus"`
	MainAuthorID  *uint    `json:"mainAuthorId"`
}

// GetPapers lists papers, newest submission first. With ?status=published it
// returns only published papers ordered by publication date.
func GetPapers(c *gin.Context) {
	svc := services.NewPaperService(nil)

	var papers []services.PaperView
	var err error
	if c.Query("status") == "published" {
		papers, err = svc.ListPublished()
	} else {
		papers, err = svc.ListPapers()
	}
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"papers": papers})
}

// GetPaper returns a single paper by id.
func GetPaper(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid paper id."})
		return
	}

	paper, err := services.NewPaperService(nil).GetPaper(id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"paper": paper})
}

// CreatePaper submits a paper from structured metadata.
func CreatePaper(c *gin.Context) {
	var req CreatePaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body."})
		return
	}

	paper, err := services.NewSubmissionService(nil, nil).CreatePaper(services.CreatePaperInput{
		Title:         req.Title,
		Authors:       req.Authors,
		Abstract:      req.Abstract,
		Keywords:      req.Keywords,
		Category:      req.Category,
		WordCount:     req.WordCount,
		SubmissionFee: req.SubmissionFee,
		PaymentStatus: req.PaymentStatus,
		MainAuthorID:  req.MainAuthorID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"paper": paper})
}

// GetPapersWithReviewCounts backs the admin dashboard listing.
func GetPapersWithReviewCounts(c *gin.Context) {
	papers, err := services.NewPaperService(nil).ListWithReviewCounts()
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"papers": papers})
}

func paramUint(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}
