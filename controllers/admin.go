package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"journal-review-api/services"
)

type AssignReviewerRequest struct {
	PaperID    uint `json:"paperId"`
	ReviewerID uint `json:"reviewerId"`
}

type DecisionRequest struct {
	PaperID uint   `json:"paperId"`
	Note    string `json:"note"`
}

// GetReviewers lists reviewer users for the assignment picker.
func GetReviewers(c *gin.Context) {
	reviewers, err := services.NewAssignmentService(nil).ListReviewers()
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"reviewers": reviewers})
}

// AssignReviewer attaches a reviewer to a paper. Repeated assignments are
// successes, not errors.
func AssignReviewer(c *gin.Context) {
	var req AssignReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PaperID == 0 || req.ReviewerID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "paperId and reviewerId are required."})
		return
	}

	warnings, err := services.NewAssignmentService(nil).AssignReviewer(req.PaperID, req.ReviewerID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, warningsPayload(warnings))
}

// PublishPaper publishes a paper that has at least one completed review.
func PublishPaper(c *gin.Context) {
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PaperID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "paperId is required."})
		return
	}

	result, err := services.NewDecisionService(nil).Publish(req.PaperID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, decisionPayload(result))
}

// RequestRevisions asks the paper's author for a revised manuscript.
func RequestRevisions(c *gin.Context) {
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PaperID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "paperId is required."})
		return
	}

	result, err := services.NewDecisionService(nil).RequestRevisions(req.PaperID, req.Note)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, decisionPayload(result))
}

// RejectPaper rejects a paper with an optional editor note.
func RejectPaper(c *gin.Context) {
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PaperID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "paperId is required."})
		return
	}

	result, err := services.NewDecisionService(nil).Reject(req.PaperID, req.Note)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, decisionPayload(result))
}

func warningsPayload(warnings services.Warnings) gin.H {
	if len(warnings) == 0 {
		return gin.H{}
	}
	return gin.H{"warnings": warnings}
}

func decisionPayload(result *services.DecisionResult) gin.H {
	payload := warningsPayload(result.Warnings)
	payload["paper"] = result.Paper
	return payload
}
