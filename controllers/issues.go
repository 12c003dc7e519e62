package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"journal-review-api/services"
)

type CreateIssueRequest struct {
	Volume int    `json:"volume"`
	Issue  int    `json:"issue"`
	Month  string `json:"month"`
	Year   int    `json:"year"`
}

type AssignPaperRequest struct {
	PaperID uint `json:"paperId"`
}

// GetIssues lists all issues, newest first.
func GetIssues(c *gin.Context) {
	issues, err := services.NewIssueService(nil).ListIssues()
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"issues": issues})
}

// CreateIssue creates a journal issue.
func CreateIssue(c *gin.Context) {
	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body."})
		return
	}

	issue, err := services.NewIssueService(nil).CreateIssue(req.Volume, req.Issue, req.Month, req.Year)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"issue": issue})
}

// SetCurrentIssue marks an issue as the current one.
func SetCurrentIssue(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid issue id."})
		return
	}

	issue, err := services.NewIssueService(nil).SetCurrent(id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"issue": issue})
}

// DeleteIssue removes an issue and its paper assignments.
func DeleteIssue(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid issue id."})
		return
	}

	if err := services.NewIssueService(nil).DeleteIssue(id); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{})
}

// AssignPaperToIssue binds a published paper to an issue.
func AssignPaperToIssue(c *gin.Context) {
	issueID, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid issue id."})
		return
	}

	var req AssignPaperRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PaperID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Valid issue id and paperId are required."})
		return
	}

	if err := services.NewIssueService(nil).AssignPaper(req.PaperID, issueID); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{})
}

// UnassignPaperFromIssue removes a paper from an issue.
func UnassignPaperFromIssue(c *gin.Context) {
	issueID, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid issue id."})
		return
	}
	paperID, err := paramUint(c, "paperId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid paper id."})
		return
	}

	if err := services.NewIssueService(nil).UnassignPaper(paperID, issueID); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{})
}

// GetIssueAssignments lists every paper-to-issue binding.
func GetIssueAssignments(c *gin.Context) {
	assignments, err := services.NewIssueService(nil).ListAssignments()
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"assignments": assignments})
}

// GetIssuePapers lists the papers assigned to an issue.
func GetIssuePapers(c *gin.Context) {
	issueID, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid issue id."})
		return
	}

	papers, err := services.NewIssueService(nil).ListPapersForIssue(issueID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"papers": papers})
}
