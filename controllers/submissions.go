package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"journal-review-api/services"
)

// maxUploadSize caps each uploaded file at 20MB.
const maxUploadSize = 20 * 1024 * 1024

// SubmitPaper handles the full submission form with manuscript and copyright
// form uploads. Anonymous submissions are allowed; a userId field links the
// paper to an account when present.
func SubmitPaper(c *gin.Context) {
	manuscript, err := readFormFile(c, "manuscript")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Both manuscript and copyright form files are required."})
		return
	}
	copyrightForm, err := readFormFile(c, "copyrightForm")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Both manuscript and copyright form files are required."})
		return
	}

	input := services.SubmissionInput{
		FullName:      c.PostForm("fullName"),
		Email:         c.PostForm("email"),
		Affiliation:   c.PostForm("affiliation"),
		PaperTitle:    c.PostForm("paperTitle"),
		Keywords:      c.PostForm("keywords"),
		Comments:      c.PostForm("comments"),
		Manuscript:    manuscript,
		CopyrightForm: copyrightForm,
	}
	if raw := c.PostForm("userId"); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(parsed)
			input.UserID = &id
		}
	}

	paper, manuscriptURL, copyrightURL, err := services.NewSubmissionService(nil, nil).SubmitNewPaper(input)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, gin.H{
		"paper":         paper,
		"manuscriptUrl": manuscriptURL,
		"copyrightUrl":  copyrightURL,
	})
}

// UploadRevision accepts a revised manuscript for a paper whose revisions
// were requested. The uploader is the authenticated user.
func UploadRevision(c *gin.Context) {
	paperID, err := paramUint(c, "paperId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid paper id."})
		return
	}

	manuscript, err := readFormFile(c, "manuscript")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Revised manuscript file is required."})
		return
	}

	var uploaderID *uint
	if raw, exists := c.Get("userID"); exists {
		if id, okCast := raw.(uint); okCast {
			uploaderID = &id
		}
	}

	manuscriptURL, warnings, err := services.NewSubmissionService(nil, nil).UploadRevision(paperID, manuscript, uploaderID)
	if err != nil {
		fail(c, err)
		return
	}

	payload := gin.H{"manuscriptUrl": manuscriptURL}
	if len(warnings) > 0 {
		payload["warnings"] = warnings
	}
	ok(c, payload)
}

func readFormFile(c *gin.Context, field string) (*services.FileBuffer, error) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		return nil, errors.New("file exceeds the 20MB upload limit")
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return nil, err
	}

	return &services.FileBuffer{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
