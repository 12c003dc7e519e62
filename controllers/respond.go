package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"journal-review-api/services"
)

// fail converts a service error into the stable {success:false, error} shape.
// Validation, conflict and state errors are the caller's fault (400), missing
// entities are 404, everything else is a 500 whose cause stays in the log.
func fail(c *gin.Context, err error) {
	var (
		validationErr *services.ValidationError
		notFoundErr   *services.NotFoundError
		stateErr      *services.InvalidStateError
		conflictErr   *services.ConflictError
		depErr        *services.DependencyError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validationErr), errors.As(err, &stateErr), errors.As(err, &conflictErr):
		status = http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
	case errors.As(err, &depErr):
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, depErr.Unwrap())
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}

	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

// ok writes a success response, merging in any extra payload fields.
func ok(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}
