package services

import (
	"log"

	"gorm.io/gorm"

	"journal-review-api/config"
	"journal-review-api/models"
)

// AssignmentService attaches reviewers to papers.
type AssignmentService struct {
	db *gorm.DB
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	if db == nil {
		db = config.DB
	}
	return &AssignmentService{db: db}
}

// AssignReviewer is idempotent: assigning the same reviewer to the same paper
// twice is a success, not an error. After the assignment row exists the paper
// is advanced to under_review, but only from submitted or under_review; an
// assignment never pulls a paper back out of revisions_requested, published
// or rejected. The status advance is best-effort.
func (s *AssignmentService) AssignReviewer(paperID, reviewerID uint) (Warnings, error) {
	var warnings Warnings

	assignment := models.ReviewAssignment{
		PaperID:    paperID,
		ReviewerID: reviewerID,
	}
	if err := s.db.Create(&assignment).Error; err != nil {
		if !isDuplicateKey(err) {
			return nil, dependencyErr("assign reviewer", err)
		}
		// Already assigned; treat as success.
	}

	res := s.db.Model(&models.Paper{}).
		Where("id = ? AND status IN ?", paperID, []string{models.PaperStatusSubmitted, models.PaperStatusUnderReview}).
		Update("status", models.PaperStatusUnderReview)
	if res.Error != nil {
		log.Printf("assign reviewer: status advance failed for paper %d: %v", paperID, res.Error)
		warnings.addf("assignment saved but status update failed: %v", res.Error)
	}

	return warnings, nil
}

// ListReviewers returns all reviewer users ordered by name.
func (s *AssignmentService) ListReviewers() ([]models.User, error) {
	var reviewers []models.User
	if err := s.db.Where("role = ?", models.RoleReviewer).
		Order("name ASC").
		Find(&reviewers).Error; err != nil {
		return nil, dependencyErr("fetch reviewers", err)
	}
	return reviewers, nil
}
