package services

import (
	"strings"

	"gorm.io/gorm"

	"journal-review-api/config"
	"journal-review-api/models"
)

// ReviewInput carries a reviewer's verdict for a paper.
type ReviewInput struct {
	PaperID        uint
	ReviewerID     uint
	ReviewerName   string // optional, denormalized at write time
	Rating         int
	Recommendation string
	Comments       string
}

// ReviewService records completed reviews. It never changes a paper's
// status; accumulating reviews and deciding on them are separate concerns,
// and the decision service is the only status authority.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	if db == nil {
		db = config.DB
	}
	return &ReviewService{db: db}
}

func (s *ReviewService) SubmitReview(in ReviewInput) (*models.Review, error) {
	if in.PaperID == 0 || in.ReviewerID == 0 || in.Rating == 0 ||
		strings.TrimSpace(in.Recommendation) == "" || strings.TrimSpace(in.Comments) == "" {
		return nil, &ValidationError{Msg: "Missing required review fields."}
	}
	if in.Rating < models.MinReviewRating || in.Rating > models.MaxReviewRating {
		return nil, &ValidationError{Msg: "Rating must be between 1 and 5."}
	}

	review := models.Review{
		PaperID:        in.PaperID,
		ReviewerID:     in.ReviewerID,
		Rating:         in.Rating,
		Recommendation: strings.TrimSpace(in.Recommendation),
		Comments:       in.Comments,
		Status:         models.ReviewStatusCompleted,
	}
	if name := strings.TrimSpace(in.ReviewerName); name != "" {
		review.ReviewerName = &name
	}

	if err := s.db.Create(&review).Error; err != nil {
		return nil, dependencyErr("submit review", err)
	}
	return &review, nil
}

func (s *ReviewService) ListByReviewer(reviewerID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Where("reviewer_id = ?", reviewerID).
		Order("submitted_date DESC").
		Find(&reviews).Error; err != nil {
		return nil, dependencyErr("fetch reviews", err)
	}
	return reviews, nil
}

func (s *ReviewService) ListByPaper(paperID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Where("paper_id = ?", paperID).
		Order("submitted_date DESC").
		Find(&reviews).Error; err != nil {
		return nil, dependencyErr("fetch reviews", err)
	}
	return reviews, nil
}
