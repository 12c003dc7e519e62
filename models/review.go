package models

import "time"

// ReviewStatusCompleted is the only review status today; there is no draft state.
const ReviewStatusCompleted = "completed"

// Rating bounds accepted by the review intake service.
const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

type Review struct {
	ID             uint      `gorm:"primaryKey;column:id" json:"id"`
	PaperID        uint      `gorm:"column:paper_id;index" json:"paper_id"`
	ReviewerID     uint      `gorm:"column:reviewer_id;index" json:"reviewer_id"`
	ReviewerName   *string   `gorm:"column:reviewer_name" json:"reviewer_name,omitempty"`
	Rating         int       `gorm:"column:rating" json:"rating"`
	Comments       string    `gorm:"column:comments;type:text" json:"comments"`
	Recommendation string    `gorm:"column:recommendation" json:"recommendation"`
	SubmittedDate  time.Time `gorm:"column:submitted_date;autoCreateTime" json:"submitted_date"`
	Status         string    `gorm:"column:status" json:"status"`
}

func (Review) TableName() string { return "reviews" }
