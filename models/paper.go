package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Paper lifecycle statuses. Transitions between them are owned by the
// services layer; nothing else writes papers.status.
const (
	PaperStatusSubmitted          = "submitted"
	PaperStatusUnderReview        = "under_review"
	PaperStatusRevisionsRequested = "revisions_requested"
	PaperStatusPublished          = "published"
	PaperStatusRejected           = "rejected"
)

// Payment statuses for the submission fee.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// DefaultSubmissionFee is charged per submission unless the caller overrides it.
const DefaultSubmissionFee = 150

// StringList stores a JSON array of strings in a text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

type Paper struct {
	ID              uint       `gorm:"primaryKey;column:id" json:"id"`
	Title           string     `gorm:"column:title" json:"title"`
	Authors         StringList `gorm:"column:authors;type:text" json:"authors"`
	Abstract        *string    `gorm:"column:abstract;type:text" json:"abstract,omitempty"`
	Keywords        StringList `gorm:"column:keywords;type:text" json:"keywords"`
	Category        *string    `gorm:"column:category" json:"category,omitempty"`
	WordCount       *int       `gorm:"column:word_count" json:"word_count,omitempty"`
	Status          string     `gorm:"column:status" json:"status"`
	SubmissionFee   float64    `gorm:"column:submission_fee" json:"submission_fee"`
	PaymentStatus   string     `gorm:"column:payment_status" json:"payment_status"`
	PDFUrl          *string    `gorm:"column:pdf_url" json:"pdf_url,omitempty"`
	DOI             *string    `gorm:"column:doi" json:"doi,omitempty"`
	SubmissionDate  time.Time  `gorm:"column:submission_date;autoCreateTime" json:"submission_date"`
	PublicationDate *string    `gorm:"column:publication_date" json:"publication_date,omitempty"`
	ReviewDeadline  *time.Time `gorm:"column:review_deadline" json:"review_deadline,omitempty"`
	CitationCount   int        `gorm:"column:citation_count" json:"citation_count"`
	MainAuthorID    *uint      `gorm:"column:main_author_id" json:"main_author_id,omitempty"`
}

func (Paper) TableName() string { return "papers" }

// Terminal reports whether the paper has reached a final state.
func (p *Paper) Terminal() bool {
	return p.Status == PaperStatusPublished || p.Status == PaperStatusRejected
}

// ReviewAssignment joins a paper to a reviewer. The unique index turns a
// duplicate assignment into a clean key conflict instead of a silent race.
type ReviewAssignment struct {
	ID         uint      `gorm:"primaryKey;column:id" json:"id"`
	PaperID    uint      `gorm:"column:paper_id;uniqueIndex:idx_paper_reviewer" json:"paper_id"`
	ReviewerID uint      `gorm:"column:reviewer_id;uniqueIndex:idx_paper_reviewer" json:"reviewer_id"`
	AssignedAt time.Time `gorm:"column:assigned_at;autoCreateTime" json:"assigned_at"`
}

func (ReviewAssignment) TableName() string { return "review_assignments" }
