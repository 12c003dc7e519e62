package models

import "time"

type Issue struct {
	ID          uint      `gorm:"primaryKey;column:id" json:"id"`
	Volume      int       `gorm:"column:volume;uniqueIndex:idx_issue_unique" json:"volume"`
	IssueNumber int       `gorm:"column:issue_number;uniqueIndex:idx_issue_unique" json:"issue"`
	Month       *string   `gorm:"column:month" json:"month,omitempty"`
	Year        int       `gorm:"column:year;uniqueIndex:idx_issue_unique" json:"year"`
	IsCurrent   bool      `gorm:"column:is_current" json:"isCurrent"`
	CreateAt    time.Time `gorm:"column:create_at;autoCreateTime" json:"created_at"`
}

func (Issue) TableName() string { return "issues" }

// IssuePaper binds a published paper to an issue. The unique paper_id column
// guarantees a paper appears in at most one issue even under concurrent
// assignment calls.
type IssuePaper struct {
	ID      uint `gorm:"primaryKey;column:id" json:"id"`
	IssueID uint `gorm:"column:issue_id;index" json:"issue_id"`
	PaperID uint `gorm:"column:paper_id;uniqueIndex" json:"paper_id"`
}

func (IssuePaper) TableName() string { return "issue_papers" }
