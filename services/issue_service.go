package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"journal-review-api/config"
	"journal-review-api/models"
)

// IssueAssignment pairs an issue binding with the issue it points at.
type IssueAssignment struct {
	IssueID uint         `json:"issueId"`
	PaperID uint         `json:"paperId"`
	Issue   models.Issue `json:"issue"`
}

// IssueService groups published papers into journal issues and maintains the
// single "current" issue flag.
type IssueService struct {
	db *gorm.DB
}

func NewIssueService(db *gorm.DB) *IssueService {
	if db == nil {
		db = config.DB
	}
	return &IssueService{db: db}
}

func (s *IssueService) CreateIssue(volume, issueNumber int, month string, year int) (*models.Issue, error) {
	if volume <= 0 || issueNumber <= 0 || year <= 0 {
		return nil, &ValidationError{Msg: "volume, issue and year are required."}
	}

	issue := models.Issue{
		Volume:      volume,
		IssueNumber: issueNumber,
		Year:        year,
	}
	if m := strings.TrimSpace(month); m != "" {
		issue.Month = &m
	}

	if err := s.db.Create(&issue).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, &ConflictError{Msg: "An issue with this volume, number and year already exists."}
		}
		return nil, dependencyErr("create issue", err)
	}
	return &issue, nil
}

func (s *IssueService) ListIssues() ([]models.Issue, error) {
	var issues []models.Issue
	if err := s.db.Order("year DESC, issue_number DESC").Find(&issues).Error; err != nil {
		return nil, dependencyErr("fetch issues", err)
	}
	return issues, nil
}

// SetCurrent makes the given issue the single current one. Clearing the old
// flag and setting the new one happen in one statement, so concurrent calls
// cannot leave zero or two issues flagged.
func (s *IssueService) SetCurrent(issueID uint) (*models.Issue, error) {
	var issue models.Issue
	if err := s.db.First(&issue, issueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "Issue"}
		}
		return nil, dependencyErr("load issue", err)
	}

	res := s.db.Model(&models.Issue{}).
		Where("is_current = ? OR id = ?", true, issueID).
		Update("is_current", gorm.Expr("(id = ?)", issueID))
	if res.Error != nil {
		return nil, dependencyErr("set current issue", res.Error)
	}

	issue.IsCurrent = true
	return &issue, nil
}

// AssignPaper binds a published paper to an issue. The unique paper_id column
// on issue_papers backs the pre-insert check, so a racing duplicate insert
// degrades into a clean conflict.
func (s *IssueService) AssignPaper(paperID, issueID uint) error {
	var issue models.Issue
	if err := s.db.First(&issue, issueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "Issue"}
		}
		return dependencyErr("verify issue before assignment", err)
	}

	var paper models.Paper
	if err := s.db.First(&paper, paperID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "Paper"}
		}
		return dependencyErr("verify paper before assignment", err)
	}
	if paper.Status != models.PaperStatusPublished {
		return &InvalidStateError{Msg: "Only published papers can be assigned to an issue."}
	}

	var existing int64
	if err := s.db.Model(&models.IssuePaper{}).
		Where("paper_id = ?", paperID).
		Count(&existing).Error; err != nil {
		return dependencyErr("verify existing issue assignment", err)
	}
	if existing > 0 {
		return &ConflictError{Msg: "This paper is already assigned to an issue."}
	}

	assignment := models.IssuePaper{IssueID: issueID, PaperID: paperID}
	if err := s.db.Create(&assignment).Error; err != nil {
		if isDuplicateKey(err) {
			return &ConflictError{Msg: "This paper is already assigned to an issue."}
		}
		return dependencyErr("assign paper to issue", err)
	}
	return nil
}

func (s *IssueService) UnassignPaper(paperID, issueID uint) error {
	res := s.db.Where("issue_id = ? AND paper_id = ?", issueID, paperID).
		Delete(&models.IssuePaper{})
	if res.Error != nil {
		return dependencyErr("unassign paper from issue", res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: "Assignment"}
	}
	return nil
}

// DeleteIssue removes an issue together with its paper bindings, so no
// dangling assignment rows survive the issue.
func (s *IssueService) DeleteIssue(issueID uint) error {
	if err := s.db.Where("issue_id = ?", issueID).
		Delete(&models.IssuePaper{}).Error; err != nil {
		return dependencyErr("remove issue assignments", err)
	}

	res := s.db.Delete(&models.Issue{}, issueID)
	if res.Error != nil {
		return dependencyErr("delete issue", res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: "Issue"}
	}
	return nil
}

func (s *IssueService) ListAssignments() ([]IssueAssignment, error) {
	var rows []models.IssuePaper
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, dependencyErr("load issue assignments", err)
	}
	if len(rows) == 0 {
		return []IssueAssignment{}, nil
	}

	issueIDs := make([]uint, 0, len(rows))
	for _, row := range rows {
		issueIDs = append(issueIDs, row.IssueID)
	}

	var issues []models.Issue
	if err := s.db.Where("id IN ?", issueIDs).Find(&issues).Error; err != nil {
		return nil, dependencyErr("load issue assignments", err)
	}
	byID := make(map[uint]models.Issue, len(issues))
	for _, issue := range issues {
		byID[issue.ID] = issue
	}

	assignments := make([]IssueAssignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, IssueAssignment{
			IssueID: row.IssueID,
			PaperID: row.PaperID,
			Issue:   byID[row.IssueID],
		})
	}
	return assignments, nil
}

// ListPapersForIssue returns the papers bound to an issue; an issue without
// papers yields an empty list, not an error.
func (s *IssueService) ListPapersForIssue(issueID uint) ([]models.Paper, error) {
	var paperIDs []uint
	if err := s.db.Model(&models.IssuePaper{}).
		Where("issue_id = ?", issueID).
		Pluck("paper_id", &paperIDs).Error; err != nil {
		return nil, dependencyErr("load issue papers", err)
	}
	if len(paperIDs) == 0 {
		return []models.Paper{}, nil
	}

	var papers []models.Paper
	if err := s.db.Where("id IN ?", paperIDs).Find(&papers).Error; err != nil {
		return nil, dependencyErr("load issue papers", err)
	}
	return papers, nil
}
