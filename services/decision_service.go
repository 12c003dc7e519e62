package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"journal-review-api/config"
	"journal-review-api/models"
)

// DecisionResult is the outcome of an editorial decision. Warnings list the
// best-effort side effects that failed (notification delivery, the soft
// status flip of a revision request) without aborting the decision itself.
type DecisionResult struct {
	Paper    *models.Paper `json:"paper"`
	Warnings Warnings      `json:"warnings,omitempty"`
}

// DecisionService is the sole authority for paper status transitions out of
// under_review. Every transition is a single conditional update keyed on the
// expected source status, so two racing decisions produce one winner and one
// clean state error instead of a silent lost update.
type DecisionService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewDecisionService(db *gorm.DB) *DecisionService {
	if db == nil {
		db = config.DB
	}
	return &DecisionService{db: db, notifier: NewNotificationService(db)}
}

// FormatDOI builds the deterministic DOI assigned at publication.
func FormatDOI(year int, paperID uint) string {
	return fmt.Sprintf("10.1000/example.%d.%03d", year, paperID)
}

// Publish moves an under-review paper to published, assigning its DOI and
// publication date. At least one completed review must exist; that guard is a
// hard precondition.
func (s *DecisionService) Publish(paperID uint) (*DecisionResult, error) {
	paper, err := s.loadPaper(paperID, "load paper before publishing")
	if err != nil {
		return nil, err
	}

	var reviewCount int64
	if err := s.db.Model(&models.Review{}).
		Where("paper_id = ? AND status = ?", paperID, models.ReviewStatusCompleted).
		Count(&reviewCount).Error; err != nil {
		return nil, dependencyErr("verify reviews before publishing", err)
	}
	if reviewCount < 1 {
		return nil, &InvalidStateError{Msg: "Cannot publish paper without at least one completed review."}
	}

	now := time.Now()
	doi := FormatDOI(now.Year(), paperID)
	publicationDate := now.Format("2006-01-02")

	res := s.db.Model(&models.Paper{}).
		Where("id = ? AND status = ?", paperID, models.PaperStatusUnderReview).
		Updates(map[string]interface{}{
			"status":           models.PaperStatusPublished,
			"publication_date": publicationDate,
			"doi":              doi,
		})
	if res.Error != nil {
		return nil, dependencyErr("publish paper", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, &InvalidStateError{Msg: "Only papers under review can be published."}
	}

	paper.Status = models.PaperStatusPublished
	paper.DOI = &doi
	paper.PublicationDate = &publicationDate

	result := &DecisionResult{Paper: paper}
	s.notifyMainAuthor(result, paper,
		"Paper accepted and published",
		fmt.Sprintf("Your paper %q has been accepted and published.", paper.Title),
		models.NotificationTypeSuccess)

	return result, nil
}

// RequestRevisions asks the main author for a revised manuscript. The status
// flip is best-effort: telling the author what to do next matters more than
// the flag, so a failed update becomes a warning and the notification is
// still attempted.
func (s *DecisionService) RequestRevisions(paperID uint, note string) (*DecisionResult, error) {
	paper, err := s.loadPaper(paperID, "load paper for revisions request")
	if err != nil {
		return nil, err
	}

	result := &DecisionResult{Paper: paper}

	res := s.db.Model(&models.Paper{}).
		Where("id = ? AND status IN ?", paperID, []string{models.PaperStatusSubmitted, models.PaperStatusUnderReview}).
		Update("status", models.PaperStatusRevisionsRequested)
	switch {
	case res.Error != nil:
		result.Warnings.addf("status update to revisions_requested failed: %v", res.Error)
	case res.RowsAffected == 0:
		result.Warnings.addf("paper %d was not awaiting review; status left unchanged", paperID)
	default:
		paper.Status = models.PaperStatusRevisionsRequested
	}

	message := fmt.Sprintf("The editor has requested revisions for your paper %q based on reviewer feedback.", paper.Title)
	if trimmed := strings.TrimSpace(note); trimmed != "" {
		message = fmt.Sprintf("The editor has requested revisions for your paper %q: %s", paper.Title, trimmed)
	}
	s.notifyMainAuthor(result, paper, "Revisions requested for your paper", message, models.NotificationTypeInfo)

	return result, nil
}

// Reject moves a paper to the terminal rejected state. Unlike a revision
// request, the status write is the point of the call and its failure fails
// the whole request.
func (s *DecisionService) Reject(paperID uint, note string) (*DecisionResult, error) {
	paper, err := s.loadPaper(paperID, "load paper for rejection")
	if err != nil {
		return nil, err
	}

	nonTerminal := []string{
		models.PaperStatusSubmitted,
		models.PaperStatusUnderReview,
		models.PaperStatusRevisionsRequested,
	}
	res := s.db.Model(&models.Paper{}).
		Where("id = ? AND status IN ?", paperID, nonTerminal).
		Update("status", models.PaperStatusRejected)
	if res.Error != nil {
		return nil, dependencyErr("reject paper", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, &InvalidStateError{Msg: "Paper has already reached a final decision."}
	}

	paper.Status = models.PaperStatusRejected

	message := fmt.Sprintf("Your paper %q has been rejected.", paper.Title)
	if trimmed := strings.TrimSpace(note); trimmed != "" {
		message = fmt.Sprintf("Your paper %q has been rejected. Editor notes: %s", paper.Title, trimmed)
	}

	result := &DecisionResult{Paper: paper}
	s.notifyMainAuthor(result, paper, "Paper decision: Rejected", message, models.NotificationTypeError)

	return result, nil
}

func (s *DecisionService) loadPaper(paperID uint, op string) (*models.Paper, error) {
	var paper models.Paper
	if err := s.db.First(&paper, paperID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "Paper"}
		}
		return nil, dependencyErr(op, err)
	}
	return &paper, nil
}

func (s *DecisionService) notifyMainAuthor(result *DecisionResult, paper *models.Paper, title, message, typ string) {
	if paper.MainAuthorID == nil {
		return
	}
	if err := s.notifier.Notify(*paper.MainAuthorID, title, message, typ); err != nil {
		result.Warnings.addf("failed to notify main author: %v", err)
	}
}
