package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"journal-review-api/config"
	"journal-review-api/models"
)

// FileBuffer is an uploaded file held in memory.
type FileBuffer struct {
	Name        string
	ContentType string
	Data        []byte
}

// SubmissionInput carries the author-facing submission form. The form is a
// single-author shortcut: the created paper lists exactly the submitter.
type SubmissionInput struct {
	FullName    string
	Email       string
	Affiliation string
	PaperTitle  string
	Keywords    string // comma separated
	Comments    string // stored as the abstract
	UserID      *uint

	Manuscript    *FileBuffer
	CopyrightForm *FileBuffer
}

// CreatePaperInput is the metadata-only entry point used by POST /papers.
type CreatePaperInput struct {
	Title         string
	Authors       []string
	Abstract      string
	Keywords      []string
	Category      string
	WordCount     *int
	SubmissionFee *float64
	PaymentStatus string
	MainAuthorID  *uint
}

// SubmissionService creates papers and handles revision re-submission.
type SubmissionService struct {
	db       *gorm.DB
	store    FileStore
	notifier *NotificationService
}

func NewSubmissionService(db *gorm.DB, store FileStore) *SubmissionService {
	if db == nil {
		db = config.DB
	}
	if store == nil {
		store = NewLocalFileStore()
	}
	return &SubmissionService{
		db:       db,
		store:    store,
		notifier: NewNotificationService(db),
	}
}

// SubmitNewPaper validates the form, stores both files and creates the paper
// with status=submitted. On any failure no paper record is created.
func (s *SubmissionService) SubmitNewPaper(in SubmissionInput) (*models.Paper, string, string, error) {
	if strings.TrimSpace(in.FullName) == "" ||
		strings.TrimSpace(in.Email) == "" ||
		strings.TrimSpace(in.Affiliation) == "" ||
		strings.TrimSpace(in.PaperTitle) == "" {
		return nil, "", "", &ValidationError{Msg: "Required fields are missing."}
	}
	if in.Manuscript == nil || in.CopyrightForm == nil {
		return nil, "", "", &ValidationError{Msg: "Both manuscript and copyright form files are required."}
	}

	pathPrefix := "anonymous"
	if in.UserID != nil {
		pathPrefix = fmt.Sprintf("user-%d", *in.UserID)
	}

	manuscriptURL, err := s.store.Save(pathPrefix+"/manuscripts", in.Manuscript.Name, in.Manuscript.Data, in.Manuscript.ContentType)
	if err != nil {
		return nil, "", "", dependencyErr("store manuscript", err)
	}
	copyrightURL, err := s.store.Save(pathPrefix+"/copyright", in.CopyrightForm.Name, in.CopyrightForm.Data, in.CopyrightForm.ContentType)
	if err != nil {
		return nil, "", "", dependencyErr("store copyright form", err)
	}

	paper := models.Paper{
		Title:         strings.TrimSpace(in.PaperTitle),
		Authors:       models.StringList{strings.TrimSpace(in.FullName)},
		Keywords:      splitKeywords(in.Keywords),
		Status:        models.PaperStatusSubmitted,
		SubmissionFee: models.DefaultSubmissionFee,
		PaymentStatus: models.PaymentStatusPending,
		PDFUrl:        &manuscriptURL,
		MainAuthorID:  in.UserID,
	}
	if abstract := strings.TrimSpace(in.Comments); abstract != "" {
		paper.Abstract = &abstract
	}

	if err := s.db.Create(&paper).Error; err != nil {
		return nil, "", "", dependencyErr("save submission", err)
	}

	return &paper, manuscriptURL, copyrightURL, nil
}

// CreatePaper inserts a paper from structured metadata with a full author list.
func (s *SubmissionService) CreatePaper(in CreatePaperInput) (*models.Paper, error) {
	authors := make(models.StringList, 0, len(in.Authors))
	for _, a := range in.Authors {
		if trimmed := strings.TrimSpace(a); trimmed != "" {
			authors = append(authors, trimmed)
		}
	}
	if strings.TrimSpace(in.Title) == "" || len(authors) == 0 {
		return nil, &ValidationError{Msg: "Title and at least one author are required."}
	}

	fee := float64(models.DefaultSubmissionFee)
	if in.SubmissionFee != nil {
		fee = *in.SubmissionFee
	}
	paymentStatus := in.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentStatusPending
	}

	paper := models.Paper{
		Title:         strings.TrimSpace(in.Title),
		Authors:       authors,
		Keywords:      models.StringList(in.Keywords),
		WordCount:     in.WordCount,
		Status:        models.PaperStatusSubmitted,
		SubmissionFee: fee,
		PaymentStatus: paymentStatus,
		MainAuthorID:  in.MainAuthorID,
	}
	if abstract := strings.TrimSpace(in.Abstract); abstract != "" {
		paper.Abstract = &abstract
	}
	if category := strings.TrimSpace(in.Category); category != "" {
		paper.Category = &category
	}
	if paper.Keywords == nil {
		paper.Keywords = models.StringList{}
	}

	if err := s.db.Create(&paper).Error; err != nil {
		return nil, dependencyErr("submit paper", err)
	}
	return &paper, nil
}

// UploadRevision accepts exactly one revised manuscript for a paper whose
// revisions were explicitly requested, and moves it back to under_review.
// Notifying admins and assigned reviewers is best-effort; failures come back
// as warnings.
func (s *SubmissionService) UploadRevision(paperID uint, file *FileBuffer, uploaderID *uint) (string, Warnings, error) {
	var warnings Warnings

	if file == nil {
		return "", nil, &ValidationError{Msg: "Revised manuscript file is required."}
	}

	var paper models.Paper
	if err := s.db.First(&paper, paperID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, &NotFoundError{Entity: "Paper"}
		}
		return "", nil, dependencyErr("verify paper before revision upload", err)
	}

	if paper.Status != models.PaperStatusRevisionsRequested {
		return "", nil, &InvalidStateError{Msg: "Revised manuscript can only be uploaded after a revision request."}
	}

	pathPrefix := fmt.Sprintf("paper-%d", paperID)
	if uploaderID != nil {
		pathPrefix = fmt.Sprintf("user-%d", *uploaderID)
	}

	manuscriptURL, err := s.store.Save(pathPrefix+"/revisions", file.Name, file.Data, file.ContentType)
	if err != nil {
		return "", nil, dependencyErr("upload revised manuscript", err)
	}

	// Single conditional write: the file pointer and the status flip land
	// together, and a concurrent decision that already moved the paper out of
	// revisions_requested turns into a clean state error.
	res := s.db.Model(&models.Paper{}).
		Where("id = ? AND status = ?", paperID, models.PaperStatusRevisionsRequested).
		Updates(map[string]interface{}{
			"pdf_url": manuscriptURL,
			"status":  models.PaperStatusUnderReview,
		})
	if res.Error != nil {
		return "", nil, dependencyErr("save revised manuscript", res.Error)
	}
	if res.RowsAffected == 0 {
		return "", nil, &InvalidStateError{Msg: "Revised manuscript can only be uploaded after a revision request."}
	}

	s.notifyRevisionUploaded(paperID, paper.Title, &warnings)

	return manuscriptURL, warnings, nil
}

func (s *SubmissionService) notifyRevisionUploaded(paperID uint, title string, warnings *Warnings) {
	var adminIDs []uint
	if err := s.db.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Pluck("id", &adminIDs).Error; err != nil {
		warnings.addf("failed to load admin recipients: %v", err)
	}

	var reviewerIDs []uint
	if err := s.db.Model(&models.ReviewAssignment{}).
		Where("paper_id = ?", paperID).
		Pluck("reviewer_id", &reviewerIDs).Error; err != nil {
		warnings.addf("failed to load assigned reviewers: %v", err)
	}

	recipients := append(adminIDs, reviewerIDs...)
	if len(recipients) == 0 {
		return
	}

	message := fmt.Sprintf("A revised version of the paper %q has been uploaded by the author.", title)
	if err := s.notifier.NotifyMany(recipients, "Revised manuscript uploaded", message, models.NotificationTypeInfo); err != nil {
		warnings.addf("failed to send revision notifications: %v", err)
	}
}

func splitKeywords(raw string) models.StringList {
	parts := strings.Split(raw, ",")
	keywords := make(models.StringList, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}
