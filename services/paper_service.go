package services

import (
	"errors"
	"sync"

	"gorm.io/gorm"

	"journal-review-api/config"
	"journal-review-api/models"
)

// PaperView is a paper together with its currently assigned reviewer ids.
type PaperView struct {
	models.Paper
	AssignedReviewers []uint `json:"assigned_reviewers"`
}

// PaperSummary adds the completed-review count used by the admin listing.
type PaperSummary struct {
	PaperView
	CompletedReviews int64 `json:"completed_reviews"`
}

// PaperService provides read access to papers for listings and detail pages.
type PaperService struct {
	db *gorm.DB
}

func NewPaperService(db *gorm.DB) *PaperService {
	if db == nil {
		db = config.DB
	}
	return &PaperService{db: db}
}

func (s *PaperService) ListPapers() ([]PaperView, error) {
	var papers []models.Paper
	if err := s.db.Order("submission_date DESC").Find(&papers).Error; err != nil {
		return nil, dependencyErr("fetch papers", err)
	}
	return s.attachAssignments(papers)
}

func (s *PaperService) ListPublished() ([]PaperView, error) {
	var papers []models.Paper
	if err := s.db.Where("status = ?", models.PaperStatusPublished).
		Order("publication_date DESC").
		Find(&papers).Error; err != nil {
		return nil, dependencyErr("fetch published papers", err)
	}
	return s.attachAssignments(papers)
}

func (s *PaperService) GetPaper(id uint) (*PaperView, error) {
	var paper models.Paper
	if err := s.db.First(&paper, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "Paper"}
		}
		return nil, dependencyErr("fetch paper", err)
	}

	views, err := s.attachAssignments([]models.Paper{paper})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// reviewCountWorkers bounds the fan-out in ListWithReviewCounts.
const reviewCountWorkers = 4

// ListWithReviewCounts lists all papers with their completed-review counts.
// The per-paper counts are computed concurrently with a bounded worker pool;
// this is the only internal fan-out in the system.
func (s *PaperService) ListWithReviewCounts() ([]PaperSummary, error) {
	views, err := s.ListPapers()
	if err != nil {
		return nil, err
	}

	summaries := make([]PaperSummary, len(views))
	errs := make([]error, len(views))

	sem := make(chan struct{}, reviewCountWorkers)
	var wg sync.WaitGroup
	for i := range views {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			var count int64
			err := s.db.Model(&models.Review{}).
				Where("paper_id = ? AND status = ?", views[i].ID, models.ReviewStatusCompleted).
				Count(&count).Error
			summaries[i] = PaperSummary{PaperView: views[i], CompletedReviews: count}
			errs[i] = err
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, dependencyErr("count reviews", err)
		}
	}
	return summaries, nil
}

func (s *PaperService) attachAssignments(papers []models.Paper) ([]PaperView, error) {
	var assignments []models.ReviewAssignment
	if err := s.db.Find(&assignments).Error; err != nil {
		return nil, dependencyErr("fetch review assignments", err)
	}

	byPaper := make(map[uint][]uint, len(assignments))
	for _, a := range assignments {
		byPaper[a.PaperID] = append(byPaper[a.PaperID], a.ReviewerID)
	}

	views := make([]PaperView, 0, len(papers))
	for _, p := range papers {
		reviewers := byPaper[p.ID]
		if reviewers == nil {
			reviewers = []uint{}
		}
		views = append(views, PaperView{Paper: p, AssignedReviewers: reviewers})
	}
	return views, nil
}
