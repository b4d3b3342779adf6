package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/preptrack/preptrack-go/internal/model"
	"github.com/preptrack/preptrack-go/internal/repository"
)

// QuestionStore persists questions.
type QuestionStore interface {
	Create(ctx context.Context, q *model.Question) error
	ListByUser(ctx context.Context, userID int64) ([]model.Question, error)
	GetByID(ctx context.Context, id string) (*model.Question, error)
	UpdateFlags(ctx context.Context, id string, userID int64, req model.UpdateQuestionRequest) error
	Delete(ctx context.Context, id string, userID int64) error
}

// QuestionService handles question business logic. Every operation is
// scoped to the calling user.
type QuestionService struct {
	repo  QuestionStore
	now   func() time.Time
	newID func() string
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(repo QuestionStore) *QuestionService {
	return &QuestionService{
		repo:  repo,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// List returns the caller's questions, newest first.
func (s *QuestionService) List(ctx context.Context, userID int64) ([]model.Question, error) {
	questions, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing questions for user %d: %w", userID, err)
	}
	if questions == nil {
		questions = []model.Question{}
	}
	return questions, nil
}

// Create stores a new question owned by the caller with both flags cleared.
func (s *QuestionService) Create(ctx context.Context, userID int64, req model.CreateQuestionRequest) (model.Question, error) {
	if strings.TrimSpace(req.Title) == "" {
		return model.Question{}, ErrTitleRequired
	}

	q := model.Question{
		ID:        s.newID(),
		UserID:    userID,
		Title:     req.Title,
		Link:      req.Link,
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	}

	if err := s.repo.Create(ctx, &q); err != nil {
		return model.Question{}, fmt.Errorf("creating question for user %d: %w", userID, err)
	}

	return q, nil
}

// Update applies the supplied flags to a question the caller owns.
func (s *QuestionService) Update(ctx context.Context, userID int64, id string, req model.UpdateQuestionRequest) error {
	if err := s.authorize(ctx, userID, id); err != nil {
		return err
	}
	if req.Empty() {
		return nil
	}

	err := s.repo.UpdateFlags(ctx, id, userID, req)
	if errors.Is(err, repository.ErrQuestionNotFound) {
		return ErrNotFoundOrForbidden
	}
	if err != nil {
		return fmt.Errorf("updating question %s: %w", id, err)
	}
	return nil
}

// Delete removes a question the caller owns.
func (s *QuestionService) Delete(ctx context.Context, userID int64, id string) error {
	if err := s.authorize(ctx, userID, id); err != nil {
		return err
	}

	err := s.repo.Delete(ctx, id, userID)
	if errors.Is(err, repository.ErrQuestionNotFound) {
		return ErrNotFoundOrForbidden
	}
	if err != nil {
		return fmt.Errorf("deleting question %s: %w", id, err)
	}
	return nil
}

// authorize loads the question and checks it belongs to userID. A malformed
// id, a missing question and someone else's question look the same.
func (s *QuestionService) authorize(ctx context.Context, userID int64, id string) error {
	if err := uuid.Validate(id); err != nil {
		return ErrNotFoundOrForbidden
	}

	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrQuestionNotFound) {
			return ErrNotFoundOrForbidden
		}
		return fmt.Errorf("loading question %s: %w", id, err)
	}
	if q.UserID != userID {
		return ErrNotFoundOrForbidden
	}
	return nil
}
