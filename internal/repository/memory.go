package repository

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/preptrack/preptrack-go/internal/model"
)

// MemoryStore keeps users and questions in process memory. It backs
// `serve --memory` for local development and the service and handler tests.
// Its error contract matches UserRepository and QuestionRepository.
type MemoryStore struct {
	mu        sync.RWMutex
	nextID    int64
	users     map[int64]model.User
	questions map[string]model.Question
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[int64]model.User),
		questions: make(map[string]model.Question),
	}
}

// Users returns the store's view as a credential store.
func (m *MemoryStore) Users() *MemoryUsers { return (*MemoryUsers)(m) }

// Questions returns the store's view as a question store.
func (m *MemoryStore) Questions() *MemoryQuestions { return (*MemoryQuestions)(m) }

type MemoryUsers MemoryStore

func (u *MemoryUsers) Create(_ context.Context, user *model.User) error {
	m := (*MemoryStore)(u)
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Username == user.Username {
			return ErrDuplicateUsername
		}
	}

	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = *user
	return nil
}

func (u *MemoryUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	m := (*MemoryStore)(u)
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

type MemoryQuestions MemoryStore

func (s *MemoryQuestions) Create(_ context.Context, q *model.Question) error {
	m := (*MemoryStore)(s)
	m.mu.Lock()
	defer m.mu.Unlock()

	m.questions[q.ID] = *q
	return nil
}

func (s *MemoryQuestions) ListByUser(_ context.Context, userID int64) ([]model.Question, error) {
	m := (*MemoryStore)(s)
	m.mu.RLock()
	defer m.mu.RUnlock()

	questions := []model.Question{}
	for _, q := range m.questions {
		if q.UserID == userID {
			questions = append(questions, q)
		}
	}
	slices.SortFunc(questions, func(a, b model.Question) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return questions, nil
}

func (s *MemoryQuestions) GetByID(_ context.Context, id string) (*model.Question, error) {
	m := (*MemoryStore)(s)
	m.mu.RLock()
	defer m.mu.RUnlock()

	q, ok := m.questions[id]
	if !ok {
		return nil, ErrQuestionNotFound
	}
	return &q, nil
}

func (s *MemoryQuestions) UpdateFlags(_ context.Context, id string, userID int64, req model.UpdateQuestionRequest) error {
	m := (*MemoryStore)(s)
	m.mu.Lock()
	defer m.mu.Unlock()

	q, ok := m.questions[id]
	if !ok || q.UserID != userID {
		return ErrQuestionNotFound
	}
	if req.Completed != nil {
		q.Completed = *req.Completed
	}
	if req.ForReview != nil {
		q.ForReview = *req.ForReview
	}
	m.questions[id] = q
	return nil
}

func (s *MemoryQuestions) Delete(_ context.Context, id string, userID int64) error {
	m := (*MemoryStore)(s)
	m.mu.Lock()
	defer m.mu.Unlock()

	q, ok := m.questions[id]
	if !ok || q.UserID != userID {
		return ErrQuestionNotFound
	}
	delete(m.questions, id)
	return nil
}
