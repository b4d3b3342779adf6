package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/preptrack/preptrack-go/internal/model"
)

var ErrQuestionNotFound = errors.New("question not found")

// QuestionRepository handles question persistence operations.
type QuestionRepository struct {
	db *sql.DB
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(db *sql.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

const questionColumns = `id, user_id, title, link, completed, for_review, created_at`

// Create inserts a question. The ID and CreatedAt must already be set.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	query := `INSERT INTO questions (` + questionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		q.ID, q.UserID, q.Title, nullString(q.Link), q.Completed, q.ForReview, q.CreatedAt,
	)
	return err
}

// ListByUser retrieves all questions owned by a user, newest first.
func (r *QuestionRepository) ListByUser(ctx context.Context, userID int64) ([]model.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions
		WHERE user_id = ? ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// GetByID retrieves a question regardless of its owner.
func (r *QuestionRepository) GetByID(ctx context.Context, id string) (*model.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = ?`

	q, err := scanQuestion(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	return &q, nil
}

// UpdateFlags sets the supplied flags on a question owned by userID.
// A nil field keeps its stored value.
func (r *QuestionRepository) UpdateFlags(ctx context.Context, id string, userID int64, req model.UpdateQuestionRequest) error {
	query := `UPDATE questions
		SET completed = COALESCE(?, completed), for_review = COALESCE(?, for_review)
		WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, req.Completed, req.ForReview, id, userID)
	if err != nil {
		return err
	}

	return requireAffected(result)
}

// Delete removes a question owned by userID.
func (r *QuestionRepository) Delete(ctx context.Context, id string, userID int64) error {
	query := `DELETE FROM questions WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}

	return requireAffected(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(s rowScanner) (model.Question, error) {
	var (
		q    model.Question
		link sql.NullString
	)
	if err := s.Scan(&q.ID, &q.UserID, &q.Title, &link, &q.Completed, &q.ForReview, &q.CreatedAt); err != nil {
		return model.Question{}, err
	}
	q.Link = link.String
	return q, nil
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
