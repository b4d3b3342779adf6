package model

import "time"

// Question is an interview question tracked by its owner.
// Completed and ForReview are independent flags; any combination is valid.
type Question struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	Title     string    `json:"title"`
	Link      string    `json:"link,omitempty"`
	Completed bool      `json:"completed"`
	ForReview bool      `json:"forReview"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateQuestionRequest represents a new question submitted by its owner.
type CreateQuestionRequest struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// UpdateQuestionRequest is a partial update; nil fields are left untouched.
type UpdateQuestionRequest struct {
	Completed *bool `json:"completed"`
	ForReview *bool `json:"forReview"`
}

// Empty reports whether the request changes nothing.
func (r UpdateQuestionRequest) Empty() bool {
	return r.Completed == nil && r.ForReview == nil
}

// MessageResponse is the body of acknowledgements and errors.
type MessageResponse struct {
	Message string `json:"message"`
}
