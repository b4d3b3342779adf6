package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preptrack/preptrack-go/internal/middleware"
	"github.com/preptrack/preptrack-go/internal/model"
	"github.com/preptrack/preptrack-go/internal/service"
)

// QuestionHandler handles HTTP requests for question operations.
// All routes sit behind middleware.TokenAuth.
type QuestionHandler struct {
	service *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(svc *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{service: svc}
}

// HandleList handles GET /api/questions requests.
func (h *QuestionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse("Authorization denied"))
		return
	}

	questions, err := h.service.List(r.Context(), userID)
	if err != nil {
		serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, questions)
}

// HandleCreate handles POST /api/questions requests.
func (h *QuestionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse("Authorization denied"))
		return
	}

	var req model.CreateQuestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	q, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrTitleRequired) {
			writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
			return
		}
		serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, q)
}

// HandleUpdate handles PUT /api/questions/{questionID} requests.
func (h *QuestionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse("Authorization denied"))
		return
	}

	var req model.UpdateQuestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.service.Update(r.Context(), userID, chi.URLParam(r, "questionID"), req)
	if err != nil {
		h.writeItemError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("Question updated"))
}

// HandleDelete handles DELETE /api/questions/{questionID} requests.
func (h *QuestionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse("Authorization denied"))
		return
	}

	err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "questionID"))
	if err != nil {
		h.writeItemError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("Question deleted"))
}

func (h *QuestionHandler) writeItemError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrNotFoundOrForbidden) {
		writeJSON(w, http.StatusNotFound, messageResponse("Question not found or not authorized"))
		return
	}
	serverError(w, r, err)
}
