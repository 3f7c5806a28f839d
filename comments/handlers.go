package comments

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/inkwell-go/apperror"
	"github.com/user/inkwell-go/auth"
)

// CommentHandlers provides the HTTP handlers for comments.
type CommentHandlers struct {
	service *CommentService
}

// NewCommentHandlers creates new CommentHandlers.
func NewCommentHandlers(service *CommentService) *CommentHandlers {
	return &CommentHandlers{service: service}
}

// HandleListComments godoc
// @Summary List comments on a post
// @Description Returns all comments on a post, newest first, with author information.
// @Tags comments
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {array} comments.CommentWithAuthor
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /api/posts/{id}/comments [get]
func (h *CommentHandlers) HandleListComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := idParam(r, "id")
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		list, err := h.service.ListForPost(r.Context(), postID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// HandleCreateComment godoc
// @Summary Comment on a post
// @Description Creates a comment on a post, authored by the authenticated user.
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param commentBody body comments.CreateCommentRequest true "Comment to create"
// @Success 201 {object} comments.Comment
// @Failure 400 {object} apperror.ErrorResponse "Validation failed"
// @Failure 401 {object} apperror.ErrorResponse "Authentication required"
// @Failure 403 {object} apperror.ErrorResponse "Invalid or expired token"
// @Failure 404 {object} apperror.ErrorResponse "Post not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /api/posts/{id}/comments [post]
func (h *CommentHandlers) HandleCreateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
			return
		}

		postID, err := idParam(r, "id")
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		var req CreateCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := auth.ValidateStruct(req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		comment, err := h.service.Create(r.Context(), postID, userID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, comment)
	}
}

// HandleUpdateComment godoc
// @Summary Update a comment
// @Description Updates a comment's content. Author only.
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param commentBody body comments.UpdateCommentRequest true "New content"
// @Success 200 {object} comments.Comment
// @Failure 400 {object} apperror.ErrorResponse "Validation failed"
// @Failure 401 {object} apperror.ErrorResponse "Authentication required"
// @Failure 403 {object} apperror.ErrorResponse "Not the author"
// @Failure 404 {object} apperror.ErrorResponse "Comment not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /api/comments/{id} [put]
func (h *CommentHandlers) HandleUpdateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
			return
		}

		id, err := idParam(r, "id")
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		var req UpdateCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := auth.ValidateStruct(req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		comment, err := h.service.Update(r.Context(), id, userID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, comment)
	}
}

// HandleDeleteComment godoc
// @Summary Delete a comment
// @Description Deletes a comment. Author only.
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} comments.MessageResponse
// @Failure 401 {object} apperror.ErrorResponse "Authentication required"
// @Failure 403 {object} apperror.ErrorResponse "Not the author"
// @Failure 404 {object} apperror.ErrorResponse "Comment not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /api/comments/{id} [delete]
func (h *CommentHandlers) HandleDeleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
			return
		}

		id, err := idParam(r, "id")
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		if err := h.service.Delete(r.Context(), id, userID); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageResponse{Message: "Comment deleted successfully"})
	}
}

// idParam parses a numeric chi URL parameter.
func idParam(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, apperror.NewBadRequestError("invalid "+name+" parameter", err)
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}
