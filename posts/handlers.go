package posts

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/inkwell-go/apperror"
	"github.com/user/inkwell-go/auth"
)

// PostHandlers provides the HTTP handlers for posts.
type PostHandlers struct {
	service *PostService
}

// NewPostHandlers creates new PostHandlers.
func NewPostHandlers(service *PostService) *PostHandlers {
	return &PostHandlers{service: service}
}

// HandleListPosts godoc
// @Summary List posts
// @Description Returns all posts, newest first, with author information.
// @Tags posts
// @Produce json
// @Success 200 {array} posts.PostWithAuthor
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /api/posts [get]
func (h *PostHandlers) HandleListPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := h.service.List(r.Context())
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// HandleGetPost godoc
// @Summary Get a post
// @Description Returns a single post by id with author information.
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} posts.PostWithAuthor
// @Failure 404 {object} apperror.ErrorResponse "Post not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /api/posts/{id} [get]
func (h *PostHandlers) HandleGetPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		post, err := h.service.Get(r.Context(), id)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, post)
	}
}

// HandleCreatePost godoc
// @Summary Create a post
// @Description Creates a post authored by the authenticated user.
// @Tags posts
// @Accept json
// @Produce json
// @Param postBody body posts.CreatePostRequest true "Post to create"
// @Success 201 {object} posts.Post
// @Failure 400 {object} apperror.ErrorResponse "Validation failed"
// @Failure 401 {object} apperror.ErrorResponse "Authentication required"
// @Failure 403 {object} apperror.ErrorResponse "Invalid or expired token"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /api/posts [post]
func (h *PostHandlers) HandleCreatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
			return
		}

		var req CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := auth.ValidateStruct(req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		post, err := h.service.Create(r.Context(), userID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, post)
	}
}

// HandleUpdatePost godoc
// @Summary Update a post
// @Description Updates a post's title and content. Author only.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param postBody body posts.UpdatePostRequest true "New title and content"
// @Success 200 {object} posts.Post
// @Failure 400 {object} apperror.ErrorResponse "Validation failed"
// @Failure 401 {object} apperror.ErrorResponse "Authentication required"
// @Failure 403 {object} apperror.ErrorResponse "Not the author"
// @Failure 404 {object} apperror.ErrorResponse "Post not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /api/posts/{id} [put]
func (h *PostHandlers) HandleUpdatePost() http.HandlerFunc {
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

		var req UpdatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := auth.ValidateStruct(req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		post, err := h.service.Update(r.Context(), id, userID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, post)
	}
}

// HandleDeletePost godoc
// @Summary Delete a post
// @Description Deletes a post and its comments. Author only.
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} posts.MessageResponse
// @Failure 401 {object} apperror.ErrorResponse "Authentication required"
// @Failure 403 {object} apperror.ErrorResponse "Not the author"
// @Failure 404 {object} apperror.ErrorResponse "Post not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /api/posts/{id} [delete]
func (h *PostHandlers) HandleDeletePost() http.HandlerFunc {
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
		writeJSON(w, http.StatusOK, MessageResponse{Message: "Post deleted successfully"})
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
