package comments

// CreateCommentRequest is the payload for creating a comment.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=1000" example:"Nice post."`
}

// UpdateCommentRequest is the payload for updating a comment.
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,max=1000" example:"Nice post, on reflection."`
}

// MessageResponse is a bare acknowledgment payload.
type MessageResponse struct {
	Message string `json:"message" example:"Comment deleted successfully"`
}
