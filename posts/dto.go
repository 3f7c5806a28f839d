package posts

// CreatePostRequest is the payload for creating a post.
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,max=200" example:"My first post"`
	Content string `json:"content" validate:"required,max=10000" example:"Hello, world."`
}

// UpdatePostRequest is the payload for updating a post. Both fields are
// required; partial updates are not supported.
type UpdatePostRequest struct {
	Title   string `json:"title" validate:"required,max=200" example:"My first post, revised"`
	Content string `json:"content" validate:"required,max=10000" example:"Hello again."`
}

// MessageResponse is a bare acknowledgment payload.
type MessageResponse struct {
	Message string `json:"message" example:"Post deleted successfully"`
}
