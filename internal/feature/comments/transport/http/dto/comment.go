package dto

import "time"

// CreateCommentRequest は POST /news/:newsId/comments のリクエストボディです。
type CreateCommentRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// CreateCommentResponse carries the id of the new comment.
type CreateCommentResponse struct {
	ID string `json:"id"`
}

// CommentResponse は GET /comments のレスポンスに含まれるコメント1件のDTOです。
type CommentResponse struct {
	ID        string    `json:"id"`
	NewsID    string    `json:"news_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
