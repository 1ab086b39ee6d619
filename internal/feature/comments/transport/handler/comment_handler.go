// Package handler はcommentsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"news_backend/internal/feature/comments/domain"
	"news_backend/internal/feature/comments/domain/entity"
	"news_backend/internal/feature/comments/transport/http/dto"
)

// CommentUsecase はハンドラーが利用するコメント操作のユースケースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type CommentUsecase interface {
	CreateComment(ctx context.Context, newsID, userID, content string) (string, error)
	ListComments(ctx context.Context) ([]entity.Comment, error)
}

// CommentHandler はコメントのHTTPリクエストを処理します。
type CommentHandler struct {
	uc     CommentUsecase
	logger *zap.Logger
}

// NewCommentHandler はCommentHandlerの新しいインスタンスを生成します。
func NewCommentHandler(uc CommentUsecase, logger *zap.Logger) *CommentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentHandler{uc: uc, logger: logger}
}

// Create はニュースにコメントを追加し、作成されたIDを返します。
//
// エンドポイント例:
// POST /news/:newsId/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	id, err := h.uc.CreateComment(c.Request.Context(), c.Param("newsId"), req.UserID, req.Content)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateCommentResponse{ID: id})
}

// List はすべてのコメントを作成順にJSONで返します。
//
// エンドポイント例:
// GET /comments
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.uc.ListComments(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]dto.CommentResponse, 0, len(comments))
	for _, x := range comments {
		out = append(out, dto.CommentResponse{
			ID:        x.ID,
			NewsID:    x.NewsID,
			UserID:    x.UserID,
			Content:   x.Content,
			CreatedAt: x.CreatedAt.UTC(),
		})
	}
	c.JSON(http.StatusOK, out)
}

// writeError はusecaseのエラーをHTTPステータスに変換します。
// バリデーションエラーは400、それ以外は500として内容を隠します。
func (h *CommentHandler) writeError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: vErr.Error()})
		return
	}
	h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
}
