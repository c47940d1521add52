package rest

import (
	"net/http"
	"strconv"

	"github.com/flowblog/flowblog/domain"
	"github.com/flowblog/flowblog/internal/rest/middleware"
	"github.com/flowblog/flowblog/internal/rest/request"
	"github.com/flowblog/flowblog/internal/rest/response"
	"github.com/gin-gonic/gin"
)

const (
	// TopLevelPageSize is the fixed page size of the top-level listing.
	TopLevelPageSize = 3
	// RepliesPageSize is the fixed page size of the reply listing.
	RepliesPageSize = 2
)

type CommentHandler struct {
	Service domain.CommentUsecase
}

func NewCommentHandler(svc domain.CommentUsecase) *CommentHandler {
	return &CommentHandler{
		Service: svc,
	}
}

// FetchPostComments returns one page of a post's top-level comments, newest
// first, with reply counts attached.
func (h *CommentHandler) FetchPostComments(c *gin.Context) {
	blogPostID, ok := paramID(c, "blogPostId")
	if !ok {
		return
	}
	continueAfterID, ok := continueAfterID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	page, err := h.Service.FetchByPost(ctx, blogPostID, continueAfterID, TopLevelPageSize)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewCommentsPageFromDomain(page, true))
}

// FetchReplies returns one page of a comment's replies, oldest first.
func (h *CommentHandler) FetchReplies(c *gin.Context) {
	parentCommentID, ok := paramID(c, "commentId")
	if !ok {
		return
	}
	continueAfterID, ok := continueAfterID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	page, err := h.Service.FetchReplies(ctx, parentCommentID, continueAfterID, RepliesPageSize)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewCommentsPageFromDomain(page, false))
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	blogPostID, ok := paramID(c, "blogPostId")
	if !ok {
		return
	}

	var req request.CreateComment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	comment := req.ToDomain(blogPostID, userID.(int64))

	ctx := c.Request.Context()
	if err := h.Service.Create(ctx, &comment); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.NewCommentFromDomain(&comment))
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, ok := paramID(c, "commentId")
	if !ok {
		return
	}

	var req request.UpdateComment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx := c.Request.Context()
	updated, err := h.Service.Update(ctx, commentID, req.NewText, userID.(int64))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewCommentFromDomain(updated))
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := paramID(c, "commentId")
	if !ok {
		return
	}

	userID, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx := c.Request.Context()
	if err := h.Service.Delete(ctx, commentID, userID.(int64)); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusOK)
}

// continueAfterID reads the pagination cursor; absent means first page.
func continueAfterID(c *gin.Context) (int64, bool) {
	raw := c.Query("continueAfterId")
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, ResponseError{Message: domain.ErrBadParamInput.Error()})
		return 0, false
	}
	return id, true
}
