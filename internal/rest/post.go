package rest

import (
	"io"
	"net/http"
	"strconv"

	"github.com/flowblog/flowblog/domain"
	"github.com/flowblog/flowblog/internal/rest/middleware"
	"github.com/flowblog/flowblog/internal/rest/request"
	"github.com/flowblog/flowblog/internal/rest/response"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// MaxImageBytes caps uploaded image files at 5MB.
const MaxImageBytes = 5 << 20

// BlogPostHandler represent the httphandler for blog posts
type BlogPostHandler struct {
	Service domain.BlogPostUsecase
}

func NewBlogPostHandler(svc domain.BlogPostUsecase) *BlogPostHandler {
	return &BlogPostHandler{
		Service: svc,
	}
}

// FetchPosts will fetch one page of the post feed, optionally filtered by
// author.
func (h *BlogPostHandler) FetchPosts(c *gin.Context) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}

	var authorID int64
	if raw := c.Query("authorId"); raw != "" {
		authorID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || authorID < 1 {
			c.JSON(http.StatusBadRequest, ResponseError{Message: domain.ErrBadParamInput.Error()})
			return
		}
	}

	ctx := c.Request.Context()
	result, err := h.Service.Fetch(ctx, authorID, page)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewBlogPostsPageFromDomain(result))
}

// GetByID will get a post by given id
func (h *BlogPostHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c, "blogPostId")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	post, err := h.Service.GetByID(ctx, id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewBlogPostFromDomain(&post))
}

// GetBySlug will get a post by given slug
func (h *BlogPostHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	ctx := c.Request.Context()
	post, err := h.Service.GetBySlug(ctx, slug)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewBlogPostFromDomain(&post))
}

// FetchSlugs returns the slug of every post, for static page generation.
func (h *BlogPostHandler) FetchSlugs(c *gin.Context) {
	ctx := c.Request.Context()
	slugs, err := h.Service.FetchSlugs(ctx)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, slugs)
}

// Store will create a post from the given multipart form
func (h *BlogPostHandler) Store(c *gin.Context) {
	var form request.BlogPostForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, ok := readImageFile(c, "featuredImage", true)
	if !ok {
		return
	}

	userID, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	post := form.ToDomain(userID.(int64))

	ctx := c.Request.Context()
	if err := h.Service.Store(ctx, &post, image); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.NewBlogPostFromDomain(&post))
}

// Update will edit a post; the featured image is only replaced when a new
// file is part of the form.
func (h *BlogPostHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "blogPostId")
	if !ok {
		return
	}

	var form request.BlogPostForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, ok := readImageFile(c, "featuredImage", false)
	if !ok {
		return
	}

	userID, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx := c.Request.Context()
	post, err := h.Service.Update(ctx, id, form.ToUpdate(image), userID.(int64))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewBlogPostFromDomain(&post))
}

// Delete will delete the post by given param
func (h *BlogPostHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "blogPostId")
	if !ok {
		return
	}

	userID, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx := c.Request.Context()
	if err := h.Service.Delete(ctx, id, userID.(int64)); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// paramID parses a numeric id path param; a malformed one cannot reference
// anything, so it answers 404.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return 0, false
	}
	return id, true
}

// readImageFile pulls an uploaded image out of the multipart form. A missing
// file is an error only when required is set.
func readImageFile(c *gin.Context, field string, required bool) ([]byte, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if !required {
			return nil, true
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing " + field + " file"})
		return nil, false
	}

	if fileHeader.Size > MaxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file too large"})
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ResponseError{Message: domain.ErrInternalServerError.Error()})
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxImageBytes+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ResponseError{Message: domain.ErrInternalServerError.Error()})
		return nil, false
	}
	if len(data) > MaxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file too large"})
		return nil, false
	}

	return data, true
}

// getStatusCode will get the http status for the error from the usecases
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	logrus.Error(err)
	switch err {
	case domain.ErrInternalServerError:
		return http.StatusInternalServerError
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrConflict:
		return http.StatusConflict
	case domain.ErrBadParamInput:
		return http.StatusBadRequest
	case domain.ErrUnauthenticated, domain.ErrUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
