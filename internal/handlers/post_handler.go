package handlers

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/tahmid-rayat/momentgram/backend/internal/models"
	"github.com/tahmid-rayat/momentgram/backend/internal/repositories"
	"github.com/tahmid-rayat/momentgram/backend/pkg/media"
)

// PostHandler handles post HTTP requests
type PostHandler struct {
	postRepository repositories.PostRepository
	mediaStore     media.Store
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, mediaStore media.Store) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		mediaStore:     mediaStore,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.GET("/users/:id/posts", h.GetUserPosts)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a post from a multipart form: a caption plus one or
// more "media" files. Files are uploaded before the database write; if
// the write fails, uploaded assets are deleted best-effort.
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	caption := c.FormValue("caption")
	if len(caption) > 2200 {
		return echo.NewHTTPError(http.StatusBadRequest, "Caption too long")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Multipart form required")
	}
	files := form.File["media"]
	if len(files) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "At least one media file is required")
	}
	if len(files) > 10 {
		return echo.NewHTTPError(http.StatusBadRequest, "At most 10 media files per post")
	}

	ctx := c.Request().Context()
	var postMedia []models.PostMedia
	cleanup := func() {
		for _, m := range postMedia {
			h.mediaStore.DeleteBestEffort(ctx, m.AssetID, m.MediaType)
		}
	}

	for i, fileHeader := range files {
		src, err := fileHeader.Open()
		if err != nil {
			cleanup()
			return echo.NewHTTPError(http.StatusBadRequest, "Could not read media file")
		}

		asset, err := h.mediaStore.Upload(ctx, src, "posts")
		src.Close()
		if err != nil {
			cleanup()
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload media")
		}

		mediaType := asset.ResourceType
		if mediaType == "" {
			mediaType = guessMediaType(fileHeader.Header.Get("Content-Type"))
		}
		postMedia = append(postMedia, models.PostMedia{
			MediaURL:  asset.URL,
			MediaType: mediaType,
			AssetID:   asset.AssetID,
			Position:  i,
		})
	}

	post := &models.Post{
		UserID:  userID,
		Caption: caption,
	}
	if err := h.postRepository.CreatePostWithMedia(post, postMedia); err != nil {
		cleanup()
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"post": post})
}

// GetPost returns a single post with its media.
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"post": post})
}

// GetUserPosts returns a user's posts, newest first.
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	page, limit := parsePaging(c)
	posts, err := h.postRepository.GetPostsByUserID(userID, page, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"posts": posts, "count": len(posts)})
}

// UpdatePost edits a post's caption. Only the author may edit.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	postID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		return httpError(err)
	}
	if post.UserID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only edit your own posts")
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.postRepository.UpdateCaption(postID, req.Caption); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Post updated successfully"})
}

// DeletePost removes a post, its media rows, comments and interactions,
// then cleans up the media-store assets.
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	postID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		return httpError(err)
	}
	if post.UserID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only delete your own posts")
	}

	if err := h.postRepository.DeletePost(postID); err != nil {
		return httpError(err)
	}

	// Asset cleanup after the database commit; orphaned assets are
	// acceptable, dangling database rows are not.
	ctx := c.Request().Context()
	for _, m := range post.Media {
		h.mediaStore.DeleteBestEffort(ctx, m.AssetID, m.MediaType)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted successfully"})
}

// guessMediaType falls back on the upload's Content-Type header when the
// media store does not report a resource type.
func guessMediaType(contentType string) string {
	if strings.HasPrefix(contentType, "video/") {
		return "video"
	}
	return "image"
}
