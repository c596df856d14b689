package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/verein-site/internal/pagination"
	"github.com/daniilsolovey/verein-site/internal/verein"
)

// Feed handles GET /api/v1/feed
// @Summary Home feed
// @Description Returns the newest posts. visible is the number of posts already shown, nextVisible the count after one more page.
// @Tags posts
// @Produce json
// @Param visible query int false "Number of visible posts (default: 5)"
// @Success 200 {object} rest.Feed
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/v1/feed [get]
func (h *Handler) Feed(c echo.Context) error {
	return h.window(c, pagination.HomePageSize)
}

// Archive handles GET /api/v1/archive
// @Summary Post archive
// @Description Same as the feed with pages of ten posts
// @Tags posts
// @Produce json
// @Param visible query int false "Number of visible posts (default: 10)"
// @Success 200 {object} rest.Feed
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/v1/archive [get]
func (h *Handler) Archive(c echo.Context) error {
	return h.window(c, pagination.ArchivePageSize)
}

// window loads the full list and cuts the visible part out of it.
func (h *Handler) window(c echo.Context, pageSize int) error {
	var visible int
	if err := echo.QueryParamsBinder(c).Int("visible", &visible).BindError(); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	posts, err := h.content.Posts(c.Request().Context())
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, verein.MsgPostsLoad)
	}

	total := len(posts)
	cursor := pagination.At(pageSize, visible)
	viewer := currentSession(c)

	return c.JSON(http.StatusOK, Feed{
		Posts: Map(pagination.Window(posts, cursor), func(p verein.Post) Post {
			return NewPost(p, viewer, h.loc)
		}),
		Visible:     cursor.Visible(total),
		Total:       total,
		HasMore:     cursor.HasMore(total),
		NextVisible: cursor.More(total).Visible(total),
	})
}

// PostByID handles GET /api/v1/posts/:id
// @Summary Get post by ID
// @Description Malformed ids are answered like unknown ones
// @Tags posts
// @Produce json
// @Param id path string true "Post ID (UUID v4)"
// @Success 200 {object} rest.Post
// @Failure 404,500 {object} rest.ErrorResponse
// @Router /api/v1/posts/{id} [get]
func (h *Handler) PostByID(c echo.Context) error {
	post, err := h.content.PostByID(c.Request().Context(), c.Param("id"))
	if errors.Is(err, verein.ErrNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: verein.MsgPostNotFound})
	} else if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, verein.MsgPostLoadError)
	}

	return c.JSON(http.StatusOK, NewPost(*post, currentSession(c), h.loc))
}

// Object handles GET /storage/v1/object/public/:bucket/*
// @Summary Get stored object
// @Tags storage
// @Produce octet-stream
// @Param bucket path string true "Bucket"
// @Param path path string true "Object path"
// @Success 200 {file} binary
// @Failure 404,500 {object} rest.ErrorResponse
// @Router /storage/v1/object/public/{bucket}/{path} [get]
func (h *Handler) Object(c echo.Context) error {
	obj, err := h.content.Object(c.Request().Context(), c.Param("bucket"), c.Param("*"))
	if errors.Is(err, verein.ErrNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	} else if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	return c.Blob(http.StatusOK, obj.ContentType, obj.Data)
}
