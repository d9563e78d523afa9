package portfolio

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/0xayushM/blog-portfolio/content"
)

// contentRequest is the envelope for POST and PUT bodies. The `type`
// discriminator selects the collection: "profile", "customBlog"
// (articles), "book", or "blog" (videos), the wire names the dashboard
// already speaks. Reads use the plural "books".
type contentRequest struct {
	Type string          `json:"type"`
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

// bindData decodes the request's data field. An absent or null data
// field is an empty patch, not an error, so a bare update answers
// success without touching the entity.
func bindData(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// handleContentGet serves the requested collection(s). Read failures are
// logged and masked behind the seeded defaults so the public site
// degrades instead of erroring.
func (a *App) handleContentGet(c echo.Context) error {
	switch c.QueryParam("type") {
	case "profile":
		return c.JSON(http.StatusOK, a.profileOrDefault(c))
	case "customBlog":
		return c.JSON(http.StatusOK, a.articlesOrDefault(c))
	case "books":
		return c.JSON(http.StatusOK, a.booksOrDefault(c))
	case "blog":
		return c.JSON(http.StatusOK, a.videosOrDefault(c))
	default:
		return c.JSON(http.StatusOK, echo.Map{
			"profile":         a.profileOrDefault(c),
			"customBlogPosts": a.articlesOrDefault(c),
			"blogPosts":       a.videosOrDefault(c),
		})
	}
}

func (a *App) handleContentPost(c echo.Context) error {
	var req contentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	ctx := c.Request().Context()

	switch req.Type {
	case "profile":
		var patch content.ProfilePatch
		if err := bindData(req.Data, &patch); err != nil {
			return badRequest(c, "invalid request")
		}
		profile, err := a.Store.WriteProfile(ctx, patch)
		if err != nil {
			return saveFailed(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": profile})

	case "customBlog":
		var article content.Article
		if err := bindData(req.Data, &article); err != nil {
			return badRequest(c, "invalid request")
		}
		stored, err := a.Store.AddArticle(ctx, article)
		if err != nil {
			return saveFailed(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": stored})

	case "book":
		var book content.Book
		if err := bindData(req.Data, &book); err != nil {
			return badRequest(c, "invalid request")
		}
		stored, err := a.Store.AddBook(ctx, book)
		if err != nil {
			return saveFailed(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": stored})

	case "blog":
		var video content.Video
		if err := bindData(req.Data, &video); err != nil {
			return badRequest(c, "invalid request")
		}
		stored, err := a.Store.AddVideo(ctx, video)
		if err != nil {
			return saveFailed(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": stored})

	default:
		return badRequest(c, "invalid type")
	}
}

func (a *App) handleContentPut(c echo.Context) error {
	var req contentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if req.ID == "" {
		return badRequest(c, "id required")
	}
	ctx := c.Request().Context()

	switch req.Type {
	case "customBlog":
		var patch content.ArticlePatch
		if err := bindData(req.Data, &patch); err != nil {
			return badRequest(c, "invalid request")
		}
		article, err := a.Store.UpdateArticle(ctx, req.ID, patch)
		if errors.Is(err, content.ErrNotFound) {
			return notFound(c, "post not found")
		}
		if err != nil {
			return saveFailed(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": article})

	case "book":
		var patch content.BookPatch
		if err := bindData(req.Data, &patch); err != nil {
			return badRequest(c, "invalid request")
		}
		book, err := a.Store.UpdateBook(ctx, req.ID, patch)
		if errors.Is(err, content.ErrNotFound) {
			return notFound(c, "book not found")
		}
		if err != nil {
			return saveFailed(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": book})

	case "blog":
		var patch content.VideoPatch
		if err := bindData(req.Data, &patch); err != nil {
			return badRequest(c, "invalid request")
		}
		video, err := a.Store.UpdateVideo(ctx, req.ID, patch)
		if errors.Is(err, content.ErrNotFound) {
			return notFound(c, "post not found")
		}
		if err != nil {
			return saveFailed(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": video})

	default:
		return badRequest(c, "invalid type")
	}
}

func (a *App) handleContentDelete(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return badRequest(c, "id required")
	}
	ctx := c.Request().Context()

	var err error
	switch c.QueryParam("type") {
	case "customBlog":
		err = a.Store.DeleteArticle(ctx, id)
	case "book":
		err = a.Store.DeleteBook(ctx, id)
	case "blog":
		err = a.Store.DeleteVideo(ctx, id)
	default:
		return badRequest(c, "invalid type")
	}
	if errors.Is(err, content.ErrNotFound) {
		return notFound(c, "post not found")
	}
	if err != nil {
		return saveFailed(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (a *App) profileOrDefault(c echo.Context) content.Profile {
	p, err := a.Store.ReadProfile(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("read profile: %v", err)
		return content.DefaultProfile()
	}
	return p
}

func (a *App) articlesOrDefault(c echo.Context) []content.Article {
	articles, err := a.Store.Articles(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("read articles: %v", err)
		return content.DefaultArticles()
	}
	if articles == nil {
		articles = []content.Article{}
	}
	return articles
}

func (a *App) booksOrDefault(c echo.Context) []content.Book {
	books, err := a.Store.Books(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("read books: %v", err)
		return content.DefaultBooks()
	}
	if books == nil {
		books = []content.Book{}
	}
	return books
}

func (a *App) videosOrDefault(c echo.Context) []content.Video {
	videos, err := a.Store.Videos(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("read videos: %v", err)
		return content.DefaultVideos()
	}
	if videos == nil {
		videos = []content.Video{}
	}
	return videos
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": msg})
}

func notFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": msg})
}

func saveFailed(c echo.Context, err error) error {
	c.Logger().Errorf("storage: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "storage failure"})
}
