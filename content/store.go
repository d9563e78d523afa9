package content

import (
	"context"
	"errors"
	"strconv"
	"time"
)

// ErrNotFound is returned by update and delete operations when no entity
// with the given id exists. It is a signal, not a failure: callers
// translate it to a 404 body.
var ErrNotFound = errors.New("content: not found")

// DateFormat is the display format stamped on entities at creation time.
const DateFormat = "Jan 2, 2006"

// Store is the contract shared by the file, memory, and Postgres backends.
//
// Semantics are identical across backends; only durability differs.
// Reads on an uninitialized backend return the seeded defaults. Add
// assigns the id (and stamps the date on articles and videos when
// empty; books carry no date). Update merges
// non-nil patch fields over the stored entity and reports ErrNotFound
// without mutating anything when the id is unknown. Delete reports
// ErrNotFound when nothing was removed.
type Store interface {
	ReadProfile(ctx context.Context) (Profile, error)
	WriteProfile(ctx context.Context, patch ProfilePatch) (Profile, error)

	Articles(ctx context.Context) ([]Article, error)
	AddArticle(ctx context.Context, a Article) (Article, error)
	UpdateArticle(ctx context.Context, id string, patch ArticlePatch) (Article, error)
	DeleteArticle(ctx context.Context, id string) error

	Books(ctx context.Context) ([]Book, error)
	AddBook(ctx context.Context, b Book) (Book, error)
	UpdateBook(ctx context.Context, id string, patch BookPatch) (Book, error)
	DeleteBook(ctx context.Context, id string) error

	Videos(ctx context.Context) ([]Video, error)
	AddVideo(ctx context.Context, v Video) (Video, error)
	UpdateVideo(ctx context.Context, id string, patch VideoPatch) (Video, error)
	DeleteVideo(ctx context.Context, id string) error

	// The Replace operations swap out a whole collection. Only the
	// migrate command uses them.
	ReplaceArticles(ctx context.Context, articles []Article) error
	ReplaceBooks(ctx context.Context, books []Book) error
	ReplaceVideos(ctx context.Context, videos []Video) error

	Close() error
}

// newID returns the millisecond timestamp used as an entity id.
// Uniqueness is best-effort under the single-admin assumption; two
// creations in the same millisecond would collide.
func newID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// stampDate returns today's date in the site's display format.
func stampDate() string {
	return time.Now().Format(DateFormat)
}
