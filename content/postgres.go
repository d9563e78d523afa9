package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore is the hosted-database backend. Columns are snake_case inside
// the database; every entity crosses the boundary with the same camelCase
// JSON names the other backends expose.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore connects to the database at url, ensures the schema, and
// seeds the default content when the tables are empty.
func NewPGStore(ctx context.Context, url string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	s := &PGStore{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if err := s.seedDefaults(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the connection pool.
func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PGStore) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS profile (
    id integer PRIMARY KEY CHECK (id = 1) DEFAULT 1,
    name text NOT NULL,
    title text NOT NULL,
    hero_image text NOT NULL,
    bio text NOT NULL,
    social_links jsonb
);
CREATE TABLE IF NOT EXISTS articles (
    id text PRIMARY KEY,
    title text NOT NULL DEFAULT '',
    excerpt text NOT NULL DEFAULT '',
    content text NOT NULL DEFAULT '',
    cover_image text NOT NULL DEFAULT '',
    author text NOT NULL DEFAULT '',
    date text NOT NULL DEFAULT '',
    category text NOT NULL DEFAULT '',
    tags jsonb NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS books (
    id text PRIMARY KEY,
    title text NOT NULL DEFAULT '',
    description text NOT NULL DEFAULT '',
    cover text NOT NULL DEFAULT '',
    link text NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS videos (
    id text PRIMARY KEY,
    title text NOT NULL DEFAULT '',
    category text NOT NULL DEFAULT '',
    date text NOT NULL DEFAULT '',
    thumbnail text NOT NULL DEFAULT '',
    youtube_id text NOT NULL DEFAULT '',
    description text NOT NULL DEFAULT ''
);
`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *PGStore) seedDefaults(ctx context.Context) error {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM profile`).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		if err := s.insertProfile(ctx, DefaultProfile()); err != nil {
			return err
		}
	}
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM articles`).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		for _, a := range DefaultArticles() {
			if err := s.insertArticle(ctx, a); err != nil {
				return err
			}
		}
	}
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM books`).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		for _, b := range DefaultBooks() {
			if err := s.insertBook(ctx, b); err != nil {
				return err
			}
		}
	}
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM videos`).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		for _, v := range DefaultVideos() {
			if err := s.insertVideo(ctx, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadProfile returns the stored profile, inserting the default when the
// table holds no row.
func (s *PGStore) ReadProfile(ctx context.Context) (Profile, error) {
	p, err := s.scanProfile(ctx)
	if errors.Is(err, pgx.ErrNoRows) {
		def := DefaultProfile()
		if err := s.insertProfile(ctx, def); err != nil {
			return def, err
		}
		return def, nil
	}
	return p, err
}

// WriteProfile merges the patch over the stored profile and upserts the
// single row.
func (s *PGStore) WriteProfile(ctx context.Context, patch ProfilePatch) (Profile, error) {
	p, err := s.ReadProfile(ctx)
	if err != nil {
		return Profile{}, err
	}
	p.apply(patch)
	links, err := marshalLinks(p.SocialLinks)
	if err != nil {
		return Profile{}, err
	}
	_, err = s.pool.Exec(ctx, `
INSERT INTO profile (id, name, title, hero_image, bio, social_links)
VALUES (1, $1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET name = $1, title = $2, hero_image = $3, bio = $4, social_links = $5`,
		p.Name, p.Title, p.HeroImage, p.Bio, links)
	if err != nil {
		return Profile{}, fmt.Errorf("write profile: %w", err)
	}
	return p, nil
}

// Articles returns the whole article collection ordered by id.
func (s *PGStore) Articles(ctx context.Context) ([]Article, error) {
	rows, err := s.pool.Query(ctx, `
SELECT id, title, excerpt, content, cover_image, author, date, category, tags
FROM articles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// AddArticle assigns an id and inserts the article row.
func (s *PGStore) AddArticle(ctx context.Context, a Article) (Article, error) {
	a.ID = newID()
	if a.Date == "" {
		a.Date = stampDate()
	}
	if err := s.insertArticle(ctx, a); err != nil {
		return Article{}, err
	}
	return a, nil
}

// UpdateArticle applies the non-nil patch fields in a single UPDATE.
func (s *PGStore) UpdateArticle(ctx context.Context, id string, patch ArticlePatch) (Article, error) {
	var set []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Excerpt != nil {
		add("excerpt", *patch.Excerpt)
	}
	if patch.Content != nil {
		add("content", *patch.Content)
	}
	if patch.CoverImage != nil {
		add("cover_image", *patch.CoverImage)
	}
	if patch.Author != nil {
		add("author", *patch.Author)
	}
	if patch.Date != nil {
		add("date", *patch.Date)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Tags != nil {
		tags, err := json.Marshal(*patch.Tags)
		if err != nil {
			return Article{}, err
		}
		add("tags", tags)
	}
	if len(set) == 0 {
		return s.getArticle(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
UPDATE articles SET %s WHERE id = $%d
RETURNING id, title, excerpt, content, cover_image, author, date, category, tags`,
		strings.Join(set, ", "), len(args))
	a, err := scanArticle(s.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Article{}, ErrNotFound
	}
	return a, err
}

// DeleteArticle removes the article row with the given id.
func (s *PGStore) DeleteArticle(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Books returns the whole book collection ordered by id.
func (s *PGStore) Books(ctx context.Context) ([]Book, error) {
	rows, err := s.pool.Query(ctx, `
SELECT id, title, description, cover, link FROM books ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.Cover, &b.Link); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// AddBook assigns an id and inserts the book row.
func (s *PGStore) AddBook(ctx context.Context, b Book) (Book, error) {
	b.ID = newID()
	if err := s.insertBook(ctx, b); err != nil {
		return Book{}, err
	}
	return b, nil
}

// UpdateBook applies the non-nil patch fields in a single UPDATE.
func (s *PGStore) UpdateBook(ctx context.Context, id string, patch BookPatch) (Book, error) {
	var set []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Cover != nil {
		add("cover", *patch.Cover)
	}
	if patch.Link != nil {
		add("link", *patch.Link)
	}
	if len(set) == 0 {
		return s.getBook(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
UPDATE books SET %s WHERE id = $%d
RETURNING id, title, description, cover, link`,
		strings.Join(set, ", "), len(args))
	var b Book
	err := s.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.Title, &b.Description, &b.Cover, &b.Link)
	if errors.Is(err, pgx.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	return b, err
}

// DeleteBook removes the book row with the given id.
func (s *PGStore) DeleteBook(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Videos returns the whole video collection ordered by id.
func (s *PGStore) Videos(ctx context.Context) ([]Video, error) {
	rows, err := s.pool.Query(ctx, `
SELECT id, title, category, date, thumbnail, youtube_id, description
FROM videos ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []Video
	for rows.Next() {
		var v Video
		if err := rows.Scan(&v.ID, &v.Title, &v.Category, &v.Date, &v.Thumbnail, &v.YouTubeID, &v.Description); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// AddVideo assigns an id, stamps the date when empty, and inserts the row.
func (s *PGStore) AddVideo(ctx context.Context, v Video) (Video, error) {
	v.ID = newID()
	if v.Date == "" {
		v.Date = stampDate()
	}
	if err := s.insertVideo(ctx, v); err != nil {
		return Video{}, err
	}
	return v, nil
}

// UpdateVideo applies the non-nil patch fields in a single UPDATE.
func (s *PGStore) UpdateVideo(ctx context.Context, id string, patch VideoPatch) (Video, error) {
	var set []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Date != nil {
		add("date", *patch.Date)
	}
	if patch.Thumbnail != nil {
		add("thumbnail", *patch.Thumbnail)
	}
	if patch.YouTubeID != nil {
		add("youtube_id", *patch.YouTubeID)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if len(set) == 0 {
		return s.getVideo(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
UPDATE videos SET %s WHERE id = $%d
RETURNING id, title, category, date, thumbnail, youtube_id, description`,
		strings.Join(set, ", "), len(args))
	var v Video
	err := s.pool.QueryRow(ctx, query, args...).
		Scan(&v.ID, &v.Title, &v.Category, &v.Date, &v.Thumbnail, &v.YouTubeID, &v.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return Video{}, ErrNotFound
	}
	return v, err
}

// DeleteVideo removes the video row with the given id.
func (s *PGStore) DeleteVideo(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceArticles deletes every article row and inserts the given set.
// The two steps are not wrapped in a transaction: a failure between them
// leaves the table partially written. Only the migrate command calls this.
func (s *PGStore) ReplaceArticles(ctx context.Context, articles []Article) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM articles`); err != nil {
		return err
	}
	for _, a := range articles {
		if err := s.insertArticle(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceBooks deletes every book row and inserts the given set.
// Same non-transactional caveat as ReplaceArticles.
func (s *PGStore) ReplaceBooks(ctx context.Context, books []Book) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM books`); err != nil {
		return err
	}
	for _, b := range books {
		if err := s.insertBook(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceVideos deletes every video row and inserts the given set.
// Same non-transactional caveat as ReplaceArticles.
func (s *PGStore) ReplaceVideos(ctx context.Context, videos []Video) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM videos`); err != nil {
		return err
	}
	for _, v := range videos {
		if err := s.insertVideo(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

func (s *PGStore) insertProfile(ctx context.Context, p Profile) error {
	links, err := marshalLinks(p.SocialLinks)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
INSERT INTO profile (id, name, title, hero_image, bio, social_links)
VALUES (1, $1, $2, $3, $4, $5)
ON CONFLICT (id) DO NOTHING`,
		p.Name, p.Title, p.HeroImage, p.Bio, links)
	return err
}

func (s *PGStore) insertArticle(ctx context.Context, a Article) error {
	tags, err := json.Marshal(a.Tags)
	if err != nil {
		return err
	}
	if a.Tags == nil {
		tags = []byte("[]")
	}
	_, err = s.pool.Exec(ctx, `
INSERT INTO articles (id, title, excerpt, content, cover_image, author, date, category, tags)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.Title, a.Excerpt, a.Content, a.CoverImage, a.Author, a.Date, a.Category, tags)
	return err
}

func (s *PGStore) insertBook(ctx context.Context, b Book) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO books (id, title, description, cover, link)
VALUES ($1, $2, $3, $4, $5)`,
		b.ID, b.Title, b.Description, b.Cover, b.Link)
	return err
}

func (s *PGStore) insertVideo(ctx context.Context, v Video) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO videos (id, title, category, date, thumbnail, youtube_id, description)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		v.ID, v.Title, v.Category, v.Date, v.Thumbnail, v.YouTubeID, v.Description)
	return err
}

func (s *PGStore) getArticle(ctx context.Context, id string) (Article, error) {
	a, err := scanArticle(s.pool.QueryRow(ctx, `
SELECT id, title, excerpt, content, cover_image, author, date, category, tags
FROM articles WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Article{}, ErrNotFound
	}
	return a, err
}

func (s *PGStore) getBook(ctx context.Context, id string) (Book, error) {
	var b Book
	err := s.pool.QueryRow(ctx, `
SELECT id, title, description, cover, link FROM books WHERE id = $1`, id).
		Scan(&b.ID, &b.Title, &b.Description, &b.Cover, &b.Link)
	if errors.Is(err, pgx.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	return b, err
}

func (s *PGStore) getVideo(ctx context.Context, id string) (Video, error) {
	var v Video
	err := s.pool.QueryRow(ctx, `
SELECT id, title, category, date, thumbnail, youtube_id, description
FROM videos WHERE id = $1`, id).
		Scan(&v.ID, &v.Title, &v.Category, &v.Date, &v.Thumbnail, &v.YouTubeID, &v.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return Video{}, ErrNotFound
	}
	return v, err
}

func (s *PGStore) scanProfile(ctx context.Context) (Profile, error) {
	var p Profile
	var links []byte
	err := s.pool.QueryRow(ctx, `
SELECT name, title, hero_image, bio, social_links FROM profile WHERE id = 1`).
		Scan(&p.Name, &p.Title, &p.HeroImage, &p.Bio, &links)
	if err != nil {
		return Profile{}, err
	}
	if len(links) > 0 {
		var sl SocialLinks
		if err := json.Unmarshal(links, &sl); err != nil {
			return Profile{}, fmt.Errorf("parse social_links: %w", err)
		}
		p.SocialLinks = &sl
	}
	return p, nil
}

// rowScanner covers both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (Article, error) {
	var a Article
	var tags []byte
	err := row.Scan(&a.ID, &a.Title, &a.Excerpt, &a.Content, &a.CoverImage,
		&a.Author, &a.Date, &a.Category, &tags)
	if err != nil {
		return Article{}, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &a.Tags); err != nil {
			return Article{}, fmt.Errorf("parse tags: %w", err)
		}
	}
	return a, nil
}

// marshalLinks encodes social links for the jsonb column; nil stays NULL.
func marshalLinks(sl *SocialLinks) ([]byte, error) {
	if sl == nil {
		return nil, nil
	}
	return json.Marshal(sl)
}

var _ Store = (*PGStore)(nil)
