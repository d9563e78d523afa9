package content

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	profileFile  = "profile.json"
	articlesFile = "articles.json"
	booksFile    = "books.json"
	videosFile   = "videos.json"
)

// FileStore persists each collection as one JSON document under a local
// data directory. Documents are created from the seed defaults the first
// time they are read. List mutations are read-all, mutate, write-all;
// there is no cross-process locking, so the last writer wins.
type FileStore struct {
	dir string
}

// NewFileStore creates the data directory if needed and returns a store
// rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Close is a no-op; the store holds no open handles between calls.
func (s *FileStore) Close() error { return nil }

// ReadProfile returns the stored profile, seeding the document with the
// default profile when it does not exist yet.
func (s *FileStore) ReadProfile(ctx context.Context) (Profile, error) {
	var p Profile
	if err := s.load(profileFile, &p, func() any { return DefaultProfile() }); err != nil {
		return DefaultProfile(), err
	}
	return p, nil
}

// WriteProfile merges the patch over the stored profile and persists the
// result in place.
func (s *FileStore) WriteProfile(ctx context.Context, patch ProfilePatch) (Profile, error) {
	p, err := s.ReadProfile(ctx)
	if err != nil {
		return Profile{}, err
	}
	p.apply(patch)
	if err := s.save(profileFile, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Articles returns the whole article collection.
func (s *FileStore) Articles(ctx context.Context) ([]Article, error) {
	var articles []Article
	if err := s.load(articlesFile, &articles, func() any { return DefaultArticles() }); err != nil {
		return nil, err
	}
	return articles, nil
}

// AddArticle assigns an id, appends the article, and persists the
// collection.
func (s *FileStore) AddArticle(ctx context.Context, a Article) (Article, error) {
	articles, err := s.Articles(ctx)
	if err != nil {
		return Article{}, err
	}
	a.ID = newID()
	if a.Date == "" {
		a.Date = stampDate()
	}
	articles = append(articles, a)
	if err := s.save(articlesFile, articles); err != nil {
		return Article{}, err
	}
	return a, nil
}

// UpdateArticle merges the patch over the article with the given id.
func (s *FileStore) UpdateArticle(ctx context.Context, id string, patch ArticlePatch) (Article, error) {
	articles, err := s.Articles(ctx)
	if err != nil {
		return Article{}, err
	}
	for i := range articles {
		if articles[i].ID == id {
			articles[i].apply(patch)
			if err := s.save(articlesFile, articles); err != nil {
				return Article{}, err
			}
			return articles[i], nil
		}
	}
	return Article{}, ErrNotFound
}

// DeleteArticle removes the article with the given id.
func (s *FileStore) DeleteArticle(ctx context.Context, id string) error {
	articles, err := s.Articles(ctx)
	if err != nil {
		return err
	}
	kept := articles[:0]
	for _, a := range articles {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(articles) {
		return ErrNotFound
	}
	return s.save(articlesFile, kept)
}

// Books returns the whole book collection.
func (s *FileStore) Books(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := s.load(booksFile, &books, func() any { return DefaultBooks() }); err != nil {
		return nil, err
	}
	return books, nil
}

// AddBook assigns an id, appends the book, and persists the collection.
func (s *FileStore) AddBook(ctx context.Context, b Book) (Book, error) {
	books, err := s.Books(ctx)
	if err != nil {
		return Book{}, err
	}
	b.ID = newID()
	books = append(books, b)
	if err := s.save(booksFile, books); err != nil {
		return Book{}, err
	}
	return b, nil
}

// UpdateBook merges the patch over the book with the given id.
func (s *FileStore) UpdateBook(ctx context.Context, id string, patch BookPatch) (Book, error) {
	books, err := s.Books(ctx)
	if err != nil {
		return Book{}, err
	}
	for i := range books {
		if books[i].ID == id {
			books[i].apply(patch)
			if err := s.save(booksFile, books); err != nil {
				return Book{}, err
			}
			return books[i], nil
		}
	}
	return Book{}, ErrNotFound
}

// DeleteBook removes the book with the given id.
func (s *FileStore) DeleteBook(ctx context.Context, id string) error {
	books, err := s.Books(ctx)
	if err != nil {
		return err
	}
	kept := books[:0]
	for _, b := range books {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(books) {
		return ErrNotFound
	}
	return s.save(booksFile, kept)
}

// Videos returns the whole video collection.
func (s *FileStore) Videos(ctx context.Context) ([]Video, error) {
	var videos []Video
	if err := s.load(videosFile, &videos, func() any { return DefaultVideos() }); err != nil {
		return nil, err
	}
	return videos, nil
}

// AddVideo assigns an id, stamps the date when empty, appends the video,
// and persists the collection.
func (s *FileStore) AddVideo(ctx context.Context, v Video) (Video, error) {
	videos, err := s.Videos(ctx)
	if err != nil {
		return Video{}, err
	}
	v.ID = newID()
	if v.Date == "" {
		v.Date = stampDate()
	}
	videos = append(videos, v)
	if err := s.save(videosFile, videos); err != nil {
		return Video{}, err
	}
	return v, nil
}

// UpdateVideo merges the patch over the video with the given id.
func (s *FileStore) UpdateVideo(ctx context.Context, id string, patch VideoPatch) (Video, error) {
	videos, err := s.Videos(ctx)
	if err != nil {
		return Video{}, err
	}
	for i := range videos {
		if videos[i].ID == id {
			videos[i].apply(patch)
			if err := s.save(videosFile, videos); err != nil {
				return Video{}, err
			}
			return videos[i], nil
		}
	}
	return Video{}, ErrNotFound
}

// DeleteVideo removes the video with the given id.
func (s *FileStore) DeleteVideo(ctx context.Context, id string) error {
	videos, err := s.Videos(ctx)
	if err != nil {
		return err
	}
	kept := videos[:0]
	for _, v := range videos {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(videos) {
		return ErrNotFound
	}
	return s.save(videosFile, kept)
}

// ReplaceArticles overwrites the article document wholesale.
func (s *FileStore) ReplaceArticles(ctx context.Context, articles []Article) error {
	return s.save(articlesFile, articles)
}

// ReplaceBooks overwrites the book document wholesale.
func (s *FileStore) ReplaceBooks(ctx context.Context, books []Book) error {
	return s.save(booksFile, books)
}

// ReplaceVideos overwrites the video document wholesale.
func (s *FileStore) ReplaceVideos(ctx context.Context, videos []Video) error {
	return s.save(videosFile, videos)
}

// load reads the named document into v, creating it from seed when it
// does not exist yet.
func (s *FileStore) load(name string, v any, seed func() any) error {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		def := seed()
		if err := s.save(name, def); err != nil {
			return err
		}
		data, err = json.Marshal(def)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// save writes the document through a temp file and rename so a crashed
// write never truncates the previous document.
func (s *FileStore) save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
