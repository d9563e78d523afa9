package content

import (
	"context"
	"sync"
)

// MemStore keeps all content in process memory. State is lost on restart;
// it exists as a fallback for ephemeral deployments where no durable
// backend is configured. Unlike its predecessors this is an explicitly
// constructed object, not package-level state — the process entry point
// owns it and hands it to the request layer.
type MemStore struct {
	mu       sync.Mutex
	profile  Profile
	articles []Article
	books    []Book
	videos   []Video
}

// NewMemStore returns a store pre-populated with the seed defaults.
func NewMemStore() *MemStore {
	return &MemStore{
		profile:  DefaultProfile(),
		articles: DefaultArticles(),
		books:    DefaultBooks(),
		videos:   DefaultVideos(),
	}
}

// Close is a no-op.
func (s *MemStore) Close() error { return nil }

// ReadProfile returns the current profile. The social links are copied
// so the caller cannot mutate stored state through the pointer.
func (s *MemStore) ReadProfile(ctx context.Context) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile
	if p.SocialLinks != nil {
		links := *p.SocialLinks
		p.SocialLinks = &links
	}
	return p, nil
}

// WriteProfile merges the patch over the current profile.
func (s *MemStore) WriteProfile(ctx context.Context, patch ProfilePatch) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.apply(patch)
	return s.profile, nil
}

// Articles returns a copy of the article collection. Tags are copied too;
// a shallow copy would let callers mutate stored state through the slice.
func (s *MemStore) Articles(ctx context.Context) ([]Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Article, len(s.articles))
	copy(out, s.articles)
	for i := range out {
		out[i].Tags = append([]string(nil), out[i].Tags...)
	}
	return out, nil
}

// AddArticle assigns an id and appends the article.
func (s *MemStore) AddArticle(ctx context.Context, a Article) (Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = newID()
	if a.Date == "" {
		a.Date = stampDate()
	}
	s.articles = append(s.articles, a)
	return a, nil
}

// UpdateArticle merges the patch over the article with the given id.
func (s *MemStore) UpdateArticle(ctx context.Context, id string, patch ArticlePatch) (Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.articles {
		if s.articles[i].ID == id {
			s.articles[i].apply(patch)
			return s.articles[i], nil
		}
	}
	return Article{}, ErrNotFound
}

// DeleteArticle removes the article with the given id.
func (s *MemStore) DeleteArticle(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.articles {
		if s.articles[i].ID == id {
			s.articles = append(s.articles[:i], s.articles[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Books returns a copy of the book collection.
func (s *MemStore) Books(ctx context.Context) ([]Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Book, len(s.books))
	copy(out, s.books)
	return out, nil
}

// AddBook assigns an id and appends the book.
func (s *MemStore) AddBook(ctx context.Context, b Book) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = newID()
	s.books = append(s.books, b)
	return b, nil
}

// UpdateBook merges the patch over the book with the given id.
func (s *MemStore) UpdateBook(ctx context.Context, id string, patch BookPatch) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.books {
		if s.books[i].ID == id {
			s.books[i].apply(patch)
			return s.books[i], nil
		}
	}
	return Book{}, ErrNotFound
}

// DeleteBook removes the book with the given id.
func (s *MemStore) DeleteBook(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.books {
		if s.books[i].ID == id {
			s.books = append(s.books[:i], s.books[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Videos returns a copy of the video collection.
func (s *MemStore) Videos(ctx context.Context) ([]Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Video, len(s.videos))
	copy(out, s.videos)
	return out, nil
}

// AddVideo assigns an id, stamps the date when empty, and appends.
func (s *MemStore) AddVideo(ctx context.Context, v Video) (Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v.ID = newID()
	if v.Date == "" {
		v.Date = stampDate()
	}
	s.videos = append(s.videos, v)
	return v, nil
}

// UpdateVideo merges the patch over the video with the given id.
func (s *MemStore) UpdateVideo(ctx context.Context, id string, patch VideoPatch) (Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.videos {
		if s.videos[i].ID == id {
			s.videos[i].apply(patch)
			return s.videos[i], nil
		}
	}
	return Video{}, ErrNotFound
}

// DeleteVideo removes the video with the given id.
func (s *MemStore) DeleteVideo(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.videos {
		if s.videos[i].ID == id {
			s.videos = append(s.videos[:i], s.videos[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ReplaceArticles swaps the whole article collection.
func (s *MemStore) ReplaceArticles(ctx context.Context, articles []Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = make([]Article, len(articles))
	copy(s.articles, articles)
	return nil
}

// ReplaceBooks swaps the whole book collection.
func (s *MemStore) ReplaceBooks(ctx context.Context, books []Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = make([]Book, len(books))
	copy(s.books, books)
	return nil
}

// ReplaceVideos swaps the whole video collection.
func (s *MemStore) ReplaceVideos(ctx context.Context, videos []Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videos = make([]Video, len(videos))
	copy(s.videos, videos)
	return nil
}

var _ Store = (*MemStore)(nil)
