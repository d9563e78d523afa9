package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	added, err := s.AddArticle(ctx, Article{
		Title:    "Survives Restart",
		Excerpt:  "durability check",
		Content:  "body",
		Category: "Sales Strategy",
		Tags:     []string{"ops"},
	})
	if err != nil {
		t.Fatalf("AddArticle failed: %v", err)
	}
	bio := "Rewritten bio."
	if _, err := s.WriteProfile(ctx, ProfilePatch{Bio: &bio}); err != nil {
		t.Fatalf("WriteProfile failed: %v", err)
	}
	s.Close()

	// Simulated restart: a fresh store over the same directory.
	s2, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore reopen failed: %v", err)
	}
	defer s2.Close()

	articles, err := s2.Articles(ctx)
	if err != nil {
		t.Fatalf("Articles failed: %v", err)
	}
	var found *Article
	for i := range articles {
		if articles[i].ID == added.ID {
			found = &articles[i]
		}
	}
	if found == nil {
		t.Fatalf("article %s missing after reopen", added.ID)
	}
	if found.Title != added.Title || found.Excerpt != added.Excerpt || found.Content != added.Content {
		t.Errorf("reopened article = %+v, want %+v", *found, added)
	}
	if len(found.Tags) != 1 || found.Tags[0] != "ops" {
		t.Errorf("Tags = %v, want [ops]", found.Tags)
	}

	p, err := s2.ReadProfile(ctx)
	if err != nil {
		t.Fatalf("ReadProfile failed: %v", err)
	}
	if p.Bio != bio {
		t.Errorf("Bio = %q, want %q", p.Bio, bio)
	}
}

func TestFileStoreSeedsDocumentsOnFirstRead(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	defer s.Close()

	if _, err := s.ReadProfile(ctx); err != nil {
		t.Fatalf("ReadProfile failed: %v", err)
	}
	if _, err := s.Articles(ctx); err != nil {
		t.Fatalf("Articles failed: %v", err)
	}

	for _, name := range []string{profileFile, articlesFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s should exist after first read: %v", name, err)
		}
	}
	// Videos was never read, so its document was never seeded.
	if _, err := os.Stat(filepath.Join(dir, videosFile)); !os.IsNotExist(err) {
		t.Errorf("%s should not exist before first read", videosFile)
	}
}

func TestFileStoreCorruptDocument(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	defer s.Close()

	if err := os.WriteFile(filepath.Join(dir, articlesFile), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Articles(ctx); err == nil {
		t.Error("Articles should fail on a corrupt document")
	}
}
