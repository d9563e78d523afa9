package portfolio

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/0xayushM/blog-portfolio/blobstore"
	"github.com/0xayushM/blog-portfolio/content"
)

// newUploadApp wires a real local blob store and SQLite index so the
// upload tests can inspect what lands on disk.
func newUploadApp(t *testing.T) (*App, string) {
	t.Helper()
	blobDir := t.TempDir()
	images, err := NewImageIndex(filepath.Join(t.TempDir(), "uploads.db"))
	if err != nil {
		t.Fatalf("NewImageIndex failed: %v", err)
	}
	cfg := Config{
		SiteName:      "Test Site",
		SiteURL:       "http://localhost:3000",
		Addr:          ":0",
		StaticDir:     t.TempDir(),
		AdminPassword: testPassword,
		SessionSecret: "0123456789abcdef0123456789abcdef",
	}
	a := New(cfg, content.NewMemStore(), blobstore.NewLocal(blobDir, "/public/uploads"), images, nil)
	a.setup()
	t.Cleanup(func() { a.Close() })
	return a, blobDir
}

// multipartUpload builds a multipart body with an explicit part
// content type, the way browsers submit file inputs.
func multipartUpload(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatal(err)
	}
	w.Close()
	return &buf, w.FormDataContentType()
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func postUpload(a *App, cookies []*http.Cookie, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	return do(a, req, cookies)
}

func TestUploadRejectsNonImage(t *testing.T) {
	a, _ := newUploadApp(t)
	cookies, _ := loginAdmin(t, a)

	body, ct := multipartUpload(t, "notes.txt", "text/plain", []byte("hello"))
	rec := postUpload(a, cookies, body, ct)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "only images") {
		t.Errorf("body = %s, want file type error", rec.Body.String())
	}
}

func TestUploadRejectsOversize(t *testing.T) {
	a, _ := newUploadApp(t)
	cookies, _ := loginAdmin(t, a)

	body, ct := multipartUpload(t, "big.png", "image/png", make([]byte, 6<<20))
	rec := postUpload(a, cookies, body, ct)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "too large") {
		t.Errorf("body = %s, want size error", rec.Body.String())
	}
}

func TestUploadRejectsMissingFile(t *testing.T) {
	a, _ := newUploadApp(t)
	cookies, _ := loginAdmin(t, a)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("other", "value")
	w.Close()
	rec := postUpload(a, cookies, &buf, w.FormDataContentType())
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestUploadStoresImage(t *testing.T) {
	a, blobDir := newUploadApp(t)
	cookies, _ := loginAdmin(t, a)

	body, ct := multipartUpload(t, "cover photo$1.png", "image/png", pngBytes(t, 600, 200))
	rec := postUpload(a, cookies, body, ct)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success  bool   `json:"success"`
		URL      string `json:"url"`
		Filename string `json:"filename"`
	}
	decodeBody(t, rec, &resp)
	if !resp.Success {
		t.Fatalf("response = %+v", resp)
	}
	if !strings.HasPrefix(resp.URL, "/public/uploads/") {
		t.Errorf("URL = %q, want /public/uploads/ prefix", resp.URL)
	}
	if strings.ContainsAny(resp.Filename, " $") {
		t.Errorf("filename %q should be sanitized", resp.Filename)
	}
	if !strings.HasSuffix(resp.Filename, ".png") {
		t.Errorf("filename %q should keep its extension", resp.Filename)
	}

	if _, err := os.Stat(filepath.Join(blobDir, resp.Filename)); err != nil {
		t.Errorf("uploaded file missing on disk: %v", err)
	}
	// 600px wide, so a thumbnail was written.
	if _, err := os.Stat(filepath.Join(blobDir, thumbName(resp.Filename))); err != nil {
		t.Errorf("thumbnail missing on disk: %v", err)
	}

	images, err := a.Images.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(images) != 1 {
		t.Fatalf("index count = %d, want 1", len(images))
	}
	if images[0].Filename != resp.Filename || images[0].OriginalName != "cover photo$1.png" {
		t.Errorf("indexed = %+v", images[0])
	}
}

func TestImageListAndDelete(t *testing.T) {
	a, blobDir := newUploadApp(t)
	cookies, _ := loginAdmin(t, a)

	body, ct := multipartUpload(t, "pic.png", "image/png", pngBytes(t, 100, 100))
	rec := postUpload(a, cookies, body, ct)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload = %d: %s", rec.Code, rec.Body.String())
	}
	var up struct {
		Filename string `json:"filename"`
	}
	decodeBody(t, rec, &up)

	rec = do(a, httptest.NewRequest(http.MethodGet, "/api/uploads", nil), cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("list = %d: %s", rec.Code, rec.Body.String())
	}
	var list struct {
		Images []Image `json:"images"`
	}
	decodeBody(t, rec, &list)
	if len(list.Images) != 1 {
		t.Fatalf("images count = %d, want 1", len(list.Images))
	}

	rec = do(a, httptest.NewRequest(http.MethodDelete, "/api/uploads/"+up.Filename, nil), cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete = %d: %s", rec.Code, rec.Body.String())
	}
	if _, err := os.Stat(filepath.Join(blobDir, up.Filename)); !os.IsNotExist(err) {
		t.Error("file should be removed from disk")
	}

	rec = do(a, httptest.NewRequest(http.MethodDelete, "/api/uploads/"+up.Filename, nil), cookies)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete = %d, want 404", rec.Code)
	}
}

func TestImageDeleteRejectsTraversal(t *testing.T) {
	a, _ := newUploadApp(t)
	cookies, _ := loginAdmin(t, a)

	rec := do(a, httptest.NewRequest(http.MethodDelete, "/api/uploads/..", nil), cookies)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUploadFilenameSanitizer(t *testing.T) {
	got := uploadFilename("we ird$näme.PNG")
	if strings.ContainsAny(got, " $ä") {
		t.Errorf("uploadFilename = %q, want unsafe runes replaced", got)
	}
	if !strings.HasSuffix(got, ".PNG") {
		t.Errorf("uploadFilename = %q, want extension kept", got)
	}
	if !strings.Contains(got, "-") {
		t.Errorf("uploadFilename = %q, want timestamp prefix", got)
	}
}
