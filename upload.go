package portfolio

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"strings"
	"time"

	_ "image/gif"
	_ "image/png"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	maxUploadSize = 5 << 20 // 5MB
	thumbWidth    = 480
	jpegQuality   = 80
)

// allowedUploadTypes is the MIME allow-list for the upload endpoint.
var allowedUploadTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// handleUpload accepts a single multipart image, stores it through the
// configured blob store, writes a downscaled JPEG thumbnail alongside,
// and records the upload in the image index.
func (a *App) handleUpload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "no file provided")
	}
	contentType := fh.Header.Get("Content-Type")
	if !allowedUploadTypes[contentType] {
		return badRequest(c, "invalid file type, only images are allowed")
	}
	if fh.Size > maxUploadSize {
		return badRequest(c, "file too large, maximum size is 5MB")
	}

	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	// Size check again while reading; the multipart header is
	// client-supplied.
	data, err := io.ReadAll(io.LimitReader(src, maxUploadSize+1))
	if err != nil {
		return err
	}
	if len(data) > maxUploadSize {
		return badRequest(c, "file too large, maximum size is 5MB")
	}

	ctx := c.Request().Context()
	name := uploadFilename(fh.Filename)
	url, err := a.Blobs.Put(ctx, name, contentType, data)
	if err != nil {
		c.Logger().Errorf("store upload: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"error":   "failed to store file",
		})
	}

	if err := a.writeThumbnail(c, name, data); err != nil {
		c.Logger().Warnf("thumbnail %s: %v", name, err)
	}

	if a.Images != nil {
		err := a.Images.Save(Image{
			Filename:     name,
			OriginalName: fh.Filename,
			ContentType:  contentType,
			Size:         int64(len(data)),
			URL:          url,
			UploadedAt:   time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			c.Logger().Errorf("index upload %s: %v", name, err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"url":      url,
		"filename": name,
	})
}

// handleImageList serves the uploaded-image index for the admin
// dashboard.
func (a *App) handleImageList(c echo.Context) error {
	if a.Images == nil {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "images": []Image{}})
	}
	images, err := a.Images.List()
	if err != nil {
		c.Logger().Errorf("list uploads: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "storage failure"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "images": images})
}

// handleImageDelete removes the blob, its thumbnail, and the index row.
func (a *App) handleImageDelete(c echo.Context) error {
	name := c.Param("filename")
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return badRequest(c, "invalid filename")
	}
	ctx := c.Request().Context()
	if err := a.Blobs.Delete(ctx, name); err != nil {
		c.Logger().Errorf("delete upload %s: %v", name, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "storage failure"})
	}
	_ = a.Blobs.Delete(ctx, thumbName(name))
	if a.Images != nil {
		removed, err := a.Images.Delete(name)
		if err != nil {
			c.Logger().Errorf("unindex upload %s: %v", name, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "storage failure"})
		}
		if !removed {
			return notFound(c, "file not found")
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// writeThumbnail decodes the upload, scales it down to thumbWidth when
// wider, and stores a JPEG next to the original. Failure is non-fatal to
// the upload.
func (a *App) writeThumbnail(c echo.Context, name string, data []byte) error {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > thumbWidth {
		newH := h * thumbWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, thumbWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}
	_, err = a.Blobs.Put(c.Request().Context(), thumbName(name), "image/jpeg", buf.Bytes())
	return err
}

// uploadFilename prefixes a millisecond timestamp and sanitizes the
// original name so uploads never collide or escape the upload directory.
func uploadFilename(original string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return '_'
		}
	}, original)
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitized)
}

func thumbName(name string) string {
	base := strings.TrimSuffix(name, "."+ext(name))
	return "thumbs/" + base + ".jpg"
}

func ext(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return ""
}
