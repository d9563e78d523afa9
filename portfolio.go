// Package portfolio is the HTTP backend for a personal-brand portfolio
// site: a JSON content API over pluggable storage, an upload endpoint,
// a lead-notification endpoint, and a password-gated admin session used
// by the dashboard SPA.
package portfolio

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/0xayushM/blog-portfolio/blobstore"
	"github.com/0xayushM/blog-portfolio/content"
)

// App wires together the store, blob storage, upload index, mailer, and
// HTTP surface.
type App struct {
	Config Config
	Echo   *echo.Echo
	Store  content.Store
	Blobs  blobstore.Store
	Images *ImageIndex
	Mailer Mailer

	loginLimiter *LoginLimiter
	httpClient   *http.Client
}

// New assembles an App from its dependencies. Blobs, Images, and Mailer
// may be nil: uploads then fall back to local disk, the image list is
// empty, and the lead endpoint answers 501.
func New(cfg Config, store content.Store, blobs blobstore.Store, images *ImageIndex, mailer Mailer) *App {
	if blobs == nil {
		blobs = blobstore.NewLocal(filepath.Join(cfg.StaticDir, "uploads"), "/public/uploads")
	}
	return &App{
		Config:       cfg,
		Echo:         echo.New(),
		Store:        store,
		Blobs:        blobs,
		Images:       images,
		Mailer:       mailer,
		loginLimiter: NewLoginLimiter(5, time.Minute),
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Start validates required config, sets up middleware and routes, and
// serves until the listener closes.
func (a *App) Start() error {
	if err := a.Config.Validate(); err != nil {
		return err
	}
	a.setup()
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setup() {
	a.setupMiddleware()
	a.setupRoutes()
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Public site: static SPA assets plus the XML extras.
	e.Static("/public", a.Config.StaticDir)
	e.GET("/", a.handleIndex)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Content API. Reads are public; every mutation needs the admin
	// session.
	api := e.Group("/api")
	api.GET("/content", a.handleContentGet)
	api.POST("/content", a.handleContentPost, a.requireAdmin)
	api.PUT("/content", a.handleContentPut, a.requireAdmin)
	api.DELETE("/content", a.handleContentDelete, a.requireAdmin)

	api.POST("/upload", a.handleUpload, a.requireAdmin)
	api.GET("/uploads", a.handleImageList, a.requireAdmin)
	api.DELETE("/uploads/:filename", a.handleImageDelete, a.requireAdmin)

	api.POST("/lead", a.handleLead)

	// Admin session endpoints consumed by the dashboard.
	e.POST("/admin/login", a.handleAdminLogin)
	e.POST("/admin/logout", handleAdminLogout)
	e.GET("/admin/session", a.handleAdminSession)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		a.Store.Close()
	}
	if a.Images != nil {
		a.Images.Close()
	}
	return nil
}

func (a *App) handleIndex(c echo.Context) error {
	return c.File(filepath.Join(a.Config.StaticDir, "index.html"))
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(filepath.Join(a.Config.StaticDir, "favicon.svg"))
}

// handleRobots generates robots.txt dynamically using SITE_URL.
func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: " + a.Config.SiteURL + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}
