package portfolio

import "fmt"

// Config holds all site configuration, populated from environment
// variables (a .env file is honored by the serve command).
type Config struct {
	SiteName        string `env:"SITE_NAME" envDefault:"Portfolio"`
	SiteURL         string `env:"SITE_URL" envDefault:"http://localhost:3000"`
	SiteDescription string `env:"SITE_DESCRIPTION"`

	Addr      string `env:"ADDR" envDefault:":3000"`
	Env       string `env:"APP_ENV" envDefault:"development"`
	StaticDir string `env:"STATIC_DIR" envDefault:"public"`

	// Storage backend selection: DatabaseURL wins, then a production
	// environment falls back to memory, then JSON files under DataDir.
	DatabaseURL string `env:"DATABASE_URL"`
	DataDir     string `env:"DATA_DIR" envDefault:"data"`

	// Admin session.
	AdminPassword string `env:"ADMIN_PASSWORD"`
	SessionSecret string `env:"SESSION_SECRET"`
	CookieSecure  bool   `env:"COOKIE_SECURE"`

	// Uploads. With no bucket configured files land on local disk under
	// StaticDir/uploads. The SQLite index feeds the admin image list.
	UploadIndexPath string `env:"UPLOAD_INDEX_PATH" envDefault:"data/uploads.db"`
	S3Bucket        string `env:"S3_BUCKET"`
	S3Region        string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint      string `env:"S3_ENDPOINT"`
	S3AccessKey     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretKey     string `env:"S3_SECRET_ACCESS_KEY"`
	S3PublicURL     string `env:"S3_PUBLIC_URL"`

	// Lead notification mail relay; the endpoint answers 501 until these
	// are set.
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	LeadNotifyTo string `env:"LEAD_NOTIFY_TO"`

	// Optional third-party messaging provider the lead payload is
	// forwarded to after the email goes out.
	LeadProviderEndpoint string `env:"LEAD_PROVIDER_ENDPOINT"`
	LeadProviderAPIKey   string `env:"LEAD_PROVIDER_API_KEY"`
}

// Validate reports required settings missing from the environment.
func (c Config) Validate() error {
	if c.AdminPassword == "" {
		return fmt.Errorf("portfolio: ADMIN_PASSWORD is required")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("portfolio: SESSION_SECRET is required")
	}
	return nil
}
