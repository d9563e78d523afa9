package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	portfolio "github.com/0xayushM/blog-portfolio"
	"github.com/0xayushM/blog-portfolio/blobstore"
	"github.com/0xayushM/blog-portfolio/content"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "migrate":
		if err := runMigrate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("blog-portfolio %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`blog-portfolio - portfolio site backend with a JSON content API

Usage:
  blog-portfolio <command>

Commands:
  serve         Start the HTTP server (default)
  migrate       Copy content from the JSON file store into DATABASE_URL
  version       Print the version
  help          Show this help message`)
}

func loadConfig() (portfolio.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	var cfg portfolio.Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := context.Background()

	store, err := content.Open(ctx, content.Config{
		DatabaseURL: cfg.DatabaseURL,
		Env:         cfg.Env,
		DataDir:     cfg.DataDir,
	})
	if err != nil {
		return fmt.Errorf("open content store: %w", err)
	}

	var blobs blobstore.Store
	if cfg.S3Bucket != "" {
		blobs = newS3Store(cfg)
	}

	images, err := portfolio.NewImageIndex(cfg.UploadIndexPath)
	if err != nil {
		return fmt.Errorf("open upload index: %w", err)
	}

	var mailer portfolio.Mailer
	if cfg.SMTPHost != "" && cfg.LeadNotifyTo != "" {
		mailer = &portfolio.SMTPMailer{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPUser,
		}
	}

	app := portfolio.New(cfg, store, blobs, images, mailer)
	defer app.Close()
	return app.Start()
}

func newS3Store(cfg portfolio.Config) blobstore.Store {
	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey, cfg.S3SecretKey, ""),
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}
	publicURL := cfg.S3PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}
	return blobstore.NewS3(s3.New(opts), cfg.S3Bucket, publicURL)
}

// runMigrate copies everything from the JSON file store into the
// database named by DATABASE_URL. Intended as a one-shot when moving a
// site from file storage to hosted storage.
func runMigrate() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("migrate requires DATABASE_URL")
	}
	ctx := context.Background()

	src, err := content.NewFileStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open file store: %w", err)
	}
	defer src.Close()

	dst, err := content.NewPGStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer dst.Close()

	profile, err := src.ReadProfile(ctx)
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}
	if _, err := dst.WriteProfile(ctx, content.ProfilePatch{
		Name:        &profile.Name,
		Title:       &profile.Title,
		HeroImage:   &profile.HeroImage,
		Bio:         &profile.Bio,
		SocialLinks: profile.SocialLinks,
	}); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}

	articles, err := src.Articles(ctx)
	if err != nil {
		return fmt.Errorf("read articles: %w", err)
	}
	if err := dst.ReplaceArticles(ctx, articles); err != nil {
		return fmt.Errorf("write articles: %w", err)
	}

	books, err := src.Books(ctx)
	if err != nil {
		return fmt.Errorf("read books: %w", err)
	}
	if err := dst.ReplaceBooks(ctx, books); err != nil {
		return fmt.Errorf("write books: %w", err)
	}

	videos, err := src.Videos(ctx)
	if err != nil {
		return fmt.Errorf("read videos: %w", err)
	}
	if err := dst.ReplaceVideos(ctx, videos); err != nil {
		return fmt.Errorf("write videos: %w", err)
	}

	fmt.Printf("migrated profile, %d articles, %d books, %d videos\n", len(articles), len(books), len(videos))
	return nil
}
