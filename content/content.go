// Package content holds the site's editable content (a singleton Profile
// plus the Article, Book, and Video collections) and the Store contract
// with its three interchangeable backends: JSON files on disk, Postgres,
// and process memory.
package content

// SocialLinks holds the optional outbound links shown on the public site.
type SocialLinks struct {
	YouTube   string `json:"youtube,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Profile is the singleton identity record behind the hero and about
// sections. It is never deleted, only merged over in place.
type Profile struct {
	Name        string       `json:"name"`
	Title       string       `json:"title"`
	HeroImage   string       `json:"heroImage"`
	Bio         string       `json:"bio"`
	SocialLinks *SocialLinks `json:"socialLinks,omitempty"`
}

// Article is a written blog post authored through the admin dashboard.
type Article struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content"`
	CoverImage string   `json:"coverImage"`
	Author     string   `json:"author"`
	Date       string   `json:"date"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags"`
}

// Book is a published title shown in the books section.
type Book struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Cover       string `json:"cover"`
	Link        string `json:"link"`
}

// Video is a YouTube entry on the video list.
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Thumbnail   string `json:"thumbnail"`
	YouTubeID   string `json:"youtubeId"`
	Description string `json:"description"`
}

// ProfilePatch is a partial Profile update. Nil fields are left untouched.
type ProfilePatch struct {
	Name        *string      `json:"name"`
	Title       *string      `json:"title"`
	HeroImage   *string      `json:"heroImage"`
	Bio         *string      `json:"bio"`
	SocialLinks *SocialLinks `json:"socialLinks"`
}

// ArticlePatch is a partial Article update. Nil fields are left untouched.
type ArticlePatch struct {
	Title      *string   `json:"title"`
	Excerpt    *string   `json:"excerpt"`
	Content    *string   `json:"content"`
	CoverImage *string   `json:"coverImage"`
	Author     *string   `json:"author"`
	Date       *string   `json:"date"`
	Category   *string   `json:"category"`
	Tags       *[]string `json:"tags"`
}

// BookPatch is a partial Book update. Nil fields are left untouched.
type BookPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Cover       *string `json:"cover"`
	Link        *string `json:"link"`
}

// VideoPatch is a partial Video update. Nil fields are left untouched.
type VideoPatch struct {
	Title       *string `json:"title"`
	Category    *string `json:"category"`
	Date        *string `json:"date"`
	Thumbnail   *string `json:"thumbnail"`
	YouTubeID   *string `json:"youtubeId"`
	Description *string `json:"description"`
}

func (p *Profile) apply(patch ProfilePatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.HeroImage != nil {
		p.HeroImage = *patch.HeroImage
	}
	if patch.Bio != nil {
		p.Bio = *patch.Bio
	}
	if patch.SocialLinks != nil {
		p.SocialLinks = patch.SocialLinks
	}
}

func (a *Article) apply(patch ArticlePatch) {
	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Excerpt != nil {
		a.Excerpt = *patch.Excerpt
	}
	if patch.Content != nil {
		a.Content = *patch.Content
	}
	if patch.CoverImage != nil {
		a.CoverImage = *patch.CoverImage
	}
	if patch.Author != nil {
		a.Author = *patch.Author
	}
	if patch.Date != nil {
		a.Date = *patch.Date
	}
	if patch.Category != nil {
		a.Category = *patch.Category
	}
	if patch.Tags != nil {
		a.Tags = *patch.Tags
	}
}

func (b *Book) apply(patch BookPatch) {
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	if patch.Cover != nil {
		b.Cover = *patch.Cover
	}
	if patch.Link != nil {
		b.Link = *patch.Link
	}
}

func (v *Video) apply(patch VideoPatch) {
	if patch.Title != nil {
		v.Title = *patch.Title
	}
	if patch.Category != nil {
		v.Category = *patch.Category
	}
	if patch.Date != nil {
		v.Date = *patch.Date
	}
	if patch.Thumbnail != nil {
		v.Thumbnail = *patch.Thumbnail
	}
	if patch.YouTubeID != nil {
		v.YouTubeID = *patch.YouTubeID
	}
	if patch.Description != nil {
		v.Description = *patch.Description
	}
}

// DefaultProfile returns the seed profile used when a backend has no
// stored profile yet.
func DefaultProfile() Profile {
	return Profile{
		Name:      "John Doe",
		Title:     "Driving Global Growth Through Strategic Sales Leadership",
		HeroImage: "/profile.jpg",
		Bio: "With over 15 years of experience in steering multinational corporations " +
			"toward unprecedented growth, I specialize in building high-performance " +
			"sales teams and forging lasting C-level relationships.",
	}
}

// DefaultArticles returns the seed article collection.
func DefaultArticles() []Article {
	return []Article{
		{
			ID:         "1",
			Title:      "Why Every Deal Is Won Before the First Meeting",
			Excerpt:    "Preparation, not persuasion, closes enterprise deals.",
			Content:    "The best sales conversations are decided before anyone enters the room. Research the account, map the buying committee, and rehearse the first five minutes.",
			CoverImage: "/articles/preparation.jpg",
			Author:     "John Doe",
			Date:       "Nov 20, 2023",
			Category:   "Sales Strategy",
			Tags:       []string{"preparation", "enterprise"},
		},
		{
			ID:         "2",
			Title:      "Coaching Sales Teams Through a Downturn",
			Excerpt:    "Pipeline discipline matters most when budgets tighten.",
			Content:    "Downturns reward teams that qualify ruthlessly and walk away early. Here is the weekly cadence I run with struggling teams.",
			CoverImage: "/articles/coaching.jpg",
			Author:     "John Doe",
			Date:       "Oct 30, 2023",
			Category:   "Team Building",
			Tags:       []string{"coaching", "pipeline"},
		},
	}
}

// DefaultBooks returns the seed book collection.
func DefaultBooks() []Book {
	return []Book{
		{
			ID:          "1",
			Title:       "The Future of Sales Leadership",
			Description: "A comprehensive guide to modern sales strategies and team building",
			Cover:       "/book1.jpg",
			Link:        "#",
		},
		{
			ID:          "2",
			Title:       "Strategic Growth Playbook",
			Description: "Proven frameworks for scaling enterprise sales teams",
			Cover:       "/book2.jpg",
			Link:        "#",
		},
		{
			ID:          "3",
			Title:       "Global Market Expansion",
			Description: "Navigate international markets with confidence",
			Cover:       "/book3.jpg",
			Link:        "#",
		},
	}
}

// DefaultVideos returns the seed video collection.
func DefaultVideos() []Video {
	return []Video{
		{
			ID:          "1",
			Title:       "The Future of Global Sales: A 2024 Outlook",
			Category:    "Sales Strategy",
			Date:        "Nov 15, 2023",
			Thumbnail:   "/blog1.jpg",
			YouTubeID:   "dQw4w9WgXcQ",
			Description: "An in-depth analysis of emerging market trends and the role of AI in sales automation.",
		},
		{
			ID:          "2",
			Title:       "5 Strategies for Scaling Enterprise Teams",
			Category:    "Team Building",
			Date:        "Oct 28, 2023",
			Thumbnail:   "/blog2.jpg",
			YouTubeID:   "dQw4w9WgXcQ",
			Description: "Learn how to build high-performing sales teams that drive consistent growth.",
		},
		{
			ID:          "3",
			Title:       "Navigating Cross-Cultural Negotiations",
			Category:    "Leadership",
			Date:        "Oct 12, 2023",
			Thumbnail:   "/blog3.jpg",
			YouTubeID:   "dQw4w9WgXcQ",
			Description: "Master the art of international business relationships and cultural intelligence.",
		},
		{
			ID:          "4",
			Title:       "Leveraging AI in the Sales Funnel",
			Category:    "Technology",
			Date:        "Sep 30, 2023",
			Thumbnail:   "/blog4.jpg",
			YouTubeID:   "dQw4w9WgXcQ",
			Description: "Discover how artificial intelligence is transforming the sales process.",
		},
	}
}
