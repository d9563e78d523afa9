package portfolio

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/0xayushM/blog-portfolio/content"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// handleFeed serves the article collection as RSS 2.0.
func (a *App) handleFeed(c echo.Context) error {
	base := a.Config.SiteURL
	articles := a.articlesOrDefault(c)
	items := make([]rssItem, 0, len(articles))
	for _, art := range articles {
		pubDate := ""
		if t, err := time.Parse(content.DateFormat, art.Date); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		postURL := buildURL(base, "blog", art.ID)
		items = append(items, rssItem{
			Title:       art.Title,
			Link:        postURL,
			Description: art.Excerpt,
			PubDate:     pubDate,
			GUID:        postURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.SiteName,
			Link:        base,
			Description: a.Config.SiteDescription,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// handleSitemap lists the home page plus every article and video detail
// page.
func (a *App) handleSitemap(c echo.Context) error {
	base := a.Config.SiteURL
	urls := []sitemapURL{
		{Loc: buildURL(base)},
	}
	for _, art := range a.articlesOrDefault(c) {
		urls = append(urls, sitemapURL{
			Loc:     buildURL(base, "blog", art.ID),
			LastMod: lastMod(art.Date),
		})
	}
	for _, v := range a.videosOrDefault(c) {
		urls = append(urls, sitemapURL{
			Loc:     buildURL(base, "video", v.ID),
			LastMod: lastMod(v.Date),
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}

// lastMod converts a display date to the W3C date sitemaps expect.
// Unparseable dates are omitted rather than emitted raw.
func lastMod(date string) string {
	t, err := time.Parse(content.DateFormat, date)
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// buildURL joins path segments onto a base URL without doubling slashes.
func buildURL(base string, segments ...string) string {
	u := strings.TrimRight(base, "/")
	for _, s := range segments {
		u += "/" + strings.Trim(s, "/")
	}
	return u
}
