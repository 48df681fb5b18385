package api

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/01001010100011/scolamia.it/app/cfg"
	"github.com/01001010100011/scolamia.it/app/content"
	"github.com/01001010100011/scolamia.it/app/countdown"
)

// GetFeed serves the published articles as an RSS 2.0 feed.
func (h *Handler) GetFeed(c *gin.Context) {
	articles, errMsg := h.store.Articles()
	if errMsg != "" {
		c.Status(http.StatusServiceUnavailable)
		return
	}

	rss := generateFeed(articles)

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Header("X-Feed-Items", strconv.Itoa(len(articles)))
	c.String(http.StatusOK, rss)
}

func generateFeed(articles []content.Article) string {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	writeElement(&buf, "title", "Scolamia", 4)
	writeElement(&buf, "link", siteURL(""), 4)
	writeElement(&buf, "description", "Notizie e comunicazioni della scuola", 4)
	writeElement(&buf, "language", "it", 4)

	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(siteURL("/feed.xml"))))

	lastBuildDate := time.Now().In(countdown.DisplayZone())
	if len(articles) > 0 {
		if t, ok := countdown.ParseTarget(articles[0].UpdatedAt); ok {
			lastBuildDate = t
		}
	}
	writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	writeElement(&buf, "generator", fmt.Sprintf("Scolamia/%s", cfg.Get().Version), 4)

	for _, article := range articles {
		writeArticleItem(&buf, article)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String()
}

func writeArticleItem(buf *bytes.Buffer, article content.Article) {
	buf.WriteString("    <item>\n")

	buf.WriteString(`      <guid isPermaLink="false">`)
	xml.EscapeText(buf, []byte(article.ID))
	buf.WriteString("</guid>\n")

	writeElement(buf, "title", article.Title, 6)
	writeElement(buf, "link", siteURL("/api/articles/"+article.ID), 6)

	description := article.Excerpt
	if description == "" {
		description = article.Title
	}
	writeElement(buf, "description", description, 6)

	if article.Content != "" {
		buf.WriteString("      <content:encoded><![CDATA[")
		buf.WriteString(article.Content)
		buf.WriteString("]]></content:encoded>\n")
	}

	if published, ok := countdown.ParseTarget(article.CreatedAt); ok {
		writeElement(buf, "pubDate", published.Format(time.RFC1123Z), 6)
	}

	if article.Category != "" {
		writeElement(buf, "category", article.Category, 6)
	}

	buf.WriteString("    </item>\n")
}

func writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func siteURL(path string) string {
	c := cfg.Get()
	if c.BaseUrl != "" {
		return c.BaseUrl + path
	}
	return fmt.Sprintf("http://localhost:%s%s", c.Port, path)
}
