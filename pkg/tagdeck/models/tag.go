package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Categories is the fixed set of tag categories. The category of a tag is
// always one of these values (or empty while a form is being filled in).
var Categories = []string{"工作", "学习", "娱乐", "技术", "生活", "其他"}

// PaletteSize is the number of entries in the UI color palette. Tag.Color is
// a stringified index into it ("0".."7").
const PaletteSize = 8

// Tag represents a named bookmark with a category, color, optional URL and
// favicon, a visibility flag, and a click counter. IDs are minted by the
// client when the tag is created and stay stable across edits.
type Tag struct {
	ID          string    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Color       string    `json:"color"`
	URL         string    `json:"url,omitempty"`
	Favicon     string    `json:"favicon,omitempty"`
	IsActive    bool      `json:"isActive"`
	ClickCount  uint      `gorm:"default:0" json:"clickCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ValidCategory reports whether c is one of the fixed category values.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// FaviconKind tells the presentation layer how to render a favicon value.
type FaviconKind string

const (
	FaviconEmpty    FaviconKind = "empty"
	FaviconGlyph    FaviconKind = "glyph"
	FaviconDataURI  FaviconKind = "data-uri"
	FaviconImageURL FaviconKind = "image-url"
)

// ClassifyFavicon decides whether a favicon value is an uploaded data URI,
// an external image URL, or a short glyph such as an emoji. Anything of four
// runes or fewer that is not a URI is treated as a glyph.
func ClassifyFavicon(favicon string) FaviconKind {
	switch {
	case favicon == "":
		return FaviconEmpty
	case strings.HasPrefix(favicon, "data:"):
		return FaviconDataURI
	case strings.HasPrefix(favicon, "http://"), strings.HasPrefix(favicon, "https://"):
		return FaviconImageURL
	case utf8.RuneCountInString(favicon) <= 4:
		return FaviconGlyph
	default:
		return FaviconImageURL
	}
}
