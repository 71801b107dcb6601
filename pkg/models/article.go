package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Sys holds the system metadata Contentful attaches to every resource.
type Sys struct {
	ID          string    `json:"id"`
	Type        string    `json:"type,omitempty"`
	LinkType    string    `json:"linkType,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	ContentType *Link     `json:"contentType,omitempty"`
}

// IsLink reports whether the resource is an unresolved reference.
func (s Sys) IsLink() bool {
	return s.Type == "Link"
}

type Link struct {
	Sys Sys `json:"sys"`
}

// Entry represents one article record returned by the CMS.
type Entry struct {
	Sys    Sys           `json:"sys"`
	Fields ArticleFields `json:"fields"`
}

type ArticleFields struct {
	Title       string  `json:"title"`
	PublishDate Date    `json:"publishDate"`
	Description *string `json:"description,omitempty"`
	Body        *string `json:"body,omitempty"`
	Image       *Asset  `json:"image,omitempty"`
}

type Asset struct {
	Sys    Sys         `json:"sys"`
	Fields AssetFields `json:"fields"`
}

type AssetFields struct {
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	File        AssetFile `json:"file"`
}

type AssetFile struct {
	URL         string `json:"url"`
	FileName    string `json:"fileName,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

// Date is a Contentful Date field. Contentful emits dates with or without a
// time part and with or without a zone, so several layouts are accepted.
type Date struct {
	time.Time
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses s using the layouts Contentful produces for Date fields.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{t}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q", s)
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(time.RFC3339))
}

// EntryCollection is one page of a collection query.
type EntryCollection struct {
	Total int     `json:"total"`
	Skip  int     `json:"skip"`
	Limit int     `json:"limit"`
	Items []Entry `json:"items"`
}
