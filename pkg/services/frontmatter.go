package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"contentful-blog/pkg/models"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ParseFrontMatter splits a content file into its front matter and body.
// The returned format is one of yaml, toml or json.
func ParseFrontMatter(content []byte) (map[string]interface{}, string, string, error) {
	str := strings.ReplaceAll(string(content), "\r\n", "\n")
	// Check for YAML (---)
	if strings.HasPrefix(str, "---\n") {
		parts := strings.SplitN(str, "---", 3) // "", FM, Body
		if len(parts) == 3 {
			var fm map[string]interface{}
			if err := yaml.Unmarshal([]byte(parts[1]), &fm); err == nil {
				return sanitizeFrontMatter(fm), strings.TrimSpace(parts[2]), "yaml", nil
			}
		}
	}
	// Check for TOML (+++)
	if strings.HasPrefix(str, "+++\n") {
		parts := strings.SplitN(str, "+++", 3)
		if len(parts) == 3 {
			var fm map[string]interface{}
			if err := toml.Unmarshal([]byte(parts[1]), &fm); err == nil {
				return sanitizeFrontMatter(fm), strings.TrimSpace(parts[2]), "toml", nil
			}
		}
	}
	// Check for JSON ({); the body lives in a "body" key
	if strings.HasPrefix(strings.TrimSpace(str), "{") {
		var fm map[string]interface{}
		if err := json.Unmarshal([]byte(str), &fm); err == nil {
			body, _ := fm["body"].(string)
			delete(fm, "body")
			return fm, strings.TrimSpace(body), "json", nil
		}
	}

	return nil, "", "", fmt.Errorf("unknown front matter format")
}

func sanitizeFrontMatter(fm map[string]interface{}) map[string]interface{} {
	if fm == nil {
		return map[string]interface{}{}
	}
	sanitized := make(map[string]interface{}, len(fm))
	for k, v := range fm {
		sanitized[k] = sanitizeFrontMatterValue(v)
	}
	return sanitized
}

func sanitizeFrontMatterValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return sanitizeFrontMatter(v)
	case map[interface{}]interface{}:
		normalized := make(map[string]interface{}, len(v))
		for key, inner := range v {
			normalized[fmt.Sprint(key)] = sanitizeFrontMatterValue(inner)
		}
		return normalized
	case []interface{}:
		slice := make([]interface{}, len(v))
		for i := range v {
			slice[i] = sanitizeFrontMatterValue(v[i])
		}
		return slice
	default:
		return v
	}
}

// entryFromFrontMatter maps a parsed content file onto an article entry.
// id and modTime are used when the front matter does not set them.
func entryFromFrontMatter(id string, modTime time.Time, fm map[string]interface{}, body string) (models.Entry, error) {
	var entry models.Entry

	entry.Sys.ID = id
	if v, ok := fm["id"].(string); ok && v != "" {
		entry.Sys.ID = v
	}
	entry.Sys.Type = "Entry"

	entry.Sys.CreatedAt = modTime
	if v, ok := fm["createdAt"]; ok {
		t, ok := toTime(v)
		if !ok {
			return entry, fmt.Errorf("entry %s: invalid createdAt %v", entry.Sys.ID, v)
		}
		entry.Sys.CreatedAt = t
	}
	entry.Sys.UpdatedAt = entry.Sys.CreatedAt
	if v, ok := fm["updatedAt"]; ok {
		if t, ok := toTime(v); ok {
			entry.Sys.UpdatedAt = t
		}
	}

	entry.Fields.Title = entry.Sys.ID // Default to id
	if v, ok := fm["title"].(string); ok && v != "" {
		entry.Fields.Title = v
	}

	if v, ok := fm["publishDate"]; ok {
		t, ok := toTime(v)
		if !ok {
			return entry, fmt.Errorf("entry %s: invalid publishDate %v", entry.Sys.ID, v)
		}
		entry.Fields.PublishDate = models.Date{Time: t}
	}

	if v, ok := fm["description"].(string); ok && strings.TrimSpace(v) != "" {
		entry.Fields.Description = &v
	}
	if body != "" {
		entry.Fields.Body = &body
	}

	switch img := fm["image"].(type) {
	case string:
		if img != "" {
			entry.Fields.Image = &models.Asset{
				Sys:    models.Sys{ID: img, Type: "Asset"},
				Fields: models.AssetFields{File: models.AssetFile{URL: img}},
			}
		}
	case map[string]interface{}:
		imageURL, _ := img["url"].(string)
		if imageURL == "" {
			return entry, fmt.Errorf("entry %s: image without url", entry.Sys.ID)
		}
		asset := &models.Asset{
			Sys:    models.Sys{ID: imageURL, Type: "Asset"},
			Fields: models.AssetFields{File: models.AssetFile{URL: imageURL}},
		}
		if v, ok := img["id"].(string); ok && v != "" {
			asset.Sys.ID = v
		}
		asset.Fields.Title, _ = img["title"].(string)
		asset.Fields.Description, _ = img["description"].(string)
		asset.Fields.File.ContentType, _ = img["contentType"].(string)
		entry.Fields.Image = asset
	}

	return entry, nil
}

func toTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case toml.LocalDate:
		return t.AsTime(time.UTC), true
	case toml.LocalDateTime:
		return t.AsTime(time.UTC), true
	case string:
		d, err := models.ParseDate(t)
		if err != nil {
			return time.Time{}, false
		}
		return d.Time, true
	default:
		return time.Time{}, false
	}
}
