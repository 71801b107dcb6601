package services

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"contentful-blog/pkg/models"

	"github.com/rs/zerolog/log"
)

// articleIndex holds the parsed content directory. It is loaded on first use
// and reloaded after Invalidate.
type articleIndex struct {
	dir string

	mu      sync.Mutex
	loaded  bool
	entries []models.Entry
}

func (idx *articleIndex) get() ([]models.Entry, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.loaded {
		return idx.entries, nil
	}

	entries, err := loadArticles(idx.dir)
	if err != nil {
		return nil, err
	}

	idx.entries = entries
	idx.loaded = true
	return idx.entries, nil
}

func (idx *articleIndex) invalidate() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.loaded = false
	idx.entries = nil
}

func loadArticles(contentDir string) ([]models.Entry, error) {
	var entries []models.Entry
	seen := map[string]string{}

	err := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}

		fm, body, _, err := ParseFrontMatter(content)
		if err != nil {
			log.Warn().Str("path", path).Err(err).Msg("skipping content file")
			return nil
		}

		id := strings.TrimSuffix(d.Name(), ".md")
		entry, err := entryFromFrontMatter(id, info.ModTime().UTC(), fm, body)
		if err != nil {
			return err
		}
		if prev, ok := seen[entry.Sys.ID]; ok {
			return fmt.Errorf("duplicate entry id %q in %s and %s", entry.Sys.ID, prev, path)
		}
		seen[entry.Sys.ID] = path

		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Str("dir", contentDir).Int("count", len(entries)).Msg("content index loaded")
	return entries, nil
}
