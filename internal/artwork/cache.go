package artwork

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// CacheEntry is one rendered card face on disk
type CacheEntry struct {
	Name     string
	Size     int64
	Modified time.Time
}

// Entries lists cached art, newest first. A missing cache is empty.
func (r *Renderer) Entries() ([]CacheEntry, error) {
	dirEntries, err := os.ReadDir(r.Dir())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading art cache: %w", err)
	}

	var entries []CacheEntry
	for _, entry := range dirEntries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".ansi" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		entries = append(entries, CacheEntry{
			Name:     entry.Name(),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Modified.After(entries[j].Modified)
	})

	return entries, nil
}

// Clear removes every cached file and returns how many were removed
func (r *Renderer) Clear() (int, error) {
	entries, err := r.Entries()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, e := range entries {
		if err := os.Remove(filepath.Join(r.Dir(), e.Name)); err != nil {
			return removed, fmt.Errorf("error removing %s: %w", e.Name, err)
		}
		removed++
	}

	return removed, nil
}
