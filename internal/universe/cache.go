package universe

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// cacheDocument is the on-disk cache shape.
type cacheDocument struct {
	FetchedAt time.Time `json:"fetched_at"`
	Members   []Member  `json:"members"`
}

// loadCache returns the cached members if the cache file exists, parses
// and is younger than CacheDays. Any problem just means a re-fetch.
func (p *Provider) loadCache() ([]Member, bool) {
	data, err := os.ReadFile(p.cachePath)
	if err != nil {
		return nil, false
	}

	var doc cacheDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		p.logger.WithError(err).Warn("Universe cache corrupt, refetching")
		return nil, false
	}

	maxAge := time.Duration(p.cfg.CacheDays) * 24 * time.Hour
	if time.Since(doc.FetchedAt) > maxAge || len(doc.Members) == 0 {
		return nil, false
	}

	p.logger.WithFields(map[string]interface{}{
		"count": len(doc.Members),
		"age":   time.Since(doc.FetchedAt).Round(time.Hour).String(),
	}).Debug("Universe served from cache")
	return doc.Members, true
}

// saveCache writes the cache best-effort; a failure only costs the next
// run a re-fetch.
func (p *Provider) saveCache(members []Member) {
	doc := cacheDocument{FetchedAt: time.Now(), Members: members}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(p.cachePath), 0o755); err != nil {
		p.logger.WithError(err).Warn("Universe cache dir create failed")
		return
	}
	if err := os.WriteFile(p.cachePath, data, 0o644); err != nil {
		p.logger.WithError(err).Warn("Universe cache write failed")
	}
}
