package universe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/valuescout/backend/pkg/config"
	"github.com/wonny/valuescout/backend/pkg/httputil"
	"github.com/wonny/valuescout/backend/pkg/logger"
)

// Member is one universe constituent.
type Member struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
}

// Provider builds the candidate universe from an index constituent
// page, with a file cache in front and a curated list as the last
// resort. Source quality degrades gracefully; the pipeline always gets
// a non-empty universe.
type Provider struct {
	cfg       config.UniverseConfig
	cachePath string
	client    *httputil.Client
	logger    *logger.Logger
}

func NewProvider(cfg config.UniverseConfig, cachePath string, log *logger.Logger) *Provider {
	client := httputil.New(log).
		WithTimeout(20*time.Second).
		WithRetry(3, 2*time.Second).
		WithRateLimit(cfg.RequestsPerSec)

	return &Provider{
		cfg:       cfg,
		cachePath: cachePath,
		client:    client,
		logger:    log,
	}
}

// Symbols returns the universe ticker list, sector-capped.
func (p *Provider) Symbols(ctx context.Context) ([]string, error) {
	members, err := p.Members(ctx)
	if err != nil {
		return nil, err
	}
	symbols := make([]string, 0, len(members))
	for _, m := range members {
		symbols = append(symbols, m.Symbol)
	}
	return symbols, nil
}

// Members returns the full constituent list: fresh cache if present,
// otherwise a live scrape (which refreshes the cache), otherwise the
// curated fallback.
func (p *Provider) Members(ctx context.Context) ([]Member, error) {
	if cached, ok := p.loadCache(); ok {
		return p.capSectors(cached), nil
	}

	members, err := p.scrapeIndex(ctx)
	if err != nil {
		p.logger.WithError(err).Warn("Universe scrape failed, using curated fallback")
		return p.capSectors(curatedMembers()), nil
	}

	p.saveCache(members)
	return p.capSectors(members), nil
}

// scrapeIndex parses the constituent table from the configured index
// page. Expects the first wikitable-style table with symbol, name and
// sector columns.
func (p *Provider) scrapeIndex(ctx context.Context) ([]Member, error) {
	resp, err := p.client.Get(ctx, p.cfg.IndexURL)
	if err != nil {
		return nil, fmt.Errorf("fetching index page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("index page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing index page: %w", err)
	}

	members := make([]Member, 0, 600)
	seen := make(map[string]struct{}, 600)
	doc.Find("table.wikitable").First().Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return // header row
		}
		symbol := normalizeSymbol(cells.Eq(0).Text())
		if symbol == "" {
			return
		}
		// First occurrence wins; normalization can collapse two rows
		// onto one symbol (BRK.B and BRK-B).
		if _, dup := seen[symbol]; dup {
			return
		}
		seen[symbol] = struct{}{}
		members = append(members, Member{
			Symbol: symbol,
			Name:   strings.TrimSpace(cells.Eq(1).Text()),
			Sector: strings.TrimSpace(cells.Eq(2).Text()),
		})
	})

	if len(members) == 0 {
		return nil, fmt.Errorf("no constituents found at %s", p.cfg.IndexURL)
	}

	p.logger.WithField("count", len(members)).Info("Universe scraped")
	return members, nil
}

// capSectors limits each sector to MaxPerSector members, preserving
// source order within a sector. Zero or negative cap means no limit.
func (p *Provider) capSectors(members []Member) []Member {
	if p.cfg.MaxPerSector <= 0 {
		return members
	}
	counts := make(map[string]int)
	out := make([]Member, 0, len(members))
	for _, m := range members {
		if counts[m.Sector] >= p.cfg.MaxPerSector {
			continue
		}
		counts[m.Sector]++
		out = append(out, m)
	}
	return out
}

// normalizeSymbol maps share-class dots to the dash form most data
// vendors use (BRK.B -> BRK-B) and drops obvious junk.
func normalizeSymbol(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, ".", "-")
	if s == "" || len(s) > 6 {
		return ""
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && r != '-' {
			return ""
		}
	}
	return s
}
