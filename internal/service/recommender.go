package service

import (
	"context"
	"net/url"

	"bitwise74/safeglow-api/internal/model"
	"bitwise74/safeglow-api/internal/safety"
	"bitwise74/safeglow-api/internal/search"

	"go.uber.org/zap"
)

const (
	queryPhrase    = " skin best skincare products"
	fallbackSource = "Official Store"
	unknownSource  = "Unknown"
)

// Searcher is the part of the search client the recommender needs.
type Searcher interface {
	Configured() bool
	Search(ctx context.Context, query string) ([]search.Item, error)
}

// Recommender turns search results into classified product candidates.
// Provider failures are absorbed by the fallback catalog and never
// reported to the caller.
type Recommender struct {
	searcher Searcher
}

func NewRecommender(s Searcher) *Recommender {
	return &Recommender{searcher: s}
}

func (r *Recommender) Recommend(ctx context.Context, st safety.SkinType) []model.ProductCandidate {
	if r.searcher == nil || !r.searcher.Configured() {
		zap.L().Debug("Search provider not configured, serving fallback catalog", zap.String("skinType", string(st)))
		return annotate(st, fallbackCatalog, fallbackSource)
	}

	items, err := r.searcher.Search(ctx, string(st)+queryPhrase)
	if err != nil {
		zap.L().Warn("Search provider failed, serving fallback catalog", zap.Error(err), zap.String("skinType", string(st)))
		return annotate(st, fallbackCatalog, fallbackSource)
	}

	return annotate(st, items, unknownSource)
}

func annotate(st safety.SkinType, items []search.Item, defaultSource string) []model.ProductCandidate {
	out := make([]model.ProductCandidate, 0, len(items))

	for i := range items {
		it := &items[i]

		out = append(out, model.ProductCandidate{
			Title:   it.Title,
			Snippet: it.Snippet,
			Link:    it.Link,
			Source:  sourceOf(it, defaultSource),
			Image:   search.PickImage(it.ImageCandidates()),
			Verdict: safety.Classify(st, it.Title+" "+it.Snippet),
		})
	}

	return out
}

// sourceOf prefers the provider's display domain, then the link's host.
func sourceOf(it *search.Item, def string) string {
	if it.DisplayLink != "" {
		return it.DisplayLink
	}

	if u, err := url.Parse(it.Link); err == nil && u.Host != "" {
		return u.Host
	}

	return def
}
