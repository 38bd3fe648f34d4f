package service

import (
	"context"
	"errors"
	"testing"

	"bitwise74/safeglow-api/internal/model"
	"bitwise74/safeglow-api/internal/safety"
	"bitwise74/safeglow-api/internal/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	configured bool
	items      []search.Item
	err        error
	queries    []string
}

func (f *fakeSearcher) Configured() bool { return f.configured }

func (f *fakeSearcher) Search(_ context.Context, q string) ([]search.Item, error) {
	f.queries = append(f.queries, q)
	return f.items, f.err
}

func TestRecommendLive(t *testing.T) {
	f := &fakeSearcher{
		configured: true,
		items: []search.Item{
			{
				Title:       "Test Product",
				Snippet:     "for oily skin fragrance free",
				Link:        "https://example.com/p",
				DisplayLink: "example.com",
				PageMap:     search.PageMap{CSEImage: []search.ImageRef{{Src: "https://example.com/i.png"}}},
			},
			{
				Title:   "No display link",
				Snippet: "rich cream",
				Link:    "https://shop.example.org/x/y",
				PageMap: search.PageMap{
					CSEImage:     []search.ImageRef{{Src: "https://example.com/i.webp"}},
					CSEThumbnail: []search.ImageRef{{Src: "http://example.com/i.jpg"}},
				},
			},
			{Title: "Nothing", Link: "not a url"},
		},
	}

	got := NewRecommender(f).Recommend(context.Background(), safety.Oily)

	assert.Equal(t, []string{"oily skin best skincare products"}, f.queries)
	require.Len(t, got, 3)

	assert.Equal(t, "example.com", got[0].Source)
	require.NotNil(t, got[0].Image)
	assert.Equal(t, "https://example.com/i.png", *got[0].Image)
	assert.Equal(t, safety.Safe, got[0].Verdict)

	assert.Equal(t, "shop.example.org", got[1].Source)
	require.NotNil(t, got[1].Image)
	assert.Equal(t, "https://example.com/i.jpg", *got[1].Image)
	assert.Equal(t, safety.Avoid, got[1].Verdict)

	assert.Equal(t, "Unknown", got[2].Source)
	assert.Nil(t, got[2].Image)
}

func TestRecommendFallsBackWhenUnconfigured(t *testing.T) {
	f := &fakeSearcher{configured: false}

	got := NewRecommender(f).Recommend(context.Background(), safety.Dry)

	assert.Empty(t, f.queries, "provider must not be called")
	assertFallback(t, got)
}

func TestRecommendFallsBackOnError(t *testing.T) {
	f := &fakeSearcher{configured: true, err: errors.New("boom")}

	got := NewRecommender(f).Recommend(context.Background(), safety.Sensitive)

	assert.Len(t, f.queries, 1, "one attempt only")
	assertFallback(t, got)
}

func TestRecommendNilSearcher(t *testing.T) {
	assertFallback(t, NewRecommender(nil).Recommend(context.Background(), safety.Normal))
}

func TestFallbackVerdicts(t *testing.T) {
	got := NewRecommender(nil).Recommend(context.Background(), safety.Dry)
	require.Len(t, got, 4)

	// CeraVe is labelled fragrance-free, which still trips the fragrance keyword
	assert.Equal(t, safety.Caution, got[0].Verdict)

	// Effaclar Mat targets oily skin
	assert.Equal(t, safety.Avoid, got[1].Verdict)

	got = NewRecommender(nil).Recommend(context.Background(), safety.Oily)
	assert.Equal(t, safety.Safe, got[0].Verdict)
	// Cetaphil is pitched at sensitive skin
	assert.Equal(t, safety.Caution, got[3].Verdict)
}

func assertFallback(t *testing.T, got []model.ProductCandidate) {
	t.Helper()

	require.Len(t, got, 4)

	titles := make([]string, 0, len(got))
	for _, p := range got {
		titles = append(titles, p.Title)
		assert.NotEmpty(t, p.Source)
		assert.NotEmpty(t, p.Verdict)
		require.NotNil(t, p.Image, p.Title)
		assert.False(t, search.IsWebp(*p.Image))
	}

	assert.Equal(t, []string{
		"CeraVe Moisturizing Cream",
		"La Roche-Posay Effaclar Mat",
		"The Ordinary Hyaluronic Acid 2% + B5",
		"Cetaphil Gentle Skin Cleanser",
	}, titles)
}

func TestSourceOf(t *testing.T) {
	tests := []struct {
		name string
		item search.Item
		want string
	}{
		{"display link", search.Item{DisplayLink: "cerave.com", Link: "https://www.cerave.com/x"}, "cerave.com"},
		{"link host", search.Item{Link: "https://shop.example/serum"}, "shop.example"},
		{"default", search.Item{Link: "not a url"}, fallbackSource},
		{"empty", search.Item{}, fallbackSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sourceOf(&tt.item, fallbackSource))
		})
	}
}
