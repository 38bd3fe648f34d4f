package search

import (
	"regexp"
	"strings"
)

var webpRe = regexp.MustCompile(`(?i)\.webp(\?|#|$)`)

// NormalizeImageURL upgrades protocol-relative and http URLs to https.
// Anything that isn't an absolute http(s) URL yields "".
func NormalizeImageURL(v string) string {
	v = strings.TrimSpace(v)

	switch {
	case v == "":
		return ""
	case strings.HasPrefix(v, "//"):
		return "https:" + v
	case strings.HasPrefix(v, "http://"):
		return "https://" + strings.TrimPrefix(v, "http://")
	case strings.HasPrefix(v, "https://"):
		return v
	}

	return ""
}

func IsWebp(u string) bool {
	return webpRe.MatchString(u)
}

// PickImage returns the first candidate that normalizes to a non-webp URL,
// or nil. A webp URL is never returned, even when it is the only one.
func PickImage(candidates []string) *string {
	for _, c := range candidates {
		n := NormalizeImageURL(c)
		if n == "" || IsWebp(n) {
			continue
		}

		return &n
	}

	return nil
}

// ImageCandidates lists the item's image URLs in priority order: dedicated
// image, image object, thumbnail, og:image, twitter:image.
func (i *Item) ImageCandidates() []string {
	pm := i.PageMap

	var c []string
	if len(pm.CSEImage) > 0 {
		c = append(c, pm.CSEImage[0].Src)
	}
	if len(pm.ImageObject) > 0 {
		c = append(c, pm.ImageObject[0].URL)
	}
	if len(pm.CSEThumbnail) > 0 {
		c = append(c, pm.CSEThumbnail[0].Src)
	}
	if len(pm.Metatags) > 0 {
		c = append(c, metaString(pm.Metatags[0], "og:image"), metaString(pm.Metatags[0], "twitter:image"))
	}

	return c
}

func metaString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
