package model

import "bitwise74/safeglow-api/internal/safety"

// ProductCandidate is a recommended product annotated for one skin type.
// It is built per request and never stored.
type ProductCandidate struct {
	Title   string         `json:"title"`
	Snippet string         `json:"snippet"`
	Link    string         `json:"link"`
	Source  string         `json:"source"`
	Image   *string        `json:"image"`
	Verdict safety.Verdict `json:"verdict"`
}
