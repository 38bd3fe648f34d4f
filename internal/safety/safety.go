// Package safety classifies skincare products for a skin type by matching
// ingredient and claim keywords in the product text.
package safety

import (
	"fmt"
	"strings"
)

type SkinType string

const (
	Dry         SkinType = "dry"
	Oily        SkinType = "oily"
	Combination SkinType = "combination"
	Sensitive   SkinType = "sensitive"
	Normal      SkinType = "normal"
)

// SkinTypes lists every accepted skin type in display order.
var SkinTypes = []SkinType{Dry, Oily, Combination, Sensitive, Normal}

// ParseSkinType accepts any casing and surrounding whitespace.
func ParseSkinType(s string) (SkinType, error) {
	st := SkinType(strings.ToLower(strings.TrimSpace(s)))

	for _, known := range SkinTypes {
		if st == known {
			return st, nil
		}
	}

	return "", fmt.Errorf("unknown skin type %q", s)
}

type Verdict string

const (
	Safe    Verdict = "safe"
	Caution Verdict = "caution"
	Avoid   Verdict = "avoid"
)
