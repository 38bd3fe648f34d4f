package safety

import "strings"

// Traits are the keyword groups detected in a product's text.
type Traits struct {
	Fragrance      bool
	HarshAlcohol   bool
	ScrubOrPeel    bool
	HeavyEmollient bool
	TargetsOily    bool
	TargetsDry     bool
	TargetsSens    bool
	Actives        bool
}

var (
	fragranceTerms = []string{"fragrance", "parfum", "perfume"}
	alcoholTerms   = []string{"alcohol denat", "denatured alcohol"}
	scrubTerms     = []string{"scrub", "exfoliating", "peeling", "peel"}
	heavyTerms     = []string{"heavy cream", "rich cream", "body butter", "facial oil", "nourishing oil", "face oil"}
	oilyTerms      = []string{
		"for oily skin", "oily skin", "oil control", "oil-control", "oil free", "oil-free",
		"mattifying", "matte finish", "anti acne", "acne control",
	}
	dryTerms = []string{
		"for dry skin", "dry skin", "very dry skin", "intense hydration",
		"deeply moisturizing", "extra nourishing",
	}
	sensitiveTerms = []string{"for sensitive skin", "sensitive skin"}
	activeTerms    = []string{"brightening", "whitening", "lightening", "retinol", "vitamin c", "aha", "bha", "peel"}
)

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}

	return false
}

// Detect lowercases text and reports which keyword groups it mentions.
// Matching is by substring, so "aha" also fires inside longer words.
func Detect(text string) Traits {
	lower := strings.ToLower(text)

	return Traits{
		Fragrance:      containsAny(lower, fragranceTerms),
		HarshAlcohol:   containsAny(lower, alcoholTerms),
		ScrubOrPeel:    containsAny(lower, scrubTerms),
		HeavyEmollient: containsAny(lower, heavyTerms),
		TargetsOily:    containsAny(lower, oilyTerms),
		TargetsDry:     containsAny(lower, dryTerms),
		TargetsSens:    containsAny(lower, sensitiveTerms),
		Actives:        containsAny(lower, activeTerms),
	}
}

// Rule yields Verdict when When matches.
type Rule struct {
	Name    string
	When    func(Traits) bool
	Verdict Verdict
}

// Rules holds the ordered rule list per skin type. The first matching rule
// wins, no match means Safe.
var Rules = map[SkinType][]Rule{
	Dry: {
		{"targets oily skin", func(t Traits) bool { return t.TargetsOily }, Avoid},
		{"harsh alcohol", func(t Traits) bool { return t.HarshAlcohol }, Avoid},
		{"scrub, peel or fragrance", func(t Traits) bool { return t.ScrubOrPeel || t.Fragrance }, Caution},
	},
	Oily: {
		{"heavy or targets dry skin", func(t Traits) bool { return t.HeavyEmollient || t.TargetsDry }, Avoid},
		{"targets sensitive skin", func(t Traits) bool { return t.TargetsSens }, Caution},
	},
	Combination: {
		{"heavy and targets dry skin", func(t Traits) bool { return t.HeavyEmollient && t.TargetsDry }, Avoid},
		{"targets oily or dry skin", func(t Traits) bool { return t.TargetsOily || t.TargetsDry }, Caution},
		{"fragrance", func(t Traits) bool { return t.Fragrance }, Caution},
	},
	Sensitive: {
		{"fragrance, alcohol or scrub", func(t Traits) bool { return t.Fragrance || t.HarshAlcohol || t.ScrubOrPeel }, Avoid},
		{"brightening actives", func(t Traits) bool { return t.Actives }, Caution},
	},
	Normal: {
		{"harsh alcohol or heavy", func(t Traits) bool { return t.HarshAlcohol || t.HeavyEmollient }, Caution},
	},
}

// Evaluate runs the rules for st against t. Unknown skin types get the
// normal rules.
func Evaluate(st SkinType, t Traits) Verdict {
	rules, ok := Rules[st]
	if !ok {
		rules = Rules[Normal]
	}

	for _, r := range rules {
		if r.When(t) {
			return r.Verdict
		}
	}

	return Safe
}

// Classify returns the verdict for a product described by text.
func Classify(st SkinType, text string) Verdict {
	return Evaluate(st, Detect(text))
}
