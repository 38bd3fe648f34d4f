package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		st   SkinType
		text string
		want Verdict
	}{
		{"dry avoids oil control", Dry, "Gel with OIL CONTROL and fragrance", Avoid},
		{"dry avoids alcohol", Dry, "toner with alcohol denat", Avoid},
		{"dry caution scrub", Dry, "gentle face scrub", Caution},
		{"dry caution fragrance", Dry, "lovely parfum", Caution},
		{"dry safe", Dry, "ceramide moisturizer", Safe},

		{"oily avoids heavy", Oily, "rich cream for nights", Avoid},
		{"oily avoids dry targeting", Oily, "made for dry skin", Avoid},
		{"oily caution sensitive", Oily, "for sensitive skin", Caution},
		{"oily safe", Oily, "for oily skin fragrance free", Safe},

		{"combination avoids heavy and dry", Combination, "body butter for very dry skin", Avoid},
		{"combination heavy alone is safe", Combination, "face oil", Safe},
		{"combination caution oily", Combination, "mattifying fluid", Caution},
		{"combination caution dry", Combination, "intense hydration mask", Caution},
		{"combination caution fragrance", Combination, "perfume notes", Caution},

		{"sensitive avoids fragrance", Sensitive, "fragrance-free?", Avoid},
		{"sensitive avoids alcohol", Sensitive, "denatured alcohol", Avoid},
		{"sensitive avoids peel", Sensitive, "overnight peel", Avoid},
		{"sensitive caution retinol", Sensitive, "for sensitive skin with retinol", Caution},
		{"sensitive safe", Sensitive, "calming cica balm", Safe},

		{"normal caution alcohol", Normal, "alcohol denat", Caution},
		{"normal caution heavy", Normal, "nourishing oil", Caution},
		{"normal safe scrub", Normal, "scrub", Safe},
		{"unknown skin type uses normal rules", SkinType("mystery"), "heavy cream", Caution},
		{"empty text", Dry, "", Safe},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, Classify(test.st, test.text))
		})
	}
}

func TestClassifySensitiveRetinolIsCaution(t *testing.T) {
	assert.Equal(t, Caution, Classify(Sensitive, "Night serum for sensitive skin with retinol"))
}

func TestClassifyDryOilControlIsAvoid(t *testing.T) {
	// Fires before the fragrance caution rule
	assert.Equal(t, Avoid, Classify(Dry, "oil control primer with fragrance"))
}

func TestClassifyIsTotalAndIdempotent(t *testing.T) {
	texts := []string{
		"", "   ", "peel", "AHA BHA", "oil-free matte finish", "very dry skin body butter",
		"sensitive skin parfum alcohol denat", "vitamin c brightening", "random words 123 ✨",
	}
	valid := map[Verdict]bool{Safe: true, Caution: true, Avoid: true}

	for _, st := range append(SkinTypes, SkinType(""), SkinType("DRY")) {
		for _, text := range texts {
			first := Classify(st, text)
			assert.True(t, valid[first], "%s/%q gave %q", st, text, first)
			assert.Equal(t, first, Classify(st, text))
		}
	}
}

func TestDetect(t *testing.T) {
	tr := Detect("Exfoliating Vitamin C serum, Oil-Free")

	assert.True(t, tr.ScrubOrPeel)
	assert.True(t, tr.Actives)
	assert.True(t, tr.TargetsOily)
	assert.False(t, tr.Fragrance)
	assert.False(t, tr.TargetsDry)
}

func TestRulesCoverEverySkinType(t *testing.T) {
	for _, st := range SkinTypes {
		assert.NotEmpty(t, Rules[st], st)
	}
}

func TestParseSkinType(t *testing.T) {
	st, err := ParseSkinType("  Sensitive ")
	require.NoError(t, err)
	assert.Equal(t, Sensitive, st)

	for _, bad := range []string{"", "greasy", "dry skin"} {
		_, err := ParseSkinType(bad)
		assert.Error(t, err, bad)
	}
}
