package service

import "bitwise74/safeglow-api/internal/search"

// fallbackCatalog is served whenever the search provider is unconfigured
// or fails. It covers dry, oily, hydration and sensitive use cases.
var fallbackCatalog = []search.Item{
	{
		Title:       "CeraVe Moisturizing Cream",
		Snippet:     "A non-comedogenic, fragrance-free moisturizer ideal for dry and normal skin types. Contains essential ceramides and hyaluronic acid.",
		Link:        "https://www.cerave.com/skincare/moisturizers/moisturizing-cream",
		DisplayLink: "cerave.com",
		PageMap: search.PageMap{
			CSEImage: []search.ImageRef{{Src: "https://www.cerave.com/-/media/project/loreal/brand-sites/cerave/master/us/products/moisturizing-cream/cerave_moisturizing_cream_16oz_jar_front-v2.jpg"}},
		},
	},
	{
		Title:       "La Roche-Posay Effaclar Mat",
		Snippet:     "Daily face moisturizer for oily skin that targets excess oil and helps reduce the look of pores. Matte finish.",
		Link:        "https://www.laroche-posay.us/our-products/face-care/face-moisturizer/effaclar-mat-moisturizer-for-oily-skin-3337872413025.html",
		DisplayLink: "laroche-posay.us",
		PageMap: search.PageMap{
			CSEImage: []search.ImageRef{{Src: "https://www.laroche-posay.us/dw/image/v2/AANG_PRD/on/demandware.static/-/Sites-laroche-posay-master-catalog/default/dw76950280/product/3337872413025_effaclar_mat.jpg"}},
		},
	},
	{
		Title:       "The Ordinary Hyaluronic Acid 2% + B5",
		Snippet:     "A water-based serum that provides deep hydration. Suitable for all skin types, especially dry and sensitive.",
		Link:        "https://theordinary.com/en-us/hyaluronic-acid-2-b5-face-serum-100425.html",
		DisplayLink: "theordinary.com",
		PageMap: search.PageMap{
			CSEImage: []search.ImageRef{{Src: "https://theordinary.com/dw/image/v2/BFKJ_PRD/on/demandware.static/-/Sites-deciem-master-catalog/default/dw10619721/images/products/The%20Ordinary/rdn-hyaluronic-acid-2-b5-30ml.png"}},
		},
	},
	{
		Title:       "Cetaphil Gentle Skin Cleanser",
		Snippet:     "Clinically proven to hydrate while cleansing, and helps strengthen skin's moisture barrier. Ideal for sensitive skin.",
		Link:        "https://www.cetaphil.com/us/cleansers/gentle-skin-cleanser/302993910002.html",
		DisplayLink: "cetaphil.com",
		PageMap: search.PageMap{
			CSEImage: []search.ImageRef{{Src: "https://www.cetaphil.com/dw/image/v2/BFCV_PRD/on/demandware.static/-/Sites-galderma-cetaphil-us-master-catalog/default/dwb7d7f7e9/images/products/302993910002_Cetaphil_Gentle_Skin_Cleanser_16oz_Front.png"}},
		},
	},
}
