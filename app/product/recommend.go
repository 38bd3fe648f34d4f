// Package product contains the product recommendation endpoint
package product

import (
	"errors"
	"net/http"

	"bitwise74/safeglow-api/internal"
	"bitwise74/safeglow-api/internal/apperr"
	"bitwise74/safeglow-api/internal/safety"

	"github.com/gin-gonic/gin"
)

const skinTypeKey = "skinType"

var errSkinTypeMissing = errors.New("skin type not parsed, RequireSkinType must run first")

// RequireSkinType rejects unknown skin types before the response cache
// sees the request and stores the parsed value for ProductRecommend.
func RequireSkinType(c *gin.Context) {
	st, err := safety.ParseSkinType(c.Query("skinType"))
	if err != nil {
		c.Error(apperr.Validation("skinType must be one of: dry, oily, combination, sensitive, normal"))
		c.Abort()
		return
	}

	c.Set(skinTypeKey, st)
	c.Next()
}

func ProductRecommend(c *gin.Context, d *internal.Deps) {
	st, ok := c.Get(skinTypeKey)
	if !ok {
		c.Error(apperr.Internal(errSkinTypeMissing))
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": d.Recommender.Recommend(c.Request.Context(), st.(safety.SkinType)),
	})
}
