// Package root contains endpoints that live outside /api
package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health never touches the database, it only says the process is up.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
