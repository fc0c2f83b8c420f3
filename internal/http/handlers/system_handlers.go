package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SystemHandlers serves the unauthenticated service endpoints
type SystemHandlers struct {
	version string
}

// NewSystemHandlers creates system handlers reporting version
func NewSystemHandlers(version string) *SystemHandlers {
	return &SystemHandlers{version: version}
}

// Version reports the running service version
func (h *SystemHandlers) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": h.version})
}

// Health reports that the process is serving requests
func (h *SystemHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
