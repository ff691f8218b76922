package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var pages = map[string]string{
	"/":              "index.html",
	"/login.html":    "login.html",
	"/register.html": "register.html",
}

// registerPages renders the HTML templates from frontendDir and serves the
// directory under /static. A missing directory only disables the pages.
func (h *Handler) registerPages(router *gin.Engine) {
	if h.frontendDir == "" {
		return
	}
	if info, err := os.Stat(h.frontendDir); err != nil || !info.IsDir() {
		h.logger.Warn("Frontend directory not found, pages disabled", zap.String("dir", h.frontendDir))
		return
	}

	router.Static("/static", h.frontendDir)

	// LoadHTMLGlob паникует, если шаблонов нет
	pattern := filepath.Join(h.frontendDir, "*.html")
	if matches, err := filepath.Glob(pattern); err != nil || len(matches) == 0 {
		h.logger.Warn("No HTML templates in frontend directory, pages disabled", zap.String("dir", h.frontendDir))
		return
	}
	router.LoadHTMLGlob(pattern)

	for path, name := range pages {
		router.GET(path, func(c *gin.Context) {
			c.HTML(http.StatusOK, name, nil)
		})
	}
}
