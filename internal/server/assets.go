package server

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/storefront/internal/upload"
	"github.com/smallbiznis/storefront/internal/validation"
	"go.uber.org/zap"
)

const (
	assetCacheControl = "public, max-age=86400"
	// Served files render as plain documents: no script, no subresources.
	assetContentSecurityPolicy = "default-src 'none'; style-src 'unsafe-inline'; sandbox"
)

var assetContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
	".txt":  "text/plain",
}

func assetContentType(name string) string {
	if ct, ok := assetContentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// serveFrom serves single files from dir. Names that would leave dir are
// reported as missing.
func (s *Server) serveFrom(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("filename")
		if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
			AbortWithError(c, ErrNotFound)
			return
		}

		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				s.log.Warn("asset stat failed", zap.String("file", name), zap.Error(err))
			}
			AbortWithError(c, ErrNotFound)
			return
		}

		c.Header("Cache-Control", assetCacheControl)
		c.Header("Content-Type", assetContentType(name))
		c.Header("Content-Security-Policy", assetContentSecurityPolicy)
		c.Header("X-Content-Type-Options", "nosniff")
		c.File(path)
	}
}

func (s *Server) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.uploads.MaxBytes()+1<<20)

	fh, err := c.FormFile(upload.FieldName)
	if err != nil {
		AbortWithError(c, validation.NewError(upload.FieldName, "required", "No file uploaded"))
		return
	}

	name, err := s.uploads.Save(c.Request.Context(), fh)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "File uploaded successfully",
		"imageUrl": name,
	})
}
