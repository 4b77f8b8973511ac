package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farhanputra/event-management-backend/config"
)

var allowedExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {},
	".pdf": {}, ".doc": {}, ".docx": {},
}

// SaveUploadedFile stores a multipart upload under the configured upload
// directory with a uuid-prefixed name and returns the public URL.
func SaveUploadedFile(c *gin.Context, file *multipart.FileHeader, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("file type %s is not allowed", ext)
	}

	dir := filepath.Join(config.UploadPath, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	filename := uuid.New().String() + ext
	dst := filepath.Join(dir, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	return config.BaseURL + "/uploads/" + subdir + "/" + filename, nil
}
