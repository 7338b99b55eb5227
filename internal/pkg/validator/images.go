package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/dermocheck/backend/internal/config"
	"github.com/dermocheck/backend/internal/entity"
)

var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// Validator validates photo uploads against the configured limits.
type Validator struct {
	cfg config.ImageUploadConfig
}

func NewImageValidator(cfg config.ImageUploadConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateUpload validates a set of photo attachments.
func (v *Validator) ValidateUpload(files []*multipart.FileHeader) error {
	if len(files) == 0 {
		return fmt.Errorf("%w: images", entity.ErrMissingField)
	}

	if len(files) > v.cfg.MaxFileCount {
		return fmt.Errorf("%w: %d files (max %d)", entity.ErrTooManyImages, len(files), v.cfg.MaxFileCount)
	}

	var total int64
	for _, file := range files {
		if err := v.validateImage(file); err != nil {
			return err
		}
		total += file.Size
	}

	if total > v.cfg.MaxTotalSize {
		return fmt.Errorf("%w: %d bytes (max %d)", entity.ErrTotalSizeTooBig, total, v.cfg.MaxTotalSize)
	}

	return nil
}

// MIMEType resolves the attachment's MIME type from its extension,
// falling back to the declared content type.
func MIMEType(file *multipart.FileHeader) string {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if mime, ok := allowedImageTypes[ext]; ok {
		return mime
	}
	return file.Header.Get("Content-Type")
}

func (v *Validator) validateImage(file *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedImageTypes[ext]; !ok {
		return fmt.Errorf("%w: %s (allowed: jpg, jpeg, png, webp)", entity.ErrInvalidImage, ext)
	}

	if file.Size > v.cfg.MaxFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrImageTooLarge, file.Filename, file.Size, v.cfg.MaxFileSize)
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "" && contentType != allowedImageTypes[ext] && contentType != "application/octet-stream" {
		return fmt.Errorf("%w: content type '%s' does not match extension %s", entity.ErrInvalidImage, contentType, ext)
	}

	return nil
}
