package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	pkghttp "github.com/dermocheck/backend/pkg/http"
)

const (
	maxPhotoFileSize = 5 * 1024 * 1024 // 5 MB
	downloadTimeout  = 30 * time.Second
)

var secureHTTPClient = pkghttp.NewClient(
	pkghttp.WithRequestTimeout(downloadTimeout),
)

// largestPhoto picks the highest-resolution rendition Telegram offers.
func largestPhoto(photos []tgbotapi.PhotoSize) *tgbotapi.PhotoSize {
	if len(photos) == 0 {
		return nil
	}
	best := photos[0]
	for _, p := range photos[1:] {
		if p.Width*p.Height > best.Width*best.Height {
			best = p
		}
	}
	return &best
}

// downloadPhoto fetches one photo's bytes from Telegram's file API.
// Telegram recompresses chat photos to JPEG.
func downloadPhoto(ctx context.Context, bot *tgbotapi.BotAPI, fileID string) ([]byte, error) {
	file, err := bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file info: %w", err)
	}

	if file.FileSize > maxPhotoFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", file.FileSize, maxPhotoFileSize)
	}

	fileURL := file.Link(bot.Token)

	parsedURL, err := url.Parse(fileURL)
	if err != nil {
		return nil, fmt.Errorf("invalid file URL: %w", err)
	}
	if parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("insecure URL scheme: %s (expected https)", parsedURL.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := secureHTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read file data: %w", err)
	}
	if len(data) > maxPhotoFileSize {
		return nil, fmt.Errorf("file too large: over %d bytes", maxPhotoFileSize)
	}

	return data, nil
}
