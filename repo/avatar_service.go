package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// telegramFileResponse represents the response from getFile.
type telegramFileResponse struct {
	Ok     bool `json:"ok"`
	Result struct {
		FileID   string `json:"file_id"`
		FileSize int    `json:"file_size"`
		FilePath string `json:"file_path"`
	} `json:"result"`
}

// AvatarService resolves Telegram photo file ids to publicly accessible
// URLs, so a member photo uploaded during the wizard can be stored as a
// plain URL on the member record.
type AvatarService struct {
	BotToken string
	BaseURL  string
}

func NewAvatarService(botToken string) *AvatarService {
	return &AvatarService{
		BotToken: botToken,
		BaseURL:  "https://api.telegram.org/bot",
	}
}

// ResolveFileURL converts a Telegram file ID to a download URL.
func (s *AvatarService) ResolveFileURL(ctx context.Context, fileID string) (string, error) {
	getFileURL := fmt.Sprintf("%s%s/getFile?file_id=%s", s.BaseURL, s.BotToken, fileID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, getFileURL, nil)
	if err != nil {
		return "", fmt.Errorf("error building getFile request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error getting file path: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	var fileResponse telegramFileResponse
	if err := json.Unmarshal(body, &fileResponse); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %w", err)
	}
	if !fileResponse.Ok || fileResponse.Result.FilePath == "" {
		return "", fmt.Errorf("couldn't retrieve file path for file ID: %s", fileID)
	}

	return fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", s.BotToken, fileResponse.Result.FilePath), nil
}
