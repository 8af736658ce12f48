package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yeremiapane/geprek-app/utils"
)

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// FileStorage menyimpan file dan mengembalikan URL publiknya
type FileStorage interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
}

// LocalStorage menulis ke direktori lokal yang disajikan di /uploads
type LocalStorage struct {
	Dir     string
	BaseURL string
}

func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStorage) Upload(_ context.Context, name string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedImageExt[ext] {
		return "", newValidationError("image", "format gambar harus jpg, jpeg, png, atau webp")
	}
	if len(data) == 0 {
		return "", newValidationError("image", "file kosong")
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		utils.ErrorLogger.Errorf("Failed to create upload dir %s: %v", s.Dir, err)
		return "", persistenceError("create upload dir", err)
	}

	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	if err := os.WriteFile(filepath.Join(s.Dir, filename), data, 0o644); err != nil {
		utils.ErrorLogger.Errorf("Failed to save upload %s: %v", filename, err)
		return "", persistenceError("save upload", err)
	}

	utils.InfoLogger.Infof("Stored upload %s (%d bytes)", filename, len(data))
	return s.BaseURL + "/uploads/" + filename, nil
}
