package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Auditoria-api/internal/application/audit"
)

var _ audit.BlobStorage = (*LocalBlobStorage)(nil)

// LocalBlobStorage guarda los archivos de evidencia en disco local y los
// expone bajo baseURL (servidos como estáticos por el API).
type LocalBlobStorage struct {
	dir     string
	baseURL string
}

// NewLocalBlobStorage crea el directorio si no existe.
func NewLocalBlobStorage(dir, baseURL string) (*LocalBlobStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalBlobStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save escribe el contenido con un nombre único y devuelve la URL pública.
func (s *LocalBlobStorage) Save(ctx context.Context, name, contentType string, content io.Reader) (string, error) {
	ext := filepath.Ext(name)
	if ext == "" {
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		}
	}
	fileName := uuid.New().String() + ext
	f, err := os.Create(filepath.Join(s.dir, fileName))
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, content); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return s.baseURL + "/" + fileName, nil
}

// Delete borra el archivo referenciado por la URL. No es error que ya no exista.
func (s *LocalBlobStorage) Delete(ctx context.Context, url string) error {
	fileName := path.Base(url)
	if fileName == "." || fileName == "/" {
		return fmt.Errorf("invalid blob url: %s", url)
	}
	if err := os.Remove(filepath.Join(s.dir, fileName)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}
