package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Errores que el handler traduce a respuestas 400.
var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
)

const maxFileSize = 10 << 20 // 10 MB

var allowedMIMETypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// LocalStore guarda archivos subidos en disco bajo un directorio raíz.
// El nombre final es un uuid, así dos subidas nunca colisionan.
type LocalStore struct {
	root   string
	logger *zap.Logger
}

func NewLocalStore(root string, logger *zap.Logger) (*LocalStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &LocalStore{root: root, logger: logger}, nil
}

// Save valida el tipo del archivo por contenido y lo escribe en disco.
// Devuelve la ruta relativa guardable en la base.
func (s *LocalStore) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > maxFileSize {
		return "", ErrFileTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return "", err
	}
	contentType := http.DetectContentType(head[:n])
	ext, ok := allowedMIMETypes[contentType]
	if !ok {
		return "", ErrUnsupportedType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	fullPath := filepath.Join(s.root, name)
	dst, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(fullPath)
		return "", err
	}
	return filepath.ToSlash(fullPath), nil
}

// SaveAll guarda un lote; si alguno falla borra los ya escritos.
func (s *LocalStore) SaveAll(fhs []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(fhs))
	for _, fh := range fhs {
		path, err := s.Save(fh)
		if err != nil {
			for _, written := range paths {
				s.Remove(written)
			}
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Remove borra el archivo si existe. Un archivo ya ausente no es un error:
// el borrado de disco y el de base no son atómicos y pueden quedar huérfanos.
func (s *LocalStore) Remove(path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	err := os.Remove(filepath.FromSlash(path))
	if err != nil && !os.IsNotExist(err) && s.logger != nil {
		s.logger.Warn("remove stored file failed", zap.String("path", path), zap.Error(err))
	}
}

// RemoveAll borra un lote de archivos, tolerando ausentes.
func (s *LocalStore) RemoveAll(paths []string) {
	for _, path := range paths {
		s.Remove(path)
	}
}

// Root devuelve el directorio raíz del store.
func (s *LocalStore) Root() string {
	return s.root
}
