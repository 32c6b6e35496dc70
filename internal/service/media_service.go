package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/biocomp/qbank-backend/internal/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Sentinel errors for media uploads.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// Images that may be embedded in stems, options and materials.
var allowedMIMETypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// MediaService stores images referenced from rich-text content.
type MediaService struct {
	uploadDir string
	maxBytes  int64
	log       zerolog.Logger
}

// NewMediaService creates a new MediaService.
func NewMediaService(uploadDir string, maxBytes int64, log zerolog.Logger) *MediaService {
	return &MediaService{
		uploadDir: uploadDir,
		maxBytes:  maxBytes,
		log:       logger.Component(log, "media_service"),
	}
}

// SaveUpload sniffs the file type, stores it under a random name and returns
// its public path below /uploads.
func (s *MediaService) SaveUpload(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > s.maxBytes {
		return "", fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, header.Size, s.maxBytes)
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	contentType := http.DetectContentType(head[:n])
	ext, ok := allowedMIMETypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s (allowed: %s)",
			ErrUnsupportedFileType, contentType, strings.Join(allowedTypes(), ", "))
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	filename := uuid.New().String() + ext
	path := filepath.Join(s.uploadDir, filename)
	written, err := s.writeFile(path, io.MultiReader(bytes.NewReader(head[:n]), file))
	if err != nil {
		return "", err
	}
	s.log.Info().Str("file", filename).Int64("bytes", written).Str("content_type", contentType).Msg("Media uploaded")
	return "/uploads/" + filename, nil
}

// writeFile copies at most maxBytes from r into path. The file is removed
// when the copy, the size check or the close fails.
func (s *MediaService) writeFile(path string, r io.Reader) (written int64, err error) {
	dst, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	written, err = io.Copy(dst, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return 0, fmt.Errorf("write file: %w", err)
	}
	if written > s.maxBytes {
		return 0, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, s.maxBytes)
	}
	return written, nil
}

func allowedTypes() []string {
	types := make([]string, 0, len(allowedMIMETypes))
	for t := range allowedMIMETypes {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
