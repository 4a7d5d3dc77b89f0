package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"wallpapers/internal/domain"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

const (
	DefaultMaxFileSize = 25 * 1024 * 1024 // 25 MB
	UploadsBaseDir     = "./uploads"
	StaticURLBase      = "/static/uploads"

	thumbnailMaxSide = 400
)

// AllowedMimeTypes defines which file types are accepted
var AllowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Upload is an incoming file, independent of the transport that delivered it.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// Service stores wallpaper images on local disk.
// save file -> thumbnail -> record in DB -> return record with URLs.
type Service struct {
	repo        Repository
	baseDir     string // root directory for stored files
	staticBase  string // URL prefix for serving files
	maxFileSize int64
	now         func() time.Time
}

func NewService(repo Repository, baseDir, staticBase string, maxFileSize int64) *Service {
	if baseDir == "" {
		baseDir = UploadsBaseDir
	}
	if staticBase == "" {
		staticBase = StaticURLBase
	}
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &Service{
		repo:        repo,
		baseDir:     baseDir,
		staticBase:  strings.TrimRight(staticBase, "/"),
		maxFileSize: maxFileSize,
		now:         time.Now,
	}
}

// Save writes the file and its thumbnail to disk and records them.
func (s *Service) Save(ctx context.Context, userID int64, up Upload) (*domain.Image, error) {
	if up.Content == nil || up.Size == 0 {
		return nil, ErrEmptyFile
	}
	if up.Size > s.maxFileSize {
		return nil, ErrFileTooLarge
	}

	// read one byte past the limit so a lying Size cannot smuggle a bigger file in
	data, err := io.ReadAll(io.LimitReader(up.Content, s.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(data)) > s.maxFileSize {
		return nil, ErrFileTooLarge
	}

	// Detect MIME type from content, not from the client's claim
	mimeType := http.DetectContentType(data)
	mimeType = strings.Split(mimeType, ";")[0]
	if !AllowedMimeTypes[mimeType] {
		return nil, ErrInvalidMimeType
	}

	// Build directory: uploads/YYYY/MM/DD/
	now := s.now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	id := uuid.New().String()
	ext := mimeToExt(mimeType)
	filename := fmt.Sprintf("%s_%s%s", id, sanitizeName(up.Filename), ext)
	relPath := filepath.Join(relDir, filename)

	if err := os.WriteFile(filepath.Join(s.baseDir, relPath), data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	img := &domain.Image{
		ID:           id,
		UserID:       userID,
		OriginalName: up.Filename,
		FilePath:     relPath,
		FileURL:      s.urlFor(relPath),
		MimeType:     mimeType,
		Size:         int64(len(data)),
		CreatedAt:    now,
	}

	// webp has no decoder in the standard library; it is stored without a thumbnail
	if decoded, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		b := decoded.Bounds()
		img.Width, img.Height = b.Dx(), b.Dy()

		thumbRel := filepath.Join(relDir, id+"_thumb.jpg")
		if err := writeThumbnail(filepath.Join(s.baseDir, thumbRel), decoded); err != nil {
			log.Printf("image: thumbnail failed id=%s err=%v", id, err)
		} else {
			img.ThumbPath = thumbRel
			img.ThumbnailURL = s.urlFor(thumbRel)
		}
	}

	if err := s.repo.Create(ctx, img); err != nil {
		s.removeFiles(img) // rollback files on DB error
		return nil, fmt.Errorf("failed to save image record: %w", err)
	}

	return img, nil
}

// GetByID returns image metadata by ID.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Image, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete removes the files and the DB record.
func (s *Service) Delete(ctx context.Context, id string) error {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.removeFiles(img)
	return s.repo.Delete(ctx, id)
}

func (s *Service) removeFiles(img *domain.Image) {
	_ = os.Remove(filepath.Join(s.baseDir, img.FilePath)) // file may already be gone
	if img.ThumbPath != "" {
		_ = os.Remove(filepath.Join(s.baseDir, img.ThumbPath))
	}
}

func (s *Service) urlFor(relPath string) string {
	return s.staticBase + "/" + filepath.ToSlash(relPath)
}

func writeThumbnail(path string, src image.Image) error {
	thumb := resize.Thumbnail(thumbnailMaxSide, thumbnailMaxSide, src, resize.Lanczos3)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := jpeg.Encode(f, thumb, &jpeg.Options{Quality: 85}); err != nil {
		f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name)) // strip extension (added separately)
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" || name == "_" {
		return "image"
	}
	return name
}

func mimeToExt(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
