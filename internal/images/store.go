package images

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/flowblog/flowblog/domain"
	"github.com/gabriel-vasile/mimetype"
)

const (
	featuredImageDir = "featured-images"
	profilePicDir    = "profile-pictures"

	featuredImageWidth  = 700
	featuredImageHeight = 450
	profilePicSize      = 500
)

// Store resizes uploaded images and keeps them on the local disk under
// baseDir, served by the HTTP layer at baseURL + "/uploads/".
type Store struct {
	baseDir string
	baseURL string
}

var _ domain.ImageStore = (*Store)(nil)

func NewStore(baseDir, baseURL string) *Store {
	return &Store{
		baseDir: baseDir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *Store) SaveFeaturedImage(ctx context.Context, postID int64, data []byte) (string, error) {
	filename := fmt.Sprintf("%d.png", postID)
	url, err := s.save(data, featuredImageDir, filename, featuredImageWidth, featuredImageHeight)
	if err != nil {
		return "", err
	}
	// cache buster, the filename stays stable across edits
	return fmt.Sprintf("%s?lastupdated=%d", url, time.Now().UnixMilli()), nil
}

func (s *Store) SaveProfilePicture(ctx context.Context, userID int64, data []byte) (string, error) {
	filename := fmt.Sprintf("%d.png", userID)
	url, err := s.save(data, profilePicDir, filename, profilePicSize, profilePicSize)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s?lastupdated=%d", url, time.Now().UnixMilli()), nil
}

// Remove deletes the file behind a public URL. URLs pointing anywhere but
// this store are left alone.
func (s *Store) Remove(ctx context.Context, url string) error {
	prefix := s.baseURL + "/uploads/"
	if !strings.HasPrefix(url, prefix) {
		return nil
	}

	relative := strings.TrimPrefix(url, prefix)
	if idx := strings.IndexByte(relative, '?'); idx >= 0 {
		relative = relative[:idx]
	}

	// the URL came from the database, but its file path must still stay
	// inside the uploads directory
	path := filepath.Join(s.baseDir, filepath.Clean("/"+relative))
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *Store) save(data []byte, dir, filename string, width, height int) (string, error) {
	if err := validateImage(data); err != nil {
		return "", err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", domain.ErrBadParamInput
	}
	resized := imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)

	targetDir := filepath.Join(s.baseDir, dir)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", err
	}
	if err := imaging.Save(resized, filepath.Join(targetDir, filename)); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, dir, filename), nil
}

// validateImage sniffs the actual content, the client-declared content type
// is not trusted.
func validateImage(data []byte) error {
	mtype := mimetype.Detect(data)
	if !mtype.Is("image/png") && !mtype.Is("image/jpeg") {
		return domain.ErrBadParamInput
	}
	return nil
}
