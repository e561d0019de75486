package resume

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/jobdesk/jobdesk-api/internal/domain"
	"github.com/jobdesk/jobdesk-api/internal/pkg/id"
)

// allowed resume file extensions, lowercased.
var allowedExts = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

type Service interface {
	// Upload stores a resume file and returns a presigned link suitable for
	// use as an application's resume_link.
	Upload(ctx context.Context, userID, filename string, r io.Reader) (string, error)
	// Remove deletes the stored object a resume link points at. Links
	// outside the given user's prefix are ignored, so externally hosted
	// resume links pass through untouched.
	Remove(ctx context.Context, userID, link string) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	store  objectStore
	urlTTL time.Duration
}

func NewService(store objectStore, urlTTL time.Duration) Service {
	return &service{store: store, urlTTL: urlTTL}
}

func (s *service) Upload(ctx context.Context, userID, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := allowedExts[ext]
	if !ok {
		return "", fmt.Errorf("unsupported resume file type %q: %w", ext, domain.ErrBadRequest)
	}
	key := fmt.Sprintf("resumes/%s/%s%s", userID, id.New(), ext)
	if err := s.store.Upload(ctx, key, r, contentType); err != nil {
		return "", err
	}
	return s.store.PresignedURL(ctx, key, s.urlTTL)
}

func (s *service) Remove(ctx context.Context, userID, link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return nil
	}
	// Path-style addressing puts the bucket name ahead of the key.
	prefix := "resumes/" + userID + "/"
	path := strings.TrimPrefix(u.Path, "/")
	idx := strings.Index(path, prefix)
	if idx < 0 {
		return nil
	}
	return s.store.Delete(ctx, path[idx:])
}
