// Package local stores uploaded files on the server's disk and issues
// JWT-signed download links for them.
package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/nexphase/nexcareer/pkg/filestore"
	"github.com/nexphase/nexcareer/pkg/result"
)

var (
	ErrExists      = errors.New("object already exists")
	ErrNotFound    = errors.New("object not found")
	ErrInvalidPath = errors.New("invalid object path")
)

// Signer issues and checks short-lived tokens bound to an object key.
type Signer interface {
	SignObject(key string, ttl time.Duration) (string, error)
	VerifyObject(token, key string) error
}

type Store struct {
	root      string
	publicURL string
	signer    Signer
}

var _ filestore.Service = (*Store)(nil)

// New stores objects below root. publicURL is the externally reachable
// prefix under which objects are served, e.g. http://host/api/v1/files.
func New(root, publicURL string, signer Signer) *Store {
	return &Store{root: root, publicURL: strings.TrimRight(publicURL, "/"), signer: signer}
}

func (s *Store) Upload(ctx context.Context, in filestore.UploadInput) result.Result[string] {
	full, key, err := s.resolve(in.Bucket, in.Path)
	if err != nil {
		return result.Fail[string](err)
	}
	if !in.Upsert {
		if _, err := os.Stat(full); err == nil {
			return result.Fail[string](fmt.Errorf("%w: %s", ErrExists, key))
		}
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return result.Fail[string](fmt.Errorf("prepare storage: %w", err))
	}
	if err := os.WriteFile(full, in.Data, 0o644); err != nil {
		return result.Fail[string](fmt.Errorf("store file: %w", err))
	}
	return result.Ok(s.objectURL(key))
}

func (s *Store) Delete(ctx context.Context, bucket, p string) result.Result[struct{}] {
	full, _, err := s.resolve(bucket, p)
	if err != nil {
		return result.Fail[struct{}](err)
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return result.Fail[struct{}](err)
	}
	return result.Ok(struct{}{})
}

func (s *Store) SignedURL(ctx context.Context, bucket, p string, expiresIn time.Duration) result.Result[string] {
	full, key, err := s.resolve(bucket, p)
	if err != nil {
		return result.Fail[string](err)
	}
	if _, err := os.Stat(full); err != nil {
		return result.Fail[string](ErrNotFound)
	}
	token, err := s.signer.SignObject(key, expiresIn)
	if err != nil {
		return result.Fail[string](err)
	}
	return result.Ok(s.objectURL(key) + "?token=" + url.QueryEscape(token))
}

// Open reads an object after checking its signed token.
func (s *Store) Open(bucket, p, token string) ([]byte, error) {
	full, key, err := s.resolve(bucket, p)
	if err != nil {
		return nil, err
	}
	if err := s.signer.VerifyObject(token, key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

func (s *Store) objectURL(key string) string {
	return s.publicURL + "/" + key
}

// resolve maps bucket/path onto the disk, refusing anything that would
// escape the bucket directory.
func (s *Store) resolve(bucket, p string) (full, key string, err error) {
	if bucket == "" || strings.ContainsAny(bucket, `/\`) || bucket == "." || bucket == ".." {
		return "", "", ErrInvalidPath
	}
	clean := path.Clean("/" + strings.ReplaceAll(p, `\`, "/"))
	if clean == "/" || strings.Contains(p, "..") {
		return "", "", ErrInvalidPath
	}
	clean = strings.TrimPrefix(clean, "/")
	key = bucket + "/" + clean
	return filepath.Join(s.root, bucket, filepath.FromSlash(clean)), key, nil
}
