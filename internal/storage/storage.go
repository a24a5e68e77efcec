// Package storage places uploaded item archives on durable storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"trtlmarket/internal/config"
)

// Location is where one upload is stored.
type Location struct {
	// Dir is <base>/<user id>.
	Dir string
	// Name is <base name>-<unix timestamp>[.<extension>].
	Name string
}

// Path joins Dir and Name.
func (l Location) Path() string {
	return filepath.Join(l.Dir, l.Name)
}

// Key returns Path as a slash separated object key without leading "./" or "/".
func (l Location) Key() string {
	key := filepath.ToSlash(l.Path())
	key = strings.TrimPrefix(key, "./")
	return strings.TrimLeft(key, "/")
}

// Destination computes the storage location of an upload. It depends only on its arguments.
// The extension is whatever follows the last dot of the declared name, of any length.
func Destination(base string, userID uint, original string, now time.Time) Location {
	name := filepath.Base(strings.ReplaceAll(original, `\`, "/"))
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if stem == "" || stem == "." || stem == "/" {
		stem = "file"
	}

	stored := stem + "-" + strconv.FormatInt(now.Unix(), 10)
	if ext != "" && ext != "." {
		stored += ext
	}

	return Location{
		Dir:  filepath.Join(base, strconv.FormatUint(uint64(userID), 10)),
		Name: stored,
	}
}

// Store persists and removes upload contents.
type Store interface {
	Save(ctx context.Context, loc Location, r io.ReadSeeker, size int64, contentType string) error
	Remove(ctx context.Context, loc Location) error
}

// New returns the backend selected by cfg.StorageDriver.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StorageDriver {
	case "local", "":
		return NewLocalStore(), nil
	case "s3":
		return NewS3Store(ctx, S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	case "cloudinary":
		return NewCloudinaryStore(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
