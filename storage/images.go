// Package storage keeps uploaded images on disk under a single static
// directory that the router serves back at /uploads.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
)

// MaxUploadSize caps uploaded image files at 2 MiB.
const MaxUploadSize = 2 << 20

type Images struct {
	dir string
	log *logrus.Logger
}

func NewImages(dir string, log *logrus.Logger) (*Images, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Images{dir: dir, log: log}, nil
}

func (im *Images) Dir() string { return im.dir }

// Save stores the upload as-is under a timestamp-prefixed name and returns
// that name.
func (im *Images) Save(fh *multipart.FileHeader) (string, error) {
	name := timestamped(fh.Filename)

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(im.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}

// SaveResized decodes the upload, scales it to width x height and stores only
// the resized copy, named "resized-" plus the timestamped original name.
func (im *Images) SaveResized(fh *multipart.FileHeader, width, height int) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	resized := imaging.Resize(img, width, height, imaging.Lanczos)

	name := "resized-" + timestamped(normalizeExt(fh.Filename))
	if err := imaging.Save(resized, filepath.Join(im.dir, name)); err != nil {
		return "", fmt.Errorf("save resized image: %w", err)
	}
	return name, nil
}

// Remove deletes a stored image by name. Failure is logged, never surfaced:
// a leaked file must not fail the request that replaced it.
func (im *Images) Remove(name string) {
	if name == "" {
		return
	}
	path := filepath.Join(im.dir, filepath.Base(name))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		im.log.WithField("image", name).WithError(err).Warn("failed to remove stored image")
	}
}

func timestamped(original string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(original))
}

// normalizeExt maps extensions imaging cannot encode to .jpg.
func normalizeExt(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".tif", ".tiff", ".bmp":
		return name
	default:
		return strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
	}
}
