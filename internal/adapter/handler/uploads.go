package handler

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
)

const (
	maxUploadMemory = 10 << 20 // 10 MiB parse buffer
	maxProductPics  = 5
)

var errUnsupportedImageType = errors.New("unsupported image type")

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Uploads stores multipart image files on local disk and hands back the
// public URL paths they are served under.
type Uploads struct {
	dir string
}

func NewUploads(dir string) (*Uploads, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Uploads{dir: dir}, nil
}

func (u *Uploads) Dir() string {
	return u.dir
}

// SaveImages persists every file under the given form field. Filenames
// are regenerated so client-supplied names never touch the filesystem.
func (u *Uploads) SaveImages(r *http.Request, field string, limit int) ([]string, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}
	if r.MultipartForm == nil {
		return nil, nil
	}

	headers := r.MultipartForm.File[field]
	if limit > 0 && len(headers) > limit {
		return nil, fmt.Errorf("at most %d images allowed", limit)
	}

	var urls []string
	for _, header := range headers {
		url, err := u.saveOne(header)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// SaveImage persists a single file, for endpoints that take exactly one.
func (u *Uploads) SaveImage(r *http.Request, field string) (string, error) {
	urls, err := u.SaveImages(r, field, 1)
	if err != nil {
		return "", err
	}
	if len(urls) == 0 {
		return "", errors.New("no file uploaded")
	}
	return urls[0], nil
}

func (u *Uploads) saveOne(header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		return "", errUnsupportedImageType
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(u.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return "/uploads/" + name, nil
}

// Remove deletes a previously stored file given its public URL path.
// A missing file is not an error; the reference is already gone.
func (u *Uploads) Remove(url string) error {
	name := filepath.Base(url)
	err := os.Remove(filepath.Join(u.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
