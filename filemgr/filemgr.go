// Package filemgr stores uploaded images under static/uploads and produces
// thumbnails for listing pages.
package filemgr

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

type EntityType string

const EntityEvent EntityType = "event"

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

var (
	ErrInvalidExtension = errors.New("invalid file extension")
	ErrNoFile           = errors.New("no file in form")
)

const uploadRoot = "static/uploads"

// SaveFormFile stores the named form file under the entity's banner folder
// and writes a 300x200 thumbnail next to it. Returns the stored file name,
// or "" with no error when the field is absent.
func SaveFormFile(form *multipart.Form, field string, entity EntityType, id string) (string, error) {
	if form == nil || len(form.File[field]) == 0 {
		return "", nil
	}
	header := form.File[field][0]

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", ErrInvalidExtension
	}

	dir := filepath.Join(uploadRoot, string(entity), "banner")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := id + ext
	dst := filepath.Join(dir, name)
	if err := writeFile(header, dst); err != nil {
		return "", err
	}

	// The banner itself saved fine; a missing thumbnail is recoverable.
	if err := writeThumb(dst, filepath.Join(uploadRoot, string(entity), "thumb"), id); err != nil {
		log.Println("thumbnail generation failed:", err)
	}
	return name, nil
}

func writeFile(header *multipart.FileHeader, dst string) error {
	src, err := header.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func writeThumb(srcPath, dir, id string) error {
	img, err := imaging.Open(srcPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	thumb := imaging.Fill(img, 300, 200, imaging.Center, imaging.Lanczos)
	return imaging.Save(thumb, filepath.Join(dir, id+".jpg"))
}
