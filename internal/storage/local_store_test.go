package storage

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func multipartHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse multipart: %v", err)
	}
	files := req.MultipartForm.File[field]
	if len(files) == 0 {
		t.Fatalf("no file headers parsed")
	}
	return files[0]
}

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestLocalStoreSaveAndRemove(t *testing.T) {
	store := newTestStore(t)

	fh := multipartHeader(t, "image", "photo.png", pngBytes(t))
	path, err := store.Save(fh)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Ext(path) != ".png" {
		t.Fatalf("expected .png extension, got %q", path)
	}
	if _, err := os.Stat(filepath.FromSlash(path)); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}

	store.Remove(path)
	if _, err := os.Stat(filepath.FromSlash(path)); !os.IsNotExist(err) {
		t.Fatalf("expected file removed")
	}

	// Borrar un archivo ya ausente no debe reventar.
	store.Remove(path)
}

func TestLocalStoreSaveRejectsUnsupportedType(t *testing.T) {
	store := newTestStore(t)

	// El contenido manda, no la extensión del nombre.
	fh := multipartHeader(t, "image", "evil.png", []byte("#!/bin/sh\necho hi\n"))
	if _, err := store.Save(fh); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}

	entries, err := os.ReadDir(store.Root())
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("rejected file must not be written to disk")
	}
}

func TestLocalStoreSaveUniqueNames(t *testing.T) {
	store := newTestStore(t)
	content := pngBytes(t)

	first, err := store.Save(multipartHeader(t, "image", "same.png", content))
	if err != nil {
		t.Fatalf("save first: %v", err)
	}
	second, err := store.Save(multipartHeader(t, "image", "same.png", content))
	if err != nil {
		t.Fatalf("save second: %v", err)
	}
	if first == second {
		t.Fatalf("expected unique names for identical uploads")
	}
}

func TestLocalStoreSaveAllRollsBackOnFailure(t *testing.T) {
	store := newTestStore(t)

	fhs := []*multipart.FileHeader{
		multipartHeader(t, "images", "ok.png", pngBytes(t)),
		multipartHeader(t, "images", "bad.png", []byte("not an image at all")),
	}
	if _, err := store.SaveAll(fhs); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}

	entries, err := os.ReadDir(store.Root())
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected rollback of already-written files, found %d", len(entries))
	}
}

func TestLocalStoreRemoveAll(t *testing.T) {
	store := newTestStore(t)

	paths, err := store.SaveAll([]*multipart.FileHeader{
		multipartHeader(t, "images", "a.png", pngBytes(t)),
		multipartHeader(t, "images", "b.png", pngBytes(t)),
	})
	if err != nil {
		t.Fatalf("save all: %v", err)
	}
	store.RemoveAll(paths)
	for _, p := range paths {
		if _, err := os.Stat(filepath.FromSlash(p)); !os.IsNotExist(err) {
			t.Fatalf("expected %s removed", p)
		}
	}
}
