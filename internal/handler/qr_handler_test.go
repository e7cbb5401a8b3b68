package handler

import (
	"bytes"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func qrRouter() *gin.Engine {
	h := NewQRHandler(testConfig(), zerolog.Nop())
	r := gin.New()
	r.GET("/qr", h.Generate)
	return r
}

func TestQRGeneratesPNG(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/qr?text=https://example.com/join", nil)
	rec := httptest.NewRecorder()
	qrRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type %q", ct)
	}

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("body is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != qrSize || img.Bounds().Dy() != qrSize {
		t.Fatalf("image %dx%d, want %dx%d", img.Bounds().Dx(), img.Bounds().Dy(), qrSize, qrSize)
	}
}

func TestQRDefaultsToGameURL(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/qr", nil)
	rec := httptest.NewRecorder()
	qrRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if _, err := png.Decode(bytes.NewReader(rec.Body.Bytes())); err != nil {
		t.Fatalf("body is not a PNG: %v", err)
	}
}

func TestQRRejectsNoTextNoDefault(t *testing.T) {
	cfg := testConfig()
	cfg.GameURL = ""
	h := NewQRHandler(cfg, zerolog.Nop())
	r := gin.New()
	r.GET("/qr", h.Generate)

	req := httptest.NewRequest(http.MethodGet, "/qr", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}
