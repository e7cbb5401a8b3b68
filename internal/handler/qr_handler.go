package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/Alka-null/nbcc2026gamesweb/internal/config"
	"github.com/Alka-null/nbcc2026gamesweb/internal/response"
)

const qrSize = 320

// QRHandler renders QR codes pointing players at the game.
type QRHandler struct {
	cfg *config.Config
	log zerolog.Logger
}

// NewQRHandler creates a new QRHandler.
func NewQRHandler(cfg *config.Config, log zerolog.Logger) *QRHandler {
	return &QRHandler{
		cfg: cfg,
		log: log.With().Str("component", "qr_handler").Logger(),
	}
}

// Generate godoc
// GET /api/v1/qr
// Returns a PNG QR code for the "text" query parameter, defaulting to
// the configured game URL.
func (h *QRHandler) Generate(c *gin.Context) {
	text := strings.TrimSpace(c.Query("text"))
	if text == "" {
		text = h.cfg.GameURL
	}
	if text == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrEmptyInput)
		return
	}

	png, err := qrcode.Encode(text, qrcode.Medium, qrSize)
	if err != nil {
		h.log.Error().Err(err).Msg("QR encode failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
