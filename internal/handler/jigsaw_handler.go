package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Alka-null/nbcc2026gamesweb/internal/backend"
	"github.com/Alka-null/nbcc2026gamesweb/internal/config"
	"github.com/Alka-null/nbcc2026gamesweb/internal/jigsaw"
	"github.com/Alka-null/nbcc2026gamesweb/internal/response"
	"github.com/Alka-null/nbcc2026gamesweb/internal/validator"
)

// JigsawHandler drives the upload → split → download/forward pipeline.
// Each action is an independent user-triggered request; the piece set
// itself lives in the browser between actions.
type JigsawHandler struct {
	client *backend.Client
	cfg    *config.Config
	log    zerolog.Logger
}

// NewJigsawHandler creates a new JigsawHandler.
func NewJigsawHandler(client *backend.Client, cfg *config.Config, log zerolog.Logger) *JigsawHandler {
	return &JigsawHandler{
		client: client,
		cfg:    cfg,
		log:    log.With().Str("component", "jigsaw_handler").Logger(),
	}
}

// Split godoc
// POST /api/v1/jigsaw/split
// Accepts a multipart form with one "image" field and an optional "grid"
// override, and returns the row-major tile set as inline data URLs.
func (h *JigsawHandler) Split(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrEmptyInput)
		return
	}
	defer file.Close()

	if header.Size > h.cfg.MaxUploadBytes {
		response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
		return
	}

	grid := h.cfg.JigsawGridSize
	if raw := c.PostForm("grid"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > jigsaw.MaxGridSize {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidGrid)
			return
		}
		grid = parsed
	}

	data, err := io.ReadAll(io.LimitReader(file, h.cfg.MaxUploadBytes+1))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if int64(len(data)) > h.cfg.MaxUploadBytes {
		response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
		return
	}

	tiles, err := jigsaw.Split(data, grid)
	if err != nil {
		switch {
		case errors.Is(err, jigsaw.ErrEmptyInput):
			response.Fail(c, http.StatusBadRequest, response.ErrEmptyInput)
		case errors.Is(err, jigsaw.ErrDecode):
			response.Fail(c, http.StatusBadRequest, response.ErrImageDecode)
		default:
			h.log.Error().Err(err).Msg("Tile extraction failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	pieces := make([]string, 0, len(tiles))
	for _, t := range tiles {
		pieces = append(pieces, t.DataURL())
	}

	response.Success(c, http.StatusOK, gin.H{
		"grid":   grid,
		"pieces": pieces,
	})
}

// PiecesRequest carries a finished tile set as base64 data URLs,
// row-major order.
type PiecesRequest struct {
	Pieces []string `json:"pieces" binding:"required,min=1"`
}

// Archive godoc
// POST /api/v1/jigsaw/archive
// Packs the posted tile set into one zip archive and streams it as a
// download. Entries keep the input order under piece_N.png names.
func (h *JigsawHandler) Archive(c *gin.Context) {
	var req PiecesRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	payloads := make([][]byte, 0, len(req.Pieces))
	for _, p := range req.Pieces {
		raw, err := jigsaw.DecodeDataURL(p)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		payloads = append(payloads, raw)
	}

	archive, err := jigsaw.Pack(payloads)
	if err != nil {
		h.log.Error().Err(err).Msg("Archive pack failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrArchivePack)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+jigsaw.ArchiveName+`"`)
	c.Data(http.StatusOK, "application/zip", archive)
}

// Forward godoc
// POST /api/v1/admin/jigsaw/forward
// Sends the posted tile set to the remote backend's puzzle storage.
func (h *JigsawHandler) Forward(c *gin.Context) {
	var req PiecesRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.client.UploadJigsawPieces(c.Request.Context(), req.Pieces); err != nil {
		failBackend(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"forwarded": len(req.Pieces)})
}
