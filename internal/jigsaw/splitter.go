// Package jigsaw turns one uploaded raster image into an N×N set of
// equally sized puzzle tiles, and packs finished tile sets into a
// downloadable zip archive.
package jigsaw

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Pipeline errors.
var (
	ErrEmptyInput = errors.New("no image payload")
	ErrDecode     = errors.New("input could not be decoded as an image")
)

// DefaultGridSize matches the event's standard 4×4 puzzle.
const DefaultGridSize = 4

// MaxGridSize bounds per-request grid overrides.
const MaxGridSize = 12

// Tile is one grid cell of a split source image: row-major position plus
// the PNG-encoded pixel payload. Immutable once created.
type Tile struct {
	Row int
	Col int
	PNG []byte
}

// DataURL renders the tile as an inline base64 data URL, the wire shape
// the split endpoint returns.
func (t Tile) DataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(t.PNG)
}

// Split partitions an image into grid×grid tiles of equal size.
//
// The usable square side is the minimum of the source dimensions and the
// source is resized directly to side×side. A non-square source is
// therefore stretched, not center-cropped; that matches the shipped
// behavior and changing it would change output geometry. The per-tile
// size is side/grid with the remainder pixels silently dropped.
//
// Tiles come back in row-major order, each re-encoded as PNG. Any tile
// failure aborts the whole call; no partial sets are returned.
func Split(data []byte, grid int) ([]Tile, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	if grid < 1 || grid > MaxGridSize {
		return nil, fmt.Errorf("grid size %d out of range 1..%d", grid, MaxGridSize)
	}

	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := src.Bounds()
	side := bounds.Dx()
	if bounds.Dy() < side {
		side = bounds.Dy()
	}
	pieceSize := side / grid
	if pieceSize < 1 {
		return nil, fmt.Errorf("image side %dpx too small for a %d×%d grid", side, grid, grid)
	}

	square := imaging.Resize(src, side, side, imaging.Lanczos)

	tiles := make([]Tile, 0, grid*grid)
	for row := 0; row < grid; row++ {
		for col := 0; col < grid; col++ {
			rect := image.Rect(
				col*pieceSize,
				row*pieceSize,
				(col+1)*pieceSize,
				(row+1)*pieceSize,
			)
			piece := imaging.Crop(square, rect)

			var buf bytes.Buffer
			if err := imaging.Encode(&buf, piece, imaging.PNG); err != nil {
				return nil, fmt.Errorf("encode tile %d,%d: %w", row, col, err)
			}
			tiles = append(tiles, Tile{Row: row, Col: col, PNG: buf.Bytes()})
		}
	}
	return tiles, nil
}

// DecodeDataURL reverses Tile.DataURL, accepting both prefixed data URLs
// and bare base64.
func DecodeDataURL(s string) ([]byte, error) {
	const prefix = "data:image/png;base64,"
	if len(s) >= len(prefix) && s[:len(prefix)] == prefix {
		s = s[len(prefix):]
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode piece payload: %w", err)
	}
	return raw, nil
}
