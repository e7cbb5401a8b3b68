package jigsaw

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
)

// ErrPack reports a failure of the underlying archive writer.
var ErrPack = errors.New("archive pack failed")

// ArchiveName is the download filename for a packed tile set.
const ArchiveName = "jigsaw_pieces.zip"

// Pack serializes tile payloads into one zip archive, one entry per
// payload named piece_1.png … piece_n.png in input order. Entries are
// never reordered or dropped; the output unzips with standard tools.
func Pack(payloads [][]byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for i, p := range payloads {
		entry, err := zw.Create(fmt.Sprintf("piece_%d.png", i+1))
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrPack, i+1, err)
		}
		if _, err := entry.Write(p); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrPack, i+1, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPack, err)
	}
	return buf.Bytes(), nil
}
