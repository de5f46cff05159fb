// Package labels renders printable barcode labels for indents.
package labels

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

const (
	labelWidth  = 600
	labelHeight = 200
)

// Renderer produces a PNG label for the given payload string.
type Renderer interface {
	RenderPNG(payload string) ([]byte, error)
}

type code128Renderer struct{}

// NewCode128Renderer returns the Code128 label renderer used for
// non-consumable indents.
func NewCode128Renderer() Renderer {
	return code128Renderer{}
}

func (code128Renderer) RenderPNG(payload string) ([]byte, error) {
	if payload == "" {
		return nil, fmt.Errorf("empty label payload")
	}

	code, err := code128.Encode(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding barcode: %w", err)
	}
	scaled, err := barcode.Scale(code, labelWidth, labelHeight)
	if err != nil {
		return nil, fmt.Errorf("scaling barcode: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("encoding label png: %w", err)
	}
	return buf.Bytes(), nil
}
