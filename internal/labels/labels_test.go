package labels

import (
	"bytes"
	"image/png"
	"testing"
)

func TestRenderPNGProducesDecodableImage(t *testing.T) {
	t.Parallel()

	data, err := NewCode128Renderer().RenderPNG("Office Chair|4|Registrar|2026-08-31")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != labelWidth || bounds.Dy() != labelHeight {
		t.Fatalf("unexpected dimensions %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderPNGRejectsEmptyPayload(t *testing.T) {
	t.Parallel()

	if _, err := NewCode128Renderer().RenderPNG(""); err == nil {
		t.Fatal("expected error for empty payload")
	}
}
