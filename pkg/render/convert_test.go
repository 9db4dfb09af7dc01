package render

import (
	"context"
	"testing"

	lgerrors "github.com/matzehuels/levelgraph/pkg/errors"
)

func TestConvertMissingBinary(t *testing.T) {
	orig := Converter
	Converter = "levelgraph-no-such-converter"
	t.Cleanup(func() { Converter = orig })

	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	if !lgerrors.Is(err, lgerrors.ErrCodeUnsupported) {
		t.Fatalf("ToPDF error = %v, want UNSUPPORTED", err)
	}
	if _, err := ToPNG(context.Background(), []byte("<svg/>"), 2); !lgerrors.Is(err, lgerrors.ErrCodeUnsupported) {
		t.Fatalf("ToPNG error = %v, want UNSUPPORTED", err)
	}
}

func TestConvertEmptyInput(t *testing.T) {
	if _, err := ToPNG(context.Background(), nil, 1); !lgerrors.Is(err, lgerrors.ErrCodeInvalidInput) {
		t.Errorf("ToPNG(nil) error = %v, want INVALID_INPUT", err)
	}
}
