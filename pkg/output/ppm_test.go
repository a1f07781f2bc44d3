package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestPPMWriter(t *testing.T) {
	var buf bytes.Buffer
	sink := NewPPMWriter(&buf)

	if err := sink.Begin(2, 1); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := sink.WritePixel(core.NewColor(0.999, 0, 0.5)); err != nil {
		t.Fatalf("WritePixel failed: %v", err)
	}
	if err := sink.WritePixel(core.NewColor(0, 0.25, 0)); err != nil {
		t.Fatalf("WritePixel failed: %v", err)
	}
	if err := sink.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}

	expected := "P3\n2 1\n255\n255 0 128\n0 64 0\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestPPMWriter_PixelCount(t *testing.T) {
	tests := []struct {
		name   string
		pixels int
	}{
		{"too few", 1},
		{"too many", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := NewPPMWriter(&bytes.Buffer{})
			if err := sink.Begin(2, 1); err != nil {
				t.Fatalf("Begin failed: %v", err)
			}

			var err error
			for i := 0; i < tt.pixels && err == nil; i++ {
				err = sink.WritePixel(core.NewColor(0, 0, 0))
			}
			if err == nil {
				err = sink.End()
			}
			if !errors.Is(err, ErrPixelCount) {
				t.Errorf("Expected ErrPixelCount, got %v", err)
			}
		})
	}
}

type closeCounter struct {
	bytes.Buffer
	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestPPMWriter_Close(t *testing.T) {
	w := &closeCounter{}
	sink := NewPPMWriter(w)
	if err := sink.Begin(2, 2); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := sink.WritePixel(core.NewColor(0, 0, 0)); err != nil {
		t.Fatalf("WritePixel failed: %v", err)
	}

	// Abandoned mid-frame
	if err := sink.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if w.closed != 1 {
		t.Errorf("Expected underlying writer closed once, got %d", w.closed)
	}

	w = &closeCounter{}
	sink = NewPPMWriter(w)
	sink.Begin(1, 1)
	sink.WritePixel(core.NewColor(0, 0, 0))
	if err := sink.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}
	sink.Close()
	if w.closed != 1 {
		t.Errorf("Expected End then Close to close once, got %d", w.closed)
	}
}

func TestPPMWriter_InvalidSize(t *testing.T) {
	sink := NewPPMWriter(&bytes.Buffer{})
	if err := sink.Begin(0, 5); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Expected ErrInvalidSize, got %v", err)
	}
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		file    string
		wantErr error
	}{
		{"out.ppm", nil},
		{"out.PNG", nil},
		{"out.jpg", ErrUnsupportedFormat},
		{"noext", ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			sink, err := Create(path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}

			if err := sink.Begin(1, 1); err != nil {
				t.Fatalf("Begin failed: %v", err)
			}
			if err := sink.WritePixel(core.NewColor(0.5, 0.5, 0.5)); err != nil {
				t.Fatalf("WritePixel failed: %v", err)
			}
			if err := sink.End(); err != nil {
				t.Fatalf("End failed: %v", err)
			}

			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("Expected file to exist: %v", err)
			}
			if info.Size() == 0 {
				t.Error("Expected non-empty output file")
			}
		})
	}
}
