// Package media loads screenshots and prepares bitmaps for the renderers.
package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/glid-app/studio/config"
)

// MaxBytes caps a single upload.
const MaxBytes = 32 << 20

// Load validates and decodes an upload. The declared MIME type is checked
// first; the content is then sniffed and must be an image as well.
func Load(name, declared string, data []byte) (*config.Source, error) {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if i := strings.IndexByte(declared, ';'); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if declared != "" && declared != "application/octet-stream" && !strings.HasPrefix(declared, "image/") {
		return nil, &InvalidInputError{Name: name, MIME: declared, Reason: "declared type is not an image"}
	}
	if len(data) == 0 {
		return nil, &InvalidInputError{Name: name, MIME: declared, Reason: "empty file"}
	}
	if len(data) > MaxBytes {
		return nil, &InvalidInputError{Name: name, MIME: declared, Reason: fmt.Sprintf("larger than %d bytes", MaxBytes)}
	}

	kind, err := filetype.Match(data)
	if err != nil {
		return nil, &InvalidInputError{Name: name, MIME: declared, Reason: "cannot read content", Err: err}
	}
	if kind == filetype.Unknown {
		// image/svg+xml and friends are images, just not ones we can rasterize.
		if strings.HasPrefix(declared, "image/") {
			return nil, &InvalidInputError{Name: name, MIME: declared, Reason: "unsupported image format"}
		}
		return nil, &InvalidInputError{Name: name, MIME: declared, Reason: "content is not an image"}
	}
	if !filetype.IsImage(data) {
		return nil, &InvalidInputError{Name: name, MIME: declared, Reason: "content is not an image"}
	}
	sniffed := kind.MIME.Value
	if declared == "" || declared == "application/octet-stream" {
		declared = sniffed
	}

	img, err := decode(sniffed, data)
	if err != nil {
		return nil, &InvalidInputError{Name: name, MIME: declared, Reason: "cannot decode", Err: err}
	}
	return &config.Source{
		Name:    name,
		MIME:    declared,
		Bytes:   data,
		DataURI: DataURI(declared, data),
		Image:   img,
	}, nil
}

func decode(mimeType string, data []byte) (image.Image, error) {
	if mimeType == "image/webp" {
		return webp.Decode(bytes.NewReader(data))
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// LoadFile reads path and declares its MIME type from the extension.
func LoadFile(path string) (*config.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Load(filepath.Base(path), mime.TypeByExtension(strings.ToLower(filepath.Ext(path))), data)
}

// DataURI encodes data as a base64 data URI.
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURI splits a base64 data URI into MIME type and bytes.
func ParseDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data URI has no payload")
	}
	mimeType, enc, _ := strings.Cut(meta, ";")
	if enc != "base64" {
		return "", nil, fmt.Errorf("data URI is not base64")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URI: %w", err)
	}
	return mimeType, data, nil
}

// Result is delivered once by LoadAsync.
type Result struct {
	Source *config.Source
	Err    error
}

// LoadAsync decodes in the background. The returned channel is buffered
// and receives exactly one Result, even if ctx is cancelled first.
func LoadAsync(ctx context.Context, logger *slog.Logger, name, declared string, data []byte) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		if err := ctx.Err(); err != nil {
			out <- Result{Err: err}
			return
		}
		src, err := Load(name, declared, data)
		if err != nil && logger != nil {
			logger.Warn("image rejected", "name", name, "error", err)
		}
		out <- Result{Source: src, Err: err}
	}()
	return out
}
