// Package imagestore hosts book cover images in an S3-compatible object
// store, addressed by durable public URLs.
package imagestore

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// Store is the image hosting contract used by the book service: upload a
// decoded image and get back a durable URL, delete by that URL, and check
// whether a URL points into this store at all.
type Store interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
	Hosts(url string) bool
}

// DecodePayload decodes the image field of a create request. Clients send
// either raw base64 or a data URI ("data:image/png;base64,...."). The
// returned content type comes from the URI when present, otherwise it is
// sniffed from the decoded bytes.
func DecodePayload(payload string) ([]byte, string, error) {
	contentType := ""

	if strings.HasPrefix(payload, "data:") {
		rest := strings.TrimPrefix(payload, "data:")
		meta, b64, ok := strings.Cut(rest, ",")
		if !ok {
			return nil, "", fmt.Errorf("invalid data uri")
		}
		contentType = strings.TrimSuffix(meta, ";base64")
		payload = b64
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("invalid base64 image payload: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image payload")
	}

	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return data, contentType, nil
}
