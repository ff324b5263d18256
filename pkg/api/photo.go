package api

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Photo is a decoded profile photo
type Photo struct {
	ContentType string
	Data        []byte
}

// ParsePhotoDataURL decodes a "data:<type>;base64,<payload>" string as
// returned by the photo endpoint. An empty string yields a nil photo.
func ParsePhotoDataURL(s string) (*Photo, error) {
	if s == "" {
		return nil, nil
	}

	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, fmt.Errorf("photo is not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("photo data URL has no payload")
	}
	contentType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, fmt.Errorf("photo data URL is not base64 encoded")
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode photo: %w", err)
	}

	return &Photo{ContentType: contentType, Data: data}, nil
}

// Extension returns a file extension for the photo's content type
func (p *Photo) Extension() string {
	switch p.ContentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
