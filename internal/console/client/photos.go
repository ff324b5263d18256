package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"

	"github.com/chiquitav2/user-console/pkg/api"
	"github.com/chiquitav2/user-console/pkg/errors"
)

// photoField is the multipart field name the upload endpoint reads
const photoField = "photo"

// UploadPhoto replaces the current user's profile photo. The part's content
// type is sniffed from the data; the server only accepts images.
func (c *Client) UploadPhoto(ctx context.Context, filename string, r io.Reader) (*api.Response[string], error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewInputError("failed to read photo", err)
	}

	body, contentType, err := multipartPhoto(filepath.Base(filename), data)
	if err != nil {
		return nil, err
	}

	return Request[string](ctx, c, "/api/photo/upload", &RequestOptions{
		Method:  http.MethodPost,
		Headers: map[string]string{HeaderContentType: contentType},
		Body:    body,
	})
}

// CurrentPhoto fetches the current user's photo as a data URL. Data is empty
// when the user has no photo.
func (c *Client) CurrentPhoto(ctx context.Context) (*api.Response[string], error) {
	return Request[string](ctx, c, "/api/photo/current/base64", nil)
}

// DeletePhoto removes the current user's photo.
func (c *Client) DeletePhoto(ctx context.Context) (*api.Response[string], error) {
	return Request[string](ctx, c, "/api/photo/current", &RequestOptions{Method: http.MethodDelete})
}

func multipartPhoto(filename string, data []byte) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, photoField, filename))
	h.Set("Content-Type", http.DetectContentType(data))

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", errors.NewInputError("failed to create multipart body", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", errors.NewInputError("failed to write multipart body", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", errors.NewInputError("failed to finalize multipart body", err)
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}
