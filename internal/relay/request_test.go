package relay_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intake/internal/relay"
)

func multipartRequest(t *testing.T, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("name", "Alice"))
	if field != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestParseMultipart(t *testing.T) {
	t.Parallel()

	t.Run("declared type and size", func(t *testing.T) {
		t.Parallel()
		req := multipartRequest(t, relay.FieldName, "cv.pdf", "application/pdf", []byte("%PDF-1.4"))
		in, err := relay.ParseMultipart(httptest.NewRecorder(), req, relay.DefaultMaxSize)
		require.NoError(t, err)

		f, err := in.File(relay.FieldName)
		require.NoError(t, err)
		defer f.Close()

		assert.Equal(t, "Alice", in.Value("name"))
		assert.Equal(t, "cv.pdf", f.Name)
		assert.Equal(t, "application/pdf", f.ContentType)
		assert.Equal(t, int64(8), f.Size)
		data, err := io.ReadAll(f.Content)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4", string(data))
	})

	t.Run("missing field", func(t *testing.T) {
		t.Parallel()
		req := multipartRequest(t, "", "", "", nil)
		in, err := relay.ParseMultipart(httptest.NewRecorder(), req, relay.DefaultMaxSize)
		require.NoError(t, err)

		_, err = in.File(relay.FieldName)
		require.ErrorIs(t, err, relay.ErrMissingFile)
	})

	t.Run("file over limit keeps fields and size", func(t *testing.T) {
		t.Parallel()
		req := multipartRequest(t, relay.FieldName, "big.pdf", "application/pdf", bytes.Repeat([]byte("a"), 4096))
		in, err := relay.ParseMultipart(httptest.NewRecorder(), req, 1024)
		require.NoError(t, err)

		assert.Equal(t, "Alice", in.Value("name"))
		f, err := in.File(relay.FieldName)
		require.NoError(t, err)
		assert.Equal(t, int64(4096), f.Size)
		data, err := io.ReadAll(f.Content)
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("file cut off by the body cap", func(t *testing.T) {
		t.Parallel()
		payload := bytes.Repeat([]byte("a"), (1<<20)+4096)
		req := multipartRequest(t, relay.FieldName, "big.pdf", "application/pdf", payload)

		in, err := relay.ParseMultipart(httptest.NewRecorder(), req, 1024)
		require.NoError(t, err)
		assert.Equal(t, "Alice", in.Value("name"))

		f, err := in.File(relay.FieldName)
		require.NoError(t, err)
		assert.Greater(t, f.Size, int64(1024))

		_, err = relay.New(&mockStorage{}, relay.WithMaxSize(1024)).Upload(context.Background(), f)
		require.ErrorIs(t, err, relay.ErrFileTooLarge)
	})

	t.Run("text over the body cap is too large", func(t *testing.T) {
		t.Parallel()
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		require.NoError(t, mw.WriteField("name", "Alice"))
		require.NoError(t, mw.WriteField("notes", strings.Repeat("a", (1<<20)+4096)))
		require.NoError(t, mw.Close())
		req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		in, err := relay.ParseMultipart(httptest.NewRecorder(), req, 1024)
		require.ErrorIs(t, err, relay.ErrFileTooLarge)
		assert.Equal(t, relay.MsgFileTooLarge, relay.AsError(err).Message)
		assert.Equal(t, "Alice", in.Value("name"))
	})

	t.Run("not multipart", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		in, err := relay.ParseMultipart(httptest.NewRecorder(), req, relay.DefaultMaxSize)
		require.ErrorIs(t, err, relay.ErrMissingFile)
		require.NotNil(t, in)
	})

	t.Run("url-encoded values survive", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/apply/contact", strings.NewReader("name=Bob"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		in, err := relay.ParseMultipart(httptest.NewRecorder(), req, relay.DefaultMaxSize)
		require.ErrorIs(t, err, relay.ErrMissingFile)
		assert.Equal(t, "Bob", in.Value("name"))
	})
}
