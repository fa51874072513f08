package handlers_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intake/internal"
	"github.com/dmitrymomot/intake/internal/handlers"
	"github.com/dmitrymomot/intake/internal/notify"
	"github.com/dmitrymomot/intake/internal/relay"
	"github.com/dmitrymomot/intake/internal/submission"
	"github.com/dmitrymomot/intake/middlewares"
	"github.com/dmitrymomot/intake/pkg/htmx"
	"github.com/dmitrymomot/intake/pkg/storage"
)

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Put(ctx context.Context, r io.Reader, size int64, opts ...storage.Option) (*storage.FileInfo, error) {
	args := m.Called(ctx, size, storage.ResolveOptions(opts...))
	if fi, _ := args.Get(0).(*storage.FileInfo); fi != nil {
		return fi, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStorage) URL(key string) string { return m.Called(key).String(0) }

func (m *mockStorage) Ping(ctx context.Context) error { return m.Called(ctx).Error(0) }

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, msg notify.Message) error {
	return m.Called(ctx, msg).Error(0)
}

type env struct {
	app      *internal.App
	store    *mockStorage
	notifier *mockNotifier
}

func newEnv(t *testing.T) *env {
	t.Helper()

	store := &mockStorage{}
	notifier := &mockNotifier{}
	rl := relay.New(store)
	ctrl := submission.NewController(rl, notifier)

	app := internal.New(
		internal.WithErrorHandler(handlers.ErrorHandler),
		internal.WithNotFoundHandler(handlers.NotFound),
		internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
		internal.WithHandlers(
			handlers.NewPageHandler(),
			handlers.NewFormHandler(ctrl, rl.MaxSize()),
			handlers.NewUploadHandler(rl),
		),
	)
	return &env{app: app, store: store, notifier: notifier}
}

func (e *env) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.app.ServeHTTP(rec, req)
	return rec
}

type upload struct {
	name        string
	contentType string
	size        int
}

func multipartRequest(t *testing.T, target string, fields map[string]string, file *upload) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="resume"; filename="`+file.name+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte("x"), file.size))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func htmxRequest(req *http.Request) *http.Request {
	req.Header.Set(htmx.HeaderHXRequest, "true")
	return req
}
