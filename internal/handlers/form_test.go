package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intake/internal/handlers"
	"github.com/dmitrymomot/intake/internal/notify"
	"github.com/dmitrymomot/intake/pkg/htmx"
	"github.com/dmitrymomot/intake/pkg/storage"
)

func jsonDecode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func TestPages(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	rec := e.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hx-post="/apply/application"`)
	assert.Contains(t, rec.Body.String(), "<!DOCTYPE html>")

	rec = e.do(httptest.NewRequest(http.MethodGet, "/contact", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hx-post="/apply/contact"`)

	rec = e.do(htmxRequest(httptest.NewRequest(http.MethodGet, "/contact", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<!DOCTYPE html>")
}

func TestSubmit_InvalidMakesNoCalls(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	fields := map[string]string{"name": "Al", "dob": "2000-01-01", "college": "X", "studentId": "ab"}

	rec := e.do(multipartRequest(t, "/apply/application", fields, nil))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Name must be at least 3 characters long")
	assert.Contains(t, body, "Student ID must be at least 5 characters long")
	assert.Contains(t, body, "File is required")
	assert.Contains(t, body, `value="Al"`)

	rec = e.do(htmxRequest(multipartRequest(t, "/apply/application", fields, nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<!DOCTYPE html>")
	assert.Contains(t, rec.Body.String(), "File is required")

	e.store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
	e.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestSubmit_SuccessWithFile(t *testing.T) {
	t.Parallel()

	const url = "https://res.cloudinary.com/demo/raw/upload/resumes/abc.pdf"
	e := newEnv(t)
	e.store.On("Put", mock.Anything, int64(2<<20), storage.PutParams{
		Folder:      "resumes",
		Filename:    "abc.pdf",
		ContentType: "application/pdf",
		Rules:       3,
	}).Return(&storage.FileInfo{URL: url}, nil).Once()
	e.notifier.On("Notify", mock.Anything, notify.Message{
		TemplateID: "application",
		Params: notify.Params{
			"from_name":  "Alice Smith",
			"dob":        "2000-01-01",
			"college":    "MIT",
			"student_id": "12345",
			"resume":     url,
		},
	}).Return(nil).Once()

	rec := e.do(htmxRequest(multipartRequest(t, "/apply/application", map[string]string{
		"name":      "Alice Smith",
		"dob":       "2000-01-01",
		"college":   "MIT",
		"studentId": "12345",
	}, &upload{name: "abc.pdf", contentType: "application/pdf", size: 2 << 20})))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Form submitted successfully! Check your email.")
	assert.Contains(t, body, `class="status status-ok"`)
	assert.Contains(t, body, "Thank You!")
	assert.NotContains(t, body, "Alice Smith")
	assert.Equal(t, handlers.TriggerSubmitted, rec.Header().Get(htmx.HeaderHXTrigger))

	e.store.AssertExpectations(t)
	e.notifier.AssertExpectations(t)
}

func TestSubmit_StorageFailureSkipsNotification(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	e.store.On("Put", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("s3: connection reset")).Once()

	rec := e.do(multipartRequest(t, "/apply/application", map[string]string{
		"name":      "Alice Smith",
		"dob":       "2000-01-01",
		"college":   "MIT",
		"studentId": "12345",
	}, &upload{name: "cv.pdf", contentType: "application/pdf", size: 1024}))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Failed to upload file")
	assert.Contains(t, body, `class="status status-error"`)
	assert.Contains(t, body, `value="Alice Smith"`)
	e.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestSubmit_OversizedFile(t *testing.T) {
	t.Parallel()

	big := &upload{name: "big.pdf", contentType: "application/pdf", size: 12 << 20}

	t.Run("invalid fields are reported first", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)

		rec := e.do(multipartRequest(t, "/apply/application", map[string]string{
			"name":      "Al",
			"dob":       "2000-01-01",
			"college":   "X",
			"studentId": "ab",
		}, big))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Name must be at least 3 characters long")
		assert.Contains(t, body, "Student ID must be at least 5 characters long")
		assert.NotContains(t, body, "File is required")
		assert.NotContains(t, body, "File size exceeds 10 MB limit")
		assert.Contains(t, body, `value="Al"`)
		e.store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
		e.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})

	t.Run("valid fields show the size message", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)

		rec := e.do(multipartRequest(t, "/apply/application", map[string]string{
			"name":      "Alice Smith",
			"dob":       "2000-01-01",
			"college":   "MIT",
			"studentId": "12345",
		}, big))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "File size exceeds 10 MB limit")
		assert.Contains(t, body, `value="Alice Smith"`)
		assert.Contains(t, body, `value="12345"`)
		e.store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
		e.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})
}

func TestSubmit_NotificationFailure(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	e.notifier.On("Notify", mock.Anything, mock.Anything).
		Return(&notify.Error{Status: 412, Text: "Gmail_API: Invalid grant"}).Once()

	rec := e.do(htmxRequest(multipartRequest(t, "/apply/contact", map[string]string{
		"name":    "Bob Jones",
		"email":   "bob@example.com",
		"phone":   "2368339770",
		"inquiry": "general",
	}, nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to send email: Gmail_API: Invalid grant")
	assert.NotContains(t, rec.Body.String(), "Thank You!")
	assert.Empty(t, rec.Header().Get(htmx.HeaderHXTrigger))
}

func TestSubmit_UnknownForm(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	rec := e.do(multipartRequest(t, "/apply/survey", nil, nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unknown form")
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	rec := e.do(httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req.Header.Set("Accept", "application/json")
	rec = e.do(req)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"Page not found"`)
}
