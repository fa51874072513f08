package middlewares_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intake/internal"
	"github.com/dmitrymomot/intake/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("panic becomes PanicError", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		err := middlewares.Recover()(func(internal.Context) error {
			panic("nil map write")
		})(ctx)

		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.Equal(t, "nil map write", pe.Value)
		require.NotEmpty(t, pe.Stack)
		require.Equal(t, "panic: nil map write", pe.Error())
	})

	t.Run("stack disabled", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		err := middlewares.Recover(middlewares.WithRecoverDisableStack())(func(internal.Context) error {
			panic(errors.New("boom"))
		})(ctx)

		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.Nil(t, pe.Stack)
	})

	t.Run("errors pass through", func(t *testing.T) {
		t.Parallel()

		want := errors.New("upload failed")
		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		err := middlewares.Recover()(func(internal.Context) error { return want })(ctx)

		require.ErrorIs(t, err, want)
		require.False(t, middlewares.IsPanicError(err))
	})

	t.Run("abort handler is re-panicked", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.PanicsWithValue(t, http.ErrAbortHandler, func() {
			_ = middlewares.Recover()(func(internal.Context) error {
				panic(http.ErrAbortHandler)
			})(ctx)
		})
	})

	t.Run("wrapped panic error is detected", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("handler: %w", &middlewares.PanicError{Value: "x"})
		require.True(t, middlewares.IsPanicError(err))
	})
}
