package handlers

import (
	"net/http"

	"github.com/dmitrymomot/intake/internal"
	"github.com/dmitrymomot/intake/internal/relay"
)

// UploadHandler is the standalone upload relay endpoint.
type UploadHandler struct {
	relay Relay
}

func NewUploadHandler(r Relay) *UploadHandler {
	return &UploadHandler{relay: r}
}

func (h *UploadHandler) Routes(r internal.Router) {
	r.POST("/api/upload", h.upload)
}

type uploadResponse struct {
	URL string `json:"url"`
}

// upload answers 200 {url} or hands a relay error to the error handler,
// which renders {error}.
func (h *UploadHandler) upload(c internal.Context) error {
	in, err := relay.ParseMultipart(c.Response(), c.Request(), h.relay.MaxSize())
	if err != nil {
		return relayHTTPError(err)
	}

	f, err := in.File(relay.FieldName)
	if err != nil {
		return relayHTTPError(err)
	}
	defer f.Close()

	url, err := h.relay.Upload(c, f)
	if err != nil {
		return relayHTTPError(err)
	}

	return c.JSON(http.StatusOK, uploadResponse{URL: url})
}

// relayHTTPError maps relay failures to their status and message. Anything
// else is reported as an upload failure.
func relayHTTPError(err error) *internal.HTTPError {
	re := relay.AsError(err)
	if re == nil {
		return internal.ErrInternal(relay.MsgUploadFailed,
			internal.WithErrorCode("upload_failed"),
			internal.WithError(err),
		)
	}
	return internal.NewHTTPError(re.StatusCode(), re.Message,
		internal.WithErrorCode(re.Code()),
		internal.WithError(err),
	)
}
