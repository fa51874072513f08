package relay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// multipartOverhead is the room left for boundaries and text fields on top
// of the file size limit.
const multipartOverhead int64 = 1 << 20

// Form is a parsed multipart body.
type Form struct {
	Values url.Values
	files  map[string]*File
}

// Value returns the first value posted under name.
func (f *Form) Value(name string) string {
	if f == nil {
		return ""
	}
	return f.Values.Get(name)
}

// File returns the file posted under name, or ErrMissingFile.
func (f *Form) File(name string) (*File, error) {
	if f == nil || f.files[name] == nil {
		return nil, newError(ErrMissingFile, nil)
	}
	return f.files[name], nil
}

// ParseMultipart streams r's multipart body, capping it at maxSize plus a
// small overhead. Files are buffered up to maxSize. A file part over the
// limit, or one cut off by the cap, is kept with its observed size and no
// content, so Upload rejects it as too large while the text fields posted
// with it stay readable.
//
// The returned Form is never nil. A non-multipart body yields ErrMissingFile
// with any url-encoded values, a body that overflows outside a file part
// yields ErrFileTooLarge with the values read so far.
func ParseMultipart(w http.ResponseWriter, r *http.Request, maxSize int64) (*Form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
	form := &Form{Values: url.Values{}, files: map[string]*File{}}

	mr, err := r.MultipartReader()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			if perr := r.ParseForm(); perr == nil {
				form.Values = r.PostForm
			}
			return form, newError(ErrMissingFile, err)
		}
		return form, fmt.Errorf("relay: parse multipart: %w", err)
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return form, nil
		}
		if err != nil {
			return form, bodyError(err)
		}

		name := part.FormName()
		if name == "" {
			_ = part.Close()
			continue
		}

		if part.FileName() == "" {
			var b strings.Builder
			if _, err := io.Copy(&b, part); err != nil {
				return form, bodyError(err)
			}
			form.Values.Add(name, b.String())
			continue
		}

		f, err := readFilePart(part, maxSize)
		if _, dup := form.files[name]; !dup && (err == nil || f.Size > maxSize) {
			form.files[name] = f
		}
		if err != nil {
			if f.Size > maxSize {
				return form, nil
			}
			return form, bodyError(err)
		}
	}
}

// readFilePart buffers p up to maxSize. Past the limit the rest of the part
// is counted and discarded. When the body cap cuts the part short, Size is
// raised past maxSize.
func readFilePart(p *multipart.Part, maxSize int64) (*File, error) {
	f := &File{
		Name:        p.FileName(),
		ContentType: p.Header.Get("Content-Type"),
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(p, maxSize+1))
	f.Size = n
	if err == nil && n > maxSize {
		var rest int64
		rest, err = io.Copy(io.Discard, p)
		f.Size += rest
	}

	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) && f.Size <= maxSize {
		f.Size = maxSize + 1
	}

	if f.Size > maxSize {
		f.Content = bytes.NewReader(nil)
	} else {
		f.Content = bytes.NewReader(buf.Bytes())
	}
	return f, err
}

func bodyError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return newError(ErrFileTooLarge, err)
	}
	return fmt.Errorf("relay: parse multipart: %w", err)
}

// NewFile wraps an in-memory or already-open reader as a File.
func NewFile(name, contentType string, size int64, content io.Reader) *File {
	return &File{Content: content, Name: name, ContentType: contentType, Size: size}
}
