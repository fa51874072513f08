// Package storage forwards uploaded files to a public object store and
// returns the URL they are served from.
//
// Two backends implement [Storage]:
//
//   - [CloudinaryStorage] uploads through the Cloudinary upload API with
//     resource_type=auto and returns the asset's secure URL.
//   - [S3Storage] writes to any S3-compatible bucket with a public-read ACL
//     under <folder>/<uuid><ext>.
//
// Files can be checked before upload with [ValidationRule]s. Rules look at
// the size and the declared content type only; the bytes are never sniffed:
//
//	info, err := store.Put(ctx, f, size,
//	    storage.WithFolder("resumes"),
//	    storage.WithFilename("cv.pdf"),
//	    storage.WithContentType("application/pdf"),
//	    storage.WithValidation(storage.NotEmpty(), storage.MaxSize(10<<20)),
//	)
//	fmt.Println(info.URL)
//
// A failed rule returns *FileValidationError. Backend failures wrap
// ErrUploadFailed.
package storage
