package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/marsconnect/mars-quest-backend/errs"
	"github.com/marsconnect/mars-quest-backend/services"
)

// maxUploadSize caps multipart request bodies at 50 MB.
const maxUploadSize = 50 << 20

// isMultipart reports whether the request carries a multipart form body.
func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// uploadFormFile pulls the named file out of the multipart form, checks its
// MIME type against the allow-list, and streams it to asset storage. The MIME
// check runs before any network call. Returns "" when the field is absent.
func uploadFormFile(r *http.Request, uploader services.Uploader, field, folder string, allowed func(string) bool) (string, error) {
	if !isMultipart(r) {
		return "", nil
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return "", errs.Malformed("upload form")
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", errs.Malformed("upload form")
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowed(contentType) {
		return "", errs.NewUnsupportedMediaTypeError(contentType)
	}

	if uploader == nil {
		return "", errs.NewUploadsDisabledError()
	}

	url, err := uploader.Upload(r.Context(), folder, header.Filename, contentType, file)
	if err != nil {
		return "", errs.NewInternalError("Failed to store uploaded file")
	}
	return url, nil
}
