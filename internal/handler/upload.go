package handler

import (
	"errors"
	"net/http"

	"github.com/templui/folio/internal/ctxkeys"
	"github.com/templui/folio/internal/service"
)

// multipartOverhead leaves room for boundaries and headers around the file.
const multipartOverhead = 64 << 10

type UploadHandler struct {
	uploadService *service.UploadService
	maxFileSize   int64
}

func NewUploadHandler(uploadService *service.UploadService, maxFileSize int64) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		maxFileSize:   maxFileSize,
	}
}

func (h *UploadHandler) Image(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)

	err := r.ParseMultipartForm(h.maxFileSize)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			fail(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		fail(w, http.StatusBadRequest, "expected a multipart form with an image field")
		return
	}
	defer r.MultipartForm.RemoveAll()

	_, header, err := r.FormFile("image")
	if err != nil {
		fail(w, http.StatusBadRequest, "please choose an image to upload")
		return
	}

	image, err := h.uploadService.UploadImage(r.Context(), ctxkeys.UserID(r.Context()), header)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ok(w, "upload successful", image)
}
