package handlers

import (
	"errors"
	"mime"
	"net/http"
	"path"

	"github.com/gofiber/fiber/v2"

	"github.com/nexphase/nexcareer/api/http/presenter"
	"github.com/nexphase/nexcareer/pkg/filestore/local"
)

// ObjectOpener reads a stored object once its signed token checks out.
type ObjectOpener interface {
	Open(bucket, p, token string) ([]byte, error)
}

type FileHandler struct {
	files ObjectOpener
}

func NewFileHandler(files ObjectOpener) *FileHandler {
	return &FileHandler{files: files}
}

// Download serves objects behind signed links. No bearer token is needed;
// the signature in ?token= is the credential.
// @Summary Download a stored file
// @Tags    files
// @Produce octet-stream
// @Param   bucket path  string true "bucket"
// @Param   path   path  string true "object path"
// @Param   token  query string true "signed token"
// @Success 200 {file} file
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /files/{bucket}/{path} [get]
func (h *FileHandler) Download(c *fiber.Ctx) error {
	bucket := c.Params("bucket")
	p := c.Params("*")
	token := c.Query("token")
	if token == "" {
		return presenter.Error(c, http.StatusForbidden, "missing token")
	}

	data, err := h.files.Open(bucket, p, token)
	switch {
	case errors.Is(err, local.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "file not found")
	case errors.Is(err, local.ErrInvalidPath):
		return presenter.Error(c, http.StatusBadRequest, "invalid path")
	case err != nil:
		return presenter.Error(c, http.StatusForbidden, "invalid or expired link")
	}

	ct := mime.TypeByExtension(path.Ext(p))
	if ct == "" {
		ct = fiber.MIMEOctetStream
	}
	c.Set(fiber.HeaderContentType, ct)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+path.Base(p)+`"`)
	return c.Status(http.StatusOK).Send(data)
}
