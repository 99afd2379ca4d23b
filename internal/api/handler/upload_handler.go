package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bizsites/website-builder/internal/core/ports"
)

const uploadField = "file"

type UploadHandler struct {
	service  ports.MediaService
	maxBytes int64
}

// NewUploadHandler builds an UploadHandler. A nil service means media
// hosting is not configured and every upload answers 503.
func NewUploadHandler(service ports.MediaService, maxBytes int64) *UploadHandler {
	return &UploadHandler{service: service, maxBytes: maxBytes}
}

// uploadResponse always carries every URL in urls; url repeats the first one
// for single-image callers.
type uploadResponse struct {
	URL  string   `json:"url"`
	URLs []string `json:"urls"`
}

// Upload stores the images sent in the "file" form field.
//
// @Summary      Upload images
// @Description  Accepts one or more image files in the "file" field. Responds with every hosted URL in "urls" and the first one in "url".
// @Tags         media
// @Accept       mpfd
// @Produce      json
// @Param        file  formData  file  true  "Image file(s)"
// @Success      200   {object}  uploadResponse
// @Failure      400   {object}  errorResponse
// @Failure      413   {object}  errorResponse
// @Failure      415   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /api/upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	if h.service == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "media hosting is not configured")
	}

	req := c.Request()
	if req.ContentLength > h.maxBytes {
		return &http.MaxBytesError{Limit: h.maxBytes}
	}
	req.Body = http.MaxBytesReader(c.Response(), req.Body, h.maxBytes)

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return tooLarge
		}
		return echo.NewHTTPError(http.StatusBadRequest, "expected a multipart form").SetInternal(err)
	}
	defer form.RemoveAll()

	headers := form.File[uploadField]
	files := make([]ports.UploadFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, toUploadFile(fh))
	}

	urls, err := h.service.UploadImages(req.Context(), files)
	if err != nil {
		return err
	}
	resp := uploadResponse{URLs: urls}
	if len(urls) > 0 {
		resp.URL = urls[0]
	}
	return c.JSON(http.StatusOK, resp)
}

func toUploadFile(fh *multipart.FileHeader) ports.UploadFile {
	return ports.UploadFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
