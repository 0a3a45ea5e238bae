package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/DennisRussell0/cereal-api/internal/dto"
	"github.com/DennisRussell0/cereal-api/internal/images"
	"github.com/DennisRussell0/cereal-api/internal/service"
	"github.com/DennisRussell0/cereal-api/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	msgCerealNotFound = "Cereal not found!"
	msgImageNotFound  = "Image not found!"
)

// maxSaveBody caps the POST /cereal body.
const maxSaveBody = 64 << 10

type CerealHandler struct {
	svc    *service.CerealService
	images *images.Resolver
}

func NewCerealHandler(svc *service.CerealService, images *images.Resolver) *CerealHandler {
	return &CerealHandler{svc: svc, images: images}
}

// List godoc
// @Summary      List cereals
// @Description  Every attribute except id is an optional filter. Text attributes match by
// @Description  case-insensitive substring, numeric ones by equality. Filters are ANDed.
// @Tags         cereals
// @Produce      json
// @Param        name      query     string  false  "Name contains"
// @Param        mfr       query     string  false  "Manufacturer contains"
// @Param        type      query     string  false  "Type contains"
// @Param        calories  query     int     false  "Calories equals"
// @Param        rating    query     number  false  "Rating equals"
// @Success      200  {array}   dto.CerealResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /cereals [get]
func (h *CerealHandler) List(c *gin.Context) {
	f, err := service.ParseFilter(c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}
	list, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CerealsToResponses(list))
}

// GetByID godoc
// @Summary      Get a cereal by ID
// @Tags         cereals
// @Produce      json
// @Param        id   path      int  true  "Cereal ID"
// @Success      200  {object}  dto.CerealResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /cereal/{id} [get]
func (h *CerealHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	cereal, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CerealToResponse(cereal))
}

// Save godoc
// @Summary      Create or update a cereal
// @Description  Without id (or with id 0/null) a new record is created and every attribute is
// @Description  required. With the id of an existing record, the given attributes overwrite
// @Description  the stored ones. Any other id is rejected.
// @Tags         cereals
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.SaveCerealRequest  true  "Cereal"
// @Success      200   {object}  dto.SaveCerealResponse
// @Success      201   {object}  dto.SaveCerealResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      413   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /cereal [post]
func (h *CerealHandler) Save(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxSaveBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	id, patch, err := dto.DecodeCerealPayload(body)
	if err != nil {
		writeError(c, err)
		return
	}
	cereal, created, err := h.svc.Save(c.Request.Context(), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	if created {
		c.JSON(http.StatusCreated, dto.SaveCerealResponse{Message: "Cereal created!", ID: cereal.ID})
		return
	}
	c.JSON(http.StatusOK, dto.SaveCerealResponse{Message: "Cereal updated!", ID: cereal.ID})
}

// Delete godoc
// @Summary      Delete a cereal
// @Tags         cereals
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Cereal ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /cereal/{id} [delete]
func (h *CerealHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Cereal deleted!"})
}

// Image godoc
// @Summary      Get the image of a cereal
// @Description  Falls back to the default image when the record has none.
// @Tags         cereals
// @Produce      image/jpeg
// @Produce      image/png
// @Param        id   path  int  true  "Cereal ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /cereal/{id}/image [get]
func (h *CerealHandler) Image(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	cereal, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	path, err := h.images.Path(cereal)
	if err != nil {
		if errors.Is(err, images.ErrNoImage) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgImageNotFound})
			return
		}
		writeError(c, err)
		return
	}
	c.File(path)
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// writeError maps service and payload errors to status codes. Unknown errors are
// attached to the context for the access log and reported as 500.
func writeError(c *gin.Context, err error) {
	var ve *service.ValidationError
	var fe *dto.FieldError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
	case errors.As(err, &fe):
		c.JSON(http.StatusBadRequest, gin.H{"error": fe.Msg})
	case errors.Is(err, service.ErrManualID):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrManualID.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgCerealNotFound})
	case utils.IsPGDataError(err):
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cereal data"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
