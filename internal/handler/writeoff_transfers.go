package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/armbdevelop/reportBot/internal/apierror"
	"github.com/armbdevelop/reportBot/internal/dto"
	"github.com/armbdevelop/reportBot/internal/service"
)

type WriteoffTransferHandler struct{ svc service.WriteoffTransferService }

func NewWriteoffTransferHandler(svc service.WriteoffTransferService) *WriteoffTransferHandler {
	return &WriteoffTransferHandler{svc: svc}
}

// Create godoc
// @Summary Submits an inventory writeoff/transfer act
// @Tags writeoff-transfer
// @Accept mpfd
// @Produce json
// @Success 201 {object} dto.WriteoffTransferResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/writeoff-transfer/create [post]
func (h *WriteoffTransferHandler) Create(c *gin.Context) {
	var form dto.CreateWriteoffTransferForm
	if !bindForm(c, &form) {
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary Lists writeoff/transfer acts with filters and pagination
// @Tags writeoff-transfer
// @Produce json
// @Param start_date query string false "YYYY-MM-DD, inclusive"
// @Param end_date query string false "YYYY-MM-DD, inclusive"
// @Param location query string false "Matches source or destination"
// @Param location_from query string false "Source location only"
// @Param location_to query string false "Destination location only"
// @Param type query string false "writeoff | transfer"
// @Param page query int false "Page, default 1"
// @Param per_page query int false "Page size, default 10, max 100"
// @Success 200 {object} dto.WriteoffTransferListResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/writeoff-transfer/list [get]
func (h *WriteoffTransferHandler) List(c *gin.Context) {
	var filter dto.WriteoffTransferFilter
	if !bindQuery(c, &filter) {
		return
	}

	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Fetches a single writeoff/transfer act by id
// @Tags writeoff-transfer
// @Produce json
// @Param id path string true "Act ID"
// @Success 200 {object} dto.WriteoffTransferResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/writeoff-transfer/{id} [get]
func (h *WriteoffTransferHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid act id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Deletes a writeoff/transfer act by id
// @Tags writeoff-transfer
// @Produce json
// @Param id path string true "Act ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/writeoff-transfer/{id} [delete]
func (h *WriteoffTransferHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid act id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{
		Message:   "Report deleted",
		DeletedID: id.String(),
	})
}
