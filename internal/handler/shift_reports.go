package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/armbdevelop/reportBot/internal/apierror"
	"github.com/armbdevelop/reportBot/internal/dto"
	"github.com/armbdevelop/reportBot/internal/service"
)

type ShiftReportHandler struct{ svc service.ShiftReportService }

func NewShiftReportHandler(svc service.ShiftReportService) *ShiftReportHandler {
	return &ShiftReportHandler{svc: svc}
}

// Create godoc
// @Summary Submits an end-of-shift cash reconciliation report
// @Tags shift-reports
// @Accept mpfd
// @Produce json
// @Param photo formData file true "Cash register photo"
// @Param receipt_photo formData file false "Receipt photo"
// @Success 201 {object} dto.ShiftReportResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/shift-reports/create [post]
func (h *ShiftReportHandler) Create(c *gin.Context) {
	var form dto.CreateShiftReportForm
	if !bindForm(c, &form) {
		return
	}

	photo, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("photo is required"))
		return
	}
	in := dto.CreateShiftReportInput{CreateShiftReportForm: form, Photo: photo}
	if receipt, err := c.FormFile("receipt_photo"); err == nil {
		in.ReceiptPhoto = receipt
	}

	resp, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary Lists shift reports with date/location filters and pagination
// @Tags shift-reports
// @Produce json
// @Param start_date query string false "YYYY-MM-DD, inclusive"
// @Param end_date query string false "YYYY-MM-DD, inclusive"
// @Param location query string false "Location code, address, or 'all'"
// @Param page query int false "Page, default 1"
// @Param per_page query int false "Page size, default 10, max 100"
// @Success 200 {object} dto.ShiftReportListResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/shift-reports/list [get]
func (h *ShiftReportHandler) List(c *gin.Context) {
	var filter dto.ShiftReportFilter
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
// @Summary Fetches a single shift report by id
// @Tags shift-reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} dto.ShiftReportResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/shift-reports/{id} [get]
func (h *ShiftReportHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid report id"))
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
// @Summary Deletes a shift report by id
// @Tags shift-reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/shift-reports/{id} [delete]
func (h *ShiftReportHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid report id"))
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
