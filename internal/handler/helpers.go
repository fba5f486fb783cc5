package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/armbdevelop/reportBot/internal/apierror"
	"github.com/armbdevelop/reportBot/internal/entries"
	"github.com/armbdevelop/reportBot/internal/service"
)

var validate = validator.New()

// bindForm binds a multipart/urlencoded form and runs go-playground/validator
// tags. Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindForm(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid form data: "+err.Error()))
		return false
	}
	return validateStruct(c, req)
}

// bindQuery binds query-string parameters with the same validation treatment.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid query parameters: "+err.Error()))
		return false
	}
	return validateStruct(c, req)
}

func validateStruct(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps service-layer errors onto HTTP statuses. Anything
// unclassified is pushed into the gin error chain so the ErrorHandler
// middleware logs it and answers with a generic 500.
func respondError(c *gin.Context, err error) {
	var entryErr *entries.Error
	switch {
	case errors.As(err, &entryErr):
		c.JSON(http.StatusBadRequest, apierror.New(entryErr.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Report not found"))
	case errors.Is(err, service.ErrBadDate), errors.Is(err, service.ErrBadTime):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	default:
		_ = c.Error(err)
	}
}
