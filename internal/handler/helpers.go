package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Sergiotsk/TecFlow/internal/apierror"
	"github.com/Sergiotsk/TecFlow/internal/importer"
	"github.com/Sergiotsk/TecFlow/internal/infra"
	"github.com/Sergiotsk/TecFlow/internal/service"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	return runValidation(c, req)
}

// bindFormAndValidate is the multipart variant used by the import endpoints,
// where batch metadata travels as form fields next to the file.
func bindFormAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Formulario invalido: "+err.Error()))
		return false
	}
	return runValidation(c, req)
}

func runValidation(c *gin.Context, req interface{}) bool {
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

// writeServiceError maps known service sentinels to status codes. Anything
// unrecognized becomes an opaque 500 so internals never leak to clients.
func writeServiceError(c *gin.Context, err error) {
	var headerErr *importer.HeaderError
	switch {
	case errors.As(err, &headerErr),
		errors.Is(err, importer.ErrEmptyGrid),
		errors.Is(err, importer.ErrNoRecords):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrDocumentNotFound),
		errors.Is(err, service.ErrClientNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrDocumentLocked):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrBackupVersion):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, infra.ErrExtraction), errors.Is(err, infra.ErrCircuitOpen):
		c.JSON(http.StatusBadGateway, apierror.New("El servicio de IA no está disponible en este momento"))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno"))
	}
}
