package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/apierror"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/middleware"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// decimal.Decimal is validated as a float so min=0, gt=0 and required work on it.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds the JSON body and runs the validator tags.
// On failure the response is already written and the caller must return.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	return validar(c, req)
}

// bindQuery binds query params into a filter struct.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametros invalidos: "+err.Error()))
		return false
	}
	return true
}

func validar(c *gin.Context, req interface{}) bool {
	err := validate.Struct(req)
	if err == nil {
		return true
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		return false
	}
	fields := make(map[string]string, len(ves))
	for _, fe := range ves {
		fields[fe.Field()] = fe.Tag()
	}
	c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
	return false
}

// respondError writes the status that matches the error kind. Errors without
// a kind are logged and answered with a generic 500.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrCredenciales) {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	status := apierror.Status(err)
	if status == http.StatusInternalServerError {
		log.Error().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Err(err).
			Msg("request failed")
		c.JSON(status, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(status, apierror.New(err.Error()))
}

// paramID parses a numeric path param. Writes 400 and returns false when invalid.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return 0, false
	}
	return uint(id), true
}

func queryBool(c *gin.Context, name string) bool {
	v, _ := strconv.ParseBool(c.Query(name))
	return v
}

// pdfInline serves a generated PDF so browsers open it in a new tab.
func pdfInline(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
