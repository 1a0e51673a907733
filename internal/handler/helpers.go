package handler

import (
	"errors"
	"net/http"
	"reflect"

	"florexport/internal/apierror"
	"florexport/internal/middleware"
	"florexport/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, max=100 work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	return validar(c, req)
}

// bindQueryAndValidate is bindAndValidate for query-string filters.
func bindQueryAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return false
	}
	return validar(c, req)
}

func validar(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string)
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// uuidParam parses a path parameter, writing a 400 when malformed.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}

var noEncontrados = []error{
	service.ErrGrupoNoEncontrado,
	service.ErrFamiliaNoEncontrada,
	service.ErrVariedadNoEncontrada,
	service.ErrTamanoNoEncontrado,
	service.ErrReglaNoEncontrada,
	service.ErrProductoNoEncontrado,
	service.ErrTipoEmpaqueNoEncontrado,
	service.ErrEmpaqueNoEncontrado,
	service.ErrPedidoNoEncontrado,
	service.ErrLineaNoEncontrada,
	service.ErrClienteNoEncontrado,
	service.ErrProveedorNoEncontrado,
}

// responderError maps service errors to HTTP status codes. Unknown errors
// are logged and answered with a generic 500.
func responderError(c *gin.Context, err error) {
	for _, nf := range noEncontrados {
		if errors.Is(err, nf) {
			c.JSON(http.StatusNotFound, apierror.WithCode(apierror.CodeNoEncontrado, err.Error()))
			return
		}
	}
	switch {
	case errors.Is(err, service.ErrConflictoCodigo):
		c.JSON(http.StatusConflict, apierror.WithCode(apierror.CodeReintentable, err.Error()))
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusConflict, apierror.WithCode(apierror.CodeDuplicado, "ya existe un registro con esos datos"))
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		c.JSON(http.StatusBadRequest, apierror.New("referencia a un registro inexistente"))
	case errors.Is(err, service.ErrEmpaqueInconsistente),
		errors.Is(err, service.ErrEmpaqueNoPermitido),
		errors.Is(err, service.ErrSurtidoNoPermitido),
		errors.Is(err, service.ErrRangoFechas),
		errors.Is(err, service.ErrEntradaInvalida):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	default:
		log.Error().Err(err).Str("request_id", c.GetString(middleware.RequestIDKey)).Str("path", c.FullPath()).Msg("unhandled error")
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}
