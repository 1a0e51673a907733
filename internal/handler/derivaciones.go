package handler

import (
	"net/http"

	"florexport/internal/service"

	"github.com/gin-gonic/gin"
)

type DerivacionesHandler struct{ svc service.DerivacionService }

func NewDerivacionesHandler(svc service.DerivacionService) *DerivacionesHandler {
	return &DerivacionesHandler{svc: svc}
}

// Derivar godoc
// @Summary      Derivar productos maestros
// @Description  Crea el producto de cada par legal que aún no existe. Idempotente.
// @Tags         derivacion
// @Produce      json
// @Param        id  path string true "Familia ID"
// @Success      200 {object} dto.DerivacionResponse
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /v1/familias/{id}/derivar [post]
func (h *DerivacionesHandler) Derivar(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Derivar(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DerivarTodas POST /v1/derivaciones, async, one job per family
func (h *DerivacionesHandler) DerivarTodas(c *gin.Context) {
	resp, err := h.svc.DerivarTodas(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}

// Productos GET /v1/familias/:id/productos
func (h *DerivacionesHandler) Productos(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarProductos(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obsoletos GET /v1/familias/:id/productos/obsoletos
func (h *DerivacionesHandler) Obsoletos(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obsoletos(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
