package handler

import (
	"net/http"

	"florexport/internal/dto"
	"florexport/internal/service"

	"github.com/gin-gonic/gin"
)

type EmpaquesHandler struct{ svc service.EmpaqueService }

func NewEmpaquesHandler(svc service.EmpaqueService) *EmpaquesHandler {
	return &EmpaquesHandler{svc: svc}
}

// CrearTipo POST /v1/tipos-empaque
func (h *EmpaquesHandler) CrearTipo(c *gin.Context) {
	var req dto.CrearTipoEmpaqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearTipo(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarTipos GET /v1/tipos-empaque
func (h *EmpaquesHandler) ListarTipos(c *gin.Context) {
	resp, err := h.svc.ListarTipos(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear POST /v1/empaques
func (h *EmpaquesHandler) Crear(c *gin.Context) {
	var req dto.CrearEmpaqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// VincularProducto PUT /v1/productos/:id/empaques
func (h *EmpaquesHandler) VincularProducto(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.VincularEmpaquesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.VincularProducto(c.Request.Context(), id, req); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Opciones GET /v1/productos/:id/empaques?cliente_id=&proveedor_id=
func (h *EmpaquesHandler) Opciones(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var filter dto.OpcionesEmpaqueFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Opciones(c.Request.Context(), id, filter)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
