package handler

import (
	"net/http"

	"florexport/internal/dto"
	"florexport/internal/service"

	"github.com/gin-gonic/gin"
)

type TercerosHandler struct{ svc service.TerceroService }

func NewTercerosHandler(svc service.TerceroService) *TercerosHandler {
	return &TercerosHandler{svc: svc}
}

func (h *TercerosHandler) CrearCliente(c *gin.Context) {
	var req dto.CrearTerceroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearCliente(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TercerosHandler) ListarClientes(c *gin.Context) {
	resp, err := h.svc.ListarClientes(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TercerosHandler) CrearProveedor(c *gin.Context) {
	var req dto.CrearTerceroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearProveedor(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TercerosHandler) ListarProveedores(c *gin.Context) {
	resp, err := h.svc.ListarProveedores(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EmpaquesCliente PUT /v1/clientes/:id/empaques
func (h *TercerosHandler) EmpaquesCliente(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.VincularEmpaquesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.VincularEmpaquesCliente(c.Request.Context(), id, req); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// EmpaquesProveedor PUT /v1/proveedores/:id/empaques
func (h *TercerosHandler) EmpaquesProveedor(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.VincularEmpaquesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.VincularEmpaquesProveedor(c.Request.Context(), id, req); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
