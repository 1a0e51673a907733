package handler

import (
	"net/http"

	"florexport/internal/dto"
	"florexport/internal/service"

	"github.com/gin-gonic/gin"
)

type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

// CrearGrupo POST /v1/grupos
func (h *CatalogoHandler) CrearGrupo(c *gin.Context) {
	var req dto.CrearGrupoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearGrupo(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CrearFamilia POST /v1/familias
func (h *CatalogoHandler) CrearFamilia(c *gin.Context) {
	var req dto.CrearFamiliaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearFamilia(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarFamilias GET /v1/familias
func (h *CatalogoHandler) ListarFamilias(c *gin.Context) {
	resp, err := h.svc.ListarFamilias(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearVariedad POST /v1/variedades
func (h *CatalogoHandler) CrearVariedad(c *gin.Context) {
	var req dto.CrearOpcionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearVariedad(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CrearTamano POST /v1/tamanos
func (h *CatalogoHandler) CrearTamano(c *gin.Context) {
	var req dto.CrearOpcionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearTamano(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Reglas GET /v1/familias/:id/reglas
func (h *CatalogoHandler) Reglas(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Reglas(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AgregarRegla godoc
// @Summary      Agregar regla de configuración
// @Description  Permite un par variedad/tamaño para la familia. Un id nulo es comodín.
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Param        id   path string                 true "Familia ID"
// @Param        body body dto.CrearReglaRequest  true "Regla"
// @Success      201  {object} dto.ReglaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/familias/{id}/reglas [post]
func (h *CatalogoHandler) AgregarRegla(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.CrearReglaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarRegla(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// EliminarRegla DELETE /v1/reglas/:id
func (h *CatalogoHandler) EliminarRegla(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.EliminarRegla(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// OpcionesVariedades GET /v1/familias/:id/variedades
func (h *CatalogoHandler) OpcionesVariedades(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.OpcionesVariedades(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// OpcionesTamanos GET /v1/familias/:id/variedades/:variedad/tamanos
func (h *CatalogoHandler) OpcionesTamanos(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	variedad, ok := uuidParam(c, "variedad")
	if !ok {
		return
	}
	resp, err := h.svc.OpcionesTamanos(c.Request.Context(), id, variedad)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
