package handler

import (
	"net/http"

	"florexport/internal/dto"
	"florexport/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Carga GET /v1/reportes/carga?desde=&hasta=&solo_exportacion=&incluir_excluidos=
func (h *ReportesHandler) Carga(c *gin.Context) {
	var filter dto.ReporteFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Generar(c.Request.Context(), filter)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
