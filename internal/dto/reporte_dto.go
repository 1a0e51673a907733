package dto

// ReporteFilter is bound from the query string of GET /v1/reportes/carga.
type ReporteFilter struct {
	Desde            string `form:"desde"             validate:"required,datetime=2006-01-02"`
	Hasta            string `form:"hasta"             validate:"required,datetime=2006-01-02"`
	SoloExportacion  bool   `form:"solo_exportacion"`
	IncluirExcluidos bool   `form:"incluir_excluidos"`
}
