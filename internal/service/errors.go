package service

import "errors"

// Not-found sentinels map to 404 in the HTTP layer.
var (
	ErrGrupoNoEncontrado       = errors.New("grupo no encontrado")
	ErrFamiliaNoEncontrada     = errors.New("familia no encontrada")
	ErrVariedadNoEncontrada    = errors.New("variedad no encontrada")
	ErrTamanoNoEncontrado      = errors.New("tamaño no encontrado")
	ErrReglaNoEncontrada       = errors.New("regla no encontrada")
	ErrProductoNoEncontrado    = errors.New("producto no encontrado")
	ErrTipoEmpaqueNoEncontrado = errors.New("tipo de empaque no encontrado")
	ErrEmpaqueNoEncontrado     = errors.New("empaque no encontrado")
	ErrPedidoNoEncontrado      = errors.New("pedido no encontrado")
	ErrLineaNoEncontrada       = errors.New("línea de pedido no encontrada")
	ErrClienteNoEncontrado     = errors.New("cliente no encontrado")
	ErrProveedorNoEncontrado   = errors.New("proveedor no encontrado")
)

var (
	// ErrConflictoCodigo is returned when every code-assignment attempt for a
	// product collided. Retrying the derivation is safe.
	ErrConflictoCodigo = errors.New("conflicto asignando código de producto, reintente")

	ErrEmpaqueInconsistente = errors.New("tallos_por_caja debe ser tallos_por_ramo * ramos_por_caja")
	ErrEmpaqueNoPermitido   = errors.New("el empaque no está permitido para este producto, cliente o proveedor")
	ErrSurtidoNoPermitido   = errors.New("solo las líneas con variedad surtida admiten configuración de surtido")
	ErrRangoFechas          = errors.New("la fecha desde no puede ser posterior a hasta")
	ErrEntradaInvalida      = errors.New("entrada inválida")
)
