package router

import (
	"time"

	"florexport/internal/config"
	"florexport/internal/handler"
	"florexport/internal/middleware"
	"florexport/internal/repository"
	"florexport/internal/service"
	"florexport/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.Origenes()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(rdb, cfg.RateLimit, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	catalogoRepo := repository.NewCatalogoRepository(db)
	productoRepo := repository.NewProductoMaestroRepository(db)
	empaqueRepo := repository.NewEmpaqueRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	terceroRepo := repository.NewTerceroRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	catalogoSvc := service.NewCatalogoService(catalogoRepo, rdb)
	derivacionSvc := service.NewDerivacionService(catalogoRepo, productoRepo, dispatcher, cfg.CodigoMaxReintentos)
	empaqueSvc := service.NewEmpaqueService(empaqueRepo, productoRepo)
	pedidoSvc := service.NewPedidoService(pedidoRepo, productoRepo, empaqueRepo, catalogoRepo, rdb)
	reporteSvc := service.NewReporteService(pedidoRepo, rdb, cfg.ReporteTTL(), cfg.ReporteWorkers)
	terceroSvc := service.NewTerceroService(terceroRepo, empaqueRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	derivacionesH := handler.NewDerivacionesHandler(derivacionSvc)
	empaquesH := handler.NewEmpaquesHandler(empaqueSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	tercerosH := handler.NewTercerosHandler(terceroSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		v1.POST("/grupos", catalogoH.CrearGrupo)
		v1.POST("/variedades", catalogoH.CrearVariedad)
		v1.POST("/tamanos", catalogoH.CrearTamano)
		v1.DELETE("/reglas/:id", catalogoH.EliminarRegla)

		fam := v1.Group("/familias")
		{
			fam.POST("", catalogoH.CrearFamilia)
			fam.GET("", catalogoH.ListarFamilias)
			fam.GET("/:id/reglas", catalogoH.Reglas)
			fam.POST("/:id/reglas", catalogoH.AgregarRegla)
			fam.GET("/:id/variedades", catalogoH.OpcionesVariedades)
			fam.GET("/:id/variedades/:variedad/tamanos", catalogoH.OpcionesTamanos)
			fam.POST("/:id/derivar", derivacionesH.Derivar)
			fam.GET("/:id/productos", derivacionesH.Productos)
			fam.GET("/:id/productos/obsoletos", derivacionesH.Obsoletos)
		}
		v1.POST("/derivaciones", derivacionesH.DerivarTodas)

		v1.POST("/tipos-empaque", empaquesH.CrearTipo)
		v1.GET("/tipos-empaque", empaquesH.ListarTipos)
		v1.POST("/empaques", empaquesH.Crear)
		v1.PUT("/productos/:id/empaques", empaquesH.VincularProducto)
		v1.GET("/productos/:id/empaques", empaquesH.Opciones)

		v1.POST("/clientes", tercerosH.CrearCliente)
		v1.GET("/clientes", tercerosH.ListarClientes)
		v1.PUT("/clientes/:id/empaques", tercerosH.EmpaquesCliente)
		v1.POST("/proveedores", tercerosH.CrearProveedor)
		v1.GET("/proveedores", tercerosH.ListarProveedores)
		v1.PUT("/proveedores/:id/empaques", tercerosH.EmpaquesProveedor)

		ped := v1.Group("/pedidos")
		{
			ped.POST("", pedidosH.Crear)
			ped.GET("/:id", pedidosH.Obtener)
			ped.PUT("/:id", pedidosH.Actualizar)
		}
		v1.PUT("/lineas/:id/surtido", pedidosH.ReemplazarSurtido)

		v1.GET("/reportes/carga", reportesH.Carga)
	}

	return r
}
