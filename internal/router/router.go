package router

import (
	"time"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/config"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/handler"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/infra"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/middleware"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/repository"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/service"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Roles
const (
	RolAdministrador = "administrador"
	RolCajero        = "cajero"
	RolTaller        = "taller"
)

// Services bundles every service the HTTP layer and the workers need.
type Services struct {
	Auth        service.AuthService
	Caja        service.CajaService
	Resumen     service.ResumenService
	Movimientos service.MovimientoService
	Ordenes     service.OrdenService
	Estados     service.EstadoService
	Conceptos   service.ConceptoService
	Medios      service.MedioDePagoService
	Companias   service.CompaniaService
	Vehiculos   service.VehiculoService
	Titulares   service.TitularService

	// OrdenRepo feeds the orden_estado worker.
	OrdenRepo repository.OrdenRepository
}

// NewServices wires Service ← Repository ← DB/Redis.
func NewServices(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher, reloj service.Reloj) *Services {
	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	movimientoRepo := repository.NewMovimientoRepository(db)
	conceptoRepo := repository.NewConceptoRepository(db)
	medioRepo := repository.NewMedioDePagoRepository(db)
	companiaRepo := repository.NewCompaniaRepository(db)
	estadoRepo := repository.NewEstadoRepository(db)
	vehiculoRepo := repository.NewVehiculoRepository(db)
	titularRepo := repository.NewTitularRepository(db)
	ordenRepo := repository.NewOrdenRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	var cache service.Cache
	if rdb != nil {
		cache = infra.NewRedisCache(rdb)
	}
	resumenSvc := service.NewResumenService(cajaRepo, movimientoRepo, cache, cfg.ResumenCacheTTL(), reloj, cfg.NombreComercio)

	var correo service.ColaCorreo
	var observer service.OrdenObserver
	if dispatcher != nil {
		correo = dispatcher
		observer = dispatcher
	}

	return &Services{
		Auth: service.NewAuthService(usuarioRepo, cfg),
		Caja: service.NewCajaService(cajaRepo, resumenSvc, correo, service.CierreConfig{
			Destinatario: cfg.MailResumen,
			PDFDir:       cfg.PDFStoragePath,
			Comercio:     cfg.NombreComercio,
		}, reloj),
		Resumen:     resumenSvc,
		Movimientos: service.NewMovimientoService(movimientoRepo, conceptoRepo, medioRepo, resumenSvc, reloj),
		Ordenes: service.NewOrdenService(service.OrdenDeps{
			Ordenes:     ordenRepo,
			Estados:     estadoRepo,
			Titulares:   titularRepo,
			Companias:   companiaRepo,
			Medios:      medioRepo,
			Conceptos:   conceptoRepo,
			Movimientos: movimientoRepo,
			Resumen:     resumenSvc,
			Observer:    observer,
			Reloj:       reloj,
			Comercio:    cfg.NombreComercio,
		}),
		Estados:   service.NewEstadoService(estadoRepo),
		Conceptos: service.NewConceptoService(conceptoRepo, movimientoRepo),
		Medios:    service.NewMedioDePagoService(medioRepo, resumenSvc),
		Companias: service.NewCompaniaService(companiaRepo),
		Vehiculos: service.NewVehiculoService(vehiculoRepo),
		Titulares: service.NewTitularService(titularRepo, vehiculoRepo),
		OrdenRepo: ordenRepo,
	}
}

// New returns the configured Gin engine. Handler ← Service.
func New(cfg *config.Config, svcs *Services, db *gorm.DB, rdb *redis.Client, mailCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(svcs.Auth)
	usuariosH := handler.NewUsuariosHandler(svcs.Auth)
	cajaH := handler.NewCajaHandler(svcs.Caja)
	resumenH := handler.NewResumenHandler(svcs.Resumen)
	movimientosH := handler.NewMovimientosHandler(svcs.Movimientos)
	ordenesH := handler.NewOrdenesHandler(svcs.Ordenes)
	estadosH := handler.NewEstadosHandler(svcs.Estados)
	conceptosH := handler.NewConceptosHandler(svcs.Conceptos)
	mediosH := handler.NewMediosDePagoHandler(svcs.Medios)
	companiasH := handler.NewCompaniasHandler(svcs.Companias)
	vehiculosH := handler.NewVehiculosHandler(svcs.Vehiculos)
	titularesH := handler.NewTitularesHandler(svcs.Titulares)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb, mailCB))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		todos := middleware.RequireRole(RolAdministrador, RolCajero, RolTaller)
		mostrador := middleware.RequireRole(RolAdministrador, RolCajero)
		admin := middleware.RequireRole(RolAdministrador)

		// Caja and daily summary
		v1.GET("/resumen-del-dia", mostrador, resumenH.Obtener)
		v1.GET("/resumen-del-dia/imprimir", mostrador, resumenH.Imprimir)
		caja := v1.Group("/caja", mostrador)
		{
			caja.GET("/estado", cajaH.Estado)
			caja.POST("/abrir", cajaH.Abrir)
			caja.POST("/cerrar", cajaH.Cerrar)
		}

		movs := v1.Group("/movimientos", mostrador)
		{
			movs.POST("", movimientosH.Crear)
			movs.GET("", movimientosH.Listar)
			movs.GET("/:id", movimientosH.Obtener)
			movs.DELETE("/:id", movimientosH.Eliminar)
		}

		// Work orders: the counter manages them, the workshop only reads and moves estados
		v1.GET("/estados", todos, estadosH.Listar)
		v1.GET("/ordenes", todos, ordenesH.Listar)
		v1.GET("/ordenes/:id", todos, ordenesH.Obtener)
		ordenes := v1.Group("/ordenes", mostrador)
		{
			ordenes.POST("", ordenesH.Crear)
			ordenes.PUT("/:id", ordenesH.Actualizar)
			ordenes.DELETE("/:id", ordenesH.Eliminar)
			ordenes.GET("/:id/imprimir", ordenesH.Imprimir)
			ordenes.POST("/:id/pagos", ordenesH.RegistrarPago)
		}
		v1.PATCH("/taller/ordenes/:id/estado", todos, ordenesH.CambiarEstado)

		// Catalogs: everyone reads, only the administrador writes
		v1.GET("/conceptos", todos, conceptosH.Listar)
		conceptos := v1.Group("/conceptos", admin)
		{
			conceptos.POST("", conceptosH.Crear)
			conceptos.PUT("/:id", conceptosH.Actualizar)
			conceptos.DELETE("/:id", conceptosH.Eliminar)
		}

		v1.GET("/medios-de-pago", todos, mediosH.Listar)
		medios := v1.Group("/medios-de-pago", admin)
		{
			medios.POST("", mediosH.Crear)
			medios.PUT("/:id", mediosH.Actualizar)
			medios.DELETE("/:id", mediosH.Eliminar)
		}

		v1.GET("/companias-seguro", todos, companiasH.Listar)
		companias := v1.Group("/companias-seguro", admin)
		{
			companias.POST("", companiasH.Crear)
			companias.PUT("/:id", companiasH.Actualizar)
			companias.DELETE("/:id", companiasH.Desactivar)
		}

		v1.GET("/marcas", todos, vehiculosH.ListarMarcas)
		v1.GET("/marcas/:id/modelos", todos, vehiculosH.ModelosDeMarca)
		marcas := v1.Group("/marcas", admin)
		{
			marcas.POST("", vehiculosH.CrearMarca)
			marcas.PUT("/:id", vehiculosH.ActualizarMarca)
			marcas.DELETE("/:id", vehiculosH.EliminarMarca)
		}
		modelos := v1.Group("/modelos", admin)
		{
			modelos.POST("", vehiculosH.CrearModelo)
			modelos.PUT("/:id", vehiculosH.ActualizarModelo)
			modelos.DELETE("/:id", vehiculosH.EliminarModelo)
		}

		// Customer records: vehicles and their owners are registered at the counter
		v1.GET("/vehiculos", todos, vehiculosH.Listar)
		v1.GET("/vehiculos/:id", todos, vehiculosH.Obtener)
		vehiculos := v1.Group("/vehiculos", mostrador)
		{
			vehiculos.POST("", vehiculosH.Crear)
			vehiculos.PUT("/:id", vehiculosH.Actualizar)
			vehiculos.DELETE("/:id", vehiculosH.Eliminar)
		}

		titulares := v1.Group("/titulares", mostrador)
		{
			titulares.POST("", titularesH.Crear)
			titulares.GET("", titularesH.Listar)
			titulares.GET("/:id", titularesH.Obtener)
			titulares.PUT("/:id", titularesH.Actualizar)
			titulares.DELETE("/:id", titularesH.Eliminar)
			titulares.POST("/:id/vehiculos", titularesH.Vincular)
			titulares.DELETE("/:id/vehiculos/:vehiculoId", titularesH.Desvincular)
		}

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI, only outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
