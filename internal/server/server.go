package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	"github.com/smallbiznis/storefront/internal/config"
	"github.com/smallbiznis/storefront/internal/imageurl"
	inquirydomain "github.com/smallbiznis/storefront/internal/inquiry/domain"
	"github.com/smallbiznis/storefront/internal/observability"
	obslogger "github.com/smallbiznis/storefront/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/storefront/internal/observability/metrics"
	obstracing "github.com/smallbiznis/storefront/internal/observability/tracing"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	"github.com/smallbiznis/storefront/internal/providers/pdf"
	"github.com/smallbiznis/storefront/internal/ratelimit"
	storagedomain "github.com/smallbiznis/storefront/internal/storage/domain"
	"github.com/smallbiznis/storefront/internal/upload"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const storeName = "Shokupan Bakery"

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	if httpMetrics != nil {
		r.Use(httpMetrics.GinMiddleware())
	}
	r.Use(ErrorHandlingMiddleware())
	return r
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	log         *zap.Logger
	storage     storagedomain.Storage
	catalogSvc  catalogdomain.Service
	orderSvc    orderdomain.Service
	inquirySvc  inquirydomain.Service
	uploads     *upload.Store
	receipts    pdf.Provider
	limiter     *ratelimit.FormLimiter
	images      *config.StorefrontConfigHolder
	obsMetrics  *obsmetrics.Metrics
	httpMetrics *obsmetrics.HTTPMetrics
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Log         *zap.Logger
	Storage     storagedomain.Storage
	CatalogSvc  catalogdomain.Service
	OrderSvc    orderdomain.Service
	InquirySvc  inquirydomain.Service
	Uploads     *upload.Store
	Receipts    pdf.Provider
	Limiter     *ratelimit.FormLimiter
	Images      *config.StorefrontConfigHolder
	ObsMetrics  *obsmetrics.Metrics     `optional:"true"`
	HTTPMetrics *obsmetrics.HTTPMetrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		log:         p.Log.Named("http"),
		storage:     p.Storage,
		catalogSvc:  p.CatalogSvc,
		orderSvc:    p.OrderSvc,
		inquirySvc:  p.InquirySvc,
		uploads:     p.Uploads,
		receipts:    p.Receipts,
		limiter:     p.Limiter,
		images:      p.Images,
		obsMetrics:  p.ObsMetrics,
		httpMetrics: p.HTTPMetrics,
	}

	s.registerProbeRoutes()
	s.registerAssetRoutes()
	s.registerAPIRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerProbeRoutes() {
	s.engine.GET("/health", s.Health)
	if s.httpMetrics != nil {
		s.engine.GET("/metrics", s.httpMetrics.Handler())
	}
}

func (s *Server) registerAssetRoutes() {
	s.engine.GET("/attached_assets/:filename", s.serveFrom(s.cfg.Upload.Dir))
	s.engine.GET("/assets/:filename", s.serveFrom(s.cfg.Upload.AssetsDir))
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	products := api.Group("/products")
	products.GET("", s.ListProducts)
	products.GET("/featured", s.listByFilter(catalogdomain.FilterFeatured))
	products.GET("/bestsellers", s.listByFilter(catalogdomain.FilterBestSeller))
	products.GET("/seasonal", s.listByFilter(catalogdomain.FilterSeasonal))
	products.GET("/category/:category", s.ListProductsByCategory)
	products.GET("/:idOrSlug", s.GetProduct)
	products.POST("", s.CreateProduct)
	products.PUT("/:id", s.UpdateProduct)
	products.DELETE("/:id", s.DeleteProduct)

	api.POST("/migrate-products", s.NotInProduction(), s.MigrateProducts)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/orders/:id/receipt", s.GetOrderReceipt)

	api.POST("/corporate-inquiry", s.RateLimit("corporate_inquiry"), s.SubmitCorporateInquiry)
	api.POST("/contact", s.RateLimit("contact"), s.SubmitContactForm)
	api.POST("/newsletter", s.RateLimit("newsletter"), s.Subscribe)
	api.POST("/upload", s.RateLimit("upload"), s.UploadImage)
}

func (s *Server) Health(c *gin.Context) {
	backend := "none"
	if s.storage != nil {
		backend = s.storage.Backend()
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "storage": backend})
}

func (s *Server) imageResolver() imageurl.Resolver {
	if s.images == nil {
		return imageurl.Default()
	}
	img := s.images.Get().Images
	return imageurl.Resolver{
		DefaultImage:  img.DefaultImage,
		UploadsPrefix: img.UploadsPrefix,
		AssetsPrefix:  img.AssetsPrefix,
		Keywords:      img.UploadKeywords,
	}
}

func run(lc fx.Lifecycle, cfg config.Config, s *Server, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("http server listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
