package api

import (
	"time"

	"payments-backend/config"
	_ "payments-backend/docs"
	"payments-backend/internal/api/v1/payment"
	"payments-backend/internal/database"
	"payments-backend/internal/middleware"
	"payments-backend/internal/services"
	"payments-backend/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires the payment routes over store. Unmatched paths answer
// NOT_FOUND and known paths with the wrong method METHOD_NOT_ALLOWED.
func NewRouter(cfg *config.Config, store database.PaymentStore) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.Use(middleware.Logger(), middleware.Recovery(), middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	router.NoRoute(func(c *gin.Context) {
		utils.AbortWithError(c, utils.CodeNotFound, "", "")
	})
	router.NoMethod(func(c *gin.Context) {
		utils.AbortWithError(c, utils.CodeMethodNotAllowed, "", "")
	})

	if cfg.SwaggerEnabled {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	svc := services.NewPaymentService(store)
	payment.RegisterRoutes(router, payment.NewHandler(svc, utils.NewPaymentValidator()))

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        5 * time.Minute,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
