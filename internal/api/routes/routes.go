// server/internal/api/routes/routes.go
package routes

import (
	"asset-verse-api-server/config"
	"asset-verse-api-server/internal/api/handlers"
	"asset-verse-api-server/internal/api/middleware"
	"asset-verse-api-server/internal/engine"
	"asset-verse-api-server/internal/models"
	"asset-verse-api-server/internal/s3"
	"asset-verse-api-server/internal/socket"
	"asset-verse-api-server/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Store is the document store the router wires into the handlers; both the
// Mongo store and the in-memory store satisfy it.
type Store interface {
	store.AssetStore
	store.UserStore
	store.RequestStore
	store.BillingStore
}

// SetupRouter wires handlers, middleware and route groups.
func SetupRouter(
	eng *engine.Engine,
	st Store,
	hub *socket.Hub,
	s3Uploader *s3.Uploader,
	cfg config.Config,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	authHandler := &handlers.AuthHandler{Users: st}
	assetHandler := &handlers.AssetHandler{Engine: eng, Assets: st, Users: st, Uploader: s3Uploader}
	requestHandler := &handlers.RequestHandler{Engine: eng, Requests: st, Hub: hub}
	userHandler := &handlers.UserHandler{Engine: eng, Users: st}
	billingHandler := &handlers.BillingHandler{Engine: eng, Billing: st, Cfg: cfg.Payment}
	webSocketHandler := &handlers.WebSocketHandler{Hub: hub}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		// === PUBLIC ROUTES ===

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		apiV1.GET("/packages", billingHandler.GetPackages)

		// === PROTECTED ROUTES ===
		// Everything below goes through Authenticate; the role guard checks
		// the user directory, not the token claim.

		protected := apiV1.Group("/")
		protected.Use(middleware.Authenticate())
		{
			protected.GET("/users/me", userHandler.GetMe)

			// HR-only routes
			hrRoutes := protected.Group("/")
			hrRoutes.Use(middleware.Authorize(st, models.RoleHR))
			{
				assets := hrRoutes.Group("/assets")
				{
					assets.POST("/", assetHandler.CreateAsset)
					assets.GET("/", assetHandler.GetMyAssets)
					assets.PUT("/:id", assetHandler.UpdateAsset)
					assets.DELETE("/:id", assetHandler.DeleteAsset)
					assets.POST("/:id/image", assetHandler.UploadAssetImage)
				}

				hrRoutes.GET("/asset-requests/hr", requestHandler.GetHRRequests)
				hrRoutes.PATCH("/requests/:id/status", requestHandler.TransitionRequest)
				hrRoutes.DELETE("/requests/:id", requestHandler.DeleteRequest)

				hrRoutes.GET("/users/employees", userHandler.GetMyEmployees)
				hrRoutes.DELETE("/users/employees/:email", userHandler.RemoveEmployee)

				hrRoutes.POST("/checkout-session", billingHandler.CreateCheckoutSession)
				hrRoutes.PATCH("/payment-success", billingHandler.PaymentSuccess)

				hrRoutes.POST("/reconcile", userHandler.Reconcile)
			}

			// Employee-only routes
			employeeRoutes := protected.Group("/")
			employeeRoutes.Use(middleware.Authorize(st, models.RoleEmployee))
			{
				employeeRoutes.POST("/asset-requests", requestHandler.CreateRequest)
				employeeRoutes.GET("/asset-requests/employee", requestHandler.GetEmployeeRequests)
			}
		}
	}

	return router
}
