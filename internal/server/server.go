package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	authdomain "github.com/matjarly/matjarly/internal/auth/domain"
	"github.com/matjarly/matjarly/internal/auth/token"
	"github.com/matjarly/matjarly/internal/authorization"
	cartdomain "github.com/matjarly/matjarly/internal/cart/domain"
	"github.com/matjarly/matjarly/internal/config"
	dmdomain "github.com/matjarly/matjarly/internal/deliverymethod/domain"
	"github.com/matjarly/matjarly/internal/observability"
	obsmiddleware "github.com/matjarly/matjarly/internal/observability/logger"
	obsmetrics "github.com/matjarly/matjarly/internal/observability/metrics"
	obstracing "github.com/matjarly/matjarly/internal/observability/tracing"
	ownerdomain "github.com/matjarly/matjarly/internal/owner/domain"
	pmdomain "github.com/matjarly/matjarly/internal/paymentmethod/domain"
	plandomain "github.com/matjarly/matjarly/internal/plan/domain"
	"github.com/matjarly/matjarly/internal/providers/storage"
	"github.com/matjarly/matjarly/internal/ratelimit"
	signupdomain "github.com/matjarly/matjarly/internal/signup/domain"
	sliderdomain "github.com/matjarly/matjarly/internal/slider/domain"
	"github.com/matjarly/matjarly/internal/storecontext"
	storedomain "github.com/matjarly/matjarly/internal/store/domain"
	subscriptiondomain "github.com/matjarly/matjarly/internal/subscription/domain"
	userdomain "github.com/matjarly/matjarly/internal/user/domain"
	"github.com/matjarly/matjarly/internal/verification"
	swaggerfiles "github.com/swaggo/files"
	ginswagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/api-docs/*any", ginswagger.WrapHandler(swaggerfiles.Handler))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
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

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	issuer          *token.Issuer
	resolver        *storecontext.Resolver
	authzSvc        authorization.Service
	authSvc         authdomain.Service
	signupSvc       signupdomain.Service
	verificationSvc verification.Service
	storeSvc        storedomain.Service
	userSvc         userdomain.Service
	ownerSvc        ownerdomain.Service
	deliverySvc     dmdomain.Service
	paymentSvc      pmdomain.Service
	sliderSvc       sliderdomain.Service
	planSvc         plandomain.Service
	subscriptionSvc subscriptiondomain.Service
	cartSvc         cartdomain.Service
	uploader        storage.Uploader
	limiter         *ratelimit.TokenBucket
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	Issuer          *token.Issuer
	Resolver        *storecontext.Resolver
	AuthzSvc        authorization.Service
	AuthSvc         authdomain.Service
	SignupSvc       signupdomain.Service
	VerificationSvc verification.Service
	StoreSvc        storedomain.Service
	UserSvc         userdomain.Service
	OwnerSvc        ownerdomain.Service
	DeliverySvc     dmdomain.Service
	PaymentSvc      pmdomain.Service
	SliderSvc       sliderdomain.Service
	PlanSvc         plandomain.Service
	SubscriptionSvc subscriptiondomain.Service
	CartSvc         cartdomain.Service
	Uploader        storage.Uploader
	Limiter         *ratelimit.TokenBucket `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		issuer:          p.Issuer,
		resolver:        p.Resolver,
		authzSvc:        p.AuthzSvc,
		authSvc:         p.AuthSvc,
		signupSvc:       p.SignupSvc,
		verificationSvc: p.VerificationSvc,
		storeSvc:        p.StoreSvc,
		userSvc:         p.UserSvc,
		ownerSvc:        p.OwnerSvc,
		deliverySvc:     p.DeliverySvc,
		paymentSvc:      p.PaymentSvc,
		sliderSvc:       p.SliderSvc,
		planSvc:         p.PlanSvc,
		subscriptionSvc: p.SubscriptionSvc,
		cartSvc:         p.CartSvc,
		uploader:        p.Uploader,
		limiter:         p.Limiter,
	}

	svc.registerPublicRoutes()
	svc.registerAuthRoutes()
	svc.registerStoreRoutes()
	svc.registerPlatformRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

const (
	roleSuperadmin = string(userdomain.RoleSuperadmin)
	roleAdmin      = string(userdomain.RoleAdmin)
)

func (s *Server) registerPublicRoutes() {
	api := s.engine.Group("/api")

	api.POST("/auth/signup", s.rateLimit("signup", 0.1, 5), s.Signup)
	api.POST("/auth/login", s.rateLimit("login", 0.5, 10), s.Login)
	api.POST("/auth/verify-email", s.rateLimit("otp", 0.2, 5), s.VerifyEmail)
	api.POST("/auth/resend-otp", s.rateLimit("otp", 0.2, 5), s.ResendOTP)
	api.POST("/auth/forgot-password", s.rateLimit("otp", 0.2, 5), s.ForgotPassword)
	api.POST("/auth/reset-password", s.rateLimit("otp", 0.2, 5), s.ResetPassword)

	api.GET("/plans", s.ListActivePlans)

	storefront := api.Group("/storefront/:slug")
	{
		storefront.GET("", s.GetStorefront)
		storefront.GET("/payment-methods", s.GetStorefrontPaymentMethods)
		storefront.GET("/delivery-methods", s.GetStorefrontDeliveryMethods)
		storefront.GET("/sliders", s.GetStorefrontSliders)
		storefront.POST("/sliders/:id/view", s.IncrementStorefrontSliderView)
		storefront.POST("/sliders/:id/click", s.IncrementStorefrontSliderClick)
	}
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/api/auth", s.AuthRequired())

	auth.GET("/me", s.Me)
	auth.POST("/change-password", s.ChangePassword)
	auth.POST("/change-email", s.RequestEmailChange)
	auth.POST("/change-email/verify", s.VerifyEmailChange)
}

// registerStoreRoutes covers everything scoped through the store
// resolver: the coarse role gate first, then the capability gate.
func (s *Server) registerStoreRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	// -------- Stores --------
	api.GET("/stores", s.RequireRole(roleSuperadmin), s.ListStores)
	api.POST("/stores", s.RequireRole(roleSuperadmin), s.CreateStore)
	api.GET("/stores/:id", s.RequireRole(roleSuperadmin, roleAdmin), s.authorize(authorization.ObjectStore, authorization.ActionView), s.GetStore)
	api.PATCH("/stores/:id", s.RequireRole(roleSuperadmin, roleAdmin), s.authorize(authorization.ObjectStore, authorization.ActionManage), s.UpdateStore)
	api.PATCH("/stores/:id/status", s.RequireRole(roleSuperadmin), s.SetStoreStatus)
	api.DELETE("/stores/:id", s.RequireRole(roleSuperadmin, roleAdmin), s.authorizePrimary(), s.DeleteStore)

	// -------- Users --------
	api.GET("/users", s.RequireRole(roleSuperadmin, roleAdmin), s.authorize(authorization.ObjectUser, authorization.ActionView), s.ListUsers)
	api.POST("/users", s.RequireRole(roleSuperadmin, roleAdmin), s.authorize(authorization.ObjectUser, authorization.ActionManage), s.CreateUser)
	api.GET("/users/:id", s.RequireRole(roleSuperadmin, roleAdmin), s.authorize(authorization.ObjectUser, authorization.ActionView), s.GetUser)
	api.PATCH("/users/:id", s.RequireRole(roleSuperadmin, roleAdmin), s.authorize(authorization.ObjectUser, authorization.ActionManage), s.UpdateUser)
	api.DELETE("/users/:id", s.RequireRole(roleSuperadmin, roleAdmin), s.authorize(authorization.ObjectUser, authorization.ActionManage), s.DeleteUser)

	// -------- Owners --------
	api.GET("/owners", s.RequireRole(roleSuperadmin, roleAdmin), s.authorize(authorization.ObjectOwner, authorization.ActionView), s.ListOwners)
	api.GET("/owners/:id", s.RequireRole(roleSuperadmin, roleAdmin), s.authorize(authorization.ObjectOwner, authorization.ActionView), s.GetOwner)
	api.POST("/owners", s.RequireRole(roleSuperadmin, roleAdmin), s.authorizePrimary(), s.AddOwner)
	api.PATCH("/owners/:id", s.RequireRole(roleSuperadmin, roleAdmin), s.authorizePrimary(), s.UpdateOwner)
	api.POST("/owners/:id/transfer-primary", s.RequireRole(roleSuperadmin, roleAdmin), s.authorizePrimary(), s.TransferPrimaryOwner)
	api.DELETE("/owners/:id", s.RequireRole(roleSuperadmin, roleAdmin), s.authorizePrimary(), s.RemoveOwner)

	// -------- Delivery methods --------
	api.GET("/delivery-methods", s.authorize(authorization.ObjectDeliveryMethod, authorization.ActionView), s.ListDeliveryMethods)
	api.POST("/delivery-methods", s.authorize(authorization.ObjectDeliveryMethod, authorization.ActionManage), s.CreateDeliveryMethod)
	api.GET("/delivery-methods/:id", s.authorize(authorization.ObjectDeliveryMethod, authorization.ActionView), s.GetDeliveryMethod)
	api.PATCH("/delivery-methods/:id", s.authorize(authorization.ObjectDeliveryMethod, authorization.ActionManage), s.UpdateDeliveryMethod)
	api.PATCH("/delivery-methods/:id/set-default", s.authorize(authorization.ObjectDeliveryMethod, authorization.ActionManage), s.SetDefaultDeliveryMethod)
	api.PATCH("/delivery-methods/:id/toggle-active", s.authorize(authorization.ObjectDeliveryMethod, authorization.ActionManage), s.ToggleDeliveryMethodActive)
	api.DELETE("/delivery-methods/:id", s.authorize(authorization.ObjectDeliveryMethod, authorization.ActionManage), s.DeleteDeliveryMethod)

	// -------- Payment methods --------
	api.GET("/payment-methods", s.authorize(authorization.ObjectPaymentMethod, authorization.ActionView), s.ListPaymentMethods)
	api.POST("/payment-methods", s.authorize(authorization.ObjectPaymentMethod, authorization.ActionManage), s.CreatePaymentMethod)
	api.GET("/payment-methods/:id", s.authorize(authorization.ObjectPaymentMethod, authorization.ActionView), s.GetPaymentMethod)
	api.PATCH("/payment-methods/:id", s.authorize(authorization.ObjectPaymentMethod, authorization.ActionManage), s.UpdatePaymentMethod)
	api.PATCH("/payment-methods/:id/set-default", s.authorize(authorization.ObjectPaymentMethod, authorization.ActionManage), s.SetDefaultPaymentMethod)
	api.PATCH("/payment-methods/:id/toggle-active", s.authorize(authorization.ObjectPaymentMethod, authorization.ActionManage), s.TogglePaymentMethodActive)
	api.POST("/payment-methods/:id/logo", s.authorize(authorization.ObjectPaymentMethod, authorization.ActionManage), s.UploadPaymentMethodLogo)
	api.POST("/payment-methods/:id/qr", s.authorize(authorization.ObjectPaymentMethod, authorization.ActionManage), s.UploadPaymentMethodQR)
	api.DELETE("/payment-methods/:id", s.authorize(authorization.ObjectPaymentMethod, authorization.ActionManage), s.DeletePaymentMethod)

	// -------- Sliders --------
	api.GET("/store-sliders", s.authorize(authorization.ObjectSlider, authorization.ActionView), s.ListSliders)
	api.POST("/store-sliders", s.authorize(authorization.ObjectSlider, authorization.ActionManage), s.CreateSlider)
	api.GET("/store-sliders/:id", s.authorize(authorization.ObjectSlider, authorization.ActionView), s.GetSlider)
	api.PATCH("/store-sliders/:id", s.authorize(authorization.ObjectSlider, authorization.ActionManage), s.UpdateSlider)
	api.POST("/store-sliders/:id/media", s.authorize(authorization.ObjectSlider, authorization.ActionManage), s.UploadSliderMedia)
	api.POST("/store-sliders/:id/view", s.IncrementSliderView)
	api.POST("/store-sliders/:id/click", s.IncrementSliderClick)
	api.DELETE("/store-sliders/:id", s.authorize(authorization.ObjectSlider, authorization.ActionManage), s.DeleteSlider)

	// -------- Orders --------
	api.GET("/orders", s.authorize(authorization.ObjectOrder, authorization.ActionView), s.ListOrders)
	api.GET("/orders/:id", s.authorize(authorization.ObjectOrder, authorization.ActionView), s.GetOrder)

	// -------- Cart --------
	cart := api.Group("/cart")
	{
		cart.GET("", s.GetCart)
		cart.POST("/items", s.AddCartItem)
		cart.PATCH("/items/:itemId", s.UpdateCartItem)
		cart.DELETE("/items/:itemId", s.RemoveCartItem)
		cart.DELETE("", s.ClearCart)
		cart.POST("/checkout", s.Checkout)
	}
}

// registerPlatformRoutes is the superadmin-only surface.
func (s *Server) registerPlatformRoutes() {
	api := s.engine.Group("/api", s.AuthRequired(), s.RequireRole(roleSuperadmin))

	api.GET("/subscription-plans", s.ListPlans)
	api.POST("/subscription-plans", s.CreatePlan)
	api.GET("/subscription-plans/:id", s.GetPlan)
	api.PATCH("/subscription-plans/:id", s.UpdatePlan)
	api.DELETE("/subscription-plans/:id", s.DeletePlan)

	api.POST("/subscriptions/:id/activate", s.ActivateSubscription)
	api.POST("/subscriptions/:id/extend-trial", s.ExtendTrial)
	api.POST("/subscriptions/:id/cancel", s.CancelSubscription)
	api.POST("/subscriptions/check", s.RunSubscriptionCheck)
}
