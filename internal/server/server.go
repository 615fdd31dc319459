package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tedxmekong/stagehub/internal/auth"
	authdomain "github.com/tedxmekong/stagehub/internal/auth/domain"
	"github.com/tedxmekong/stagehub/internal/auth/session"
	"github.com/tedxmekong/stagehub/internal/authorization"
	"github.com/tedxmekong/stagehub/internal/cart"
	cartdomain "github.com/tedxmekong/stagehub/internal/cart/domain"
	"github.com/tedxmekong/stagehub/internal/config"
	"github.com/tedxmekong/stagehub/internal/discount"
	discountdomain "github.com/tedxmekong/stagehub/internal/discount/domain"
	"github.com/tedxmekong/stagehub/internal/event"
	eventdomain "github.com/tedxmekong/stagehub/internal/event/domain"
	"github.com/tedxmekong/stagehub/internal/learning"
	learningdomain "github.com/tedxmekong/stagehub/internal/learning/domain"
	"github.com/tedxmekong/stagehub/internal/mentor"
	mentordomain "github.com/tedxmekong/stagehub/internal/mentor/domain"
	"github.com/tedxmekong/stagehub/internal/notification"
	notificationdomain "github.com/tedxmekong/stagehub/internal/notification/domain"
	"github.com/tedxmekong/stagehub/internal/observability"
	obslogger "github.com/tedxmekong/stagehub/internal/observability/logger"
	obsmetrics "github.com/tedxmekong/stagehub/internal/observability/metrics"
	obstracing "github.com/tedxmekong/stagehub/internal/observability/tracing"
	"github.com/tedxmekong/stagehub/internal/offering"
	offeringdomain "github.com/tedxmekong/stagehub/internal/offering/domain"
	"github.com/tedxmekong/stagehub/internal/order"
	orderdomain "github.com/tedxmekong/stagehub/internal/order/domain"
	"github.com/tedxmekong/stagehub/internal/organization"
	organizationdomain "github.com/tedxmekong/stagehub/internal/organization/domain"
	"github.com/tedxmekong/stagehub/internal/product"
	productdomain "github.com/tedxmekong/stagehub/internal/product/domain"
	"github.com/tedxmekong/stagehub/internal/providers/email"
	"github.com/tedxmekong/stagehub/internal/providers/pdf"
	"github.com/tedxmekong/stagehub/internal/purchase"
	purchasedomain "github.com/tedxmekong/stagehub/internal/purchase/domain"
	"github.com/tedxmekong/stagehub/internal/ratelimit"
	"github.com/tedxmekong/stagehub/internal/ticket"
	ticketdomain "github.com/tedxmekong/stagehub/internal/ticket/domain"
	"github.com/tedxmekong/stagehub/internal/workspace"
	workspacedomain "github.com/tedxmekong/stagehub/internal/workspace/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	authorization.Module,
	auth.Module,
	session.Module,
	email.Module,
	pdf.Module,
	cart.Module,
	discount.Module,
	event.Module,
	learning.Module,
	mentor.Module,
	notification.Module,
	offering.Module,
	order.Module,
	organization.Module,
	product.Module,
	purchase.Module,
	ratelimit.Module,
	ticket.Module,
	workspace.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics, registry *prometheus.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics, registry *prometheus.Registry) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics, registry)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
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
	engine   *gin.Engine
	cfg      config.Config
	log      *zap.Logger
	sessions *session.Manager
	authz    *authorization.Authorizer
	limiter  *ratelimit.RequestLimiter

	authSvc         authdomain.Service
	organizationSvc organizationdomain.Service
	offeringSvc     offeringdomain.Service
	eventSvc        eventdomain.Service
	productSvc      productdomain.Service
	cartSvc         cartdomain.Service
	discountSvc     discountdomain.Service
	orderSvc        orderdomain.Service
	ticketSvc       ticketdomain.Service
	purchaseSvc     purchasedomain.Service
	workspaceSvc    workspacedomain.Service
	mentorSvc       mentordomain.Service
	learningSvc     learningdomain.Service
	notificationSvc notificationdomain.Service
}

type ServerParams struct {
	fx.In

	Gin      *gin.Engine
	Cfg      config.Config
	Log      *zap.Logger
	Sessions *session.Manager
	Authz    *authorization.Authorizer
	Limiter  *ratelimit.RequestLimiter `optional:"true"`

	AuthSvc         authdomain.Service
	OrganizationSvc organizationdomain.Service
	OfferingSvc     offeringdomain.Service
	EventSvc        eventdomain.Service
	ProductSvc      productdomain.Service
	CartSvc         cartdomain.Service
	DiscountSvc     discountdomain.Service
	OrderSvc        orderdomain.Service
	TicketSvc       ticketdomain.Service
	PurchaseSvc     purchasedomain.Service
	WorkspaceSvc    workspacedomain.Service
	MentorSvc       mentordomain.Service
	LearningSvc     learningdomain.Service
	NotificationSvc notificationdomain.Service
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		log:             p.Log.Named("http.server"),
		sessions:        p.Sessions,
		authz:           p.Authz,
		limiter:         p.Limiter,
		authSvc:         p.AuthSvc,
		organizationSvc: p.OrganizationSvc,
		offeringSvc:     p.OfferingSvc,
		eventSvc:        p.EventSvc,
		productSvc:      p.ProductSvc,
		cartSvc:         p.CartSvc,
		discountSvc:     p.DiscountSvc,
		orderSvc:        p.OrderSvc,
		ticketSvc:       p.TicketSvc,
		purchaseSvc:     p.PurchaseSvc,
		workspaceSvc:    p.WorkspaceSvc,
		mentorSvc:       p.MentorSvc,
		learningSvc:     p.LearningSvc,
		notificationSvc: p.NotificationSvc,
	}

	s.registerAuthRoutes()
	s.registerAPIRoutes()
	s.registerAdminRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/register", s.Register)
	auth.POST("/login", s.RateLimit(ratelimit.ScopeLogin), s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/verify", s.VerifyEmail)
	auth.GET("/me", s.AuthRequired(), s.Me)
	auth.POST("/change-password", s.AuthRequired(), s.ChangePassword)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Public catalog --------
	api.GET("/organizations", s.ListOrganizations)
	api.GET("/organizations/:id", s.GetOrganization)
	api.GET("/offerings", s.ListOfferings)
	api.GET("/offerings/:id", s.GetOffering)
	api.GET("/events", s.ListEvents)
	api.GET("/events/:id", s.GetEvent)
	api.GET("/products", s.ListProducts)
	api.GET("/products/:id", s.GetProduct)

	authed := api.Group("", s.AuthRequired())

	// -------- Organizations --------
	authed.POST("/organizations", s.CreateOrganization)
	authed.GET("/me/organizations", s.ListMyOrganizations)
	authed.PUT("/organizations/:id", s.UpdateOrganization)
	authed.POST("/organizations/:id/join", s.JoinOrganization)
	authed.GET("/organizations/:id/members", s.ListOrganizationMembers)
	authed.POST("/organizations/:id/members/:userId/approve", s.ApproveOrganizationMember)
	authed.DELETE("/organizations/:id/members/:userId", s.RemoveOrganizationMember)

	// -------- Catalog authoring (partner gated) --------
	authed.POST("/offerings", s.Authorize(), s.CreateOffering)
	authed.PUT("/offerings/:id", s.Authorize(), s.UpdateOffering)
	authed.POST("/events", s.Authorize(), s.CreateEvent)
	authed.PUT("/events/:id", s.Authorize(), s.UpdateEvent)
	authed.POST("/products", s.Authorize(), s.CreateProduct)
	authed.PUT("/products/:id", s.Authorize(), s.UpdateProduct)
	authed.POST("/products/:id/stock", s.Authorize(), s.AdjustProductStock)

	// -------- Cart --------
	authed.GET("/cart", s.ListCart)
	authed.POST("/cart/items", s.AddCartItem)
	authed.PUT("/cart/items/:productId", s.UpdateCartItem)
	authed.DELETE("/cart/items/:productId", s.RemoveCartItem)
	authed.DELETE("/cart", s.ClearCart)

	// -------- Discounts --------
	authed.POST("/discounts/preview", s.RateLimit(ratelimit.ScopeDiscount), s.PreviewDiscount)

	// -------- Orders --------
	authed.POST("/checkout", s.RateLimit(ratelimit.ScopeCheckout), s.Checkout)
	authed.GET("/orders", s.ListMyOrders)
	authed.GET("/orders/:id", s.GetMyOrder)
	authed.POST("/orders/:id/cancel", s.CancelOrder)

	// -------- Tickets --------
	authed.POST("/tickets", s.PurchaseTicket)
	authed.GET("/tickets", s.ListMyTickets)
	authed.GET("/tickets/:id", s.GetTicket)
	authed.POST("/tickets/:id/cancel", s.CancelTicket)
	authed.GET("/tickets/:id/receipt", s.DownloadTicketReceipt)

	// -------- Payment webhooks --------
	api.POST("/payments/webhooks/:provider", s.HandlePaymentWebhook)

	// -------- Service purchases --------
	authed.POST("/purchases", s.PurchaseOffering)
	authed.GET("/purchases", s.ListMyPurchases)
	authed.GET("/purchases/:id", s.GetPurchase)
	authed.POST("/purchases/:id/cancel", s.CancelPurchase)

	// -------- Workspaces --------
	authed.GET("/workspaces", s.ListMyWorkspaces)
	authed.GET("/workspaces/:id", s.GetWorkspace)
	authed.GET("/workspaces/:id/pages", s.ListWorkspacePages)
	authed.POST("/workspaces/:id/pages", s.CreateWorkspacePage)
	authed.PUT("/workspaces/:id/pages/:pageId", s.UpdateWorkspacePage)
	authed.DELETE("/workspaces/:id/pages/:pageId", s.DeleteWorkspacePage)
	authed.GET("/workspaces/:id/tasks", s.ListWorkspaceTasks)
	authed.POST("/workspaces/:id/tasks", s.CreateWorkspaceTask)
	authed.POST("/workspaces/:id/tasks/:taskId/move", s.MoveWorkspaceTask)
	authed.DELETE("/workspaces/:id/tasks/:taskId", s.DeleteWorkspaceTask)
	authed.GET("/workspaces/:id/files", s.ListWorkspaceFiles)
	authed.POST("/workspaces/:id/files", s.AddWorkspaceFile)
	authed.DELETE("/workspaces/:id/files/:fileId", s.RemoveWorkspaceFile)

	// -------- Mentor schedules and sessions --------
	authed.GET("/mentors/:id/slots", s.ListMentorSlots)
	authed.POST("/mentors/slots", s.Authorize(), s.AddMentorSlot)
	authed.POST("/mentors/slots/:id/toggle", s.Authorize(), s.ToggleMentorSlot)
	authed.DELETE("/mentors/slots/:id", s.Authorize(), s.RemoveMentorSlot)
	authed.POST("/sessions", s.BookSession)
	authed.GET("/sessions/mine", s.ListMySessions)
	authed.GET("/sessions/mentoring", s.ListMentoringSessions)
	authed.POST("/sessions/:id/complete", s.Authorize(), s.CompleteSession)
	authed.POST("/sessions/:id/cancel", s.CancelSession)

	// -------- Learning progress --------
	authed.PUT("/learning/progress", s.UpsertLearningProgress)
	authed.GET("/learning/progress", s.ListLearningProgress)
	authed.GET("/learning/summary", s.GetLearningSummary)

	// -------- Notifications and calendar --------
	authed.GET("/notifications", s.ListNotifications)
	authed.POST("/notifications/:id/read", s.MarkNotificationRead)
	authed.PUT("/notifications/read-all", s.MarkAllNotificationsRead)
	authed.GET("/calendar", s.ListCalendar)
	authed.POST("/calendar", s.CreateCalendarEvent)
	authed.PUT("/calendar/:id", s.UpdateCalendarEvent)
	authed.DELETE("/calendar/:id", s.DeleteCalendarEvent)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin")

	admin.Use(s.AuthRequired())
	admin.Use(s.Authorize())

	admin.GET("/organizations", s.AdminListOrganizations)
	admin.POST("/organizations/:id/approve", s.ApproveOrganization)
	admin.POST("/organizations/:id/tier", s.SetOrganizationTier)

	admin.GET("/offerings", s.AdminListOfferings)
	admin.POST("/offerings/:id/approve", s.ApproveOffering)
	admin.GET("/events", s.AdminListEvents)
	admin.POST("/events/:id/approve", s.ApproveEvent)
	admin.GET("/products", s.AdminListProducts)
	admin.POST("/products/:id/approve", s.ApproveProduct)

	admin.GET("/discounts", s.ListDiscounts)
	admin.POST("/discounts", s.CreateDiscount)

	admin.GET("/orders", s.AdminListOrders)
	admin.POST("/orders/:id/status", s.AdvanceOrderStatus)

	admin.POST("/users/:id/role", s.SetUserRole)

	admin.POST("/purchases/:id/progress", s.UpdatePurchaseProgress)
	admin.POST("/purchases/:id/complete", s.CompletePurchase)
	admin.POST("/workspaces/:id/mentor", s.AssignWorkspaceMentor)
}
