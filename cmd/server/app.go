package main

import (
	"net/http"
	"time"

	"github.com/Enodevs/speedvoice-backend/internal/auth"
	"github.com/Enodevs/speedvoice-backend/internal/handlers"
	"github.com/Enodevs/speedvoice-backend/internal/services"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App is the main application handler that wires services, handlers and
// routes together.
type App struct {
	mux *http.ServeMux
	db  *gorm.DB
	log *logrus.Logger

	Logins *services.LoginTokenService
}

// NewApp builds the service graph and configures all routes.
func NewApp(dbConn *gorm.DB, log *logrus.Logger, businessCacheTTL time.Duration) *App {
	app := &App{
		mux: http.NewServeMux(),
		db:  dbConn,
		log: log,
	}

	notifier := services.NewNotificationService(dbConn, log)
	policy := services.NewPlanPolicy(dbConn, notifier)
	invoices := services.NewInvoiceService(dbConn, notifier)
	businesses := services.NewBusinessService(dbConn, policy, notifier, businessCacheTTL)
	tokens := services.NewAccessTokenService(dbConn, invoices, notifier)
	app.Logins = services.NewLoginTokenService(dbConn, log)

	ah := handlers.NewAuthHandler(dbConn, app.Logins)
	bh := handlers.NewBusinessHandler(dbConn, businesses)
	ch := handlers.NewCustomerHandler(dbConn, businesses, notifier)
	cat := handlers.NewCategoryHandler(dbConn, businesses, notifier)
	ph := handlers.NewProductHandler(dbConn, businesses, notifier)
	ih := handlers.NewInvoiceHandler(dbConn, invoices, businesses, policy, notifier)
	iih := handlers.NewItemHandler(dbConn, invoices)
	rh := handlers.NewReceiptHandler(dbConn, businesses)
	nh := handlers.NewNotificationHandler(notifier)
	dh := handlers.NewDashboardHandler(dbConn, invoices)
	sh := handlers.NewShareTokenHandler(tokens)

	app.setupRoutes(ah, bh, ch, cat, ph, ih, iih, rh, nh, dh, sh)
	return app
}

// ServeHTTP implements http.Handler. The auth middleware attaches the
// caller's identity; route-level wrappers enforce it where needed.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	auth.Middleware(a.mux).ServeHTTP(w, r)
}

func (a *App) setupRoutes(
	ah *handlers.AuthHandler,
	bh *handlers.BusinessHandler,
	ch *handlers.CustomerHandler,
	cat *handlers.CategoryHandler,
	ph *handlers.ProductHandler,
	ih *handlers.InvoiceHandler,
	iih *handlers.ItemHandler,
	rh *handlers.ReceiptHandler,
	nh *handlers.NotificationHandler,
	dh *handlers.DashboardHandler,
	sh *handlers.ShareTokenHandler,
) {
	// Public routes (no auth required)
	a.mux.HandleFunc("POST /api/user/register", ah.Register)
	a.mux.HandleFunc("POST /api/user/token", ah.PasswordLogin)
	a.mux.HandleFunc("POST /api/auth/check-user-email", ah.CheckEmail)
	a.mux.HandleFunc("POST /api/auth/generate-login-token", ah.GenerateLoginToken)
	a.mux.HandleFunc("POST /api/auth/token-login", ah.TokenLogin)

	// Shared invoice access (customer-facing, no account)
	a.mux.HandleFunc("POST /api/invoice/share", sh.Issue)
	a.mux.HandleFunc("GET /api/invoice/shared/{token}", sh.View)

	// Authenticated routes
	a.handle("POST /api/auth/business-create", bh.Create)
	a.handle("GET /api/auth/business/{owner_id}", bh.Get)
	a.handle("PUT /api/auth/business/{owner_id}", bh.Update)
	a.handle("DELETE /api/auth/business/{owner_id}", bh.Delete)

	a.handle("GET /api/dashboard/customers/{business_id}", ch.List)
	a.handle("POST /api/dashboard/customer-create", ch.Create)
	a.handle("GET /api/dashboard/customer/{id}", ch.Get)
	a.handle("PUT /api/dashboard/customer/{id}", ch.Update)
	a.handle("DELETE /api/dashboard/customer/{id}", ch.Delete)

	a.handle("GET /api/dashboard/categories", cat.List)
	a.handle("POST /api/dashboard/category-create", cat.Create)
	a.handle("GET /api/dashboard/category/{name}", cat.Get)
	a.handle("PUT /api/dashboard/category/{name}", cat.Update)
	a.handle("DELETE /api/dashboard/category/{name}", cat.Delete)

	a.handle("GET /api/dashboard/products/{business_id}", ph.List)
	a.handle("POST /api/dashboard/product-create", ph.Create)
	a.handle("GET /api/dashboard/product/{id}", ph.Get)
	a.handle("PUT /api/dashboard/product/{id}", ph.Update)
	a.handle("DELETE /api/dashboard/product/{id}", ph.Delete)

	a.handle("GET /api/dashboard/invoices/{business_id}", ih.List)
	a.handle("POST /api/dashboard/invoices-create", ih.Create)
	a.handle("GET /api/dashboard/invoice/{uid}", ih.Get)
	a.handle("PUT /api/dashboard/invoice-update", ih.Update)
	a.handle("DELETE /api/dashboard/invoice/delete/{user_id}/{uid}", ih.Delete)

	a.handle("GET /api/dashboard/invoice-items/{uid}", iih.List)
	a.handle("POST /api/dashboard/invoice-item-create", iih.Create)
	a.handle("GET /api/dashboard/invoice-item/{id}", iih.Get)
	a.handle("PUT /api/dashboard/invoice-item/{id}", iih.Update)
	a.handle("DELETE /api/dashboard/invoice-item/{id}", iih.Delete)

	a.handle("GET /api/dashboard/receipts/{business_id}", rh.List)
	a.handle("GET /api/dashboard/receipt/{user_id}/{uid}", rh.Get)

	a.handle("GET /api/dashboard/notifications/{business_id}", nh.ListUnseen)
	a.handle("POST /api/dashboard/notifications/{business_id}/seen", nh.MarkAllSeen)

	a.handle("GET /api/dashboard/counters/{business_id}", dh.StatusCounts)
	a.handle("GET /api/dashboard/stats/{business_id}", dh.MonthlyStats)
}

func (a *App) handle(pattern string, fn http.HandlerFunc) {
	a.mux.Handle(pattern, auth.RequireAuth(fn))
}
