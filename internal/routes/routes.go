package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/cache"
	"github.com/BruksfildServices01/appointmenttech-api/internal/config"
	"github.com/BruksfildServices01/appointmenttech-api/internal/handlers"
	infraRepo "github.com/BruksfildServices01/appointmenttech-api/internal/infra/repository"
	"github.com/BruksfildServices01/appointmenttech-api/internal/mailer"
	"github.com/BruksfildServices01/appointmenttech-api/internal/middleware"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/payments"
	"github.com/BruksfildServices01/appointmenttech-api/internal/ratelimit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/realtime"
	"github.com/BruksfildServices01/appointmenttech-api/internal/security"
	"github.com/BruksfildServices01/appointmenttech-api/internal/storage"
	ucAppointment "github.com/BruksfildServices01/appointmenttech-api/internal/usecase/appointment"
	ucBusiness "github.com/BruksfildServices01/appointmenttech-api/internal/usecase/business"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/catalog"
	ucLocation "github.com/BruksfildServices01/appointmenttech-api/internal/usecase/location"
	ucNews "github.com/BruksfildServices01/appointmenttech-api/internal/usecase/news"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/notification"
	ucPayment "github.com/BruksfildServices01/appointmenttech-api/internal/usecase/payment"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/permission"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/user"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/vertical"
	"github.com/BruksfildServices01/appointmenttech-api/internal/validators"
)

// Deps are the process-wide singletons built by main.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Log     zerolog.Logger
	Cache   cache.Cache
	Limiter ratelimit.Limiter
	Storage storage.Storage
	// Gateway is nil when payments are not configured.
	Gateway payments.Gateway
	// Google is nil when Google sign-in is not configured.
	Google   user.IdentityVerifier
	Hub      *realtime.Hub
	Security *security.Service
	Audit    *audit.Dispatcher
	AuditLog *audit.Logger
	Registry *prometheus.Registry
}

// App exposes the services main runs background work for.
type App struct {
	Notifications *notification.Service
}

func RegisterRoutes(r *gin.Engine, d Deps) (*App, error) {
	cfg := d.Config
	db := d.DB

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	metrics, err := middleware.NewMetrics(d.Registry)
	if err != nil {
		return nil, err
	}

	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(d.Log))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(metrics.Handler())
	if cfg.Security.MonitoringEnabled {
		r.Use(middleware.SecurityMonitor(security.NewMonitor(d.Limiter, d.Security, cfg.Auth.JWTSecret, d.Log)))
	}

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	userRepo := infraRepo.NewUserGormRepository(db)
	userTypeRepo := infraRepo.NewSoftDeleteRepository[models.UserType](db)
	pageRepo := infraRepo.NewSoftDeleteRepository[models.Page](db)
	permissionRepo := infraRepo.NewSoftDeleteRepository[models.UserPermission](db)

	businessTypeRepo := infraRepo.NewSoftDeleteRepository[models.BusinessType](db)
	businessCategoryRepo := infraRepo.NewSoftDeleteRepository[models.BusinessCategory](db)
	businessUserRepo := infraRepo.NewBusinessUserGormRepository(db)

	locationRepo := infraRepo.NewSoftDeleteRepository[models.LocationMaster](db)
	pincodeRepo := infraRepo.NewSoftDeleteRepository[models.LocationActivePincode](db)
	addressRepo := infraRepo.NewAddressGormRepository(db)

	newsRepo := infraRepo.NewNewsGormRepository(db)
	notificationRepo := infraRepo.NewNotificationGormRepository(db)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	cateringRepo := infraRepo.NewCateringOrderGormRepository(db)
	paymentRepo := infraRepo.NewPaymentGormRepository(db)

	uploads := storage.NewUploader(d.Storage, cfg.Storage, d.Log)
	cached := catalog.Options[models.BusinessType]{CacheTTL: cfg.Redis.CacheTTL}

	// ======================================================
	// SERVICES
	// ======================================================
	notifications := notification.NewService(notificationRepo, d.Hub, d.Log)

	userTypes := catalog.NewService[models.UserType, *models.UserType](userTypeRepo, catalog.Options[models.UserType]{
		Table:         "user_types",
		Label:         "User type",
		NameColumn:    "name",
		Name:          func(t *models.UserType) string { return t.Name },
		DuplicateCode: "user_type_name_exists",
		NotFoundCode:  "user_type_not_found",
		CacheTTL:      cfg.Redis.CacheTTL,
	}, d.Audit, d.Cache)

	pages := catalog.NewService[models.Page, *models.Page](pageRepo, catalog.Options[models.Page]{
		Table:         "pages",
		Label:         "Page",
		NameColumn:    "name",
		Name:          func(p *models.Page) string { return p.Name },
		DuplicateCode: "page_name_exists",
		NotFoundCode:  "page_not_found",
		CacheTTL:      cfg.Redis.CacheTTL,
	}, d.Audit, d.Cache)

	permissions := permission.NewService(permissionRepo, userTypeRepo, pageRepo, d.Audit)

	userCfg := user.Config{
		JWTSecret:   cfg.Auth.JWTSecret,
		TokenTTL:    cfg.Auth.TokenTTL,
		ResetTTL:    cfg.Auth.ResetTTL,
		MaxFailures: cfg.Auth.MaxFailures,
		LockFor:     cfg.Auth.LockFor,
		BcryptCost:  cfg.Auth.BcryptCost,
	}
	if cfg.Security.ValidateEmailMX {
		userCfg.EmailDomainCheck = validators.NewDomainChecker(0).Valid
	}

	businessTypes := ucBusiness.NewTypeService(businessTypeRepo, d.Audit, d.Cache, cached)
	businessCategories := ucBusiness.NewCategoryService(businessCategoryRepo, businessTypeRepo, d.Audit, d.Cache)
	businessUsers := ucBusiness.NewUserService(businessUserRepo, userRepo, businessTypeRepo, notifications, uploads, d.Audit)

	users := user.NewService(user.Deps{
		Users:       userRepo,
		UserTypes:   userTypeRepo,
		Permissions: permissions,
		Security:    d.Security,
		Notify:      notifications,
		Mailer:      mailer.NewLogMailer(d.Log),
		Uploads:     uploads,
		Audit:       d.Audit,
		Cache:       d.Cache,
		Log:         d.Log,
		Google:      d.Google,
		Businesses:  businessUsers,
	}, userCfg)

	locations := ucLocation.NewMasterService(locationRepo, d.Audit, d.Cache, catalog.Options[models.LocationMaster]{CacheTTL: cfg.Redis.CacheTTL})
	pincodes := ucLocation.NewPincodeService(pincodeRepo, locationRepo, d.Audit)
	addresses := ucLocation.NewAddressService(addressRepo, userRepo, locationRepo, pincodeRepo, d.Audit)

	news := ucNews.NewService(newsRepo, userRepo, d.Audit)

	// ======================================================
	// VERTICALS
	// ======================================================
	hostel := vertical.NewHostel(
		infraRepo.NewRepository[models.Room](db),
		infraRepo.NewRepository[models.Customer](db),
		bookingRepo,
		businessUserRepo, notifications, d.Audit,
	)
	hospital := vertical.NewHospital(
		infraRepo.NewRepository[models.Staff](db),
		infraRepo.NewRepository[models.Patient](db),
		appointmentRepo,
		businessUserRepo, d.Audit,
	)
	garage := vertical.NewGarage(
		infraRepo.NewRepository[models.Vehicle](db),
		infraRepo.NewRepository[models.GarageService](db),
		infraRepo.NewRepository[models.GarageBooking](db),
		hostel.Customers, businessUserRepo, notifications, d.Audit,
	)
	catering := vertical.NewCatering(
		infraRepo.NewRepository[models.MenuItem](db),
		cateringRepo,
		hostel.Customers, businessUserRepo, notifications, d.Audit,
	)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		businessUserRepo,
		notifications,
		d.Audit,
	)

	paymentsSvc := ucPayment.NewService(paymentRepo, businessUserRepo, d.Gateway, notifications, d.Audit, cfg.Payments.Currency)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(users)
	meHandler := handlers.NewMeHandler(users)
	usersHandler := handlers.NewUsersHandler(users)
	userTypesHandler := handlers.NewCatalogHandler(userTypes, "User type", handlers.ValidateUserType)
	pagesHandler := handlers.NewCatalogHandler(pages, "Page", handlers.ValidatePage)
	permissionsHandler := handlers.NewPermissionsHandler(permissions)

	businessTypesHandler := handlers.NewBusinessTypesHandler(businessTypes, uploads)
	businessCategoriesHandler := handlers.NewBusinessCategoriesHandler(businessCategories, uploads)
	businessUsersHandler := handlers.NewBusinessUsersHandler(businessUsers)

	locationHandler := handlers.NewLocationHandler(locations)
	pincodeHandler := handlers.NewPincodeHandler(pincodes)
	addressHandler := handlers.NewAddressHandler(addresses)

	newsHandler := handlers.NewNewsHandler(news)
	notificationHandler := handlers.NewNotificationHandler(notifications)
	securityHandler := handlers.NewSecurityHandler(d.Security)

	hostelHandler := handlers.NewHostelHandler(hostel)
	hospitalHandler := handlers.NewHospitalHandler(hospital)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentRepo, hospital, createAppointmentUC)
	garageHandler := handlers.NewGarageHandler(garage)
	cateringHandler := handlers.NewCateringHandler(catering)

	paymentHandler := handlers.NewPaymentHandler(paymentsSvc)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLog, businessUsers)

	// ======================================================
	// OPERATIONS
	// ======================================================
	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	r.GET("/health", health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	if cfg.Storage.Driver == "local" || cfg.Storage.Driver == "" {
		r.Static("/uploads", cfg.Storage.LocalDir)
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api/v1")
	api.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "AppointmentTech API v1"})
	})
	api.GET("/health", health)
	api.GET("/ws/live-updates", d.Hub.Handle)
	api.POST("/payments/webhook", paymentHandler.Webhook)

	sessions := d.Security
	secret := api.Group("/")
	secret.Use(middleware.SecretKey(cfg.Auth.SecretKey), middleware.AuthOptional(cfg.Auth.JWTSecret, sessions))

	jwt := api.Group("/")
	jwt.Use(middleware.AuthRequired(cfg.Auth.JWTSecret, sessions))

	// ------------------------------
	// USER TYPES / PAGES / PERMISSIONS
	// ------------------------------
	ut := secret.Group("/user-types")
	{
		ut.GET("/all-usertypes", userTypesHandler.List)
		ut.GET("/usertypes/:id", userTypesHandler.Get)
		ut.POST("/add-usertypes", userTypesHandler.Create)
		ut.PUT("/update-usertypes/:id", userTypesHandler.Update)
		ut.DELETE("/delete-usertypes/:id", userTypesHandler.Delete)
	}

	pg := secret.Group("/pages")
	{
		pg.GET("/all-pages", pagesHandler.List)
		pg.GET("/pages/:id", pagesHandler.Get)
		pg.POST("/add-pages", pagesHandler.Create)
		pg.PUT("/update-pages/:id", pagesHandler.Update)
		pg.DELETE("/delete-pages/:id", pagesHandler.Delete)
		pg.POST("/activate-pages/:id", pagesHandler.Activate)
		pg.POST("/deactivate-pages/:id", pagesHandler.Deactivate)
		pg.GET("/active-pages", pagesHandler.Active)
		pg.GET("/inactive-pages", pagesHandler.Inactive)
	}

	up := secret.Group("/user-permissions")
	{
		up.GET("/all-user-permissions", permissionsHandler.List)
		up.GET("/user-permissions/:id", permissionsHandler.Get)
		up.GET("/user-permissions/by-user-type/:user_type_id", permissionsHandler.ByUserType)
		up.GET("/user-permissions/with-pages/:user_type_id", permissionsHandler.WithPages)
		up.POST("/add-user-permission", permissionsHandler.Create)
		up.PUT("/update-user-permission/:id", permissionsHandler.Update)
		up.DELETE("/delete-user-permission/:id", permissionsHandler.Delete)
		up.POST("/activate-user-permission/:id", permissionsHandler.Activate)
		up.POST("/deactivate-user-permission/:id", permissionsHandler.Deactivate)
		up.GET("/active-user-permissions", permissionsHandler.Active)
		up.GET("/inactive-user-permissions", permissionsHandler.Inactive)
	}

	// ------------------------------
	// USERS / AUTH
	// ------------------------------
	us := secret.Group("/users")
	{
		us.GET("/all-users", usersHandler.List)
		us.GET("/users/:id", usersHandler.Get)
		us.GET("/users/name/:name", usersHandler.ByName)
		us.POST("/add-users", usersHandler.Create)
		us.POST("/users/register", authHandler.Register)
		us.POST("/users/login", authHandler.Login)
		us.PUT("/update-user/:id", usersHandler.Update)
		us.DELETE("/delete-users/:id", usersHandler.Delete)
		us.POST("/users/forgot-password", authHandler.ForgotPassword)
		us.POST("/users/reset-password", authHandler.ResetPassword)
		us.PUT("/users/change-password/:id", authHandler.ChangePasswordByID)
		us.PUT("/users/:id/profile", usersHandler.UpdateProfile)
		us.POST("/users/:id/profile-image", usersHandler.ProfileImage)
	}

	secret.POST("/user/auth/register", authHandler.Register)
	secret.POST("/user/auth/login", authHandler.Login)
	secret.POST("/user/auth/google", authHandler.GoogleSignIn)
	secret.POST("/GoogleSignIn/auth/google", authHandler.GoogleSignIn)
	secret.POST("/user/auth/forgot-password", authHandler.ForgotPassword)

	me := jwt.Group("/user/auth")
	{
		me.POST("/logout", authHandler.Logout)
		me.POST("/change-password", authHandler.ChangePassword)
		me.GET("/me", meHandler.GetMe)
		me.GET("/sessions", meHandler.Sessions)
		me.DELETE("/sessions/:session_id", meHandler.RevokeSession)
	}

	// ------------------------------
	// BUSINESS
	// ------------------------------
	bt := secret.Group("/business-types")
	{
		bt.GET("/all-business-types", businessTypesHandler.List)
		bt.GET("/business-types/:id", businessTypesHandler.Get)
		bt.POST("/add-business-type", businessTypesHandler.Create)
		bt.PUT("/update-business-type/:id", businessTypesHandler.Update)
		bt.DELETE("/delete-business-type/:id", businessTypesHandler.Delete)
		bt.POST("/activate-business-type/:id", businessTypesHandler.Activate)
		bt.POST("/deactivate-business-type/:id", businessTypesHandler.Deactivate)
		bt.GET("/active-business-types", businessTypesHandler.Active)
		bt.GET("/inactive-business-types", businessTypesHandler.Inactive)
	}

	bc := secret.Group("/business-categories")
	{
		bc.GET("/all-businesscategories", businessCategoriesHandler.List)
		bc.GET("/businesscategories/:id", businessCategoriesHandler.Get)
		bc.POST("/add-businesscategories", businessCategoriesHandler.Create)
		bc.PUT("/update-businesscategories/:id", businessCategoriesHandler.Update)
		bc.DELETE("/delete-businesscategories/:id", businessCategoriesHandler.Delete)
	}

	bu := secret.Group("/business-users")
	{
		bu.GET("/all-businessmanusers", businessUsersHandler.List)
		bu.GET("/businessmanusers/:id", businessUsersHandler.Get)
		bu.POST("/add-businessmanusers", businessUsersHandler.Create)
		bu.POST("/add-multiplebusinessmanusers", businessUsersHandler.CreateMany)
		bu.PUT("/update-businessmanusers/:id", businessUsersHandler.Update)
		bu.DELETE("/delete-businessmanusers/:id", businessUsersHandler.Delete)
		bu.POST("/businessmanusers/:id/logo", businessUsersHandler.Logo)
	}

	// ------------------------------
	// LOCATIONS
	// ------------------------------
	lm := secret.Group("/locations")
	{
		lm.GET("/all-locationmaster", locationHandler.List)
		lm.GET("/locationmaster/:id", locationHandler.Get)
		lm.POST("/add-locationmaster", locationHandler.Create)
		lm.PUT("/update-locationmaster/:id", locationHandler.Update)
		lm.DELETE("/delete-locationmaster/:id", locationHandler.Delete)
		lm.PATCH("/toggle-locationmaster/:id", locationHandler.Toggle)
	}

	lp := secret.Group("/location-pincodes")
	{
		lp.GET("/all-locationactivepincode", pincodeHandler.List)
		lp.GET("/locationactivepincode/:id", pincodeHandler.Get)
		lp.POST("/add-locationactivepincode", pincodeHandler.Create)
		lp.PUT("/update-locationactivepincode/:id", pincodeHandler.Update)
		lp.DELETE("/delete-locationactivepincode/:id", pincodeHandler.Delete)
		lp.PATCH("/toggle-locationactivepincode/:id", pincodeHandler.Toggle)
	}

	ua := secret.Group("/user-addresses")
	{
		ua.GET("/locationuseraddress", addressHandler.List)
		ua.GET("/locationuseraddress/:id", addressHandler.Get)
		ua.POST("/locationuseraddress", addressHandler.Create)
		ua.PUT("/locationuseraddress/:id", addressHandler.Update)
		ua.DELETE("/locationuseraddress/:id", addressHandler.Delete)
	}

	// ------------------------------
	// NEWS
	// ------------------------------
	nw := secret.Group("/news")
	{
		nw.GET("/available-authors", newsHandler.Authors)
		nw.GET("/all-news-posts", newsHandler.ListPosts)
		nw.GET("/news-posts/:id", newsHandler.GetPost)
		nw.POST("/create-news-post", newsHandler.CreatePost)
		nw.PUT("/update-news-post/:id", newsHandler.UpdatePost)
		nw.DELETE("/delete-news-post/:id", newsHandler.DeletePost)

		nw.GET("/get-comments/:news_id", newsHandler.Comments)
		nw.POST("/create-comment", newsHandler.CreateComment)
		nw.PUT("/update-comment/:id", newsHandler.UpdateComment)
		nw.DELETE("/delete-comment/:id", newsHandler.DeleteComment)

		nw.GET("/get-likes/:news_id", newsHandler.Likes)
		nw.POST("/create-like", newsHandler.Like)
		nw.DELETE("/remove-like/:news_id/:user_id", newsHandler.Unlike)
		nw.GET("/check-like/:news_id/:user_id", newsHandler.CheckLike)

		nw.GET("/get-shares/:news_id", newsHandler.Shares)
		nw.POST("/create-share", newsHandler.Share)
		nw.GET("/share-analytics/:news_id", newsHandler.ShareAnalytics)
		nw.GET("/user-shares/:user_id", newsHandler.UserShares)
	}

	// ------------------------------
	// NOTIFICATIONS / SECURITY / AUDIT (JWT)
	// ------------------------------
	nt := jwt.Group("/notifications")
	{
		nt.GET("", notificationHandler.List)
		nt.GET("/count", notificationHandler.Count)
		nt.GET("/unread", notificationHandler.Unread)
		nt.GET("/high-priority", notificationHandler.HighPriority)
		nt.GET("/by-type/:type", notificationHandler.ByType)
		nt.PATCH("/mark-all-read", notificationHandler.MarkAllRead)
		nt.POST("/bulk-action", notificationHandler.Bulk)
		nt.GET("/:id", notificationHandler.Get)
		nt.PATCH("/:id/read", notificationHandler.MarkRead)
		nt.DELETE("/:id", notificationHandler.Delete)
	}

	sc := jwt.Group("/security")
	{
		sc.GET("/report", securityHandler.Report)
		sc.GET("/report.pdf", securityHandler.ReportPDF)
		sc.GET("/events", securityHandler.Events)
		sc.GET("/blocks", securityHandler.Blocks)
		sc.POST("/blocks", securityHandler.CreateBlock)
		sc.POST("/blocks/:id/unblock", securityHandler.Unblock)
	}

	jwt.GET("/audit-logs", auditLogsHandler.List)

	// ------------------------------
	// VERTICALS
	// ------------------------------
	vt := secret.Group("/verticals")
	{
		resource(vt, "/staff", hospitalHandler.Staff)
		resource(vt, "/rooms", hostelHandler.Rooms)
		resource(vt, "/customers", hostelHandler.Customers)

		vt.GET("/bookings", hostelHandler.Bookings.List)
		vt.GET("/bookings/:id", hostelHandler.Bookings.Get)
		vt.POST("/bookings", hostelHandler.CreateBooking)
		vt.PUT("/bookings/:id", hostelHandler.Bookings.Update)
		vt.DELETE("/bookings/:id", hostelHandler.Bookings.Delete)
		vt.POST("/bookings/:id/cancel", hostelHandler.CancelBooking)
		vt.POST("/bookings/:id/check-in", hostelHandler.CheckIn)
		vt.POST("/bookings/:id/check-out", hostelHandler.CheckOut)

		resource(vt, "/patients", hospitalHandler.Patients)

		vt.GET("/appointments", appointmentHandler.List)
		vt.GET("/appointments/by-date", appointmentHandler.ByDate)
		vt.GET("/appointments/by-month", appointmentHandler.ByMonth)
		vt.GET("/appointments/availability", appointmentHandler.Availability)
		vt.GET("/appointments/:id", appointmentHandler.Get)
		vt.POST("/appointments", appointmentHandler.Create)
		vt.PUT("/appointments/:id", appointmentHandler.Update)
		vt.DELETE("/appointments/:id", appointmentHandler.Delete)
		vt.POST("/appointments/:id/cancel", appointmentHandler.Cancel)
		vt.POST("/appointments/:id/complete", appointmentHandler.Complete)

		resource(vt, "/vehicles", garageHandler.Vehicles)
		resource(vt, "/services", garageHandler.Services)

		vt.GET("/garage-bookings", garageHandler.Bookings.List)
		vt.GET("/garage-bookings/:id", garageHandler.Bookings.Get)
		vt.POST("/garage-bookings", garageHandler.CreateBooking)
		vt.PUT("/garage-bookings/:id", garageHandler.Bookings.Update)
		vt.DELETE("/garage-bookings/:id", garageHandler.Bookings.Delete)

		resource(vt, "/menu-items", cateringHandler.MenuItems)

		vt.GET("/catering-orders", cateringHandler.Orders.List)
		vt.GET("/catering-orders/:id", cateringHandler.GetOrder)
		vt.POST("/catering-orders", cateringHandler.CreateOrder)
		vt.PUT("/catering-orders/:id", cateringHandler.Orders.Update)
		vt.DELETE("/catering-orders/:id", cateringHandler.Orders.Delete)
		vt.PATCH("/catering-orders/:id/status", cateringHandler.SetStatus)
	}

	// ------------------------------
	// PAYMENTS
	// ------------------------------
	secret.POST("/payments/checkout", paymentHandler.Checkout)
	secret.GET("/payments/transactions", paymentHandler.Transactions)

	return &App{Notifications: notifications}, nil
}

// crudRoutes is the handler set of one plain vertical table.
type crudRoutes interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func resource(g *gin.RouterGroup, path string, h crudRoutes) {
	g.GET(path, h.List)
	g.GET(path+"/:id", h.Get)
	g.POST(path, h.Create)
	g.PUT(path+"/:id", h.Update)
	g.DELETE(path+"/:id", h.Delete)
}
