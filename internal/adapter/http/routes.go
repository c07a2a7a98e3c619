package http

import (
	"github.com/labstack/echo/v4"

	mw "simlok-backend/internal/adapter/middleware"
	"simlok-backend/internal/domain/user"
)

// Handlers bundles every HTTP surface for route registration.
type Handlers struct {
	Base         *Handler
	Auth         *AuthHandler
	Submission   *SubmissionHandler
	Workflow     *WorkflowHandler
	Scan         *ScanHandler
	User         *UserHandler
	Notification *NotificationHandler
	Permit       *PermitHandler
	Upload       *UploadHandler
	LogStream    *LogStreamHandler
}

// Register wires all routes. sessionMW authenticates; idemMW may be nil when
// Redis is disabled (tests).
func Register(e *echo.Echo, h Handlers, sessionMW echo.MiddlewareFunc, idemMW echo.MiddlewareFunc) {
	e.GET("/health", h.Base.Health)
	e.GET("/metrics", echo.WrapHandler(mw.MetricsHandler()))

	api := e.Group("/api")

	// Public auth surface.
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	// Everything below requires a live session.
	priv := api.Group("", sessionMW)

	priv.POST("/auth/logout", h.Auth.Logout)
	priv.GET("/auth/me", h.Auth.Me)
	priv.POST("/auth/change-password", h.Auth.ChangePassword)

	// Duplicate-submit protection on the submission mutations only; reads
	// and the rest of the surface stay header-free.
	idem := func(mws ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
		if idemMW != nil {
			mws = append(mws, idemMW)
		}
		return mws
	}

	vendorOrAdmin := mw.RequireRoles(user.RoleVendor, user.RoleSuperAdmin)
	priv.POST("/submissions", h.Submission.Create, idem(vendorOrAdmin)...)
	priv.GET("/submissions", h.Submission.List)
	priv.GET("/submissions/stats", h.Submission.Stats)
	priv.GET("/submissions/:submission_id", h.Submission.Get)
	priv.PUT("/submissions/:submission_id", h.Submission.Update, idem(vendorOrAdmin)...)
	priv.DELETE("/submissions/:submission_id", h.Submission.Delete, idem(vendorOrAdmin)...)

	priv.POST("/submissions/:submission_id/review", h.Workflow.Review,
		idem(mw.RequireRoles(user.RoleReviewer, user.RoleSuperAdmin))...)
	approverOnly := mw.RequireRoles(user.RoleApprover, user.RoleSuperAdmin)
	priv.POST("/submissions/:submission_id/approve", h.Workflow.Approve, idem(approverOnly)...)
	priv.POST("/submissions/:submission_id/reject", h.Workflow.Reject, idem(approverOnly)...)

	priv.GET("/submissions/:submission_id/pdf", h.Permit.PDF)
	priv.GET("/submissions/:submission_id/qr", h.Permit.QRImage)
	priv.GET("/submissions/:submission_id/scans", h.Scan.History,
		mw.RequireRoles(user.RoleVerifier, user.RoleReviewer, user.RoleApprover, user.RoleSuperAdmin))

	priv.POST("/scan", h.Scan.Scan, mw.RequireRoles(user.RoleVerifier, user.RoleSuperAdmin))

	priv.GET("/notifications", h.Notification.List)
	priv.POST("/notifications/read-all", h.Notification.MarkAllRead)
	priv.POST("/notifications/:notification_id/read", h.Notification.MarkRead)

	priv.POST("/uploads", h.Upload.Upload, vendorOrAdmin)

	admin := priv.Group("/admin", mw.RequireRoles(user.RoleSuperAdmin))
	admin.POST("/users", h.User.Create)
	admin.GET("/users", h.User.List)
	admin.GET("/users/:user_id", h.User.Get)
	admin.PATCH("/users/:user_id/verify", h.User.SetVerified)
	admin.PATCH("/users/:user_id/role", h.User.SetRole)
	admin.DELETE("/users/:user_id", h.User.Delete)
	admin.GET("/logs/stream", h.LogStream.Stream)
}
