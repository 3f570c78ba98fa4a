package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/asafarviv55/attendance-system-backend/internal/config"
	"github.com/asafarviv55/attendance-system-backend/internal/middleware"
	"github.com/asafarviv55/attendance-system-backend/internal/models"
	"github.com/asafarviv55/attendance-system-backend/internal/notify"
	"github.com/asafarviv55/attendance-system-backend/internal/repository"
	"github.com/asafarviv55/attendance-system-backend/internal/service"
)

type HandlerSet struct {
	log         zerolog.Logger
	cfg         *config.AppConfig
	tz          *time.Location
	authService *service.AuthService
	attendance  *service.AttendanceService
	corrections *service.CorrectionService
	leaves      *service.LeaveService
	db          *pgxpool.Pool
	cache       *redis.Client
	users       *repository.UserRepository
	roles       *repository.RoleRepository
	records     *repository.AttendanceRepository
	locations   *repository.LocationRepository
	audit       auditLog
}

// auditLog is the audit trail as the HTTP layer sees it: the middleware
// appends, the admin view reads.
type auditLog interface {
	Append(ctx context.Context, entry models.AuditLogEntry) error
	List(ctx context.Context, limit, offset int) ([]models.AuditLogEntry, error)
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, mailer notify.Mailer, tz *time.Location, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	correctionRepo := repository.NewCorrectionRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	auth := service.NewAuthService(userRepo, roleRepo, mailer, cfg, log)
	attendance := service.NewAttendanceService(attendanceRepo, locationRepo, tz, cfg.Workday.StaleSessionAge, log)
	corrections := service.NewCorrectionService(correctionRepo, attendanceRepo, tz)
	leaves := service.NewLeaveService(leaveRepo)

	return HandlerSet{
		log:         log,
		cfg:         cfg,
		tz:          tz,
		authService: auth,
		attendance:  attendance,
		corrections: corrections,
		leaves:      leaves,
		db:          db,
		cache:       cache,
		users:       userRepo,
		roles:       roleRepo,
		records:     attendanceRepo,
		locations:   locationRepo,
		audit:       auditRepo,
	}
}

// AttendanceService exposes the workflow service for the jobs scheduler.
func (h HandlerSet) AttendanceService() *service.AttendanceService {
	return h.attendance
}

// AttendanceRepository exposes the record store for the report exporter.
func (h HandlerSet) AttendanceRepository() *repository.AttendanceRepository {
	return h.records
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	clock := func() time.Time { return time.Now().In(h.tz) }
	authed := middleware.Auth(h.cfg.Security.JWTSecret)
	manager := middleware.RequireRoles(models.RoleManager, models.RoleAdmin)
	admin := middleware.RequireRoles(models.RoleAdmin)
	audited := func(action string) gin.HandlerFunc {
		return middleware.Audit(h.audit, clock, h.log, action)
	}

	router.POST("/signup", h.SignUp)
	router.POST("/signin", middleware.SigninThrottle(h.cache, h.cfg.Security.SigninAttempts, h.cfg.Security.SigninWindow), h.SignIn)
	router.POST("/request-reset", h.RequestReset)
	router.POST("/reset-password", h.ResetPassword)

	attendance := router.Group("/attendance", authed)
	{
		attendance.POST("/clockin", audited("clock_in"), h.ClockIn)
		attendance.POST("/clockout", audited("clock_out"), h.ClockOut)
		attendance.POST("/request-correction", audited("request_correction"), h.RequestCorrection)
		attendance.POST("/respond-correction", manager, audited("respond_correction"), h.RespondCorrection)
		attendance.GET("/corrections", manager, h.ListCorrections)
		attendance.GET("/reports", manager, h.ListAttendance)
	}

	leave := router.Group("/leave", authed)
	{
		leave.POST("/request", audited("leave_request"), h.RequestLeave)
		leave.GET("/requests", manager, h.ListLeaveRequests)
		leave.POST("/approve-deny", manager, audited("leave_approve_deny"), h.ApproveDenyLeave)
	}

	users := router.Group("/users", authed, admin)
	{
		users.GET("", h.ListUsers)
		users.GET("/roles", h.ListRoles)
		users.PUT("/:id", h.UpdateUser)
		users.PUT("/:id/role", h.UpdateUserRole)
		users.DELETE("/:id", h.DeleteUser)
	}

	locations := router.Group("/locations", authed, admin)
	{
		locations.GET("", h.ListLocations)
		locations.POST("", audited("location_create"), h.CreateLocation)
		locations.DELETE("/:id", audited("location_delete"), h.DeleteLocation)
	}

	router.GET("/audit-log", authed, admin, h.ListAuditLog)
}

// fail maps domain failures to stable reason codes. Anything unmapped is a
// storage or internal failure: logged server-side, surfaced as a generic 500.
func (h HandlerSet) fail(c *gin.Context, err error) {
	type mapping struct {
		err    error
		status int
		code   string
	}

	mappings := []mapping{
		{service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{service.ErrInvalidRole, http.StatusBadRequest, "invalid_role"},
		{service.ErrEmailTaken, http.StatusConflict, "email_taken"},
		{service.ErrInvalidResetToken, http.StatusBadRequest, "invalid_reset_token"},
		{service.ErrUnauthorizedLocation, http.StatusForbidden, "unauthorized_location"},
		{service.ErrDuplicateClockIn, http.StatusConflict, "duplicate_clock_in"},
		{service.ErrNoOpenSession, http.StatusConflict, "no_open_session"},
		{service.ErrInvalidStatus, http.StatusBadRequest, "invalid_status"},
		{service.ErrInvalidDateRange, http.StatusBadRequest, "invalid_date_range"},
		{service.ErrAttendanceNotFound, http.StatusNotFound, "attendance_not_found"},
		{service.ErrCorrectionNotFound, http.StatusNotFound, "correction_not_found"},
		{service.ErrLeaveNotFound, http.StatusNotFound, "leave_not_found"},
		{repository.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
		{repository.ErrLocationNotFound, http.StatusNotFound, "location_not_found"},
	}

	for _, m := range mappings {
		if errors.Is(err, m.err) {
			c.JSON(m.status, gin.H{"error": m.code})
			return
		}
	}

	h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
}
