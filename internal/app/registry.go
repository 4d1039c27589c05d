package app

import (
	"database/sql"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"go-hrops/internal/attendance"
	"go-hrops/internal/employee"
	"go-hrops/internal/leave"
	"go-hrops/internal/leavebalance"
	"go-hrops/internal/leavetype"
	"go-hrops/internal/messaging/kafka"
	"go-hrops/internal/rbac"
	"go-hrops/internal/rbac/infra"
	"go-hrops/internal/report"
	"go-hrops/internal/shared/clock"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	clk := clock.System()

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	leaveBalanceRepo := leavebalance.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	leaveTypeService := leavetype.NewService(db, leaveTypeRepo)
	leaveBalanceService := leavebalance.NewService(db, leaveBalanceRepo, leaveTypeRepo)
	attendanceService := attendance.NewService(db, attendanceRepo, clk)
	leaveService := leave.NewServiceWithOutbox(
		db,
		leaveRepo,
		leaveTypeRepo,
		employeeRepo,
		leaveBalanceService,
		attendanceService,
		outboxRepo,
		clk,
	)
	reportService := report.NewService(employeeRepo, attendanceService, leaveBalanceService, rdb)

	// --- Handlers ---
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	leaveBalanceHandler := leavebalance.NewHandler(leaveBalanceService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	reportHandler := report.NewHandler(reportService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		leavebalance.RegisterRoutes(api, leaveBalanceHandler, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		report.RegisterRoutes(api, reportHandler, rbacService)
	}

	return nil
}
