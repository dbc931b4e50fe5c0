package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go-farm-ledger/internal/handler"
	"go-farm-ledger/internal/middleware"
	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/repository"
	"go-farm-ledger/internal/scheduler"
	"go-farm-ledger/internal/service"
	"go-farm-ledger/internal/ws"
	"go-farm-ledger/pkg/database"
	"go-farm-ledger/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	zlog := logger.Must(logger.New())
	defer zlog.Sync()

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{}, &model.Privilege{}, &model.Role{},
		&model.Worker{}, &model.WorkShift{}, &model.Attendance{},
		&model.ProductType{}, &model.Production{}, &model.Sale{},
		&model.FuelLog{}, &model.Medicine{}, &model.Fertilizer{}, &model.Consumption{},
		&model.AccountingTransaction{}, &model.Report{},
	)

	// 3. Seed default privileges, roles, and admin user
	seedPrivilegesRolesAndAdmin(db, zlog)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub(logger.Named(zlog, "ws"))
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	workerRepo := repository.NewWorkerRepo(db)
	shiftRepo := repository.NewShiftRepo(db)
	attendanceRepo := repository.NewAttendanceRepo(db)
	productTypeRepo := repository.NewProductTypeRepo(db)
	productionRepo := repository.NewProductionRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	fuelRepo := repository.NewFuelRepo(db)
	medicineRepo := repository.NewMedicineRepo(db)
	fertilizerRepo := repository.NewFertilizerRepo(db)
	consumptionRepo := repository.NewConsumptionRepo(db)
	accountingRepo := repository.NewAccountingRepo(db)
	reportRepo := repository.NewReportRepo(db)

	authService := service.NewAuthService(userRepo, logger.Named(zlog, "auth"))
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo)
	workerService := service.NewWorkerService(workerRepo, shiftRepo, attendanceRepo, accountingRepo, db, logger.Named(zlog, "workers"))
	stockService := service.NewStockService(fuelRepo, medicineRepo, fertilizerRepo, consumptionRepo, db, wsHub, logger.Named(zlog, "stock"))
	accountingService := service.NewAccountingService(accountingRepo, workerRepo, wsHub, logger.Named(zlog, "accounting"))
	productionService := service.NewProductionService(productTypeRepo, productionRepo, saleRepo, logger.Named(zlog, "production"))
	reportService := service.NewReportService(reportRepo, accountingRepo, logger.Named(zlog, "reports"))
	dashboardService := service.NewDashboardService(workerRepo, accountingRepo, stockService)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo, privilegeRepo)
	workerHandler := handler.NewWorkerHandler(workerService)
	stockHandler := handler.NewStockHandler(stockService)
	accountingHandler := handler.NewAccountingHandler(accountingService)
	productionHandler := handler.NewProductionHandler(productionService)
	reportHandler := handler.NewReportHandler(reportService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// 6. Daily summary scheduler
	location, err := time.LoadLocation("Asia/Beirut")
	if err != nil {
		location = time.Local
	}
	sched := scheduler.NewScheduler(reportService, location, logger.Named(zlog, "scheduler"))
	sched.Start()
	defer sched.Stop()

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Farm Ledger v1.0",
	})

	// Middleware
	app.Use(fiberlogger.New()) // Logging request
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// 8. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard
	protected.Get("/dashboard/stats", middleware.RequirePermission("view_dashboard"), dashboardHandler.GetStats)

	// Workers
	protected.Get("/workers", middleware.RequirePermission("view_workers"), workerHandler.GetWorkers)
	protected.Get("/workers/accounts", middleware.RequirePermission("view_workers"), workerHandler.GetAccounts)
	protected.Get("/workers/:id", middleware.RequirePermission("view_workers"), workerHandler.GetWorker)
	protected.Post("/workers", middleware.RequirePermission("add_workers"), workerHandler.CreateWorker)
	protected.Put("/workers/:id", middleware.RequirePermission("edit_workers"), workerHandler.UpdateWorker)
	protected.Delete("/workers/:id", middleware.RequirePermission("delete_workers"), workerHandler.DeleteWorker)
	protected.Get("/workers/:id/shifts", middleware.RequirePermission("view_workers"), workerHandler.GetShifts)
	protected.Get("/workers/:id/balance", middleware.RequirePermission("view_workers"), workerHandler.GetBalance)

	// Shifts
	protected.Post("/shifts", middleware.RequirePermission("add_workers"), workerHandler.AddShift)
	protected.Put("/shifts/:id", middleware.RequirePermission("edit_workers"), workerHandler.UpdateShift)
	protected.Delete("/shifts/:id", middleware.RequirePermission("edit_workers"), workerHandler.DeleteShift)

	// Attendance
	protected.Get("/attendance", middleware.RequirePermission("view_attendance"), workerHandler.GetAttendance)
	protected.Post("/attendance", middleware.RequirePermission("add_attendance"), workerHandler.RecordAttendance)
	protected.Put("/attendance/:id", middleware.RequirePermission("edit_attendance"), workerHandler.UpdateAttendance)
	protected.Delete("/attendance/:id", middleware.RequirePermission("delete_attendance"), workerHandler.DeleteAttendance)

	// Stock: fuel, medicines, fertilizers
	protected.Get("/fuel", middleware.RequirePermission("view_fuel"), stockHandler.GetFuel)
	protected.Post("/fuel", middleware.RequirePermission("add_fuel"), stockHandler.AddFuel)
	protected.Get("/medicines", middleware.RequirePermission("view_medicines"), stockHandler.GetMedicines)
	protected.Post("/medicines", middleware.RequirePermission("add_medicines"), stockHandler.AddMedicine)
	protected.Get("/fertilizers", middleware.RequirePermission("view_fertilizers"), stockHandler.GetFertilizers)
	protected.Post("/fertilizers", middleware.RequirePermission("add_fertilizers"), stockHandler.AddFertilizer)

	// Consumption
	protected.Get("/consumption", middleware.RequirePermission("view_consumption"), stockHandler.GetConsumptions)
	protected.Post("/consumption", middleware.RequirePermission("add_consumption"), stockHandler.RecordConsumption)
	protected.Delete("/consumption/:id", middleware.RequirePermission("add_consumption"), stockHandler.DeleteConsumption)
	protected.Get("/stock/:category/:id/remaining", middleware.RequirePermission("view_consumption"), stockHandler.GetRemaining)
	protected.Delete("/stock/:category/:id", middleware.RequireAdmin(), stockHandler.DeleteItem)

	// Production and sales
	protected.Get("/production", middleware.RequirePermission("view_production"), productionHandler.GetProductions)
	protected.Get("/production/report", middleware.RequirePermission("view_reports"), productionHandler.GetProductionReport)
	protected.Post("/production", middleware.RequirePermission("add_production"), productionHandler.AddProduction)
	protected.Delete("/production/:id", middleware.RequirePermission("delete_production"), productionHandler.DeleteProduction)
	protected.Get("/sales", middleware.RequirePermission("view_sales"), productionHandler.GetSales)
	protected.Get("/sales/report", middleware.RequirePermission("view_reports"), productionHandler.GetSalesReport)
	protected.Post("/sales", middleware.RequirePermission("add_sales"), productionHandler.AddSale)
	protected.Delete("/sales/:id", middleware.RequirePermission("delete_sales"), productionHandler.DeleteSale)
	protected.Get("/product-types", middleware.RequirePermission("view_production"), productionHandler.GetProductTypes)
	protected.Post("/product-types", middleware.RequirePermission("add_production"), productionHandler.AddProductType)
	protected.Delete("/product-types/:id", middleware.RequireAdmin(), productionHandler.DeleteProductType)

	// Accounting
	protected.Get("/accounting/transactions", middleware.RequirePermission("view_accounting"), accountingHandler.GetTransactions)
	protected.Get("/accounting/transactions/:id", middleware.RequirePermission("view_accounting"), accountingHandler.GetTransaction)
	protected.Post("/accounting/transactions", middleware.RequirePermission("add_accounting"), accountingHandler.CreateTransaction)
	protected.Put("/accounting/transactions/:id", middleware.RequirePermission("edit_accounting"), accountingHandler.UpdateTransaction)
	protected.Delete("/accounting/transactions/:id", middleware.RequirePermission("delete_accounting"), accountingHandler.DeleteTransaction)
	protected.Get("/accounting/summary", middleware.RequirePermission("view_accounting"), accountingHandler.GetSummary)
	protected.Get("/accounting/totals", middleware.RequirePermission("view_accounting"), accountingHandler.GetCategoryTotals)

	// Reports
	protected.Get("/reports", middleware.RequirePermission("view_reports"), reportHandler.GetReports)
	protected.Get("/reports/:id", middleware.RequirePermission("view_reports"), reportHandler.GetReport)
	protected.Post("/reports/daily-summary", middleware.RequirePermission("view_reports"), reportHandler.GenerateDailySummary)
	protected.Delete("/reports/:id", middleware.RequireAdmin(), reportHandler.DeleteReport)

	// User management
	protected.Get("/users", middleware.RequirePermission("manage_users"), userHandler.GetUsers)
	protected.Get("/users/:id", middleware.RequirePermission("manage_users"), userHandler.GetUser)
	protected.Post("/users", middleware.RequirePermission("manage_users"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePermission("manage_users"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePermission("manage_users"), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", middleware.RequirePermission("manage_users"), userHandler.UpdateUserPrivileges)

	// Roles
	protected.Get("/roles", roleHandler.GetRoles)
	protected.Post("/roles", middleware.RequirePermission("manage_roles"), roleHandler.CreateRole)
	protected.Put("/roles/:id", middleware.RequirePermission("manage_roles"), roleHandler.UpdateRole)
	protected.Delete("/roles/:id", middleware.RequirePermission("manage_roles"), roleHandler.DeleteRole)
	protected.Get("/privileges", roleHandler.GetPrivileges)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 9. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	zlog.Info("server exited")
}

// seedPrivilegesRolesAndAdmin creates default privileges, roles, and admin user if they don't exist
func seedPrivilegesRolesAndAdmin(db *gorm.DB, zlog *zap.Logger) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	// 1. Seed privileges first
	if err := privilegeRepo.SeedDefaults(); err != nil {
		zlog.Warn("failed to seed privileges", zap.Error(err))
	}

	// 2. Seed roles
	if err := roleRepo.SeedDefaults(); err != nil {
		zlog.Warn("failed to seed roles", zap.Error(err))
	}

	// 3. Assign privileges to roles
	allPrivileges, _ := privilegeRepo.FindAll()

	// MANAGER gets everything except account administration
	managerRole, err := roleRepo.FindByCode(model.RoleManager)
	if err == nil && len(managerRole.Privileges) == 0 {
		managerPrivileges := []model.Privilege{}
		for _, p := range allPrivileges {
			if p.Code == "manage_users" || p.Code == "manage_roles" || p.Code == "manage_settings" {
				continue
			}
			managerPrivileges = append(managerPrivileges, p)
		}
		if err := roleRepo.ReplacePrivileges(managerRole, managerPrivileges); err != nil {
			zlog.Warn("failed to assign manager privileges", zap.Error(err))
		} else {
			zlog.Info("manager role assigned operational privileges")
		}
	}

	// VIEWER gets read-only privileges
	viewerRole, err := roleRepo.FindByCode(model.RoleViewer)
	if err == nil && len(viewerRole.Privileges) == 0 {
		viewerPrivileges := []model.Privilege{}
		for _, p := range allPrivileges {
			if strings.HasPrefix(p.Code, "view_") {
				viewerPrivileges = append(viewerPrivileges, p)
			}
		}
		if err := roleRepo.ReplacePrivileges(viewerRole, viewerPrivileges); err != nil {
			zlog.Warn("failed to assign viewer privileges", zap.Error(err))
		} else {
			zlog.Info("viewer role assigned read-only privileges")
		}
	}

	// 4. Create default admin user
	adminUsername := os.Getenv("ADMIN_USERNAME")
	if adminUsername == "" {
		adminUsername = "admin"
	}

	if _, err := userRepo.FindByUsername(adminUsername); err == nil {
		return
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@example.com"
	}

	admin := &model.User{
		Username: adminUsername,
		Email:    adminEmail,
		IsAdmin:  true,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword(adminPassword); err != nil {
		zlog.Warn("failed to hash admin password", zap.Error(err))
		return
	}

	if err := userRepo.Create(admin); err != nil {
		zlog.Warn("failed to create admin user", zap.Error(err))
	} else {
		zlog.Info("admin user created", zap.String("username", adminUsername))
	}
}
