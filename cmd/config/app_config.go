package config

import (
	"Resto-POS-Backend/internal/api/handlers"
	"Resto-POS-Backend/internal/api/routes"
	"Resto-POS-Backend/internal/middleware"
	"Resto-POS-Backend/internal/utils"
	"Resto-POS-Backend/internal/utils/storage"
	"Resto-POS-Backend/pkg/gateway"
	"Resto-POS-Backend/pkg/inventory"
	"Resto-POS-Backend/pkg/jwt"
	"Resto-POS-Backend/pkg/menu"
	"Resto-POS-Backend/pkg/pos"
	"Resto-POS-Backend/pkg/report"
	"Resto-POS-Backend/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	menuRepository := menu.NewMenuRepository(db)
	inventoryRepository := inventory.NewInventoryRepository(db)
	posRepository := pos.NewPosRepository(db)
	reportRepository := report.NewReportRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	gatewayService := gateway.NewGatewayService()
	userService := user.NewUserService(userRepository, jwtService)
	menuService := menu.NewMenuService(menuRepository, inventoryRepository, s3)
	inventoryService := inventory.NewInventoryService(inventoryRepository)
	posService := pos.NewPosService(posRepository, menuRepository, gatewayService)
	reportService := report.NewReportService(reportRepository, inventoryRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	menuHandler := handlers.NewMenuHandler(menuService, validator)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, validator)
	posHandler := handlers.NewPosHandler(posService, validator)
	reportHandler := handlers.NewReportHandler(reportService)

	// routes
	routesConfig := routes.Config{
		App:              app,
		UserHandler:      userHandler,
		MenuHandler:      menuHandler,
		InventoryHandler: inventoryHandler,
		PosHandler:       posHandler,
		ReportHandler:    reportHandler,
		Middleware:       middlewares,
		JWTService:       jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
