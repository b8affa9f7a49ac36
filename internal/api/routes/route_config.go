package routes

import (
	"Resto-POS-Backend/domain"
	"Resto-POS-Backend/internal/api/handlers"
	"Resto-POS-Backend/internal/middleware"
	"Resto-POS-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App              *fiber.App
	UserHandler      handlers.UserHandler
	MenuHandler      handlers.MenuHandler
	InventoryHandler handlers.InventoryHandler
	PosHandler       handlers.PosHandler
	ReportHandler    handlers.ReportHandler
	Middleware       middleware.Middleware
	JWTService       jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.Users()
	c.Menu()
	c.Inventory()
	c.Pos()
	c.Reports()
	c.GuestRoute()
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	{
		auth.Post("/register", c.UserHandler.Register)
		auth.Post("/login", c.UserHandler.Login)
		auth.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Users() {
	manager := c.Middleware.RequireScope(domain.ScopeManager)
	admin := c.Middleware.RequireScope(domain.ScopeAdmin)

	users := c.App.Group("/api/v1/users", c.Middleware.AuthMiddleware(c.JWTService))
	{
		users.Get("", manager, c.UserHandler.GetUsers)
		users.Post("", admin, c.UserHandler.CreateUser)
		users.Get("/:id", manager, c.UserHandler.GetUserByID)
		// admins update anyone; everyone else may update their own name/password
		users.Patch("/:id", c.UserHandler.UpdateUser)
		users.Delete("/:id", admin, c.UserHandler.DeleteUser)
	}
}

func (c *Config) Menu() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	manager := c.Middleware.RequireScope(domain.ScopeManager)

	categories := c.App.Group("/api/v1/menu/categories", auth)
	{
		categories.Get("", c.MenuHandler.GetCategories)
		categories.Post("", manager, c.MenuHandler.CreateCategory)
		categories.Patch("/:id", manager, c.MenuHandler.UpdateCategory)
		categories.Delete("/:id", manager, c.MenuHandler.DeleteCategory)
	}

	items := c.App.Group("/api/v1/menu/items", auth)
	{
		items.Get("", c.MenuHandler.GetMenuItems)
		items.Get("/:id", c.MenuHandler.GetMenuItemByID)
		items.Post("", manager, c.MenuHandler.CreateMenuItem)
		items.Patch("/:id", manager, c.MenuHandler.UpdateMenuItem)
		items.Delete("/:id", manager, c.MenuHandler.DeleteMenuItem)
		items.Post("/:id/image", manager, c.MenuHandler.UploadMenuItemImage)
		items.Get("/:id/recipe", c.MenuHandler.GetRecipe)
		items.Put("/:id/recipe", manager, c.MenuHandler.UpdateRecipe)
	}
}

func (c *Config) Inventory() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	staff := c.Middleware.RequireScope(domain.ScopeStaff)
	manager := c.Middleware.RequireScope(domain.ScopeManager)

	ingredients := c.App.Group("/api/v1/inventory/ingredients", auth, staff)
	{
		ingredients.Get("", c.InventoryHandler.GetIngredients)
		ingredients.Get("/low-stock", c.InventoryHandler.GetLowStockItems)
		ingredients.Get("/:id", c.InventoryHandler.GetIngredientByID)
		ingredients.Post("", manager, c.InventoryHandler.CreateIngredient)
		ingredients.Patch("/:id", manager, c.InventoryHandler.UpdateIngredient)
		ingredients.Delete("/:id", manager, c.InventoryHandler.DeleteIngredient)
	}

	units := c.App.Group("/api/v1/inventory/units", auth, staff)
	{
		units.Get("", c.InventoryHandler.GetUnits)
		units.Post("", manager, c.InventoryHandler.CreateUnit)
		units.Patch("/:id", manager, c.InventoryHandler.UpdateUnit)
		units.Delete("/:id", manager, c.InventoryHandler.DeleteUnit)
	}

	transactions := c.App.Group("/api/v1/inventory/transactions", auth, staff)
	{
		transactions.Get("", c.InventoryHandler.GetTransactions)
		transactions.Get("/:id", c.InventoryHandler.GetTransactionByID)
		transactions.Post("", c.InventoryHandler.CreateTransaction)
	}
}

func (c *Config) Pos() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	staff := c.Middleware.RequireScope(domain.ScopeStaff)
	manager := c.Middleware.RequireScope(domain.ScopeManager)

	tables := c.App.Group("/api/v1/pos/tables", auth, staff)
	{
		tables.Get("", c.PosHandler.GetTables)
		tables.Get("/:id", c.PosHandler.GetTableByID)
		tables.Post("", manager, c.PosHandler.CreateTable)
		tables.Patch("/:id", c.PosHandler.UpdateTable)
		tables.Delete("/:id", manager, c.PosHandler.DeleteTable)
	}

	orders := c.App.Group("/api/v1/pos/orders", auth, staff)
	{
		orders.Get("", c.PosHandler.GetOrders)
		orders.Get("/:id", c.PosHandler.GetOrderByID)
		orders.Post("", c.PosHandler.CreateOrder)
		orders.Patch("/:id", c.PosHandler.UpdateOrder)
		orders.Get("/:id/payments", c.PosHandler.GetPaymentsByOrder)
	}

	payments := c.App.Group("/api/v1/pos/payments", auth, staff)
	{
		payments.Get("", c.PosHandler.GetPayments)
		payments.Post("", c.PosHandler.CreatePayment)
	}
}

func (c *Config) Reports() {
	reports := c.App.Group("/api/v1/reports",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RequireScope(domain.ScopeManager),
	)
	{
		reports.Get("/dashboard", c.ReportHandler.GetDashboard)
		reports.Get("/daily-sales", c.ReportHandler.GetDailySales)
		reports.Get("/employee-performance", c.ReportHandler.GetEmployeePerformance)
		reports.Get("/menu-item-performance", c.ReportHandler.GetMenuItemPerformance)
		reports.Get("/inventory-variance", c.ReportHandler.GetInventoryVariance)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Post("/webhook/midtrans", c.PosHandler.GatewayWebhookHandler)
}
