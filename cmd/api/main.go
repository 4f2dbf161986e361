package main

import (
	"context"
	"log"
	"os"

	_ "backend/api/swagger" // swagger docs
	"backend/internal/currency"
	"backend/internal/database"
	"backend/internal/handler"
	"backend/internal/middleware"
	"backend/internal/repository"
	"backend/internal/repository/memory"
	"backend/internal/service"
	"backend/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// repositories bundles every data access interface behind one wiring seam,
// satisfied by either the Postgres or the in-memory implementation
type repositories struct {
	users         repository.UserRepository
	branches      repository.BranchRepository
	customers     repository.CustomerRepository
	services      repository.ServiceRepository
	appointments  repository.AppointmentRepository
	inventory     repository.InventoryRepository
	movements     repository.StockMovementRepository
	bills         repository.BillRepository
	transactions  repository.TransactionRepository
	notifications repository.NotificationRepository
	settings      repository.SettingsRepository
	txManager     repository.TransactionManager
}

func postgresRepositories(dsn string) (*repositories, error) {
	db, err := database.NewConnection(dsn)
	if err != nil {
		return nil, err
	}
	return &repositories{
		users:         repository.NewUserRepository(db),
		branches:      repository.NewBranchRepository(db),
		customers:     repository.NewCustomerRepository(db),
		services:      repository.NewServiceRepository(db),
		appointments:  repository.NewAppointmentRepository(db),
		inventory:     repository.NewInventoryRepository(db),
		movements:     repository.NewStockMovementRepository(db),
		bills:         repository.NewBillRepository(db),
		transactions:  repository.NewTransactionRepository(db),
		notifications: repository.NewNotificationRepository(db),
		settings:      repository.NewSettingsRepository(db),
		txManager:     repository.NewTransactionManager(db),
	}, nil
}

func memoryRepositories() *repositories {
	store := memory.NewSeeded()
	return &repositories{
		users:         store.Users(),
		branches:      store.Branches(),
		customers:     store.Customers(),
		services:      store.Services(),
		appointments:  store.Appointments(),
		inventory:     store.Inventory(),
		movements:     store.StockMovements(),
		bills:         store.Bills(),
		transactions:  store.Transactions(),
		notifications: store.Notifications(),
		settings:      store.Settings(),
		txManager:     memory.NewTxManager(),
	}
}

// @title           Salon Management API
// @version         1.0
// @description     Beauty salon management backend: appointments, billing, inventory, finance and notifications.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	var repos *repositories
	if os.Getenv("DEMO_MODE") == "1" {
		repos = memoryRepositories()
		log.Println("DEMO_MODE=1: using the seeded in-memory store")
	} else {
		dbHost := os.Getenv("DB_HOST")
		dbPort := os.Getenv("DB_PORT")
		dbUser := os.Getenv("DB_USER")
		dbPassword := os.Getenv("DB_PASSWORD")
		dbName := os.Getenv("DB_NAME")
		dbSslMode := os.Getenv("DB_SSLMODE")

		if dbHost == "" {
			dbHost = "localhost"
		}
		if dbPort == "" {
			dbPort = "5432"
		}
		if dbUser == "" {
			dbUser = "postgres"
		}
		if dbPassword == "" {
			dbPassword = "postgres"
		}
		if dbName == "" {
			dbName = "postgres"
		}
		if dbSslMode == "" {
			dbSslMode = "disable"
		}

		dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

		var err error
		repos, err = postgresRepositories(dsn)
		if err != nil {
			log.Fatalf("Database connection failed: %v", err)
		}
		log.Println("Connected to PostgreSQL successfully.")
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Shared infrastructure
	converter := currency.NewConverter()
	notifier := service.NewNotifier(repos.notifications, wsHub)

	// Services
	userService := service.NewUserService(repos.users, repos.txManager, notifier)
	branchService := service.NewBranchService(repos.branches)
	customerService := service.NewCustomerService(repos.customers, repos.bills, repos.txManager, notifier)
	catalogService := service.NewCatalogService(repos.services, repos.txManager, notifier)
	appointmentService := service.NewAppointmentService(
		repos.appointments, repos.customers, repos.services,
		repos.bills, repos.transactions, repos.settings, repos.txManager, notifier, converter,
	)
	inventoryService := service.NewInventoryService(repos.inventory, repos.movements, repos.txManager, notifier)
	billingService := service.NewBillingService(repos.bills)
	financeService := service.NewFinanceService(repos.transactions, repos.txManager, notifier)
	notificationService := service.NewNotificationService(repos.notifications)
	statisticsService := service.NewStatisticsService(repos.bills, repos.appointments, repos.inventory, repos.branches)
	settingsService := service.NewSettingsService(repos.settings, converter)

	// Hydrate exchange rates from the persisted table
	if err := settingsService.LoadRates(context.Background()); err != nil {
		log.Printf("Failed to load exchange rates, using defaults: %v", err)
	}

	// Handlers
	userHandler := handler.NewUserHandler(userService)
	branchHandler := handler.NewBranchHandler(branchService)
	customerHandler := handler.NewCustomerHandler(customerService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	billingHandler := handler.NewBillingHandler(billingService)
	financeHandler := handler.NewFinanceHandler(financeService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)
	settingsHandler := handler.NewSettingsHandler(settingsService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// API Routing
	userHandler.RegisterRoutes(router.Group(""))
	branchHandler.RegisterRoutes(router.Group(""))
	customerHandler.RegisterRoutes(router.Group(""))
	catalogHandler.RegisterRoutes(router.Group(""))
	appointmentHandler.RegisterRoutes(router.Group(""))
	inventoryHandler.RegisterRoutes(router.Group(""))
	billingHandler.RegisterRoutes(router.Group(""))
	financeHandler.RegisterRoutes(router.Group(""))
	notificationHandler.RegisterRoutes(router.Group(""))
	statisticsHandler.RegisterRoutes(router.Group(""))
	settingsHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
