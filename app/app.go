// File: app/app.go
package app

import (
	"context"
	"go-publisher-api/config"
	"go-publisher-api/db"
	"go-publisher-api/handler"
	"go-publisher-api/logger"
	"go-publisher-api/repository"
	"go-publisher-api/router"
	"go-publisher-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	// --- Wiring All Layers Together ---
	// Repositories, services, and handlers are instantiated here and
	// passed down explicitly.

	userRepo := repository.NewUserRepository(database)
	ledgerRepo := repository.NewLedgerRepository(database)
	recordRepo := repository.NewRecordRepository(database)
	employeeRepo := repository.NewEmployeeRepository(database)
	bookRepo := repository.NewBookRepository(database)
	materialRepo := repository.NewMaterialRepository(database)
	stockLogRepo := repository.NewStockLogRepository(database)
	supplierRepo := repository.NewSupplierRepository(database)
	taskRepo := repository.NewTaskRepository(database)
	purchaseRepo := repository.NewPurchaseRepository(database)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, authService)
	ledgerService := service.NewLedgerService(database, userRepo, ledgerRepo, recordRepo)
	employeeService := service.NewEmployeeService(employeeRepo, userService)
	bookService := service.NewBookService(bookRepo, redisClient)
	materialService := service.NewMaterialService(materialRepo, supplierRepo, stockLogRepo)
	inventoryService := service.NewInventoryService(database, materialRepo, stockLogRepo)
	printingService := service.NewPrintingService(database, taskRepo, employeeRepo, bookRepo, materialRepo, supplierRepo, purchaseRepo, inventoryService)
	purchaseService := service.NewPurchaseService(database, purchaseRepo, supplierRepo, taskRepo, inventoryService)

	userHandler := handler.NewUserHandler(userService, authService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	bookHandler := handler.NewBookHandler(bookService)
	materialHandler := handler.NewMaterialHandler(materialService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	printingHandler := handler.NewPrintingHandler(printingService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)

	// Start the router with all handlers
	r := router.NewRouter(userHandler, ledgerHandler, employeeHandler, bookHandler, materialHandler, inventoryHandler, printingHandler, purchaseHandler)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
