package router

import (
	"go-publisher-api/common"
	"go-publisher-api/handler"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter(userHandler *handler.UserHandler, ledgerHandler *handler.LedgerHandler, employeeHandler *handler.EmployeeHandler, bookHandler *handler.BookHandler, materialHandler *handler.MaterialHandler, inventoryHandler *handler.InventoryHandler, printingHandler *handler.PrintingHandler, purchaseHandler *handler.PurchaseHandler) http.Handler {
	mux := http.NewServeMux()

	// authed routes require a valid token; admin routes additionally
	// require the admin role.
	authed := func(h func(http.ResponseWriter, *http.Request) *common.AppError) http.Handler {
		return handler.AuthMiddleware(handler.ErrorHandlingMiddleware(h))
	}
	admin := func(h func(http.ResponseWriter, *http.Request) *common.AppError) http.Handler {
		return handler.AuthMiddleware(handler.AdminMiddleware(handler.ErrorHandlingMiddleware(h)))
	}

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.Handle("POST /login", handler.ErrorHandlingMiddleware(userHandler.Login))
	mux.Handle("PUT /api/account/password", authed(userHandler.ChangePassword))

	mux.Handle("GET /api/ledgers", authed(ledgerHandler.ListLedgers))
	mux.Handle("GET /api/ledgers/{ledgerId}/records", authed(ledgerHandler.GetRecords))
	mux.Handle("POST /api/ledgers/{ledgerId}/records", authed(ledgerHandler.CreateRecord))

	mux.Handle("GET /api/employees", authed(employeeHandler.ListEmployees))
	mux.Handle("GET /api/books", authed(bookHandler.ListBooks))

	mux.Handle("GET /api/materials", authed(materialHandler.ListMaterials))
	mux.Handle("GET /api/materials/{materialId}", authed(materialHandler.GetMaterialDetail))
	mux.Handle("GET /api/materials/{materialId}/suppliers", authed(materialHandler.ListMaterialSuppliers))
	mux.Handle("GET /api/suppliers", authed(materialHandler.ListSuppliers))

	mux.Handle("POST /api/inventory/adjustments", authed(inventoryHandler.AdjustStock))
	mux.Handle("GET /api/inventory/alerts", authed(inventoryHandler.StockAlerts))

	mux.Handle("GET /api/tasks", authed(printingHandler.ListTasks))
	mux.Handle("POST /api/tasks", authed(printingHandler.SubmitTask))
	mux.Handle("GET /api/tasks/{taskId}", authed(printingHandler.GetTaskDetail))
	mux.Handle("GET /api/tasks/{taskId}/requirements", authed(printingHandler.GetTaskRequirements))
	mux.Handle("PUT /api/tasks/{taskId}/status", authed(printingHandler.UpdateTaskStatus))
	mux.Handle("POST /api/tasks/{taskId}/complete", authed(printingHandler.CompleteTask))

	mux.Handle("GET /api/purchases", authed(purchaseHandler.ListPurchases))
	mux.Handle("POST /api/purchases", authed(purchaseHandler.CreatePurchase))
	mux.Handle("PUT /api/purchases/{purchaseId}/status", authed(purchaseHandler.UpdatePurchaseStatus))
	mux.Handle("POST /api/purchases/{purchaseId}/receive", authed(purchaseHandler.ReceivePurchase))

	mux.Handle("GET /api/admin/users", admin(userHandler.ListUsers))
	mux.Handle("POST /api/admin/users", admin(userHandler.ProvisionUser))
	mux.Handle("POST /api/admin/ledgers", admin(ledgerHandler.CreateLedger))
	mux.Handle("POST /api/admin/ledgers/{ledgerId}/members", admin(ledgerHandler.AddMember))
	mux.Handle("DELETE /api/admin/ledgers/{ledgerId}/members/{userId}", admin(ledgerHandler.RemoveMember))
	mux.Handle("POST /api/admin/employees", admin(employeeHandler.CreateEmployee))
	mux.Handle("PUT /api/admin/employees/{employeeId}", admin(employeeHandler.UpdateEmployee))
	mux.Handle("POST /api/admin/books", admin(bookHandler.CreateBook))
	mux.Handle("POST /api/admin/materials", admin(materialHandler.CreateMaterial))
	mux.Handle("PUT /api/admin/materials/{materialId}/safety-stock", admin(materialHandler.SetSafetyStock))
	mux.Handle("PUT /api/admin/materials/{materialId}/price", admin(materialHandler.SetUnitPrice))
	mux.Handle("POST /api/admin/materials/{materialId}/suppliers", admin(materialHandler.LinkSupplier))
	mux.Handle("POST /api/admin/suppliers", admin(materialHandler.CreateSupplier))
	mux.Handle("GET /api/admin/inventory/report", admin(inventoryHandler.InventoryReport))

	return handler.RequestLoggingMiddleware(mux)
}
