package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"po-backend/internal/handlers"
	"po-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	vendorHandler *handlers.VendorHandler,
	itemHandler *handlers.ItemHandler,
	projectHandler *handlers.ProjectHandler,
	orderHandler *handlers.OrderHandler,
	invoiceHandler *handlers.InvoiceHandler,
	receiptHandler *handlers.ItemReceiptHandler,
	verificationLogHandler *handlers.VerificationLogHandler,
	loginLogHandler *handlers.LoginLogHandler,
	adminActionLogHandler *handlers.AdminActionLogHandler,
	systemSettingHandler *handlers.SystemSettingHandler,
	totpHandler *handlers.TOTPHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes - Authentication and probes
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/verify-2fa", authHandler.Verify2FA).Methods("POST")
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Users - admin only
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.RequireAdmin)
	usersAPI.HandleFunc("", userHandler.ListUsers).Methods("GET")
	usersAPI.HandleFunc("", userHandler.CreateUser).Methods("POST")
	usersAPI.HandleFunc("/{id}", userHandler.GetUser).Methods("GET")
	usersAPI.HandleFunc("/{id}", userHandler.UpdateUser).Methods("PATCH")
	usersAPI.HandleFunc("/{id}", userHandler.DeleteUser).Methods("DELETE")
	usersAPI.HandleFunc("/{id}/references", userHandler.GetReferences).Methods("GET")
	usersAPI.HandleFunc("/{id}/reassign", userHandler.ReassignProjects).Methods("POST")

	// Vendors
	vendorsAPI := r.PathPrefix("/api/vendors").Subrouter()
	vendorsAPI.Use(authMiddleware.Authenticate)
	vendorsAPI.HandleFunc("", vendorHandler.ListVendors).Methods("GET")
	vendorsAPI.HandleFunc("", vendorHandler.CreateVendor).Methods("POST")
	vendorsAPI.HandleFunc("/{id}", vendorHandler.GetVendor).Methods("GET")
	vendorsAPI.HandleFunc("/{id}", vendorHandler.UpdateVendor).Methods("PATCH")
	vendorsAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(vendorHandler.DeleteVendor)).ServeHTTP).Methods("DELETE")

	// Items (catalog)
	itemsAPI := r.PathPrefix("/api/items").Subrouter()
	itemsAPI.Use(authMiddleware.Authenticate)
	itemsAPI.HandleFunc("", itemHandler.ListItems).Methods("GET")
	itemsAPI.HandleFunc("", itemHandler.CreateItem).Methods("POST")
	itemsAPI.HandleFunc("/{id}", itemHandler.GetItem).Methods("GET")
	itemsAPI.HandleFunc("/{id}", itemHandler.UpdateItem).Methods("PATCH")
	itemsAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(itemHandler.DeleteItem)).ServeHTTP).Methods("DELETE")

	// Projects
	projectsAPI := r.PathPrefix("/api/projects").Subrouter()
	projectsAPI.Use(authMiddleware.Authenticate)
	projectsAPI.HandleFunc("", projectHandler.ListProjects).Methods("GET")
	projectsAPI.HandleFunc("", projectHandler.CreateProject).Methods("POST")
	projectsAPI.HandleFunc("/{id}", projectHandler.GetProject).Methods("GET")
	projectsAPI.HandleFunc("/{id}", projectHandler.UpdateProject).Methods("PATCH")
	projectsAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(projectHandler.DeleteProject)).ServeHTTP).Methods("DELETE")
	projectsAPI.HandleFunc("/{id}/members", projectHandler.ListMembers).Methods("GET")
	projectsAPI.HandleFunc("/{id}/members", projectHandler.AddMember).Methods("POST")
	projectsAPI.HandleFunc("/{id}/members/{userId}", projectHandler.RemoveMember).Methods("DELETE")

	// Purchase orders
	ordersAPI := r.PathPrefix("/api/orders").Subrouter()
	ordersAPI.Use(authMiddleware.Authenticate)
	ordersAPI.HandleFunc("", orderHandler.ListOrders).Methods("GET")
	ordersAPI.HandleFunc("", orderHandler.CreateOrder).Methods("POST")
	ordersAPI.HandleFunc("/{id}", orderHandler.GetOrder).Methods("GET")
	ordersAPI.HandleFunc("/{id}/status", orderHandler.UpdateStatus).Methods("PATCH")
	ordersAPI.HandleFunc("/{id}/submit", orderHandler.Submit).Methods("POST")
	ordersAPI.HandleFunc("/{id}/approve", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(orderHandler.Approve)).ServeHTTP).Methods("POST")
	ordersAPI.HandleFunc("/{id}/send", orderHandler.Send).Methods("POST")
	ordersAPI.HandleFunc("/{id}/complete", orderHandler.Complete).Methods("POST")
	ordersAPI.HandleFunc("/{id}/receive-all", orderHandler.ReceiveAll).Methods("POST")
	ordersAPI.HandleFunc("/{id}/pdf", orderHandler.DownloadPDF).Methods("GET")

	// Invoices
	invoicesAPI := r.PathPrefix("/api/invoices").Subrouter()
	invoicesAPI.Use(authMiddleware.Authenticate)
	invoicesAPI.HandleFunc("", invoiceHandler.ListInvoices).Methods("GET")
	invoicesAPI.HandleFunc("", invoiceHandler.Upload).Methods("POST")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.GetInvoice).Methods("GET")
	invoicesAPI.HandleFunc("/{id}/attachment", invoiceHandler.DownloadAttachment).Methods("GET")
	invoicesAPI.HandleFunc("/{id}/verify", invoiceHandler.Verify).Methods("POST")
	invoicesAPI.HandleFunc("/{id}/issue-tax", invoiceHandler.IssueTaxInvoice).Methods("POST")
	invoicesAPI.HandleFunc("/{id}/cancel-tax", invoiceHandler.CancelTaxInvoice).Methods("POST")
	invoicesAPI.HandleFunc("/{id}/mark-paid", authMiddleware.RequireAdmin(http.HandlerFunc(invoiceHandler.MarkPaid)).ServeHTTP).Methods("POST")

	// Item receipts
	receiptsAPI := r.PathPrefix("/api/item-receipts").Subrouter()
	receiptsAPI.Use(authMiddleware.Authenticate)
	receiptsAPI.HandleFunc("", receiptHandler.ListReceipts).Methods("GET")
	receiptsAPI.HandleFunc("", receiptHandler.CreateReceipt).Methods("POST")
	receiptsAPI.HandleFunc("/{id}", receiptHandler.GetReceipt).Methods("GET")
	receiptsAPI.HandleFunc("/{id}", receiptHandler.UpdateReceipt).Methods("PATCH")
	receiptsAPI.HandleFunc("/{id}", receiptHandler.DeleteReceipt).Methods("DELETE")

	// Audit trail
	logsAPI := r.PathPrefix("/api/verification-logs").Subrouter()
	logsAPI.Use(authMiddleware.Authenticate)
	logsAPI.HandleFunc("", verificationLogHandler.ListLogs).Methods("GET")

	// Admin logs
	loginLogsAPI := r.PathPrefix("/api/login-logs").Subrouter()
	loginLogsAPI.Use(authMiddleware.RequireAdmin)
	loginLogsAPI.HandleFunc("", loginLogHandler.ListLogs).Methods("GET")

	actionLogsAPI := r.PathPrefix("/api/admin-action-logs").Subrouter()
	actionLogsAPI.Use(authMiddleware.RequireAdmin)
	actionLogsAPI.HandleFunc("", adminActionLogHandler.ListLogs).Methods("GET")

	// System settings - admin only
	settingsAPI := r.PathPrefix("/api/settings").Subrouter()
	settingsAPI.Use(authMiddleware.RequireAdmin)
	settingsAPI.HandleFunc("", systemSettingHandler.ListSettings).Methods("GET")
	settingsAPI.HandleFunc("/{key}", systemSettingHandler.GetSetting).Methods("GET")
	settingsAPI.HandleFunc("/{key}", systemSettingHandler.UpsertSetting).Methods("PUT")

	// 2FA
	totpAPI := r.PathPrefix("/api/2fa").Subrouter()
	totpAPI.Use(authMiddleware.Authenticate)
	totpAPI.HandleFunc("/setup", totpHandler.Setup).Methods("POST")
	totpAPI.HandleFunc("/enable", totpHandler.Enable).Methods("POST")
	totpAPI.HandleFunc("/disable", totpHandler.Disable).Methods("POST")

	return r
}
