package routes

import (
	"billed/internal/handlers"
	"billed/internal/middleware"
	"billed/internal/models"
	"net/http"

	"github.com/gorilla/mux"
)

const billID = "{id:[0-9a-fA-F-]{36}}"

func InitRoutes(
	router *mux.Router,
	authHandler *handlers.AuthHandler,
	billHandler *handlers.BillHandler,
	jwtAuth func(http.Handler) http.Handler,
) {
	router.Use(middleware.RequestID, middleware.Recoverer, middleware.Logging)

	api := router.PathPrefix("/api").Subrouter()

	// --- Публичные маршруты ---
	api.HandleFunc("/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/login", authHandler.Login).Methods("POST")

	// --- Защищённые JWT ---
	protected := api.PathPrefix("").Subrouter()
	protected.Use(jwtAuth, middleware.AdminFastLane)

	protected.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	protected.HandleFunc("/profile", authHandler.Profile).Methods("GET")

	bills := protected.PathPrefix("/bills").Subrouter()
	bills.Use(middleware.OnlyType(models.UserTypeEmployee))
	bills.HandleFunc("", billHandler.ListBills).Methods("GET")
	bills.HandleFunc("", billHandler.CreateBill).Methods("POST")
	bills.HandleFunc("/"+billID, billHandler.GetBill).Methods("GET")
	bills.HandleFunc("/"+billID, billHandler.UpdateBill).Methods("PATCH")
	bills.HandleFunc("/"+billID, billHandler.DeleteBill).Methods("DELETE")
	bills.HandleFunc("/"+billID+"/file", billHandler.DownloadReceipt).Methods("GET")
}
