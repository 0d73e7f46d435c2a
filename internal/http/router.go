package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"billing-backend/internal/handlers"
)

func NewRouter(
	customerHandler *handlers.CustomerHandler,
	operatorHandler *handlers.OperatorHandler,
	billingHandler *handlers.BillingHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Health and metrics
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Customers
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.HandleFunc("", customerHandler.RegisterCustomer).Methods("POST")
	customersAPI.HandleFunc("", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("/search", customerHandler.SearchByName).Methods("GET")
	customersAPI.HandleFunc("/{meterCode}", customerHandler.GetCustomer).Methods("GET")
	customersAPI.HandleFunc("/{meterCode}", customerHandler.UpdateCustomer).Methods("PUT")
	customersAPI.HandleFunc("/{meterCode}", customerHandler.DeleteCustomer).Methods("DELETE")

	// Billing operations on a customer
	customersAPI.HandleFunc("/{meterCode}/readings", billingHandler.SubmitReading).Methods("POST")
	customersAPI.HandleFunc("/{meterCode}/reading-check", billingHandler.CheckReading).Methods("GET")
	customersAPI.HandleFunc("/{meterCode}/tariff", billingHandler.ApplyTariff).Methods("POST")
	customersAPI.HandleFunc("/{meterCode}/bill", billingHandler.GetBill).Methods("GET")
	customersAPI.HandleFunc("/{meterCode}/payments", billingHandler.PayBill).Methods("POST")
	customersAPI.HandleFunc("/{meterCode}/complaints", billingHandler.RegisterComplaint).Methods("POST")
	customersAPI.HandleFunc("/{meterCode}/cancel", billingHandler.CancelSubscription).Methods("POST")

	// Operators
	operatorsAPI := r.PathPrefix("/api/operators").Subrouter()
	operatorsAPI.HandleFunc("", operatorHandler.CreateOperator).Methods("POST")
	operatorsAPI.HandleFunc("", operatorHandler.ListOperators).Methods("GET")
	operatorsAPI.HandleFunc("/{name}", operatorHandler.GetOperator).Methods("GET")
	operatorsAPI.HandleFunc("/{name}", operatorHandler.UpdateOperator).Methods("PUT")
	operatorsAPI.HandleFunc("/{name}", operatorHandler.DeleteOperator).Methods("DELETE")

	// Reports (admin)
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.HandleFunc("/bills", reportHandler.BillsByRegion).Methods("GET")
	reportsAPI.HandleFunc("/bills/pdf", reportHandler.BillsByRegionPDF).Methods("GET")
	reportsAPI.HandleFunc("/collections", reportHandler.Collections).Methods("GET")
	reportsAPI.HandleFunc("/consumption", reportHandler.ConsumptionByRegion).Methods("GET")
	reportsAPI.HandleFunc("/customers.csv", reportHandler.CustomersCSV).Methods("GET")

	return r
}
