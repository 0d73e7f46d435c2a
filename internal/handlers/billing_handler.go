package handlers

import (
	"encoding/json"
	"net/http"

	"billing-backend/internal/models"
	"billing-backend/internal/services"
	"billing-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type BillingHandler struct {
	Service *services.BillingService
}

func NewBillingHandler(s *services.BillingService) *BillingHandler {
	return &BillingHandler{Service: s}
}

func (h *BillingHandler) SubmitReading(w http.ResponseWriter, r *http.Request) {
	meterCode := mux.Vars(r)["meterCode"]

	var req models.SubmitReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.Service.SubmitReading(meterCode, req.Reading)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, result)
}

func (h *BillingHandler) ApplyTariff(w http.ResponseWriter, r *http.Request) {
	meterCode := mux.Vars(r)["meterCode"]

	var req models.TariffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.Service.ApplyTariff(meterCode, req.PricePerUnit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, result)
}

func (h *BillingHandler) CheckReading(w http.ResponseWriter, r *http.Request) {
	meterCode := mux.Vars(r)["meterCode"]

	check, err := h.Service.CheckReading(meterCode)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, check)
}

func (h *BillingHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	meterCode := mux.Vars(r)["meterCode"]

	bill, err := h.Service.BillDetails(meterCode)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, bill)
}

func (h *BillingHandler) PayBill(w http.ResponseWriter, r *http.Request) {
	meterCode := mux.Vars(r)["meterCode"]

	var req models.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	receipt, err := h.Service.Pay(meterCode, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, receipt)
}

func (h *BillingHandler) RegisterComplaint(w http.ResponseWriter, r *http.Request) {
	meterCode := mux.Vars(r)["meterCode"]

	result, err := h.Service.RegisterComplaint(meterCode)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, result)
}

func (h *BillingHandler) CancelSubscription(w http.ResponseWriter, r *http.Request) {
	meterCode := mux.Vars(r)["meterCode"]

	var req struct {
		Operator string `json:"operator"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	customer, err := h.Service.CancelSubscription(meterCode, req.Operator)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, customer)
}
