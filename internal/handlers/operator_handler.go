package handlers

import (
	"encoding/json"
	"net/http"

	"billing-backend/internal/models"
	"billing-backend/internal/services"
	"billing-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type OperatorHandler struct {
	Service *services.OperatorService
}

func NewOperatorHandler(s *services.OperatorService) *OperatorHandler {
	return &OperatorHandler{Service: s}
}

func (h *OperatorHandler) CreateOperator(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOperatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	operator, err := h.Service.CreateOperator(&req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, operator)
}

func (h *OperatorHandler) GetOperator(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	operator, err := h.Service.GetOperator(name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, operator)
}

func (h *OperatorHandler) ListOperators(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Service.ListOperators())
}

func (h *OperatorHandler) UpdateOperator(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req models.UpdateOperatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	operator, err := h.Service.UpdateOperator(name, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, operator)
}

func (h *OperatorHandler) DeleteOperator(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := h.Service.DeleteOperator(name); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
