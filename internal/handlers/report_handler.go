package handlers

import (
	"fmt"
	"net/http"
	"time"

	"billing-backend/internal/services"
	"billing-backend/pkg/utils"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

func (h *ReportHandler) BillsByRegion(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	if region == "" {
		utils.Error(w, http.StatusBadRequest, "region parameter is required")
		return
	}

	utils.JSON(w, http.StatusOK, h.Service.BillsByRegion(region))
}

func (h *ReportHandler) Collections(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Service.TotalCollected())
}

func (h *ReportHandler) ConsumptionByRegion(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	if region == "" {
		utils.Error(w, http.StatusBadRequest, "region parameter is required")
		return
	}

	utils.JSON(w, http.StatusOK, h.Service.ConsumptionByRegion(region))
}

func (h *ReportHandler) BillsByRegionPDF(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	if region == "" {
		utils.Error(w, http.StatusBadRequest, "region parameter is required")
		return
	}

	pdf, err := h.Service.GenerateRegionBillsPDF(region)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	filename := fmt.Sprintf("bills_%s_%s.pdf", region, time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(pdf)
}

func (h *ReportHandler) CustomersCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.ExportCustomersCSV()
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	filename := fmt.Sprintf("customers_%s.csv", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}
