package health

import (
	"os"
	"path/filepath"
	"time"

	"billing-backend/internal/directory"
)

// HealthChecker probes the storage directory the record files live in.
type HealthChecker struct {
	dataDir   string
	customers *directory.CustomerDirectory
	operators *directory.OperatorDirectory
}

type HealthStatus struct {
	Status    string        `json:"status"`
	Storage   StorageHealth `json:"storage"`
	Customers int           `json:"customers"`
	Operators int           `json:"operators"`
}

type StorageHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

func NewHealthChecker(dataDir string, customers *directory.CustomerDirectory, operators *directory.OperatorDirectory) *HealthChecker {
	return &HealthChecker{dataDir: dataDir, customers: customers, operators: operators}
}

func (h *HealthChecker) CheckBasic() HealthStatus {
	storage := h.checkStorage()

	status := "healthy"
	if storage.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:    status,
		Storage:   storage,
		Customers: h.customers.Len(),
		Operators: h.operators.Len(),
	}
}

// checkStorage verifies the data directory is writable, since every
// mutating operation rewrites the record files there.
func (h *HealthChecker) checkStorage() StorageHealth {
	start := time.Now()

	probe := filepath.Join(h.dataDir, ".health_probe")
	err := os.WriteFile(probe, []byte("ok"), 0644)
	if err == nil {
		err = os.Remove(probe)
	}
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return StorageHealth{Status: "unhealthy", ResponseTime: responseTime}
	}
	return StorageHealth{Status: "healthy", ResponseTime: responseTime}
}
