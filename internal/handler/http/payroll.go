package http

import (
	"net/http"

	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/payroll"
	"github.com/pmjgroup/rental-hr-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	GetReport(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)
	ExportXLSX(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// GetReport implements PayrollHandler. GET /payroll?month=YYYY-MM
func (h *payrollHandlerImpl) GetReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetReport(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportCSV implements PayrollHandler.
func (h *payrollHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	file, err := h.payrollService.ExportCSV(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file)
}

// ExportXLSX implements PayrollHandler.
func (h *payrollHandlerImpl) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	file, err := h.payrollService.ExportXLSX(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file)
}
