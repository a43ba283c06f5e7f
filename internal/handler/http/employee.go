package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/attendance"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/employee"
	"github.com/pmjgroup/rental-hr-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	ListEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	SetStatus(w http.ResponseWriter, r *http.Request)
	GetAttendanceHistory(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService   employee.EmployeeService
	attendanceService attendance.AttendanceService
}

func NewEmployeeHandler(employeeService employee.EmployeeService, attendanceService attendance.AttendanceService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService:   employeeService,
		attendanceService: attendanceService,
	}
}

// CreateEmployee implements EmployeeHandler.
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", result)
}

// ListEmployees implements EmployeeHandler.
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter employee.EmployeeFilter
	if search := query.Get("search"); search != "" {
		filter.Search = &search
	}
	if role := query.Get("role"); role != "" {
		filter.Role = &role
	}
	if status := query.Get("status"); status != "" {
		filter.Status = &status
	}

	result, err := h.employeeService.ListEmployees(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEmployee implements EmployeeHandler.
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id", "employee")
	if !ok {
		return
	}

	result, err := h.employeeService.GetEmployee(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateEmployee implements EmployeeHandler.
func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id", "employee")
	if !ok {
		return
	}

	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.UpdateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", result)
}

// SetStatus implements EmployeeHandler.
func (h *employeeHandlerImpl) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id", "employee")
	if !ok {
		return
	}

	var req employee.SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.SetStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee status updated", result)
}

// GetAttendanceHistory implements EmployeeHandler.
func (h *employeeHandlerImpl) GetAttendanceHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id", "employee")
	if !ok {
		return
	}

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed <= 0 {
			response.BadRequest(w, "limit must be a positive integer", nil)
			return
		}
		limit = parsed
	}

	result, err := h.attendanceService.GetEmployeeHistory(r.Context(), id, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
