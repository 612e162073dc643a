package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dokterku/presensi-backend-go/internal/config"
	"github.com/dokterku/presensi-backend-go/internal/domain/attendance"
	"github.com/dokterku/presensi-backend-go/internal/handler/http/response"
	"github.com/dokterku/presensi-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceHandler interface {
	ValidateCheckin(w http.ResponseWriter, r *http.Request)
	Checkin(w http.ResponseWriter, r *http.Request)
	ValidateCheckout(w http.ResponseWriter, r *http.Request)
	Checkout(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	GetMonthlyRecap(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	cfg               config.AttendanceConfig
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, cfg config.AttendanceConfig) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		cfg:               cfg,
	}
}

// employeeIDFromContext pulls the staff identity out of the verified token.
// The engine never reads auth state itself; identity travels as an explicit
// request field from here on.
func employeeIDFromContext(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return employeeID, nil
}

// validation is the envelope shape consumed by the mobile client.
type validationEnvelope struct {
	Validation attendance.ValidationResult `json:"validation"`
}

// ValidateCheckin implements AttendanceHandler.
func (h *attendanceHandlerImpl) ValidateCheckin(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCheckinRequest(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.ValidateCheckin(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, validationEnvelope{Validation: result})
}

// Checkin implements AttendanceHandler.
func (h *attendanceHandlerImpl) Checkin(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCheckinRequest(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.Checkin(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Validation.Valid {
		response.Created(w, "Check-in berhasil", result)
		return
	}
	response.Success(w, result)
}

// ValidateCheckout implements AttendanceHandler.
func (h *attendanceHandlerImpl) ValidateCheckout(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCheckoutRequest(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.ValidateCheckout(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, validationEnvelope{Validation: result})
}

// Checkout implements AttendanceHandler.
func (h *attendanceHandlerImpl) Checkout(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCheckoutRequest(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.Checkout(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) decodeCheckinRequest(w http.ResponseWriter, r *http.Request) (attendance.CheckinRequest, bool) {
	var req attendance.CheckinRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode check-in request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return req, false
	}

	employeeID, err := employeeIDFromContext(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return req, false
	}
	req.EmployeeID = employeeID

	if err := req.Validate(h.cfg.MaxAccuracyMeters); err != nil {
		response.HandleError(w, err)
		return req, false
	}

	return req, true
}

func (h *attendanceHandlerImpl) decodeCheckoutRequest(w http.ResponseWriter, r *http.Request) (attendance.CheckoutRequest, bool) {
	var req attendance.CheckoutRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode check-out request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return req, false
	}

	employeeID, err := employeeIDFromContext(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return req, false
	}
	req.EmployeeID = employeeID

	if err := req.Validate(h.cfg.MaxAccuracyMeters); err != nil {
		response.HandleError(w, err)
		return req, false
	}

	return req, true
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	filter := attendance.MyAttendanceFilter{}

	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}
	filter.Page = page

	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			limit = limitNum
		}
	}
	filter.Limit = limit

	results, err := h.attendanceService.GetMyAttendance(r.Context(), employeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// GetMonthlyRecap implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMonthlyRecap(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	monthStr := r.URL.Query().Get("month")
	if monthStr == "" {
		response.BadRequest(w, "Query parameter 'month' is required (YYYY-MM)", nil)
		return
	}

	month, ok := validator.IsValidMonth(monthStr)
	if !ok {
		response.BadRequest(w, "Query parameter 'month' must be in YYYY-MM format", nil)
		return
	}

	recap, err := h.attendanceService.GetMonthlyRecap(r.Context(), employeeID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, recap)
}
