package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/worktime"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/repository/memory"
	adjustmentService "github.com/cmlabs-hris/shopclock-backend-go/internal/service/adjustment"
	attendanceService "github.com/cmlabs-hris/shopclock-backend-go/internal/service/attendance"
	authService "github.com/cmlabs-hris/shopclock-backend-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/shopclock-backend-go/internal/service/employee"
	operatingHoursService "github.com/cmlabs-hris/shopclock-backend-go/internal/service/operatinghours"
	payrollService "github.com/cmlabs-hris/shopclock-backend-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/shopclock-backend-go/internal/service/report"
	taskService "github.com/cmlabs-hris/shopclock-backend-go/internal/service/task"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminBadge    = "ADMIN000000000000000"
	employeeBadge = "MINJI000000000000000"
)

type testServer struct {
	*httptest.Server
	store *memory.Store
	admin employee.Employee
	staff employee.Employee
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	admin, err := store.Employees().Create(ctx, employee.Employee{Name: "boss", Role: employee.RoleAdmin, BadgeID: adminBadge, HourlyWage: decimal.NewFromInt(20000)})
	require.NoError(t, err)
	staff, err := store.Employees().Create(ctx, employee.Employee{Name: "minji", Role: employee.RoleEmployee, BadgeID: employeeBadge, HourlyWage: decimal.NewFromInt(10000)})
	require.NoError(t, err)

	clk := clock.NewFixed(time.Date(2025, 3, 5, 1, 0, 0, 0, time.UTC))
	businessDay := worktime.BusinessDay{StartHour: 5, Location: time.UTC}
	rounding := payrollService.Rounding{CurrencyPlaces: 0}
	jwtService := jwt.NewJWTService("router-test-secret", "1h")
	loader := payrollService.NewSheetLoader(store.Breaks(), store.LateRecords(), store.Adjustments(), store.Employees())
	repos := attendanceService.Repositories{
		Attendance:     store.Attendances(),
		Break:          store.Breaks(),
		LateRecord:     store.LateRecords(),
		Employee:       store.Employees(),
		OperatingHours: store.OperatingHours(),
	}
	attendanceSvc := attendanceService.NewAttendanceService(store, repos, loader, clk, businessDay, rounding)
	adjustmentSvc := adjustmentService.NewAdjustmentService(store, store.Attendances(), store.Adjustments())

	handlers := Handlers{
		Auth:           NewAuthHandler(authService.NewAuthService(store.Employees(), jwtService)),
		Attendance:     NewAttendanceHandler(attendanceSvc, businessDay, clk),
		Break:          NewBreakHandler(attendanceService.NewBreakService(store, store.Attendances(), store.Breaks(), loader, clk, rounding), attendanceSvc),
		Penalty:        NewAdjustmentHandler(adjustmentSvc, adjustment.KindPenalty),
		Bonus:          NewAdjustmentHandler(adjustmentSvc, adjustment.KindBonus),
		OperatingHours: NewOperatingHoursHandler(operatingHoursService.NewOperatingHoursService(store, store.OperatingHours())),
		Task:           NewTaskHandler(taskService.NewTaskService(store, store.Tasks(), store.Employees(), clk)),
		Employee:       NewEmployeeHandler(employeeService.NewEmployeeService(store, store.Employees())),
		Payroll:        NewPayrollHandler(payrollService.NewPayrollService(store.Attendances(), store.Employees(), loader, rounding, businessDay)),
		Report:         NewReportHandler(reportService.NewReportService(store.Employees(), store.Attendances(), store.Tasks(), loader, rounding, businessDay, clk)),
	}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	router := NewRouter(RouterConfig{AllowedOrigins: []string{"*"}, LogLevel: slog.LevelInfo}, logger, jwtService, handlers)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, store: store, admin: admin, staff: staff}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	if resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(raw, &env))
	}
	return resp, env
}

func (s *testServer) login(t *testing.T, badge string) string {
	t.Helper()
	resp, env := s.do(t, http.MethodPost, "/api/v1/auth/badge-login", "", map[string]string{"badge_id": badge})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tokens))
	require.NotEmpty(t, tokens.AccessToken)
	return tokens.AccessToken
}

func TestBadgeLogin(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		badge      string
		wantStatus int
	}{
		{"valid badge", employeeBadge, http.StatusOK},
		{"unknown badge", "ZZZZZZZZZZZZZZZZZZZZ", http.StatusUnauthorized},
		{"malformed badge", "short", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, env := srv.do(t, http.MethodPost, "/api/v1/auth/badge-login", "", map[string]string{"badge_id": tt.badge})
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantStatus == http.StatusOK, env.Success)
		})
	}
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := srv.do(t, http.MethodGet, "/api/v1/attendance/status", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = srv.do(t, http.MethodGet, "/api/v1/attendance/status", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestClockInAndOut_ThroughRouter(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, employeeBadge)

	resp, env := srv.do(t, http.MethodPost, "/api/v1/attendance/clock-in", token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var session struct {
		EmployeeID string `json:"employee_id"`
		Status     string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, srv.staff.ID, session.EmployeeID)

	resp, env = srv.do(t, http.MethodPost, "/api/v1/attendance/clock-in", token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	resp, _ = srv.do(t, http.MethodPost, "/api/v1/breaks/start", token, map[string]string{"break_type": "eating"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = srv.do(t, http.MethodPost, "/api/v1/attendance/clock-out", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = srv.do(t, http.MethodPost, "/api/v1/attendance/clock-out", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEmployeeCannotActForOthers(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, employeeBadge)

	resp, _ := srv.do(t, http.MethodPost, "/api/v1/attendance/clock-in", token, map[string]string{"employee_id": srv.admin.ID})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = srv.do(t, http.MethodGet, "/api/v1/employees", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = srv.do(t, http.MethodGet, "/api/v1/attendance/status?employee_id="+srv.admin.ID, token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminActsForEmployee(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, adminBadge)

	resp, _ := srv.do(t, http.MethodPost, "/api/v1/attendance/clock-in", token, map[string]string{"employee_id": srv.staff.ID})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := srv.do(t, http.MethodGet, "/api/v1/attendance/status?employee_id="+srv.staff.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status struct {
		State string `json:"state"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, "working", status.State)

	resp, env = srv.do(t, http.MethodPost, "/api/v1/employees", token, map[string]any{"name": "hanni", "role": "employee", "hourly_wage": "9500"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		BadgeID string `json:"badge_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Len(t, created.BadgeID, employee.BadgeIDLength)
}

func TestValidationErrorsRenderDetails(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, adminBadge)

	resp, env := srv.do(t, http.MethodPost, "/api/v1/operating-hours", token, map[string]string{"opening_time": "25:00", "closing_time": "22:00"})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "opening_time")
}

func TestLogout_RevokesToken(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, employeeBadge)

	resp, _ := srv.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env := srv.do(t, http.MethodGet, "/api/v1/attendance/status", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Token has been revoked", env.Error.Message)
}

func TestWeeklyReportExport(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, employeeBadge)

	resp, _ := srv.do(t, http.MethodGet, "/api/v1/reports/weekly/export", token, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, export.XLSXContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "weekly-report_2025-03-03_"+srv.staff.ID+".xlsx")
}
