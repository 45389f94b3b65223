// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/shiftsat/shiftsat/internal/metrics"
	"github.com/shiftsat/shiftsat/parser"
	"github.com/shiftsat/shiftsat/pkg/errors"
	"github.com/shiftsat/shiftsat/scheduler"
	"github.com/shiftsat/shiftsat/scheduler/cache"
	"github.com/shiftsat/shiftsat/scheduler/enumerate"
)

// ScheduleHandler 排班处理器
type ScheduleHandler struct {
	store cache.Store
}

// NewScheduleHandler 创建排班处理器，使用内存缓存
func NewScheduleHandler() *ScheduleHandler {
	return &ScheduleHandler{store: cache.NewMemStore()}
}

// NewScheduleHandlerWithStore 创建使用给定缓存后端的排班处理器，比如
// cache.NewPostgresStore 返回的持久化实现
func NewScheduleHandlerWithStore(store cache.Store) *ScheduleHandler {
	return &ScheduleHandler{store: store}
}

// GenerateRequest 排班生成请求：三张CSV表的原始文本，加可选的调优参数。
// CSV-as-string（而非multipart文件上传）与原始命令行工具的三文件输入契约
// 保持同构，换成JSON载体以便走HTTP。
type GenerateRequest struct {
	PreferencesCSV  string   `json:"preferences_csv"`
	AvailabilityCSV string   `json:"availability_csv"`
	ToFillCSV       string   `json:"to_fill_csv"`
	MaxHoursPerWeek *float64 `json:"max_hours_per_week,omitempty"`
	MaxShiftsPerDay *int     `json:"max_shifts_per_day,omitempty"`
	MinOneShift     *bool    `json:"min_one_shift_per_employee,omitempty"`
	SolverMaxTime   *float64 `json:"solver_max_time_seconds,omitempty"`
}

type entryResponse struct {
	Employee  string    `json:"employee"`
	Position  string    `json:"position"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Generate handles POST /api/v1/schedule/generate.
func (h *ScheduleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	employees, err := parser.ParsePreferences(strings.NewReader(req.PreferencesCSV))
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeParseError, "解析Preferences表失败"))
		return
	}
	if err := parser.ParseAvailability(strings.NewReader(req.AvailabilityCSV), employees); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeParseError, "解析Availability表失败"))
		return
	}
	requirements, err := parser.ParseToFill(strings.NewReader(req.ToFillCSV))
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeParseError, "解析ToFill表失败"))
		return
	}

	opts := scheduler.DefaultOptions()
	applyOverrides(&opts, req)

	if shifts, err := enumerate.AllCandidates(requirements, opts.Enumerate); err == nil {
		metrics.SetCandidateShiftCount(len(shifts))
	}

	input := scheduler.Input{Employees: employees, Requirements: requirements}
	run := cache.Cached(h.store)
	schedule, err := run(r.Context(), input, opts)
	if err != nil {
		metrics.RecordSolve("error", time.Since(start))
		if appErr, ok := err.(*errors.AppError); ok {
			respondError(w, appErr)
		} else {
			respondError(w, errors.Wrap(err, errors.CodeInternal, "排班求解失败"))
		}
		return
	}
	metrics.RecordSolve("ok", time.Since(start))

	entries := make([]entryResponse, 0, len(schedule.Entries))
	for _, e := range schedule.Entries {
		entries = append(entries, entryResponse{
			Employee:  e.EmployeeName,
			Position:  e.Position,
			StartTime: e.Shift.Start,
			EndTime:   e.Shift.End,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":  schedule.RunID,
		"entries": entries,
	})
}

func applyOverrides(opts *scheduler.Options, req GenerateRequest) {
	if req.MaxHoursPerWeek != nil {
		opts.Build.MaxHoursPerWeek = *req.MaxHoursPerWeek
	}
	if req.MaxShiftsPerDay != nil {
		opts.Build.MaxShiftsPerDay = *req.MaxShiftsPerDay
	}
	if req.MinOneShift != nil {
		opts.Build.MinOneShiftPerEmployee = *req.MinOneShift
	}
	if req.SolverMaxTime != nil {
		opts.Solve.MaxTimeSeconds = *req.SolverMaxTime
	}
}

// respondJSON 返回JSON响应
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError 返回错误响应
func respondError(w http.ResponseWriter, err *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"code":    err.Code,
		"message": err.Message,
		"details": err.Details,
	})
}
