package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/freshstockhq/freshstock-backend/internal/auditlog"
	"github.com/freshstockhq/freshstock-backend/pkg/pagination"
)

type fakeLogService struct {
	listParams auditlog.ListParams
	day        time.Time
	dayLimit   int
	dayCalled  bool

	result *auditlog.ListResult
	rows   []auditlog.EntryDTO
	err    error
}

func (f *fakeLogService) Record(_ context.Context, _ auditlog.Entry) error {
	return nil
}

func (f *fakeLogService) ListAll(_ context.Context, params auditlog.ListParams) (*auditlog.ListResult, error) {
	f.listParams = params
	return f.result, f.err
}

func (f *fakeLogService) ListForDay(_ context.Context, day time.Time, limit int) ([]auditlog.EntryDTO, error) {
	f.dayCalled = true
	f.day = day
	f.dayLimit = limit
	return f.rows, f.err
}

func TestListLogsDefaultsToCursorPaging(t *testing.T) {
	svc := &fakeLogService{result: &auditlog.ListResult{Items: []auditlog.EntryDTO{}}}
	handler := ListLogs(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs?limit=5&cursor=abc", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.dayCalled {
		t.Fatalf("day view should not run without a date parameter")
	}
	if svc.listParams.Limit != 5 || svc.listParams.Cursor != "abc" {
		t.Fatalf("unexpected params %+v", svc.listParams)
	}
}

func TestListLogsWithDateUsesDayView(t *testing.T) {
	svc := &fakeLogService{rows: []auditlog.EntryDTO{{Action: "ADD_ITEM"}}}
	handler := ListLogs(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs?date=2026-08-30", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !svc.dayCalled {
		t.Fatalf("expected day view to run")
	}
	want := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	if !svc.day.Equal(want) {
		t.Fatalf("expected day %v got %v", want, svc.day)
	}
	if svc.dayLimit != pagination.DefaultLimit {
		t.Fatalf("expected default limit got %d", svc.dayLimit)
	}

	var payload struct {
		Data auditlog.ListResult `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(payload.Data.Items) != 1 {
		t.Fatalf("expected one entry got %d", len(payload.Data.Items))
	}
}

func TestListLogsRejectsBadDate(t *testing.T) {
	svc := &fakeLogService{}
	handler := ListLogs(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs?date=30-08-2026", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestListLogsRejectsBadLimit(t *testing.T) {
	svc := &fakeLogService{}
	handler := ListLogs(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs?limit=0", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
