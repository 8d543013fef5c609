package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"nccnexus_backend/internals/features/attendance/dto"
	"nccnexus_backend/internals/features/attendance/model"
)

func strPtr(s string) *string { return &s }

func TestBuildSessionDetail(t *testing.T) {
	sessionID := uuid.New()
	drill1 := uuid.New()
	drill2 := uuid.New()
	drill3 := uuid.New()

	session := model.AttendanceSessionModel{
		SessionID:   sessionID,
		SessionName: "AY 2026 Term 1",
	}
	drills := []model.AttendanceDrillModel{
		{DrillID: drill1, DrillName: "Drill 1", DrillDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), DrillTime: "07:00:00"},
		{DrillID: drill2, DrillName: "Drill 2", DrillDate: time.Date(2026, 1, 17, 0, 0, 0, 0, time.UTC), DrillTime: "07:00:00"},
		{DrillID: drill3, DrillName: "Drill 3", DrillDate: time.Date(2026, 1, 24, 0, 0, 0, 0, time.UTC), DrillTime: "07:00:00"},
	}
	roster := []model.RosterEntry{
		{RegimentalNo: "TN26A001", FullName: "Anita Rao"},
		{RegimentalNo: "TN26A002", FullName: "Vikram Shetty", RankName: strPtr("Cadet")},
	}
	records := []model.AttendanceRecordModel{
		{DrillID: drill1, RegimentalNo: "TN26A001", Status: "A"},
		{DrillID: drill2, RegimentalNo: "TN26A001", Status: "P"},
		{DrillID: drill1, RegimentalNo: "TN26A002", Status: "P"},
	}

	detail := buildSessionDetail(session, drills, roster, records)

	if detail.SessionID != sessionID || detail.SessionName != "AY 2026 Term 1" {
		t.Fatalf("session header mismatch: %+v", detail)
	}
	if len(detail.Drills) != 3 {
		t.Fatalf("drills = %d, want 3", len(detail.Drills))
	}
	if detail.Drills[0].DrillDate != "2026-01-10" {
		t.Fatalf("drill date = %q", detail.Drills[0].DrillDate)
	}
	if len(detail.Cadets) != 2 {
		t.Fatalf("cadets = %d, want 2", len(detail.Cadets))
	}

	// missing record defaults to present
	anita := detail.Cadets[0]
	if anita.RegimentalNo != "TN26A001" {
		t.Fatalf("roster order broken: %q first", anita.RegimentalNo)
	}
	wantMarks := []string{"A", "P", "P"}
	for i, w := range wantMarks {
		if anita.Attendance[i] != w {
			t.Fatalf("anita attendance[%d] = %q, want %q", i, anita.Attendance[i], w)
		}
	}
	if anita.Summary.Attended != 2 || anita.Summary.Total != 3 {
		t.Fatalf("anita summary = %+v", anita.Summary)
	}
	if anita.Summary.Percent != 66.7 {
		t.Fatalf("anita percent = %v, want 66.7", anita.Summary.Percent)
	}

	vikram := detail.Cadets[1]
	if vikram.Summary.Attended != 3 || vikram.Summary.Percent != 100 {
		t.Fatalf("vikram summary = %+v", vikram.Summary)
	}
}

func TestBuildSessionDetailNoDrills(t *testing.T) {
	detail := buildSessionDetail(
		model.AttendanceSessionModel{SessionID: uuid.New(), SessionName: "Empty"},
		nil,
		[]model.RosterEntry{{RegimentalNo: "TN26A001", FullName: "Anita Rao"}},
		nil,
	)
	if got := detail.Cadets[0].Summary; got.Total != 0 || got.Percent != 0 {
		t.Fatalf("empty summary = %+v, want zeroes", got)
	}
}

func TestResolveSessionStatus(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.Local)
	past := dto.CadetDrillEntry{Date: "2026-06-01", Time: "07:00:00"}
	future := dto.CadetDrillEntry{Date: "2026-07-01", Time: "07:00:00"}
	broken := dto.CadetDrillEntry{Date: "not-a-date", Time: "07:00:00"}

	tests := []struct {
		name   string
		drills []dto.CadetDrillEntry
		want   string
	}{
		{"no drills", nil, "upcoming"},
		{"all past", []dto.CadetDrillEntry{past, past}, "completed"},
		{"all future", []dto.CadetDrillEntry{future, future}, "upcoming"},
		{"mixed", []dto.CadetDrillEntry{past, future}, "current"},
		{"unparsable drill blocks both extremes", []dto.CadetDrillEntry{past, broken}, "current"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveSessionStatus(tt.drills, now); got != tt.want {
				t.Fatalf("status = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildCadetSessionView(t *testing.T) {
	session := model.AttendanceSessionModel{SessionID: uuid.New(), SessionName: "Camp Prep"}
	rows := []model.DrillWithRecord{
		{DrillID: uuid.New(), DrillName: "Drill 1", DrillDate: "2026-01-10", DrillTime: "07:00:00", Status: strPtr("P")},
		{DrillID: uuid.New(), DrillName: "Drill 2", DrillDate: "2026-01-17", DrillTime: "07:00:00", Status: strPtr("A")},
		{DrillID: uuid.New(), DrillName: "Drill 3", DrillDate: "2026-01-24", DrillTime: "07:00:00", Status: nil},
	}

	total, present := 0, 0
	view := buildCadetSessionView(session, rows, time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local), &total, &present)

	// unmarked drill stays out of the tally
	if total != 2 || present != 1 {
		t.Fatalf("tally = total %d present %d, want 2/1", total, present)
	}
	if len(view.Drills) != 3 {
		t.Fatalf("drills = %d, want 3", len(view.Drills))
	}
	if view.Drills[2].Status != nil {
		t.Fatalf("unmarked drill status = %v, want nil", *view.Drills[2].Status)
	}
	if view.Status != "completed" {
		t.Fatalf("session status = %q, want completed", view.Status)
	}
}

func TestPercentOf(t *testing.T) {
	tests := []struct {
		part, total int
		want        float64
	}{
		{0, 0, 0},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{3, 3, 100},
		{1, 8, 12.5},
	}
	for _, tt := range tests {
		if got := percentOf(tt.part, tt.total); got != tt.want {
			t.Fatalf("percentOf(%d, %d) = %v, want %v", tt.part, tt.total, got, tt.want)
		}
	}
}
