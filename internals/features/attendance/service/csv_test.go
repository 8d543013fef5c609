package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"nccnexus_backend/internals/features/attendance/dto"
)

func TestRenderSessionCSV(t *testing.T) {
	detail := dto.SessionDetailResponse{
		SessionName: "AY 2026 Term 1",
		Drills: []dto.DrillLite{
			{DrillID: uuid.New(), DrillName: "Drill 1", DrillDate: "2026-01-10", DrillTime: "07:00:00"},
			{DrillID: uuid.New(), DrillName: "Drill 2", DrillDate: "2026-01-17", DrillTime: "07:00:00"},
		},
		Cadets: []dto.CadetRow{
			{
				RegimentalNo: "TN26A001",
				Name:         "Anita Rao",
				Attendance:   []string{"P", "A"},
				Summary:      dto.CadetSummary{Attended: 1, Total: 2, Percent: 50},
			},
			{
				RegimentalNo: "TN26A002",
				Name:         "Vikram Shetty",
				Attendance:   []string{"P", "P"},
				Summary:      dto.CadetSummary{Attended: 2, Total: 2, Percent: 100},
			},
		},
	}

	got := RenderSessionCSV(detail)
	want := "Cadet Name,Regimental No,Drill 1 (2026-01-10 07:00:00),Drill 2 (2026-01-17 07:00:00),Total Drills,Total Attendance,Percentage\n" +
		"Anita Rao,TN26A001,P,A,2,1,50%\n" +
		"Vikram Shetty,TN26A002,P,P,2,2,100%\n"
	if got != want {
		t.Fatalf("csv mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderSessionCSVQuotesDirtyFields(t *testing.T) {
	detail := dto.SessionDetailResponse{
		SessionName: "Odd",
		Drills: []dto.DrillLite{
			{DrillName: "March, Pass", DrillDate: "2026-01-10", DrillTime: "07:00:00"},
		},
		Cadets: []dto.CadetRow{
			{
				RegimentalNo: "TN26A001",
				Name:         `Rao, "Anita"`,
				Attendance:   []string{"P"},
				Summary:      dto.CadetSummary{Attended: 1, Total: 1, Percent: 100},
			},
		},
	}

	got := RenderSessionCSV(detail)
	if !strings.Contains(got, `"March, Pass (2026-01-10 07:00:00)"`) {
		t.Fatalf("drill header not quoted: %q", got)
	}
	if !strings.Contains(got, `"Rao, ""Anita"""`) {
		t.Fatalf("cadet name not escaped: %q", got)
	}
}

func TestRenderSessionCSVFractionalPercent(t *testing.T) {
	detail := dto.SessionDetailResponse{
		Cadets: []dto.CadetRow{
			{
				RegimentalNo: "TN26A001",
				Name:         "Anita Rao",
				Attendance:   []string{"P", "P", "A"},
				Summary:      dto.CadetSummary{Attended: 2, Total: 3, Percent: 66.7},
			},
		},
	}
	if got := RenderSessionCSV(detail); !strings.Contains(got, ",3,2,66.7%\n") {
		t.Fatalf("fractional percent not rendered: %q", got)
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"AY 2026 Term 1", "AY_2026_Term_1"},
		{"plain", "plain"},
		{"a/b\\c:d", "a_b_c_d"},
		{"dots.keep-dashes_and_underscores", "dots.keep-dashes_and_underscores"},
		{"   ", "session"},
		{"??!", "session"},
	}
	for _, tt := range tests {
		if got := SanitizeFileName(tt.in); got != tt.want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
