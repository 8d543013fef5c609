package service

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestResolveDrillName(t *testing.T) {
	tests := []struct {
		name        string
		requested   string
		activeCount int64
		existing    []string
		want        string
		wantStatus  int
	}{
		{
			name:        "empty request gets canonical name",
			requested:   "",
			activeCount: 0,
			want:        "Drill 1",
		},
		{
			name:        "canonical name counts from active drills",
			requested:   "",
			activeCount: 3,
			existing:    []string{"Drill 1", "Drill 2", "Drill 3"},
			want:        "Drill 4",
		},
		{
			name:        "canonical collision walks up to the next free number",
			requested:   "",
			activeCount: 1,
			existing:    []string{"Drill 2"},
			want:        "Drill 3",
		},
		{
			name:        "collision check is case insensitive",
			requested:   "",
			activeCount: 1,
			existing:    []string{"DRILL 2"},
			want:        "Drill 3",
		},
		{
			name:        "free text name is taken verbatim",
			requested:   "Night March",
			activeCount: 2,
			existing:    []string{"Drill 1", "Drill 2"},
			want:        "Night March",
		},
		{
			name:        "free text collision is a conflict",
			requested:   "Night March",
			activeCount: 1,
			existing:    []string{"Night March"},
			wantStatus:  fiber.StatusConflict,
		},
		{
			name:        "requested canonical name renumbers on collision",
			requested:   "Drill 2",
			activeCount: 3,
			existing:    []string{"Drill 1", "Drill 2", "Drill 3"},
			want:        "Drill 4",
		},
		{
			name:        "surrounding whitespace is ignored",
			requested:   "  Drill 1  ",
			activeCount: 1,
			existing:    []string{"drill 1"},
			want:        "Drill 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveDrillName(tt.requested, tt.activeCount, tt.existing)
			if tt.wantStatus != 0 {
				var fe *fiber.Error
				if !errors.As(err, &fe) {
					t.Fatalf("expected fiber error, got %v", err)
				}
				if fe.Code != tt.wantStatus {
					t.Fatalf("status = %d, want %d", fe.Code, tt.wantStatus)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("name = %q, want %q", got, tt.want)
			}
		})
	}
}
