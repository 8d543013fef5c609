// file: internals/features/attendance/service/aggregate.go
package service

import (
	"math"
	"time"

	"github.com/google/uuid"

	"nccnexus_backend/internals/features/attendance/dto"
	"nccnexus_backend/internals/features/attendance/model"
)

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func percentOf(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(part) / float64(total) * 100)
}

type recordKey struct {
	drillID      uuid.UUID
	regimentalNo string
}

// buildSessionDetail assembles the officer matrix view. Drills arrive ordered
// by date then time, the roster by full name; a cadet with no record for a
// drill reads as present, mirroring the seed default.
func buildSessionDetail(
	session model.AttendanceSessionModel,
	drills []model.AttendanceDrillModel,
	roster []model.RosterEntry,
	records []model.AttendanceRecordModel,
) dto.SessionDetailResponse {
	recordMap := make(map[recordKey]string, len(records))
	for _, r := range records {
		recordMap[recordKey{r.DrillID, r.RegimentalNo}] = r.Status
	}

	lites := make([]dto.DrillLite, 0, len(drills))
	for _, d := range drills {
		lites = append(lites, dto.DrillLite{
			DrillID:   d.DrillID,
			DrillName: d.DrillName,
			DrillDate: d.DrillDate.Format("2006-01-02"),
			DrillTime: d.DrillTime,
		})
	}

	rows := make([]dto.CadetRow, 0, len(roster))
	for _, cadet := range roster {
		attendance := make([]string, 0, len(drills))
		attended := 0
		for _, d := range drills {
			status, ok := recordMap[recordKey{d.DrillID, cadet.RegimentalNo}]
			if !ok {
				status = model.StatusPresent
			}
			if status == model.StatusPresent {
				attended++
			}
			attendance = append(attendance, status)
		}
		rows = append(rows, dto.CadetRow{
			RegimentalNo: cadet.RegimentalNo,
			Name:         cadet.FullName,
			Rank:         cadet.RankName,
			Attendance:   attendance,
			Summary: dto.CadetSummary{
				Attended: attended,
				Total:    len(drills),
				Percent:  percentOf(attended, len(drills)),
			},
		})
	}

	return dto.SessionDetailResponse{
		SessionID:   session.SessionID,
		SessionName: session.SessionName,
		Drills:      lites,
		Cadets:      rows,
	}
}

// resolveSessionStatus classifies a session against the clock. Every drill in
// the past means completed, every drill in the future means upcoming, a mix
// (or any drill whose timestamp will not parse) means current. No drills at
// all reads as upcoming.
func resolveSessionStatus(drills []dto.CadetDrillEntry, now time.Time) string {
	if len(drills) == 0 {
		return "upcoming"
	}
	past, future := 0, 0
	for _, d := range drills {
		dt, err := parseDrillDateTime(d.Date, d.Time)
		if err != nil {
			continue
		}
		if dt.Before(now) {
			past++
		} else {
			future++
		}
	}
	switch {
	case past == len(drills):
		return "completed"
	case future == len(drills):
		return "upcoming"
	default:
		return "current"
	}
}

func parseDrillDateTime(date, tod string) (time.Time, error) {
	if len(tod) == 5 {
		tod += ":00"
	}
	return time.ParseInLocation("2006-01-02 15:04:05", date+" "+tod, time.Local)
}

// buildCadetSessionView folds one session's drills and the cadet's own marks
// into a view row, accumulating the P/A tally. An unmarked drill stays nil
// and is left out of the tally.
func buildCadetSessionView(
	session model.AttendanceSessionModel,
	drills []model.DrillWithRecord,
	now time.Time,
	total, present *int,
) dto.CadetSessionView {
	entries := make([]dto.CadetDrillEntry, 0, len(drills))
	for _, d := range drills {
		if d.Status != nil {
			switch *d.Status {
			case model.StatusPresent:
				*total++
				*present++
			case model.StatusAbsent:
				*total++
			}
		}
		entries = append(entries, dto.CadetDrillEntry{
			DrillID: d.DrillID,
			Name:    d.DrillName,
			Date:    d.DrillDate,
			Time:    d.DrillTime,
			Status:  d.Status,
		})
	}
	return dto.CadetSessionView{
		SessionID:   session.SessionID,
		SessionName: session.SessionName,
		Status:      resolveSessionStatus(entries, now),
		Drills:      entries,
	}
}

func toLeaveHistoryViews(rows []model.LeaveHistoryRow) []dto.LeaveHistoryView {
	out := make([]dto.LeaveHistoryView, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LeaveHistoryView{
			LeaveID:        r.LeaveID,
			SessionID:      r.SessionID,
			DrillID:        r.DrillID,
			SessionName:    r.SessionName,
			DrillName:      r.DrillName,
			DrillDate:      r.DrillDate,
			DrillTime:      r.DrillTime,
			Reason:         r.Reason,
			AttachmentURL:  r.AttachmentURL,
			Status:         r.Status,
			ReviewedBy:     r.ReviewedBy,
			ReviewedByName: r.ReviewedByName,
			ReviewedAt:     r.ReviewedAt,
			CreatedAt:      r.CreatedAt,
		})
	}
	return out
}
