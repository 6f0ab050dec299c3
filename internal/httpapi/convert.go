package httpapi

import (
	"time"

	"github.com/NeCjoi157/rfid-access-gateway/internal/gate/service"
	"github.com/NeCjoi157/rfid-access-gateway/internal/gate/store"
	"github.com/NeCjoi157/rfid-access-gateway/internal/gate/types"
)

func employeeView(e store.Employee) types.Employee {
	return types.Employee{
		ID:         e.ID,
		BadgeCode:  e.BadgeCode,
		FullName:   e.FullName,
		Position:   e.Position,
		Department: e.Department,
		Phone:      e.Phone,
	}
}

func turnstileView(t store.Turnstile) types.Turnstile {
	return types.Turnstile{ID: t.ID, Name: t.Name, Location: t.Location}
}

func grantedResponse(d service.Decision) types.AccessGranted {
	return types.AccessGranted{
		Status:    "success",
		Access:    "GRANTED",
		Employee:  employeeView(*d.Employee),
		Turnstile: turnstileView(d.Turnstile),
		Direction: string(d.Direction),
		Timestamp: d.Timestamp(),
	}
}

func deniedResponse(d service.Decision) types.AccessDenied {
	return types.AccessDenied{
		Status:    "DENIED",
		Reason:    d.Reason,
		Turnstile: turnstileView(d.Turnstile),
	}
}

func employeeList(employees []store.Employee) types.EmployeeList {
	out := types.EmployeeList{Employees: make([]types.Employee, 0, len(employees))}
	for _, e := range employees {
		out.Employees = append(out.Employees, employeeView(e))
	}
	return out
}

func logList(records []store.AccessRecordDetail) types.LogList {
	out := types.LogList{AccessLogs: make([]types.LogEntry, 0, len(records))}
	for _, r := range records {
		out.AccessLogs = append(out.AccessLogs, types.LogEntry{
			ID:            r.ID,
			Timestamp:     time.Unix(r.Timestamp, 0).UTC().Format(time.RFC3339),
			Direction:     string(r.Direction),
			AccessGranted: r.Granted,
			FullName:      r.FullName,
			Position:      r.Position,
			Department:    r.Department,
			TurnstileName: r.TurnstileName,
			Location:      r.TurnstileLocation,
		})
	}
	return out
}

func historyList(records []store.AccessRecordDetail) types.HistoryList {
	out := types.HistoryList{History: make([]types.HistoryEntry, 0, len(records))}
	for _, r := range records {
		out.History = append(out.History, types.HistoryEntry{
			FullName:      r.FullName,
			Turnstile:     r.TurnstileName,
			Location:      r.TurnstileLocation,
			Time:          time.Unix(r.Timestamp, 0).UTC().Format(service.TimestampLayout),
			Direction:     string(r.Direction),
			AccessGranted: r.Granted,
		})
	}
	return out
}
