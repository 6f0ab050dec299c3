package types

// AccessRequest is a single badge-swipe event as reported by a turnstile
// reader. It is ephemeral input — only the resulting decision is persisted.
type AccessRequest struct {
	BadgeCode   string `json:"badgeCode"`
	TurnstileID int64  `json:"turnstileId"`
	Direction   string `json:"direction"` // "IN" or "OUT"
}

type Employee struct {
	ID         int64  `json:"id"`
	BadgeCode  string `json:"badge_code"`
	FullName   string `json:"full_name"`
	Position   string `json:"position"`
	Department string `json:"department,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

type Turnstile struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

type AccessGranted struct {
	Status    string    `json:"status"` // always "success"
	Access    string    `json:"access"` // always "GRANTED"
	Employee  Employee  `json:"employee"`
	Turnstile Turnstile `json:"turnstile"`
	Direction string    `json:"direction"`
	Timestamp string    `json:"timestamp"` // "YYYY-MM-DD HH:MM:SS"
}

type AccessDenied struct {
	Status    string    `json:"status"` // always "DENIED"
	Reason    string    `json:"reason"`
	Turnstile Turnstile `json:"turnstile"`
}

type EmployeeList struct {
	Employees []Employee `json:"employees"`
}

// LogEntry is one enriched audit row as served by GET /logs. Employee fields
// are null for unknown-badge denials.
type LogEntry struct {
	ID            int64   `json:"id"`
	Timestamp     string  `json:"timestamp"` // RFC 3339
	Direction     string  `json:"direction"`
	AccessGranted bool    `json:"access_granted"`
	FullName      *string `json:"full_name"`
	Position      *string `json:"position"`
	Department    *string `json:"department"`
	TurnstileName string  `json:"turnstile_name"`
	Location      string  `json:"location"`
}

type LogList struct {
	AccessLogs []LogEntry `json:"access_logs"`
}

// HistoryEntry is the condensed form served by GET /access-history.
type HistoryEntry struct {
	FullName      *string `json:"full_name"`
	Turnstile     string  `json:"turnstile"`
	Location      string  `json:"location"`
	Time          string  `json:"time"` // "YYYY-MM-DD HH:MM:SS"
	Direction     string  `json:"direction"`
	AccessGranted bool    `json:"access_granted"`
}

type HistoryList struct {
	History []HistoryEntry `json:"history"`
}
