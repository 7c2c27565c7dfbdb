package models

import "time"

// Conflict reasons surfaced to clients
const (
	ReasonInvalidInput    = "invalid_input"
	ReasonUnknownTeam     = "unknown_team"
	ReasonAlreadyAssigned = "already_assigned"
	ReasonUnknownTheme    = "unknown_theme"
	ReasonThemeFull       = "theme_full"
	ReasonUnavailable     = "unavailable"
)

// Request types

type LoginRequest struct {
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
}

type SpinRequest struct {
	LoginID string `json:"login_id"`
	Theme   string `json:"theme"`
}

// Empty LoginIDs resets every team
type ResetRequest struct {
	LoginIDs []string `json:"login_ids"`
}

type SetCapacityRequest struct {
	MaxCount *int `json:"max_count"`
}

// Response types

type LoginResponse struct {
	TeamName      string  `json:"team_name"`
	LoginID       string  `json:"login_id"`
	SpinCompleted bool    `json:"spin_completed"`
	AssignedTheme *string `json:"assigned_theme"`
	Token         string  `json:"token"`
}

type SpinResponse struct {
	Success       bool   `json:"success"`
	AssignedTheme string `json:"assigned_theme"`
	ThemeCount    int    `json:"theme_count"`
	ThemeFull     bool   `json:"theme_full"`
}

type ResetResponse struct {
	Reset    int64           `json:"reset"`
	NotFound []string        `json:"not_found"`
	Ledger   ReconcileReport `json:"ledger"`
}

// Domain types

type Team struct {
	LoginID       string     `json:"login_id"`
	TeamName      string     `json:"team_name"`
	Password      string     `json:"-"` // Never expose in JSON
	SpinCompleted bool       `json:"spin_completed"`
	AssignedTheme *string    `json:"assigned_theme"`
	AssignedAt    *time.Time `json:"assigned_at,omitempty"`
}

type Theme struct {
	Name     string `json:"theme_name"`
	Count    int    `json:"count"`
	MaxCount int    `json:"max_count"`
	IsFull   bool   `json:"is_full"`
}

// Remaining is the number of teams the theme can still accept
func (t Theme) Remaining() int {
	if t.Count >= t.MaxCount {
		return 0
	}
	return t.MaxCount - t.Count
}

type Assignment struct {
	LoginID    string    `json:"login_id"`
	Theme      string    `json:"theme"`
	Count      int       `json:"count"`
	IsFull     bool      `json:"is_full"`
	AssignedAt time.Time `json:"assigned_at"`
}

// Ledger maintenance types

type ThemeDrift struct {
	Theme         string `json:"theme_name"`
	PreviousCount int    `json:"previous_count"`
	Count         int    `json:"count"`
}

type ReconcileReport struct {
	Themes       []Theme      `json:"themes"`
	Drift        []ThemeDrift `json:"drift"`
	OverCapacity []Theme      `json:"over_capacity"`
}

// Error response

type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}
