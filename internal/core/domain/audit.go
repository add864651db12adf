package domain

import "time"

// Security event kinds recorded on the audit trail.
const (
	EventLoginFailed      = "login_failed"
	EventLockoutTriggered = "lockout_triggered"
	EventAdminUnlock      = "admin_unlock"
	EventRegistered       = "registered"
)

// SecurityEvent is one entry on the account security audit trail. Events are
// persisted asynchronously; losing one on shutdown is acceptable, blocking a
// login on the audit store is not.
type SecurityEvent struct {
	AccountID string    `json:"account_id"`
	Email     string    `json:"email"`
	Kind      string    `json:"kind"`
	Detail    string    `json:"detail,omitempty"`
	At        time.Time `json:"at"`
}
