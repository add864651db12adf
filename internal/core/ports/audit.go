package ports

import (
	"context"

	"github.com/csemotors/dealership/internal/core/domain"
)

// AuditRecorder accepts security events for asynchronous persistence. Record
// must be cheap enough to call on the login path.
type AuditRecorder interface {
	Record(event domain.SecurityEvent)
}

// AuditRepository persists security events.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.SecurityEvent) error
}
