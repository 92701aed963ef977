package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records operational events outside the request path.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
