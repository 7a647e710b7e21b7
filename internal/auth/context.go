package auth

import "context"

type contextKey string

const (
	contextKeyEmpID contextKey = "auth.emp_id"
	contextKeyRole  contextKey = "auth.role"
)

// WithIdentity stores auth identity details in context.
func WithIdentity(ctx context.Context, empID string, role Role) context.Context {
	ctx = context.WithValue(ctx, contextKeyEmpID, empID)
	ctx = context.WithValue(ctx, contextKeyRole, role)
	return ctx
}

// EmpIDFromContext extracts the employee id from context.
func EmpIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if empID, ok := ctx.Value(contextKeyEmpID).(string); ok {
		return empID
	}
	return ""
}

// RoleFromContext extracts the role from context.
func RoleFromContext(ctx context.Context) Role {
	if ctx == nil {
		return ""
	}
	value := ctx.Value(contextKeyRole)
	if role, ok := value.(Role); ok {
		return role
	}
	if role, ok := value.(string); ok {
		if normalized, valid := NormalizeRole(role); valid {
			return normalized
		}
	}
	return ""
}
