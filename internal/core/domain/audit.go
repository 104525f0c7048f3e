package domain

import "time"

// AuditAction enumerates the recorded authentication events.
type AuditAction string

const (
	AuditRegister    AuditAction = "register"
	AuditLogin       AuditAction = "login"
	AuditLoginFailed AuditAction = "login_failed"
	AuditLogout      AuditAction = "logout"
	AuditRefresh     AuditAction = "refresh"
)

// AuditEvent records one authentication-related action for the audit
// trail. Actor is the email as presented by the client, which for
// failed logins may not belong to any account.
type AuditEvent struct {
	Actor     string      `json:"actor" bson:"actor"`
	Action    AuditAction `json:"action" bson:"action"`
	RemoteIP  string      `json:"remote_ip,omitempty" bson:"remote_ip,omitempty"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
}
