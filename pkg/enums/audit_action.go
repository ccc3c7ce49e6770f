package enums

import "fmt"

// AuditAction represents the mutation kinds recorded in the audit log.
type AuditAction string

const (
	AuditActionAddItem    AuditAction = "ADD_ITEM"
	AuditActionUpdateItem AuditAction = "UPDATE_ITEM"
	AuditActionDeleteItem AuditAction = "DELETE_ITEM"
)

var validAuditActions = []AuditAction{
	AuditActionAddItem,
	AuditActionUpdateItem,
	AuditActionDeleteItem,
}

// String implements fmt.Stringer.
func (a AuditAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AuditAction.
func (a AuditAction) IsValid() bool {
	for _, candidate := range validAuditActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAuditAction converts raw input into an AuditAction.
func ParseAuditAction(value string) (AuditAction, error) {
	for _, candidate := range validAuditActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid audit action %q", value)
}
