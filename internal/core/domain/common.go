package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

// TenantContext carries the ownership scope for a ledger operation.
// It is resolved by the auth layer before any service call and threaded
// explicitly through every operation rather than applied as ambient query
// state. The ledger trusts that the caller is allowed to act within TenantID.
type TenantContext struct {
	TenantID string `json:"tenantID"`
	// IncludeDeleted widens reads to soft-deleted rows. Writes always
	// target live rows regardless of this flag.
	IncludeDeleted bool `json:"includeDeleted"`
}
