package model

import "time"

// Metadata is the audit trail embedded in every persisted entity.
type Metadata struct {
	CreatedAt  time.Time `db:"created_at"  json:"created_at"`
	ModifiedAt time.Time `db:"modified_at" json:"modified_at"`
	CreatedBy  string    `db:"created_by"  json:"created_by"`
	ModifiedBy string    `db:"modified_by" json:"modified_by"`
}

// NewMetadata stamps a freshly created row.
func NewMetadata(user string, now time.Time) Metadata {
	return Metadata{CreatedAt: now, ModifiedAt: now, CreatedBy: user, ModifiedBy: user}
}
