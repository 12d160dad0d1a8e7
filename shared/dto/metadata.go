package dto

import (
	"time"

	"stayengine/shared/constant"
	"stayengine/shared/model"
	"stayengine/shared/timezone"
)

// Metadata is the audit trail exposed on responses.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = Timestamp(&model.CreatedAt)
	m.ModifiedAt = Timestamp(&model.ModifiedAt)
	m.CreatedBy = model.CreatedBy
	m.ModifiedBy = model.ModifiedBy
}

// Timestamp renders t in the application timezone. Unset times render as "".
func Timestamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}

	return timezone.Format(*t, constant.DateFormat)
}
