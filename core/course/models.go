package course

import (
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("unit not found")

type (
	// Unit is a single lesson in the course. The catalog is static content,
	// versioned with the code rather than stored in the database.
	Unit struct {
		Ordinal       int      `json:"id"`
		Title         string   `json:"title"`
		Description   string   `json:"description"`
		VideoURL      string   `json:"video_url"`
		KeyMovements  []string `json:"key_movements"`
		JournalPrompt string   `json:"journal_prompt"`
		Free          bool     `json:"is_free"`
		EstimatedTime string   `json:"estimated_time"`
	}

	// Entitlement is what the access policy needs to know about a learner.
	Entitlement struct {
		HasPremium bool
	}
)

// CanAccess reports whether a learner may open the unit's content.
// Free units are open to everyone; the rest require premium or an
// explicit unlock granted by an admin.
func CanAccess(unit Unit, ent Entitlement, explicitUnlock bool) bool {
	return unit.Free || ent.HasPremium || explicitUnlock
}
