package mascota

import "time"

// Intake event types announced after a record is saved.
const (
	EventRegistered = "mascota.registered"
	EventUpdated    = "mascota.updated"
)

// IntakeEvent describes a record saved through the intake form.
// OriginSession is the form session that saved it; that session has already
// refreshed itself.
type IntakeEvent struct {
	Type          string    `json:"-"`
	MascotaID     int64     `json:"mascota_id"`
	Name          string    `json:"nombre"`
	Species       Species   `json:"especie"`
	ImageURL      string    `json:"imagen_url,omitempty"`
	OriginSession string    `json:"origin_session,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
