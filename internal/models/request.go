package models

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusResolved   = "resolved"

	UrgencyUnknown = "Unknown"
	TypeUnknown    = "Unknown"
)

// EmergencyRequest is a free-text assistance request. Timestamps are
// milliseconds since the Unix epoch; LastUpdated stays nil until the first
// status change.
type EmergencyRequest struct {
	ID          string   `bson:"_id,omitempty" json:"id"`
	Text        string   `bson:"text" json:"text"`
	Urgency     string   `bson:"urgency" json:"urgency"`
	Type        string   `bson:"type" json:"type"`
	Location    string   `bson:"location" json:"location"`
	Timestamp   float64  `bson:"timestamp" json:"timestamp"`
	Status      string   `bson:"status" json:"status"`
	LastUpdated *float64 `bson:"lastUpdated" json:"lastUpdated"`
}

func (r *EmergencyRequest) SetID(id string) { r.ID = id }
