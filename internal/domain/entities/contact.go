package entities

// Contact request statuses: pending -> accepted | declined, both terminal
const (
	ContactRequestPending  = "pending"
	ContactRequestAccepted = "accepted"
	ContactRequestDeclined = "declined"
)

// ContactRequest is a directional researcher-to-patient message. The server
// serializes the counterparty fields that match the viewer's role, so a
// researcher sees patient_* and a patient sees researcher_*.
type ContactRequest struct {
	ID             ID     `json:"id"`
	Type           string `json:"type"` // "sent" or "received"
	ResearcherID   ID     `json:"researcher_id,omitempty"`
	ResearcherName string `json:"researcher_name,omitempty"`
	PatientID      ID     `json:"patient_id,omitempty"`
	PatientName    string `json:"patient_name,omitempty"`
	Message        string `json:"message"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}
