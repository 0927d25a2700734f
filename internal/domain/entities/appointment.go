package entities

// Appointment statuses as reported by the backend
const (
	AppointmentScheduled   = "scheduled"
	AppointmentCompleted   = "completed"
	AppointmentCancelled   = "cancelled"
	AppointmentRescheduled = "rescheduled"
)

// Appointment is a patient-owned medical appointment, independent of any
// study. Study visits are StudyAppointment.
type Appointment struct {
	ID                   ID     `json:"id"`
	DoctorName           string `json:"doctor_name"`
	DoctorSpecialization string `json:"doctor_specialization,omitempty"`
	AppointmentDate      string `json:"appointment_date"`
	Address              string `json:"address"`
	Reason               string `json:"reason"`
	Notes                string `json:"notes,omitempty"`
	Status               string `json:"status"`
	CreatedAt            string `json:"created_at,omitempty"`
}
