package entities

import "time"

type NotificationType string

const (
	NotificationAppointment  NotificationType = "appointment"
	NotificationPrescription NotificationType = "prescription"
	NotificationReminder     NotificationType = "reminder"
	NotificationGeneral      NotificationType = "general"
)

// Notification.Read only ever moves from false to true.
type Notification struct {
	ID             string           `json:"id" bson:"_id"`
	UserID         string           `json:"userId" bson:"user_id"`
	Type           NotificationType `json:"type" bson:"type"`
	Title          string           `json:"title" bson:"title"`
	Message        string           `json:"message" bson:"message"`
	Read           bool             `json:"read" bson:"read"`
	AppointmentID  string           `json:"appointmentId,omitempty" bson:"appointment_id,omitempty"`
	PrescriptionID string           `json:"prescriptionId,omitempty" bson:"prescription_id,omitempty"`
	CreatedAt      time.Time        `json:"createdAt" bson:"created_at"`
}
