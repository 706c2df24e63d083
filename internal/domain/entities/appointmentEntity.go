package entities

import "time"

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID             string            `json:"id" bson:"_id"`
	UserID         string            `json:"userId" bson:"user_id"`
	DoctorID       string            `json:"doctorId" bson:"doctor_id"`
	DoctorName     string            `json:"doctorName" bson:"doctor_name"`
	Date           string            `json:"date" bson:"date"`
	Time           string            `json:"time" bson:"time"`
	Status         AppointmentStatus `json:"status" bson:"status"`
	MeetingLink    string            `json:"meetingLink,omitempty" bson:"meeting_link,omitempty"`
	PrescriptionID string            `json:"prescriptionId,omitempty" bson:"prescription_id,omitempty"`
	Symptoms       string            `json:"symptoms" bson:"symptoms"`
	RemindedAt     *time.Time        `json:"remindedAt,omitempty" bson:"reminded_at,omitempty"`
	CreatedAt      time.Time         `json:"createdAt" bson:"created_at"`
}

// StartsAt combines Date (YYYY-MM-DD) and Time (HH:MM) in loc.
func (a Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", a.Date+" "+a.Time, loc)
}

// PhoneAppointmentStatus is the lifecycle of a booking taken by the voice agent.
type PhoneAppointmentStatus string

const (
	PhoneAppointmentPending   PhoneAppointmentStatus = "pending"
	PhoneAppointmentConfirmed PhoneAppointmentStatus = "confirmed"
	PhoneAppointmentCancelled PhoneAppointmentStatus = "cancelled"
)

type PhoneAppointment struct {
	ID              string                 `json:"id" bson:"_id"`
	UserID          string                 `json:"userId" bson:"user_id"`
	PatientName     string                 `json:"patientName" bson:"patient_name"`
	PatientPhone    string                 `json:"patientPhone" bson:"patient_phone"`
	AppointmentType string                 `json:"appointmentType" bson:"appointment_type"`
	PreferredDate   string                 `json:"preferredDate" bson:"preferred_date"`
	PreferredTime   string                 `json:"preferredTime" bson:"preferred_time"`
	Reason          string                 `json:"reason" bson:"reason"`
	Status          PhoneAppointmentStatus `json:"status" bson:"status"`
	BookedVia       string                 `json:"bookedVia" bson:"booked_via"`
	CallID          string                 `json:"callId,omitempty" bson:"call_id,omitempty"`
	CreatedAt       time.Time              `json:"createdAt" bson:"created_at"`
}
