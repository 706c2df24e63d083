package entities

import "time"

type Medication struct {
	Name         string `json:"name" bson:"name"`
	Dosage       string `json:"dosage" bson:"dosage"`
	Frequency    string `json:"frequency" bson:"frequency"`
	Duration     string `json:"duration" bson:"duration"`
	Instructions string `json:"instructions" bson:"instructions"`
}

// Prescription is immutable once issued.
type Prescription struct {
	ID            string       `json:"id" bson:"_id"`
	AppointmentID string       `json:"appointmentId" bson:"appointment_id"`
	DoctorID      string       `json:"doctorId" bson:"doctor_id"`
	DoctorName    string       `json:"doctorName" bson:"doctor_name"`
	PatientID     string       `json:"patientId" bson:"patient_id"`
	PatientName   string       `json:"patientName" bson:"patient_name"`
	Date          string       `json:"date" bson:"date"`
	Diagnosis     string       `json:"diagnosis" bson:"diagnosis"`
	Medications   []Medication `json:"medications" bson:"medications"`
	Instructions  string       `json:"instructions" bson:"instructions"`
	FollowUp      string       `json:"followUp,omitempty" bson:"follow_up,omitempty"`
	CreatedAt     time.Time    `json:"createdAt" bson:"created_at"`
}
