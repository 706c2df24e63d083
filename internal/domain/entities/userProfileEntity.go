package entities

import "time"

// UserProfile is keyed by email.
type UserProfile struct {
	Email             string       `json:"email" bson:"_id"`
	FullName          string       `json:"fullName" bson:"full_name"`
	PasswordHash      string       `json:"-" bson:"password_hash"`
	Age               int          `json:"age" bson:"age"`
	Gender            string       `json:"gender" bson:"gender"`
	MedicalHistory    string       `json:"medicalHistory" bson:"medical_history"`
	PreferredLanguage LanguageCode `json:"preferredLanguage" bson:"preferred_language"`
	MobileNumber      string       `json:"mobileNumber,omitempty" bson:"mobile_number,omitempty"`
	CreatedAt         time.Time    `json:"createdAt" bson:"created_at"`
	UpdatedAt         time.Time    `json:"updatedAt" bson:"updated_at"`
}
