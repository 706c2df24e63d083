package dto

import "health-assistant/internal/domain/entities"

type RegisterRequest struct {
	FullName          string                `json:"fullName"`
	Email             string                `json:"email"`
	Password          string                `json:"password"`
	Age               int                   `json:"age"`
	Gender            string                `json:"gender"`
	MedicalHistory    string                `json:"medicalHistory"`
	PreferredLanguage entities.LanguageCode `json:"preferredLanguage"`
	MobileNumber      string                `json:"mobileNumber,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token   string               `json:"token"`
	Profile entities.UserProfile `json:"profile"`
}

type UpdateProfileRequest struct {
	FullName       *string `json:"fullName,omitempty"`
	Age            *int    `json:"age,omitempty"`
	Gender         *string `json:"gender,omitempty"`
	MedicalHistory *string `json:"medicalHistory,omitempty"`
	MobileNumber   *string `json:"mobileNumber,omitempty"`
}

type LanguageRequest struct {
	Language entities.LanguageCode `json:"language"`
}

// SubmitMessageRequest carries base64 payloads; ImageData may be a data URL.
type SubmitMessageRequest struct {
	Text      string `json:"text"`
	AudioData string `json:"audioData,omitempty"`
	AudioType string `json:"audioType,omitempty"`
	ImageData string `json:"imageData,omitempty"`
}

type StageImageRequest struct {
	ImageData string `json:"imageData"`
}

type SessionView struct {
	ID             string                   `json:"id"`
	Language       entities.LanguageCode    `json:"language"`
	Messages       []entities.ChatMessage   `json:"messages"`
	LatestAnalysis *entities.AnalysisResult `json:"latestAnalysis,omitempty"`
	StagedImage    string                   `json:"stagedImage,omitempty"`
	Processing     bool                     `json:"processing"`
}

type BookAppointmentRequest struct {
	DoctorID    string `json:"doctorId"`
	DoctorName  string `json:"doctorName"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Symptoms    string `json:"symptoms"`
	MeetingLink string `json:"meetingLink,omitempty"`
}

type IssuePrescriptionRequest struct {
	AppointmentID string                `json:"appointmentId"`
	Diagnosis     string                `json:"diagnosis"`
	Medications   []entities.Medication `json:"medications"`
	Instructions  string                `json:"instructions"`
	FollowUp      string                `json:"followUp,omitempty"`
}

type PhoneAppointmentRequest struct {
	PatientName     string `json:"patientName"`
	PatientPhone    string `json:"patientPhone"`
	AppointmentType string `json:"appointmentType"`
	PreferredDate   string `json:"preferredDate"`
	PreferredTime   string `json:"preferredTime"`
	Reason          string `json:"reason"`
	BookedVia       string `json:"bookedVia"`
	CallID          string `json:"callId,omitempty"`
}

type PhoneAppointmentUpdate struct {
	Status        *entities.PhoneAppointmentStatus `json:"status,omitempty"`
	PreferredDate *string                          `json:"preferredDate,omitempty"`
	PreferredTime *string                          `json:"preferredTime,omitempty"`
	Reason        *string                          `json:"reason,omitempty"`
}

type VoiceAgentInfo struct {
	PhoneNumber          string `json:"phoneNumber"`
	PhoneNumberFormatted string `json:"phoneNumberFormatted"`
	AssistantID          string `json:"assistantId,omitempty"`
}
