package dto

// EmailMessage is the vendor-agnostic email envelope.
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	HTML    string `json:"html,omitempty"`
}

// SMSMessage is the vendor-agnostic SMS envelope.
type SMSMessage struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// DeliveryReport carries the boolean outcome per channel. SMSAttempted is
// false when the recipient has no mobile number.
type DeliveryReport struct {
	Email        bool `json:"email"`
	SMS          bool `json:"sms"`
	SMSAttempted bool `json:"smsAttempted"`
}
