package constants

const (
	PROFILE_COLLECTION           = "profiles"
	APPOINTMENT_COLLECTION       = "appointments"
	PRESCRIPTION_COLLECTION      = "prescriptions"
	NOTIFICATION_COLLECTION      = "notifications"
	PHONE_APPOINTMENT_COLLECTION = "phone_appointments"
)
