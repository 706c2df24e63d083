package services

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	"text/template"
	"time"

	"health-assistant/internal/domain/dto"
	"health-assistant/internal/domain/entities"
)

var textFuncs = template.FuncMap{"inc": func(i int) int { return i + 1 }, "longDate": longDate}
var htmlFuncs = htmltemplate.FuncMap{"inc": func(i int) int { return i + 1 }, "longDate": longDate}

func longDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2, 2006")
}

var (
	appointmentText = template.Must(template.New("appointment").Funcs(textFuncs).Parse(`Dear {{.Name}},

Your appointment has been confirmed!

Appointment Details:
Doctor: {{.Appointment.DoctorName}}
Date: {{longDate .Appointment.Date}}
Time: {{.Appointment.Time}}
Appointment ID: {{.Appointment.ID}}
Meeting Link: {{if .Appointment.MeetingLink}}{{.Appointment.MeetingLink}}{{else}}Will be shared shortly{{end}}
{{if .Appointment.Symptoms}}Your Symptoms: {{.Appointment.Symptoms}}
{{end}}
Important Reminders:
- Join the meeting 5 minutes early
- Keep your medical history ready
- You'll receive a reminder 30 minutes before

Stay healthy!
Team HealBuddy`))

	appointmentHTML = htmltemplate.Must(htmltemplate.New("appointment").Funcs(htmlFuncs).Parse(`<!DOCTYPE html>
<html><body style="font-family: Arial, sans-serif; color: #333;">
<h1>Appointment Confirmed</h1>
<p>Dear <strong>{{.Name}}</strong>,</p>
<p>Your appointment has been successfully confirmed.</p>
<div style="background: #f8f9fa; padding: 20px; border-left: 4px solid #667eea;">
<div><b>Doctor:</b> {{.Appointment.DoctorName}}</div>
<div><b>Date:</b> {{longDate .Appointment.Date}}</div>
<div><b>Time:</b> {{.Appointment.Time}}</div>
<div><b>Appointment ID:</b> {{.Appointment.ID}}</div>
</div>
{{if .Appointment.MeetingLink}}<p><a href="{{.Appointment.MeetingLink}}">Join Video Consultation</a></p>{{end}}
{{if .Appointment.Symptoms}}<p><strong>Your Symptoms:</strong><br>{{.Appointment.Symptoms}}</p>{{end}}
<p>Stay healthy!<br><strong>Team HealBuddy</strong></p>
</body></html>`))

	prescriptionText = template.Must(template.New("prescription").Funcs(textFuncs).Parse(`Dear {{.PatientName}},

Dr. {{.DoctorName}} has issued a new prescription for you.

Prescription ID: {{.ID}}
Date: {{longDate .Date}}
Diagnosis: {{.Diagnosis}}

Medications Prescribed:
{{range $i, $m := .Medications}}{{inc $i}}. {{$m.Name}} - {{$m.Dosage}}, {{$m.Frequency}}, {{$m.Duration}}
{{end}}
Instructions: {{.Instructions}}
{{if .FollowUp}}Follow-up: {{.FollowUp}}
{{end}}
Stay healthy!
Team HealBuddy`))

	prescriptionHTML = htmltemplate.Must(htmltemplate.New("prescription").Funcs(htmlFuncs).Parse(`<!DOCTYPE html>
<html><body style="font-family: Arial, sans-serif; color: #333;">
<h1>New Prescription</h1>
<p>Dear <strong>{{.PatientName}}</strong>,</p>
<p>Dr. {{.DoctorName}} has issued a new prescription for you.</p>
<div style="background: #f0fdf4; padding: 20px; border-left: 4px solid #10b981;">
<div><b>Prescription ID:</b> {{.ID}}</div>
<div><b>Date:</b> {{longDate .Date}}</div>
<div><b>Diagnosis:</b> {{.Diagnosis}}</div>
</div>
<h3>Medications Prescribed:</h3>
{{range $i, $m := .Medications}}<div><strong>{{inc $i}}. {{$m.Name}}</strong><br><small>Dosage: {{$m.Dosage}} | Frequency: {{$m.Frequency}} | Duration: {{$m.Duration}}</small>{{if $m.Instructions}}<br><em>Note: {{$m.Instructions}}</em>{{end}}</div>
{{end}}
<p><strong>Instructions:</strong><br>{{.Instructions}}</p>
{{if .FollowUp}}<p><strong>Follow-up Required:</strong><br>{{.FollowUp}}</p>{{end}}
<p>Stay healthy!<br><strong>Team HealBuddy</strong></p>
</body></html>`))

	reminderText = template.Must(template.New("reminder").Funcs(textFuncs).Parse(`Dear {{.Name}},

This is a reminder that your appointment with Dr. {{.Appointment.DoctorName}} starts at {{.Appointment.Time}} on {{longDate .Appointment.Date}}.
{{if .Appointment.MeetingLink}}Join here: {{.Appointment.MeetingLink}}
{{end}}
Team HealBuddy`))

	reminderHTML = htmltemplate.Must(htmltemplate.New("reminder").Funcs(htmlFuncs).Parse(`<!DOCTYPE html>
<html><body style="font-family: Arial, sans-serif; color: #333;">
<h1>Appointment Reminder</h1>
<p>Dear <strong>{{.Name}}</strong>,</p>
<p>Your appointment with Dr. {{.Appointment.DoctorName}} starts at <strong>{{.Appointment.Time}}</strong> on {{longDate .Appointment.Date}}.</p>
{{if .Appointment.MeetingLink}}<p><a href="{{.Appointment.MeetingLink}}">Join Now</a></p>{{end}}
<p><strong>Team HealBuddy</strong></p>
</body></html>`))
)

type appointmentView struct {
	Name        string
	Appointment entities.Appointment
}

func render(exec func(*bytes.Buffer) error) string {
	var buf bytes.Buffer
	if err := exec(&buf); err != nil {
		return ""
	}
	return strings.TrimSpace(buf.String())
}

func smsFor(mobile, message string) *dto.SMSMessage {
	if strings.TrimSpace(mobile) == "" {
		return nil
	}
	return &dto.SMSMessage{To: mobile, Message: message}
}

// AppointmentConfirmation composes the confirmation envelopes. SMS is nil
// when the profile has no mobile number.
func AppointmentConfirmation(a entities.Appointment, profile entities.UserProfile) (dto.EmailMessage, *dto.SMSMessage) {
	view := appointmentView{Name: profile.FullName, Appointment: a}
	email := dto.EmailMessage{
		To:      profile.Email,
		Subject: "✅ Appointment Confirmed - HealBuddy",
		Body:    render(func(b *bytes.Buffer) error { return appointmentText.Execute(b, view) }),
		HTML:    render(func(b *bytes.Buffer) error { return appointmentHTML.Execute(b, view) }),
	}
	link := a.MeetingLink
	if link == "" {
		link = "Will be shared"
	}
	sms := smsFor(profile.MobileNumber, "Dear "+profile.FullName+", Your appointment with "+a.DoctorName+
		" is confirmed for "+a.Date+" at "+a.Time+". Meeting: "+link+". ID: "+a.ID+". -HealBuddy")
	return email, sms
}

func PrescriptionIssued(p entities.Prescription, profile entities.UserProfile) (dto.EmailMessage, *dto.SMSMessage) {
	email := dto.EmailMessage{
		To:      profile.Email,
		Subject: "💊 New Prescription - HealBuddy",
		Body:    render(func(b *bytes.Buffer) error { return prescriptionText.Execute(b, p) }),
		HTML:    render(func(b *bytes.Buffer) error { return prescriptionHTML.Execute(b, p) }),
	}
	sms := smsFor(profile.MobileNumber, "Dear "+p.PatientName+", Dr. "+p.DoctorName+" has issued a new prescription (ID: "+p.ID+
		"). Diagnosis: "+p.Diagnosis+". Please check the HealBuddy app for complete details. -HealBuddy")
	return email, sms
}

func AppointmentReminder(a entities.Appointment, profile entities.UserProfile, lead time.Duration) (dto.EmailMessage, *dto.SMSMessage) {
	view := appointmentView{Name: profile.FullName, Appointment: a}
	email := dto.EmailMessage{
		To:      profile.Email,
		Subject: fmt.Sprintf("⏰ Appointment Reminder - In %d Minutes!", int(lead.Minutes())),
		Body:    render(func(b *bytes.Buffer) error { return reminderText.Execute(b, view) }),
		HTML:    render(func(b *bytes.Buffer) error { return reminderHTML.Execute(b, view) }),
	}
	sms := smsFor(profile.MobileNumber, "REMINDER: Your appointment with Dr. "+a.DoctorName+" is at "+a.Time+
		". Join: "+a.MeetingLink+" -HealBuddy")
	return email, sms
}
