package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"health-assistant/internal/domain/dto"
	"health-assistant/internal/domain/entities"
	"health-assistant/internal/domain/interfaces/repository"
	"health-assistant/internal/infra/logger"
	memrepo "health-assistant/internal/infra/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dispatched struct {
	email dto.EmailMessage
	sms   *dto.SMSMessage
}

// fakeDispatcher records envelopes synchronously so assertions need no waiting.
type fakeDispatcher struct {
	mu   sync.Mutex
	sent []dispatched
}

func (f *fakeDispatcher) SendEmail(context.Context, dto.EmailMessage) bool { return true }

func (f *fakeDispatcher) SendSMS(context.Context, dto.SMSMessage) bool { return true }

func (f *fakeDispatcher) Deliver(_ context.Context, email dto.EmailMessage, sms *dto.SMSMessage) dto.DeliveryReport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, dispatched{email: email, sms: sms})
	return dto.DeliveryReport{Email: true, SMS: sms != nil, SMSAttempted: sms != nil}
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, email dto.EmailMessage, sms *dto.SMSMessage) <-chan dto.DeliveryReport {
	out := make(chan dto.DeliveryReport, 1)
	out <- f.Deliver(ctx, email, sms)
	close(out)
	return out
}

func (f *fakeDispatcher) Sent() []dispatched {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]dispatched(nil), f.sent...)
}

type careFixture struct {
	profiles      *ProfileService
	notifications *NotificationCenter
	appointments  *AppointmentService
	prescriptions *PrescriptionService
	dispatcher    *fakeDispatcher
}

func newCareFixture(t *testing.T, mobile string) *careFixture {
	t.Helper()
	profiles := newProfileService(t)
	registerAsha(t, profiles, "en", mobile)

	dispatcher := &fakeDispatcher{}
	notifications := NewNotificationCenter(memrepo.NewMemoryRepository(func(n entities.Notification) string { return n.ID }), logger.NewNop())
	appointments := NewAppointmentService(
		memrepo.NewMemoryRepository(func(a entities.Appointment) string { return a.ID }),
		profiles, notifications, dispatcher, logger.NewNop(),
	)
	appointments.Location = time.UTC
	prescriptions := NewPrescriptionService(
		memrepo.NewMemoryRepository(func(p entities.Prescription) string { return p.ID }),
		appointments, profiles, notifications, dispatcher, logger.NewNop(),
	)
	return &careFixture{
		profiles:      profiles,
		notifications: notifications,
		appointments:  appointments,
		prescriptions: prescriptions,
		dispatcher:    dispatcher,
	}
}

var cardiology = dto.BookAppointmentRequest{
	DoctorID:    "doc-7",
	DoctorName:  "Anil Mehta",
	Date:        "2026-11-02",
	Time:        "10:30",
	Symptoms:    "palpitations",
	MeetingLink: "https://meet.example.com/abc",
}

func (f *careFixture) book(t *testing.T) entities.Appointment {
	t.Helper()
	appt, err := f.appointments.Book(context.Background(), testUser, cardiology)
	require.NoError(t, err)
	return appt
}

var amoxicillin = dto.IssuePrescriptionRequest{
	Diagnosis:    "Bacterial sinusitis",
	Medications:  []entities.Medication{{Name: "Amoxicillin", Dosage: "500mg", Frequency: "3x daily", Duration: "7 days"}},
	Instructions: "Take after meals",
}

func TestBook_CreatesScheduledAppointmentAndNotifies(t *testing.T) {
	f := newCareFixture(t, "+919800000001")

	appt := f.book(t)
	assert.NotEmpty(t, appt.ID)
	assert.Equal(t, entities.AppointmentScheduled, appt.Status)
	assert.Equal(t, testUser, appt.UserID)

	notes, err := f.notifications.List(context.Background(), testUser)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, entities.NotificationAppointment, notes[0].Type)
	assert.Equal(t, appt.ID, notes[0].AppointmentID)
	assert.False(t, notes[0].Read)

	sent := f.dispatcher.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, testUser, sent[0].email.To)
	assert.Equal(t, "✅ Appointment Confirmed - HealBuddy", sent[0].email.Subject)
	assert.Contains(t, sent[0].email.Body, "Monday, November 2, 2026")
	require.NotNil(t, sent[0].sms)
	assert.Equal(t, "+919800000001", sent[0].sms.To)
	assert.Contains(t, sent[0].sms.Message, appt.ID)
}

func TestBook_NoMobileMeansNoSMS(t *testing.T) {
	f := newCareFixture(t, "")
	f.book(t)

	sent := f.dispatcher.Sent()
	require.Len(t, sent, 1)
	assert.Nil(t, sent[0].sms)
}

func TestBook_Validation(t *testing.T) {
	f := newCareFixture(t, "")

	req := cardiology
	req.DoctorID = ""
	_, err := f.appointments.Book(context.Background(), testUser, req)
	assert.ErrorIs(t, err, ErrValidation)

	req = cardiology
	req.Time = "half past ten"
	_, err = f.appointments.Book(context.Background(), testUser, req)
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, f.dispatcher.Sent())
}

func TestAppointment_Transitions(t *testing.T) {
	f := newCareFixture(t, "")
	first := f.book(t)
	second := f.book(t)

	done, err := f.appointments.Complete(context.Background(), first.ID, testUser)
	require.NoError(t, err)
	assert.Equal(t, entities.AppointmentCompleted, done.Status)

	_, err = f.appointments.Cancel(context.Background(), first.ID, testUser)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	cancelled, err := f.appointments.Cancel(context.Background(), second.ID, testUser)
	require.NoError(t, err)
	assert.Equal(t, entities.AppointmentCancelled, cancelled.Status)

	_, err = f.appointments.Complete(context.Background(), second.ID, testUser)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.appointments.Complete(context.Background(), second.ID, "mallory@example.com")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.appointments.Get(context.Background(), "missing", testUser)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAppointment_ListNewestFirst(t *testing.T) {
	f := newCareFixture(t, "")
	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	f.appointments.now = func() time.Time { tick++; return base.Add(time.Duration(tick) * time.Minute) }

	older := f.book(t)
	newer := f.book(t)

	list, err := f.appointments.List(context.Background(), testUser)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)

	others, err := f.appointments.List(context.Background(), "mallory@example.com")
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestIssuePrescription_LinksAppointment(t *testing.T) {
	f := newCareFixture(t, "+919800000001")
	appt := f.book(t)

	req := amoxicillin
	req.AppointmentID = appt.ID
	p, err := f.prescriptions.Issue(context.Background(), testUser, req)
	require.NoError(t, err)
	assert.Equal(t, appt.ID, p.AppointmentID)
	assert.Equal(t, "Anil Mehta", p.DoctorName)
	assert.Equal(t, testUser, p.PatientID)
	assert.Equal(t, "Asha Rao", p.PatientName)

	linked, err := f.appointments.Get(context.Background(), appt.ID, testUser)
	require.NoError(t, err)
	assert.Equal(t, p.ID, linked.PrescriptionID)

	_, err = f.prescriptions.Issue(context.Background(), testUser, req)
	assert.ErrorIs(t, err, ErrPrescriptionAlreadyLinked)

	list, err := f.prescriptions.List(context.Background(), testUser)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got, err := f.prescriptions.Get(context.Background(), p.ID, testUser)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	_, err = f.prescriptions.Get(context.Background(), p.ID, "mallory@example.com")
	assert.ErrorIs(t, err, ErrForbidden)

	sent := f.dispatcher.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "💊 New Prescription - HealBuddy", sent[1].email.Subject)
	assert.Contains(t, sent[1].email.Body, "1. Amoxicillin - 500mg")
	require.NotNil(t, sent[1].sms)

	notes, _ := f.notifications.List(context.Background(), testUser)
	var kinds []entities.NotificationType
	for _, n := range notes {
		kinds = append(kinds, n.Type)
	}
	assert.ElementsMatch(t, []entities.NotificationType{entities.NotificationAppointment, entities.NotificationPrescription}, kinds)
}

func TestIssuePrescription_Validation(t *testing.T) {
	f := newCareFixture(t, "")
	appt := f.book(t)

	req := amoxicillin
	req.AppointmentID = appt.ID
	req.Diagnosis = " "
	_, err := f.prescriptions.Issue(context.Background(), testUser, req)
	assert.ErrorIs(t, err, ErrValidation)

	req = amoxicillin
	req.AppointmentID = appt.ID
	req.Medications = nil
	_, err = f.prescriptions.Issue(context.Background(), testUser, req)
	assert.ErrorIs(t, err, ErrValidation)

	req = amoxicillin
	req.AppointmentID = appt.ID
	_, err = f.prescriptions.Issue(context.Background(), "mallory@example.com", req)
	assert.ErrorIs(t, err, ErrForbidden)
}

// rejectingUpdates fails every update so linking a prescription cannot land.
type rejectingUpdates struct {
	repository.Repository[entities.Appointment]
}

func (rejectingUpdates) Update(context.Context, string, string, entities.Appointment) (entities.Appointment, error) {
	return entities.Appointment{}, errors.New("write conflict")
}

func TestIssuePrescription_LinkFailureLeavesNoPrescription(t *testing.T) {
	f := newCareFixture(t, "+919800000001")
	appt := f.book(t)
	f.appointments.Repository = rejectingUpdates{f.appointments.Repository}

	req := amoxicillin
	req.AppointmentID = appt.ID
	_, err := f.prescriptions.Issue(context.Background(), testUser, req)
	require.Error(t, err)

	list, err := f.prescriptions.List(context.Background(), testUser)
	require.NoError(t, err)
	assert.Empty(t, list)

	unchanged, err := f.appointments.Get(context.Background(), appt.ID, testUser)
	require.NoError(t, err)
	assert.Empty(t, unchanged.PrescriptionID)
	assert.Len(t, f.dispatcher.Sent(), 1)
}

func TestNotificationCenter_ReadFlags(t *testing.T) {
	f := newCareFixture(t, "")
	ctx := context.Background()

	a, err := f.notifications.Create(ctx, entities.Notification{UserID: testUser, Title: "One"})
	require.NoError(t, err)
	assert.Equal(t, entities.NotificationGeneral, a.Type)
	_, err = f.notifications.Create(ctx, entities.Notification{UserID: testUser, Title: "Two", Read: true})
	require.NoError(t, err)
	_, err = f.notifications.Create(ctx, entities.Notification{UserID: "mallory@example.com", Title: "Other"})
	require.NoError(t, err)

	_, err = f.notifications.Create(ctx, entities.Notification{UserID: testUser})
	assert.ErrorIs(t, err, ErrValidation)

	count, err := f.notifications.UnreadCount(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	read, err := f.notifications.MarkRead(ctx, a.ID, testUser)
	require.NoError(t, err)
	assert.True(t, read.Read)
	again, err := f.notifications.MarkRead(ctx, a.ID, testUser)
	require.NoError(t, err)
	assert.True(t, again.Read)

	_, err = f.notifications.MarkRead(ctx, a.ID, "mallory@example.com")
	assert.ErrorIs(t, err, ErrForbidden)

	changed, err := f.notifications.MarkAllRead(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	count, _ = f.notifications.UnreadCount(ctx, testUser)
	assert.Zero(t, count)
	count, _ = f.notifications.UnreadCount(ctx, "mallory@example.com")
	assert.Equal(t, 1, count)
}

func TestReminderWorker_RemindsOnceWithinLead(t *testing.T) {
	f := newCareFixture(t, "+919800000001")
	now := time.Date(2026, 11, 2, 10, 5, 0, 0, time.UTC)

	due := f.book(t)
	later := cardiology
	later.Time = "11:30"
	_, err := f.appointments.Book(context.Background(), testUser, later)
	require.NoError(t, err)
	past := cardiology
	past.Time = "09:00"
	_, err = f.appointments.Book(context.Background(), testUser, past)
	require.NoError(t, err)

	worker := NewReminderWorker(f.appointments, f.profiles, f.notifications, f.dispatcher, logger.NewNop(), time.Minute, 30*time.Minute)
	worker.now = func() time.Time { return now }

	handled, err := worker.ProcessOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, handled)

	sent := f.dispatcher.Sent()
	last := sent[len(sent)-1]
	assert.Equal(t, "⏰ Appointment Reminder - In 30 Minutes!", last.email.Subject)
	require.NotNil(t, last.sms)
	assert.Contains(t, last.sms.Message, "10:30")

	reminded, err := f.appointments.Get(context.Background(), due.ID, testUser)
	require.NoError(t, err)
	require.NotNil(t, reminded.RemindedAt)
	assert.True(t, reminded.RemindedAt.Equal(now))

	handled, err = worker.ProcessOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, handled)

	notes, _ := f.notifications.List(context.Background(), testUser)
	reminders := 0
	for _, n := range notes {
		if n.Type == entities.NotificationReminder {
			reminders++
		}
	}
	assert.Equal(t, 1, reminders)
}

// unrecordedNotifications accepts reads but fails every Create.
type unrecordedNotifications struct {
	*NotificationCenter
}

func (unrecordedNotifications) Create(context.Context, entities.Notification) (entities.Notification, error) {
	return entities.Notification{}, errors.New("notifications store unavailable")
}

func TestReminderWorker_RecordFailureDoesNotResend(t *testing.T) {
	f := newCareFixture(t, "+919800000001")
	due := f.book(t)
	sentBefore := len(f.dispatcher.Sent())

	worker := NewReminderWorker(f.appointments, f.profiles, unrecordedNotifications{f.notifications}, f.dispatcher, logger.NewNop(), time.Minute, 30*time.Minute)
	worker.now = func() time.Time { return time.Date(2026, 11, 2, 10, 5, 0, 0, time.UTC) }

	handled, err := worker.ProcessOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, handled)
	assert.Len(t, f.dispatcher.Sent(), sentBefore+1)

	reminded, err := f.appointments.Get(context.Background(), due.ID, testUser)
	require.NoError(t, err)
	assert.NotNil(t, reminded.RemindedAt)

	handled, err = worker.ProcessOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, handled)
	assert.Len(t, f.dispatcher.Sent(), sentBefore+1)
}

func TestReminderWorker_SkipsCancelled(t *testing.T) {
	f := newCareFixture(t, "")
	appt := f.book(t)
	_, err := f.appointments.Cancel(context.Background(), appt.ID, testUser)
	require.NoError(t, err)

	worker := NewReminderWorker(f.appointments, f.profiles, f.notifications, f.dispatcher, logger.NewNop(), 0, 0)
	worker.now = func() time.Time { return time.Date(2026, 11, 2, 10, 10, 0, 0, time.UTC) }

	handled, err := worker.ProcessOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, handled)
	assert.Equal(t, time.Minute, worker.Interval)
	assert.Equal(t, 30*time.Minute, worker.Lead)
}

func TestReminderWorker_RunStopsOnCancel(t *testing.T) {
	f := newCareFixture(t, "")
	worker := NewReminderWorker(f.appointments, f.profiles, f.notifications, f.dispatcher, logger.NewNop(), 5*time.Millisecond, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	err := worker.Run(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestPhoneAppointments(t *testing.T) {
	svc := NewPhoneAppointmentService(
		memrepo.NewMemoryRepository(func(p entities.PhoneAppointment) string { return p.ID }),
		logger.NewNop(), "15551234567", "asst-1",
	)
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time { tick++; return base.Add(time.Duration(tick) * time.Second) }

	first, err := svc.Save(ctx, testUser, dto.PhoneAppointmentRequest{PatientName: "Kiran", PatientPhone: "+15550001111", Reason: "checkup"})
	require.NoError(t, err)
	assert.Regexp(t, `^phone_\d+_[0-9a-z]{9}$`, first.ID)
	assert.Equal(t, "phone", first.BookedVia)
	assert.Equal(t, entities.PhoneAppointmentPending, first.Status)
	assert.Equal(t, testUser, first.UserID)

	second, err := svc.Save(ctx, testUser, dto.PhoneAppointmentRequest{PatientName: "Lena", PatientPhone: "+15550002222", BookedVia: "web"})
	require.NoError(t, err)

	_, err = svc.Save(ctx, testUser, dto.PhoneAppointmentRequest{PatientName: "Lena"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Save(ctx, testUser, dto.PhoneAppointmentRequest{PatientName: "Lena", PatientPhone: "1", BookedVia: "fax"})
	assert.ErrorIs(t, err, ErrValidation)

	list, err := svc.List(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	confirmed := entities.PhoneAppointmentConfirmed
	updated, err := svc.Update(ctx, first.ID, testUser, dto.PhoneAppointmentUpdate{Status: &confirmed})
	require.NoError(t, err)
	assert.Equal(t, entities.PhoneAppointmentConfirmed, updated.Status)

	bogus := entities.PhoneAppointmentStatus("lost")
	_, err = svc.Update(ctx, first.ID, testUser, dto.PhoneAppointmentUpdate{Status: &bogus})
	assert.ErrorIs(t, err, ErrValidation)

	other := "ravi@example.com"
	otherList, err := svc.List(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, otherList)
	_, err = svc.Update(ctx, first.ID, other, dto.PhoneAppointmentUpdate{Status: &confirmed})
	assert.ErrorIs(t, err, ErrForbidden)
	removed, err := svc.Delete(ctx, first.ID, other)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.False(t, removed)

	removed, err = svc.Delete(ctx, first.ID, testUser)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = svc.Delete(ctx, first.ID, testUser)
	require.NoError(t, err)
	assert.False(t, removed)

	info := svc.AgentInfo()
	assert.Equal(t, "15551234567", info.PhoneNumber)
	assert.Equal(t, "asst-1", info.AssistantID)
	assert.NotEmpty(t, info.PhoneNumberFormatted)
}
