package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booklyhq/booking-api/internal/model"
	apperrors "github.com/booklyhq/booking-api/pkg/errors"
	"github.com/booklyhq/booking-api/pkg/logger"
)

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
	createErr    error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, apt *model.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	apt.ID = uuid.New()
	apt.CreatedAt = time.Now()
	stored := *apt
	r.appointments[apt.ID] = &stored
	return nil
}

func (r *fakeAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, ok := r.appointments[id]
	if !ok {
		return nil, apperrors.NotFound("appointment", nil)
	}
	copied := *apt
	return &copied, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(ctx context.Context, apt *model.Appointment) error {
	stored, ok := r.appointments[apt.ID]
	if !ok {
		return apperrors.NotFound("appointment", nil)
	}
	stored.Status = apt.Status
	stored.CancelReason = apt.CancelReason
	return nil
}

func (r *fakeAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.appointments[id]; !ok {
		return apperrors.NotFound("appointment", nil)
	}
	delete(r.appointments, id)
	return nil
}

func (r *fakeAppointmentRepo) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	result := make([]*model.Appointment, 0, len(r.appointments))
	for _, apt := range r.appointments {
		result = append(result, apt)
	}
	return result, nil
}

func (r *fakeAppointmentRepo) ListForProfessionalDay(ctx context.Context, professionalID uuid.UUID, date time.Time) ([]*model.Appointment, error) {
	return nil, nil
}

type fakeOutboxRepo struct {
	events    []*model.OutboxEvent
	createErr error
}

func (r *fakeOutboxRepo) Create(ctx context.Context, event *model.OutboxEvent) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.events = append(r.events, event)
	return nil
}

func (r *fakeOutboxRepo) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	return r.events, nil
}

func (r *fakeOutboxRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMessage *string) error {
	return nil
}

func (r *fakeOutboxRepo) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

func newTestService() (*Service, *fakeAppointmentRepo, *fakeOutboxRepo) {
	repo := newFakeAppointmentRepo()
	outbox := &fakeOutboxRepo{}
	svc := NewService(repo, outbox, logger.NewLogger(nil))
	return svc, repo, outbox
}

func validRequest() *model.CreateAppointmentRequest {
	at := model.MinuteOfDay(600)
	professionalID := uuid.New()
	return &model.CreateAppointmentRequest{
		BusinessID:      uuid.New(),
		ProfessionalID:  &professionalID,
		ServiceID:       uuid.New(),
		AppointmentDate: "2026-10-05",
		AppointmentTime: &at,
		DurationMinutes: 60,
		TotalPrice:      80,
	}
}

func TestCreateAppointment(t *testing.T) {
	svc, _, outbox := newTestService()
	clientID := uuid.New()

	apt, err := svc.CreateAppointment(context.Background(), clientID, validRequest())
	require.NoError(t, err)

	assert.Equal(t, clientID, apt.ClientID, "client identity comes from the token, not the payload")
	assert.Equal(t, model.AppointmentStatusScheduled, apt.Status)
	assert.Equal(t, model.MinuteOfDay(600), apt.AppointmentTime)
	assert.Equal(t, time.October, apt.AppointmentDate.Month())

	require.Len(t, outbox.events, 1)
	assert.Equal(t, model.EventAppointmentCreated, outbox.events[0].EventType)
}

func TestCreateAppointmentRequiresIdentity(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateAppointment(context.Background(), uuid.Nil, validRequest())
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}

func TestCreateAppointmentValidation(t *testing.T) {
	svc, _, outbox := newTestService()
	clientID := uuid.New()

	noDate := validRequest()
	noDate.AppointmentDate = ""
	_, err := svc.CreateAppointment(context.Background(), clientID, noDate)
	assertValidationError(t, err)

	badDate := validRequest()
	badDate.AppointmentDate = "05/10/2026"
	_, err = svc.CreateAppointment(context.Background(), clientID, badDate)
	assertValidationError(t, err)

	noTime := validRequest()
	noTime.AppointmentTime = nil
	_, err = svc.CreateAppointment(context.Background(), clientID, noTime)
	assertValidationError(t, err)

	badDuration := validRequest()
	badDuration.DurationMinutes = 0
	_, err = svc.CreateAppointment(context.Background(), clientID, badDuration)
	assertValidationError(t, err)

	negativePrice := validRequest()
	negativePrice.TotalPrice = -1
	_, err = svc.CreateAppointment(context.Background(), clientID, negativePrice)
	assertValidationError(t, err)

	assert.Empty(t, outbox.events, "rejected bookings emit no events")
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestCreateAppointmentSlotTaken(t *testing.T) {
	svc, repo, outbox := newTestService()
	repo.createErr = apperrors.Conflict("time slot is no longer available", nil)

	_, err := svc.CreateAppointment(context.Background(), uuid.New(), validRequest())
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	assert.Empty(t, outbox.events)
}

func TestStatusLifecycle(t *testing.T) {
	svc, _, outbox := newTestService()

	apt, err := svc.CreateAppointment(context.Background(), uuid.New(), validRequest())
	require.NoError(t, err)

	confirmed, err := svc.Confirm(context.Background(), apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, confirmed.Status)

	completed, err := svc.Complete(context.Background(), apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, completed.Status)

	_, err = svc.Cancel(context.Background(), apt.ID, "too late")
	require.Error(t, err, "completed is terminal")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)

	eventTypes := make([]string, 0, len(outbox.events))
	for _, e := range outbox.events {
		eventTypes = append(eventTypes, e.EventType)
	}
	assert.Equal(t, []string{
		model.EventAppointmentCreated,
		model.EventAppointmentConfirmed,
		model.EventAppointmentCompleted,
	}, eventTypes)
}

func TestCancelRecordsReason(t *testing.T) {
	svc, repo, _ := newTestService()

	apt, err := svc.CreateAppointment(context.Background(), uuid.New(), validRequest())
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), apt.ID, "client asked")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelReason)
	assert.Equal(t, "client asked", *cancelled.CancelReason)

	stored, err := repo.Get(context.Background(), apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, stored.Status)
}

func TestMarkNoShow(t *testing.T) {
	svc, _, _ := newTestService()

	apt, err := svc.CreateAppointment(context.Background(), uuid.New(), validRequest())
	require.NoError(t, err)

	noShow, err := svc.MarkNoShow(context.Background(), apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusNoShow, noShow.Status)

	_, err = svc.Confirm(context.Background(), apt.ID)
	assert.Error(t, err, "no_show is terminal")
}

func TestDeleteAppointment(t *testing.T) {
	svc, _, _ := newTestService()

	apt, err := svc.CreateAppointment(context.Background(), uuid.New(), validRequest())
	require.NoError(t, err)

	err = svc.DeleteAppointment(context.Background(), apt.ID)
	require.Error(t, err, "only cancelled appointments can be deleted")

	_, err = svc.Cancel(context.Background(), apt.ID, "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAppointment(context.Background(), apt.ID))

	_, err = svc.GetAppointment(context.Background(), apt.ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestOutboxFailureDoesNotFailBooking(t *testing.T) {
	svc, _, outbox := newTestService()
	outbox.createErr = assert.AnError

	apt, err := svc.CreateAppointment(context.Background(), uuid.New(), validRequest())
	require.NoError(t, err, "losing an event is preferable to failing the booking")
	assert.NotEqual(t, uuid.Nil, apt.ID)
}
