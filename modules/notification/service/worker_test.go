package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"garage-api/modules/notification/dto"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	err     error
	to      string
	subject string
	body    string
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.to, f.subject, f.body = to, subject, body
	return nil
}

type fakeTexter struct {
	err     error
	to      string
	message string
}

func (f *fakeTexter) Send(ctx context.Context, to, message string) error {
	if f.err != nil {
		return f.err
	}
	f.to, f.message = to, message
	return nil
}

func confirmationPayload() dto.BookingConfirmationPayload {
	return dto.BookingConfirmationPayload{
		ShopName:      "Acme Tires",
		ShopPhone:     "555-0100",
		ShopAddress:   "1 Main St",
		CustomerName:  "Jordan Baker",
		CustomerEmail: "jordan@example.com",
		CustomerPhone: "+15550102030",
		Service:       "Oil change",
		Date:          "Monday, June 2, 2025",
		Time:          "8:00 AM",
		Reference:     "K4N9XY3M",
	}
}

func emailTask(t *testing.T) *asynq.Task {
	t.Helper()
	body, err := json.Marshal(confirmationPayload())
	require.NoError(t, err)
	return asynq.NewTask(TypeBookingEmail, body)
}

func smsTask(t *testing.T) *asynq.Task {
	t.Helper()
	body, err := json.Marshal(confirmationPayload())
	require.NoError(t, err)
	return asynq.NewTask(TypeBookingSMS, body)
}

func TestHandleBookingEmail_Success(t *testing.T) {
	mailer := &fakeMailer{}
	w := NewWorker(mailer, &fakeTexter{})

	err := w.HandleBookingEmail(context.Background(), emailTask(t))

	require.NoError(t, err)
	assert.Equal(t, "jordan@example.com", mailer.to)
	assert.Equal(t, "Appointment confirmed at Acme Tires", mailer.subject)
	assert.Contains(t, mailer.body, "Reference: K4N9XY3M")
	assert.Contains(t, mailer.body, "Address: 1 Main St")
}

func TestHandleBookingEmail_SendFailureRetries(t *testing.T) {
	sendErr := stderrors.New("smtp: connection refused")
	w := NewWorker(&fakeMailer{err: sendErr}, &fakeTexter{})

	err := w.HandleBookingEmail(context.Background(), emailTask(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, sendErr)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleBookingEmail_MalformedPayloadSkipsRetry(t *testing.T) {
	mailer := &fakeMailer{}
	w := NewWorker(mailer, &fakeTexter{})

	err := w.HandleBookingEmail(context.Background(), asynq.NewTask(TypeBookingEmail, []byte("{not json")))

	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, mailer.to, "no send should be attempted for a bad payload")
}

func TestHandleBookingSMS_Success(t *testing.T) {
	texter := &fakeTexter{}
	w := NewWorker(&fakeMailer{}, texter)

	err := w.HandleBookingSMS(context.Background(), smsTask(t))

	require.NoError(t, err)
	assert.Equal(t, "+15550102030", texter.to)
	assert.Contains(t, texter.message, "Acme Tires")
	assert.Contains(t, texter.message, "Ref K4N9XY3M")
}

func TestHandleBookingSMS_SendFailureRetries(t *testing.T) {
	sendErr := stderrors.New("gateway timeout")
	w := NewWorker(&fakeMailer{}, &fakeTexter{err: sendErr})

	err := w.HandleBookingSMS(context.Background(), smsTask(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, sendErr)
}

func TestHandleBookingSMS_MalformedPayloadSkipsRetry(t *testing.T) {
	w := NewWorker(&fakeMailer{}, &fakeTexter{})

	err := w.HandleBookingSMS(context.Background(), asynq.NewTask(TypeBookingSMS, []byte("nope")))

	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestBookingEmailBody_OmitsEmptyShopContact(t *testing.T) {
	p := confirmationPayload()
	p.ShopAddress = ""
	p.ShopPhone = ""

	body := bookingEmailBody(p)

	assert.False(t, strings.Contains(body, "Address:"))
	assert.False(t, strings.Contains(body, "Call us"))
	assert.Contains(t, body, "Hi Jordan Baker")
}
