package payment

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/db/dbtest"
	domain "github.com/BruksfildServices01/appointmenttech-api/internal/domain/payment"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/infra/repository"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/payments"
)

type mockGateway struct{ mock.Mock }

func (m *mockGateway) CreateCheckout(ctx context.Context, req payments.CheckoutRequest) (payments.Checkout, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(payments.Checkout), args.Error(1)
}

func (m *mockGateway) GetPayment(ctx context.Context, id string) (payments.Payment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(payments.Payment), args.Error(1)
}

type paymentNote struct {
	ownerID uint
	status  string
}

type fakeNotifier struct{ notes []paymentNote }

func (f *fakeNotifier) Payment(_ context.Context, ownerID, _ uint, _, status string, _ float64) {
	f.notes = append(f.notes, paymentNote{ownerID, status})
}

func seed(t *testing.T) (*gorm.DB, models.BusinessUser, models.CateringOrder) {
	t.Helper()
	db := dbtest.New(t)

	b := models.BusinessUser{UserID: 5, BusinessTypeID: 1, BusinessName: "Feast"}
	require.NoError(t, db.Create(&b).Error)

	o := models.CateringOrder{BusinessUserID: b.ID, CustomerID: 1, OrderNumber: "CO-1", TotalAmount: 900, FinalAmount: 1000, Status: models.OrderPending, PaymentStatus: models.PaymentPending}
	require.NoError(t, db.Create(&o).Error)
	return db, b, o
}

func TestCheckout_Disabled(t *testing.T) {
	db, b, o := seed(t)
	s := NewService(repository.NewPaymentGormRepository(db), repository.NewSoftDeleteRepository[models.BusinessUser](db), nil, nil, nil, "")

	_, err := s.Checkout(context.Background(), audit.Actor{}, CheckoutInput{BusinessUserID: b.ID, ReferenceType: "catering_order", ReferenceID: o.ID})
	be, ok := httperr.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, "payments_disabled", be.Code)
	assert.Equal(t, http.StatusServiceUnavailable, be.Status)
}

func TestCheckout_CreatesPendingTransaction(t *testing.T) {
	db, b, o := seed(t)
	gw := &mockGateway{}
	gw.On("CreateCheckout", mock.Anything, mock.MatchedBy(func(r payments.CheckoutRequest) bool {
		return r.Amount == 1000 && r.Currency == "INR" && r.ExternalReference == "tx-1"
	})).Return(payments.Checkout{PreferenceID: "pref-1", InitPoint: "https://pay/1"}, nil)

	s := NewService(repository.NewPaymentGormRepository(db), repository.NewSoftDeleteRepository[models.BusinessUser](db), gw, nil, nil, "INR")

	res, err := s.Checkout(context.Background(), audit.Actor{}, CheckoutInput{BusinessUserID: b.ID, ReferenceType: "catering_order", ReferenceID: o.ID})
	require.NoError(t, err)
	assert.Equal(t, "pref-1", res.PreferenceID)
	assert.Equal(t, models.TxPending, res.Transaction.Status)
	assert.Equal(t, "pref-1", res.Transaction.GatewayPreferenceID)
	gw.AssertExpectations(t)

	_, err = s.Checkout(context.Background(), audit.Actor{}, CheckoutInput{BusinessUserID: b.ID + 1, ReferenceType: "catering_order", ReferenceID: o.ID})
	assert.True(t, httperr.IsBusiness(err, "reference_not_found"))

	_, err = s.Checkout(context.Background(), audit.Actor{}, CheckoutInput{BusinessUserID: b.ID, ReferenceType: "invoice", ReferenceID: o.ID})
	assert.True(t, httperr.IsBusiness(err, "invalid_reference_type"))
}

func TestCheckout_GatewayFailureMarksFailed(t *testing.T) {
	db, b, o := seed(t)
	gw := &mockGateway{}
	gw.On("CreateCheckout", mock.Anything, mock.Anything).Return(payments.Checkout{}, errors.New("boom"))

	s := NewService(repository.NewPaymentGormRepository(db), repository.NewSoftDeleteRepository[models.BusinessUser](db), gw, nil, nil, "")

	_, err := s.Checkout(context.Background(), audit.Actor{}, CheckoutInput{BusinessUserID: b.ID, ReferenceType: "catering_order", ReferenceID: o.ID})
	assert.True(t, httperr.IsBusiness(err, "payment_gateway_error"))

	var tx models.PaymentTransaction
	require.NoError(t, db.First(&tx).Error)
	assert.Equal(t, models.TxFailed, tx.Status)
}

type failingUpdates struct {
	domain.Repository
}

func (failingUpdates) Update(context.Context, *models.PaymentTransaction) error {
	return errors.New("connection reset")
}

func TestCheckout_GatewayFailureLogsLostUpdate(t *testing.T) {
	db, b, o := seed(t)
	gw := &mockGateway{}
	gw.On("CreateCheckout", mock.Anything, mock.Anything).Return(payments.Checkout{}, errors.New("boom"))

	repo := failingUpdates{repository.NewPaymentGormRepository(db)}
	s := NewService(repo, repository.NewSoftDeleteRepository[models.BusinessUser](db), gw, nil, nil, "")

	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	_, err := s.Checkout(ctx, audit.Actor{}, CheckoutInput{BusinessUserID: b.ID, ReferenceType: "catering_order", ReferenceID: o.ID})
	assert.True(t, httperr.IsBusiness(err, "payment_gateway_error"))
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), "connection reset")
	assert.Contains(t, buf.String(), `"transaction_id":1`)
}

func TestWebhook_SettlesReference(t *testing.T) {
	db, b, o := seed(t)
	notify := &fakeNotifier{}
	gw := &mockGateway{}
	gw.On("CreateCheckout", mock.Anything, mock.Anything).Return(payments.Checkout{PreferenceID: "pref-1"}, nil)
	gw.On("GetPayment", mock.Anything, "987").Return(payments.Payment{ID: "987", Status: "approved", ExternalReference: "tx-1", Amount: 1000, Method: "upi"}, nil)
	gw.On("GetPayment", mock.Anything, "555").Return(payments.Payment{ID: "555", Status: "approved", ExternalReference: "someone-else"}, nil)

	s := NewService(repository.NewPaymentGormRepository(db), repository.NewSoftDeleteRepository[models.BusinessUser](db), gw, notify, nil, "")
	ctx := context.Background()

	_, err := s.Checkout(ctx, audit.Actor{}, CheckoutInput{BusinessUserID: b.ID, ReferenceType: "catering_order", ReferenceID: o.ID})
	require.NoError(t, err)

	tx, err := s.HandleNotification(ctx, "987")
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.Equal(t, models.TxSuccess, tx.Status)
	assert.Equal(t, "987", tx.GatewayTransactionID)

	var order models.CateringOrder
	require.NoError(t, db.First(&order, o.ID).Error)
	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)

	require.Len(t, notify.notes, 1)
	assert.Equal(t, paymentNote{ownerID: 5, status: models.TxSuccess}, notify.notes[0])

	// a repeated notification does not notify again
	_, err = s.HandleNotification(ctx, "987")
	require.NoError(t, err)
	assert.Len(t, notify.notes, 1)

	tx, err = s.HandleNotification(ctx, "555")
	require.NoError(t, err)
	assert.Nil(t, tx)

	list, total, err := s.Transactions(ctx, b.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}

func TestParseReference(t *testing.T) {
	id, ok := parseReference("tx-42")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	for _, bad := range []string{"", "tx-", "tx-0", "tx-abc", "42"} {
		_, ok := parseReference(bad)
		assert.False(t, ok, bad)
	}
}
