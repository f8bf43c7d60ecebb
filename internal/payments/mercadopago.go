package payments

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

type MercadoPago struct {
	preferences     preference.Client
	payments        payment.Client
	notificationURL string
}

func NewMercadoPago(accessToken, notificationURL string) (*MercadoPago, error) {
	if accessToken == "" {
		return nil, ErrDisabled
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{
		preferences:     preference.NewClient(cfg),
		payments:        payment.NewClient(cfg),
		notificationURL: notificationURL,
	}, nil
}

var _ Gateway = (*MercadoPago)(nil)

func (m *MercadoPago) CreateCheckout(ctx context.Context, req CheckoutRequest) (Checkout, error) {
	res, err := m.preferences.Create(ctx, preference.Request{
		Items: []preference.ItemRequest{{
			Title:      req.Title,
			Quantity:   1,
			UnitPrice:  req.Amount,
			CurrencyID: req.Currency,
		}},
		ExternalReference: req.ExternalReference,
		NotificationURL:   m.notificationURL,
	})
	if err != nil {
		return Checkout{}, err
	}

	return Checkout{
		PreferenceID:     res.ID,
		InitPoint:        res.InitPoint,
		SandboxInitPoint: res.SandboxInitPoint,
	}, nil
}

func (m *MercadoPago) GetPayment(ctx context.Context, id string) (Payment, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return Payment{}, fmt.Errorf("invalid payment id %q", id)
	}

	res, err := m.payments.Get(ctx, n)
	if err != nil {
		return Payment{}, err
	}

	return Payment{
		ID:                strconv.Itoa(res.ID),
		Status:            res.Status,
		StatusDetail:      res.StatusDetail,
		ExternalReference: res.ExternalReference,
		Amount:            res.TransactionAmount,
		Method:            res.PaymentMethodID,
	}, nil
}
