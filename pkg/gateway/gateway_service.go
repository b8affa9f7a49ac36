package gateway

import (
	"Resto-POS-Backend/domain"
	"Resto-POS-Backend/internal/utils"
	"context"
	"math"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type (
	GatewayService interface {
		CreateCharge(ctx context.Context, paymentID string, amount float64) (domain.GatewayChargeResponse, error)
	}

	gatewayService struct {
		client snap.Client
	}
)

func NewGatewayService() GatewayService {
	env := midtrans.Sandbox
	if utils.GetConfig("IsProd") == "true" {
		env = midtrans.Production
	}

	var client snap.Client
	client.New(utils.GetConfig("SERVER_KEY"), env)

	return &gatewayService{client: client}
}

// CreateCharge opens a hosted checkout for a card or wallet payment. The
// gateway echoes paymentID back through the webhook as its order_id.
func (s *gatewayService) CreateCharge(ctx context.Context, paymentID string, amount float64) (domain.GatewayChargeResponse, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  paymentID,
			GrossAmt: int64(math.Round(amount)),
		},
	}

	resp, err := s.client.CreateTransaction(req)
	if err != nil {
		return domain.GatewayChargeResponse{}, domain.ErrGatewayUnavailable
	}

	return domain.GatewayChargeResponse{
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}
