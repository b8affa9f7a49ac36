package domain

type (
	GatewayChargeResponse struct {
		Token       string `json:"token"`
		RedirectURL string `json:"redirect_url"`
	}

	// GatewayNotificationRequest is the callback body the payment gateway
	// posts to the webhook. OrderID carries our payment ID.
	GatewayNotificationRequest struct {
		OrderID           string `json:"order_id" validate:"required"`
		TransactionStatus string `json:"transaction_status" validate:"required"`
		FraudStatus       string `json:"fraud_status"`
	}
)
