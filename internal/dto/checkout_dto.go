package dto

type CheckoutTheme struct {
	Color string `json:"color"`
}

// CheckoutDescriptor is handed to the hosted checkout widget as-is.
type CheckoutDescriptor struct {
	Key         string        `json:"key"`
	Amount      int64         `json:"amount"`
	Currency    string        `json:"currency"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Image       string        `json:"image,omitempty"`
	ProductID   string        `json:"product_id"`
	Theme       CheckoutTheme `json:"theme"`
}

type CheckoutSuccessRequest struct {
	ProductID string `json:"product_id"`
	PaymentID string `json:"razorpay_payment_id"`
}

type CheckoutFailureRequest struct {
	ProductID string `json:"product_id"`
	Reason    string `json:"reason"`
}

type CheckoutResultResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Next    string `json:"next,omitempty"`
}
