package gateway

// Event types the reconciliation layer reacts to. Anything else delivered to
// the webhook endpoint is acknowledged and ignored.
const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventPaymentIntentSucceeded   = "payment_intent.succeeded"
	EventChargeRefunded           = "charge.refunded"
)

const PaymentStatusPaid = "paid"
const PaymentStatusNoPaymentRequired = "no_payment_required"

// CheckoutSession is the gateway-vendor-neutral view of a checkout session.
// Amounts are in major currency units; conversion from cents happens at the
// adapter boundary.
type CheckoutSession struct {
	ID                string
	URL               string
	PaymentStatus     string
	Metadata          map[string]string
	ClientReferenceID string
	AmountTotal       float64
	PaymentIntentID   string
}

type PaymentIntent struct {
	ID       string
	Amount   float64
	Metadata map[string]string
}

type Charge struct {
	ID              string
	PaymentIntentID string
	AmountRefunded  float64
	RefundID        string
}

type Event struct {
	Type          string
	Session       *CheckoutSession
	PaymentIntent *PaymentIntent
	Charge        *Charge
}

// CheckoutParams carries everything needed to open a checkout session for a
// lesson purchase.
type CheckoutParams struct {
	LessonID          string
	UserID            string
	PurchaseID        string
	CreatorID         string
	Title             string
	Description       string
	Amount            float64
	Currency          string
	SuccessURL        string
	CancelURL         string
	ClientReferenceID string
}
