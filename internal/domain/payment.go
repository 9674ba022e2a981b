package domain

import "time"

// PaymentMethodCard is the only method the checkout flow records.
const PaymentMethodCard = "Кредитная карта"

type Payment struct {
	ID          int64
	BookingID   int64
	Amount      float64
	PaymentDate time.Time
	Method      string
}
