package dto

// BookingConfirmationPayload carries everything the confirmation messages
// need. It is JSON-marshalled into the task queue, so it must stay flat and
// self-contained: handlers never read the database.
type BookingConfirmationPayload struct {
	ShopName      string `json:"shop_name"`
	ShopPhone     string `json:"shop_phone"`
	ShopAddress   string `json:"shop_address"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerPhone string `json:"customer_phone"`
	Service       string `json:"service"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Reference     string `json:"reference"`
}
