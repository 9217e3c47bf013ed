package shopify

// ordersResponse is the envelope of GET /admin/api/<version>/orders.json
type ordersResponse struct {
	Orders []shopifyOrder `json:"orders"`
}

// shopResponse is the envelope of GET /admin/api/<version>/shop.json
type shopResponse struct {
	Shop struct {
		Name   string `json:"name"`
		Domain string `json:"myshopify_domain"`
		Email  string `json:"email"`
	} `json:"shop"`
}

type shopifyOrder struct {
	ID              int64             `json:"id"`
	OrderNumber     int64             `json:"order_number"`
	Customer        shopifyCustomer   `json:"customer"`
	ShippingAddress *shopifyAddress   `json:"shipping_address"`
	LineItems       []shopifyLineItem `json:"line_items"`
	TotalPrice      string            `json:"total_price"`
	FinancialStatus string            `json:"financial_status"`
	CreatedAt       string            `json:"created_at"`
}

type shopifyCustomer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type shopifyAddress struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Phone    string `json:"phone"`
}

type shopifyLineItem struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}
