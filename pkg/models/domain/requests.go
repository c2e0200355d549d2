package domain

// TIVRequest is a change request record kept in its own persisted
// collection rather than the domain snapshot.
type TIVRequest struct {
	ID           string `json:"id"`
	CustomerName string `json:"customer_name"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	ProductType  string `json:"product_type"`
	OrderType    string `json:"order_type,omitempty"`
	TeamID       string `json:"team_id,omitempty"`
}

// Acceleration is an expedite request record, persisted alongside TIV
// requests.
type Acceleration struct {
	ID           string `json:"id"`
	OrderID      string `json:"order_id"`
	CustomerName string `json:"customer_name"`
	ProductType  string `json:"product_type"`
	Reason       string `json:"reason,omitempty"`
	CreatedAt    string `json:"created_at"`
	TeamID       string `json:"team_id,omitempty"`
}
