package models

import "encoding/json"

// Order é a representação canônica de um pedido, consumida por todo o
// sistema (exibição, vínculo com tickets, respostas do chatbot). É sempre
// construída a partir de um RawOrder pelo normalizador — nunca persistida.
type Order struct {
	ID          string `json:"id"`
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`

	// Datas em ISO-8601. Nunca contêm valor inválido: entrada não
	// parseável vira campo ausente (created_at cai para o horário atual).
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at,omitempty"`
	ShippedAt   string `json:"shipped_at,omitempty"`
	DeliveredAt string `json:"delivered_at,omitempty"`

	Items        []OrderItem `json:"items"`
	ItemsSummary []string    `json:"items_summary"`

	ShippingAddress *Address        `json:"shipping_address,omitempty"`
	BillingAddress  *Address        `json:"billing_address,omitempty"`
	PickupLocation  *PickupLocation `json:"pickup_location,omitempty"`

	ShippingInformation TrackingInfo `json:"shipping_information"`

	TotalAmount   *float64 `json:"total_amount,omitempty"`
	Currency      string   `json:"currency,omitempty"`
	PaymentMethod string   `json:"payment_method,omitempty"`

	CustomerEmail string `json:"customer_email,omitempty"`
	ShippingEmail string `json:"shipping_email,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`

	// Comprovante de recebimento, quando a API disponibiliza.
	ReceiptURL   string `json:"receipt_url,omitempty"`
	ReceiptImage string `json:"receipt_image,omitempty"`
}

// OrderItem é um item de linha do pedido. Total é calculado como
// UnitPrice × Quantity quando a API não envia o valor pronto.
type OrderItem struct {
	SKU       string   `json:"sku"`
	Name      string   `json:"name,omitempty"`
	Quantity  int      `json:"quantity"`
	UnitPrice *float64 `json:"price,omitempty"`
	LineTotal *float64 `json:"total,omitempty"`
}

// Address é o formato canônico de endereço (entrega ou cobrança).
type Address struct {
	Street       string `json:"street,omitempty"`
	StreetNumber string `json:"street_number,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zip_code,omitempty"`
	Country      string `json:"country,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Reference    string `json:"reference,omitempty"`
}

// Empty informa se nenhum campo identificador do endereço foi preenchido.
// País não conta: ele recebe default mesmo sem endereço reconhecível.
func (a *Address) Empty() bool {
	if a == nil {
		return true
	}
	return a.Street == "" && a.StreetNumber == "" && a.Neighborhood == "" &&
		a.City == "" && a.State == "" && a.ZipCode == "" &&
		a.Complement == "" && a.Reference == ""
}

// PickupLocation descreve um ponto de coleta (Click and Collect). Um pedido
// tem local de coleta OU endereço de entrega, não os dois.
type PickupLocation struct {
	ServiceName string `json:"service_name"`
	ServiceCode string `json:"service_code,omitempty"`
	Source      string `json:"source,omitempty"`
	Description string `json:"description,omitempty"`
	Distance    string `json:"distance,omitempty"`
}

// TrackingInfo agrega os dados de rastreio/entrega. Extra preserva campos
// do shipping_information original que o normalizador não reconhece.
type TrackingInfo struct {
	TrackingURL          string `json:"tracking_url,omitempty"`
	TrackingNumber       string `json:"tracking_number,omitempty"`
	Courier              string `json:"courier,omitempty"`
	Email                string `json:"email,omitempty"`
	EstimatedTimeArrival string `json:"estimated_time_arrival,omitempty"`

	Extra map[string]any `json:"-"`
}

// MarshalJSON devolve os campos conhecidos por cima dos campos extras
// preservados, no mesmo objeto.
func (t TrackingInfo) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(t.Extra)+5)
	for k, v := range t.Extra {
		out[k] = v
	}
	if t.TrackingURL != "" {
		out["tracking_url"] = t.TrackingURL
	}
	if t.TrackingNumber != "" {
		out["tracking_number"] = t.TrackingNumber
	}
	if t.Courier != "" {
		out["courier"] = t.Courier
	}
	if t.Email != "" {
		out["email"] = t.Email
	}
	if t.EstimatedTimeArrival != "" {
		out["estimated_time_arrival"] = t.EstimatedTimeArrival
	}
	return json.Marshal(out)
}
