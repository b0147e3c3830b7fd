package format

import (
	"strings"
	"testing"

	"github.com/yoobe-br/cubbo-order-support/internal/models"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"pending", "Pendente"},
		{"SHIPPED", "Enviado"},
		{" delivered ", "Entregue"},
		{"cancelled", "Cancelado"},
		{"canceled", "Cancelado"},
		{"refunded", "Reembolsado"},
		{"algo_novo", "algo_novo"},
		{"", "Desconhecido"},
	}
	for _, tt := range tests {
		if got := Status(tt.in); got != tt.want {
			t.Errorf("Status(%q) = %q, esperava %q", tt.in, got, tt.want)
		}
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-15T10:30:00Z", "15/03/2024"},
		{"2024-03-15T10:30:00.123-03:00", "15/03/2024"},
		{"", ""},
		{"não-é-data", "não-é-data"},
	}
	for _, tt := range tests {
		if got := Date(tt.in); got != tt.want {
			t.Errorf("Date(%q) = %q, esperava %q", tt.in, got, tt.want)
		}
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{199.9, "R$ 199,90"},
		{0, "R$ 0,00"},
		{1234.5, "R$ 1234,50"},
	}
	for _, tt := range tests {
		if got := Money(tt.in); got != tt.want {
			t.Errorf("Money(%v) = %q, esperava %q", tt.in, got, tt.want)
		}
	}
}

func floatPtr(f float64) *float64 { return &f }

func TestOrderDetails(t *testing.T) {
	order := &models.Order{
		OrderNumber: "R595531189",
		Status:      "shipped",
		CreatedAt:   "2024-03-01T12:00:00Z",
		ShippedAt:   "2024-03-03T08:00:00Z",
		Items: []models.OrderItem{
			{SKU: "A1", Name: "Camiseta Azul", Quantity: 2, UnitPrice: floatPtr(49.95), LineTotal: floatPtr(99.9)},
			{SKU: "B2", Name: "Caneca", Quantity: 1},
		},
		TotalAmount:   floatPtr(129.8),
		PaymentMethod: "pix",
		ShippingAddress: &models.Address{
			Street:       "Rua das Flores",
			StreetNumber: "123",
			Neighborhood: "Jardim Primavera",
			City:         "São Paulo",
			State:        "SP",
			ZipCode:      "01310-100",
			Country:      "Brasil",
		},
		ShippingInformation: models.TrackingInfo{
			TrackingURL:    "https://rastreio.example/abc",
			TrackingNumber: "BR123456789",
			Courier:        "Correios",
		},
	}

	out := OrderDetails(order)

	for _, want := range []string{
		"Pedido: R595531189",
		"Status: Enviado",
		"Data do pedido: 01/03/2024",
		"Enviado em: 03/03/2024",
		"2x Camiseta Azul (R$ 99,90)",
		"1x Caneca",
		"Total: R$ 129,80",
		"Pagamento: pix",
		"Rua das Flores, 123",
		"São Paulo - SP",
		"CEP 01310-100",
		"Transportadora: Correios",
		"Código: BR123456789",
		"https://rastreio.example/abc",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("OrderDetails não contém %q:\n%s", want, out)
		}
	}
}

func TestOrderDetailsPickupOverAddress(t *testing.T) {
	order := &models.Order{
		OrderNumber: "R1",
		Status:      "processing",
		CreatedAt:   "2024-03-01T12:00:00Z",
		PickupLocation: &models.PickupLocation{
			ServiceName: "Loja Paulista",
			Description: "Av. Paulista, 1000",
		},
		ShippingAddress: &models.Address{City: "São Paulo"},
	}

	out := OrderDetails(order)
	if !strings.Contains(out, "Retirada:") {
		t.Errorf("esperava bloco de retirada:\n%s", out)
	}
	if strings.Contains(out, "Endereço de entrega:") {
		t.Errorf("retirada deveria suprimir o endereço:\n%s", out)
	}
}

func TestOrderSummary(t *testing.T) {
	order := &models.Order{
		OrderNumber: "R9",
		Status:      "delivered",
		CreatedAt:   "2024-02-10T00:00:00Z",
	}
	got := OrderSummary(order)
	want := "Pedido R9 - Entregue (10/02/2024)"
	if got != want {
		t.Errorf("OrderSummary = %q, esperava %q", got, want)
	}
}
