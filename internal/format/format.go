// Package format monta textos em português para exibição ao cliente final:
// status traduzidos, datas dd/mm/aaaa, valores em reais e o bloco de
// detalhes do pedido.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/yoobe-br/cubbo-order-support/internal/models"
)

// statusPT traduz os status da Cubbo para o cliente final.
var statusPT = map[string]string{
	"pending":    "Pendente",
	"processing": "Processando",
	"picking":    "Em separação",
	"packing":    "Em embalagem",
	"shipped":    "Enviado",
	"delivered":  "Entregue",
	"cancelled":  "Cancelado",
	"canceled":   "Cancelado",
	"returned":   "Devolvido",
	"refunded":   "Reembolsado",
	"hold":       "Em espera",
	"backorder":  "Aguardando estoque",
}

// Status devolve o status traduzido, ou o original quando desconhecido.
func Status(status string) string {
	key := strings.ToLower(strings.TrimSpace(status))
	if pt, ok := statusPT[key]; ok {
		return pt
	}
	if status == "" {
		return "Desconhecido"
	}
	return status
}

// Date converte um timestamp ISO-8601 para dd/mm/aaaa. Valores que não
// parseiam voltam como vieram.
func Date(iso string) string {
	if iso == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339Nano, iso)
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006")
}

// Money formata um valor em reais com vírgula decimal.
func Money(amount float64) string {
	return "R$ " + strings.ReplaceAll(fmt.Sprintf("%.2f", amount), ".", ",")
}

// OrderSummary monta uma linha curta de resumo: número, status e data.
func OrderSummary(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pedido %s", order.OrderNumber)
	if order.Status != "" {
		fmt.Fprintf(&b, " - %s", Status(order.Status))
	}
	if d := Date(order.CreatedAt); d != "" {
		fmt.Fprintf(&b, " (%s)", d)
	}
	return b.String()
}

// OrderDetails monta o bloco completo de detalhes de um pedido para a
// conversa de suporte.
func OrderDetails(order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Pedido: %s\n", order.OrderNumber)
	fmt.Fprintf(&b, "Status: %s\n", Status(order.Status))
	if d := Date(order.CreatedAt); d != "" {
		fmt.Fprintf(&b, "Data do pedido: %s\n", d)
	}
	if order.ShippedAt != "" {
		fmt.Fprintf(&b, "Enviado em: %s\n", Date(order.ShippedAt))
	}
	if order.DeliveredAt != "" {
		fmt.Fprintf(&b, "Entregue em: %s\n", Date(order.DeliveredAt))
	}

	if len(order.Items) > 0 {
		b.WriteString("\nProdutos:\n")
		for _, item := range order.Items {
			fmt.Fprintf(&b, "  - %dx %s", item.Quantity, item.Name)
			if item.LineTotal != nil {
				fmt.Fprintf(&b, " (%s)", Money(*item.LineTotal))
			}
			b.WriteString("\n")
		}
	}

	if order.TotalAmount != nil {
		fmt.Fprintf(&b, "\nTotal: %s\n", Money(*order.TotalAmount))
	}
	if order.PaymentMethod != "" {
		fmt.Fprintf(&b, "Pagamento: %s\n", order.PaymentMethod)
	}

	switch {
	case order.PickupLocation != nil:
		b.WriteString("\nRetirada:\n")
		if order.PickupLocation.ServiceName != "" {
			fmt.Fprintf(&b, "  %s\n", order.PickupLocation.ServiceName)
		}
		if order.PickupLocation.Description != "" {
			fmt.Fprintf(&b, "  %s\n", order.PickupLocation.Description)
		}
	case order.ShippingAddress != nil:
		b.WriteString("\nEndereço de entrega:\n")
		b.WriteString(indentAddress(order.ShippingAddress))
	}

	if order.ShippingInformation.TrackingURL != "" || order.ShippingInformation.TrackingNumber != "" {
		b.WriteString("\nRastreamento:\n")
		if order.ShippingInformation.Courier != "" {
			fmt.Fprintf(&b, "  Transportadora: %s\n", order.ShippingInformation.Courier)
		}
		if order.ShippingInformation.TrackingNumber != "" {
			fmt.Fprintf(&b, "  Código: %s\n", order.ShippingInformation.TrackingNumber)
		}
		if order.ShippingInformation.TrackingURL != "" {
			fmt.Fprintf(&b, "  Link: %s\n", order.ShippingInformation.TrackingURL)
		}
		if order.ShippingInformation.EstimatedTimeArrival != "" {
			fmt.Fprintf(&b, "  Previsão de entrega: %s\n", Date(order.ShippingInformation.EstimatedTimeArrival))
		}
	}

	return b.String()
}

func indentAddress(addr *models.Address) string {
	var b strings.Builder

	street := addr.Street
	if addr.StreetNumber != "" {
		street = strings.TrimSpace(street + ", " + addr.StreetNumber)
		street = strings.TrimPrefix(street, ", ")
	}
	if addr.Complement != "" {
		street = strings.TrimSpace(street + " - " + addr.Complement)
		street = strings.TrimPrefix(street, "- ")
	}
	if street != "" {
		fmt.Fprintf(&b, "  %s\n", street)
	}
	if addr.Neighborhood != "" {
		fmt.Fprintf(&b, "  %s\n", addr.Neighborhood)
	}

	cityState := addr.City
	if addr.State != "" {
		if cityState != "" {
			cityState += " - " + addr.State
		} else {
			cityState = addr.State
		}
	}
	if cityState != "" {
		fmt.Fprintf(&b, "  %s\n", cityState)
	}
	if addr.ZipCode != "" {
		fmt.Fprintf(&b, "  CEP %s\n", addr.ZipCode)
	}
	return b.String()
}
