// Package normalize implementa o motor de normalização de pedidos: converte
// payloads heterogêneos da API Cubbo (várias convenções históricas de nomes
// de campo, formatos de endereço, representações de lista de produtos e
// codificações de data) em uma única representação canônica.
//
// A função é total: qualquer objeto de entrada, inclusive vazio, produz um
// pedido canônico sem erro. Cada grupo de campos degrada de forma
// independente para "ausente" quando malformado.
package normalize

import (
	"time"

	"go.uber.org/zap"

	"github.com/yoobe-br/cubbo-order-support/internal/models"
)

// DefaultCountry é assumido quando um endereço é reconhecido mas não traz
// país — herança da operação single-market.
const DefaultCountry = "Brasil"

// Normalizer transforma RawOrder em Order. Seguro para uso concorrente:
// não tem estado mutável, só emite diagnósticos pelo logger injetado.
type Normalizer struct {
	log            *zap.Logger
	defaultCountry string
	now            func() time.Time
}

func New(log *zap.Logger, defaultCountry string) *Normalizer {
	if log == nil {
		log = zap.NewNop()
	}
	if defaultCountry == "" {
		defaultCountry = DefaultCountry
	}
	return &Normalizer{
		log:            log,
		defaultCountry: defaultCountry,
		now:            time.Now,
	}
}

// Normalize mapeia um payload cru em um pedido canônico. Nunca retorna
// erro: campo faltando ou malformado vira campo ausente, e os demais
// grupos continuam normalizando normalmente.
func (n *Normalizer) Normalize(raw models.RawOrder) models.Order {
	if raw == nil {
		raw = models.RawOrder{}
	}

	order := models.Order{
		ID:          firstString(raw, "id", "order_id"),
		OrderNumber: firstString(raw, "order_number", "orderNumber", "number"),
		Status:      firstString(raw, "status"),
	}

	order.CreatedAt = resolveDate(raw, createdAtAliases)
	if order.CreatedAt == "" {
		// A exibição sempre precisa de alguma data de criação.
		order.CreatedAt = n.now().UTC().Format(time.RFC3339Nano)
	}
	order.UpdatedAt = resolveDate(raw, updatedAtAliases)
	order.ShippedAt = resolveDate(raw, shippedAtAliases)
	order.DeliveredAt = resolveDate(raw, deliveredAtAliases)

	order.Items, order.ItemsSummary = normalizeItems(raw)

	order.ShippingAddress = normalizeShippingAddress(raw, n.defaultCountry)
	order.BillingAddress = normalizeBillingAddress(raw, n.defaultCountry)
	order.PickupLocation = normalizePickupLocation(raw)

	order.ShippingInformation = normalizeTracking(raw)

	if total, ok := toNumber(firstValue(raw, "total_amount", "total_price")); ok {
		order.TotalAmount = &total
	}
	order.Currency = firstString(raw, "currency")
	order.PaymentMethod = firstString(raw, "payment_method")

	order.CustomerEmail = firstString(raw, "customer_email")
	order.ShippingEmail = firstString(raw, "shipping_email")
	order.CustomerPhone = firstString(raw, "customer_phone")

	order.ReceiptURL = firstString(raw, "receipt_url", "receipt_proof_url")
	order.ReceiptImage = firstString(raw, "receipt_image", "receipt_proof_image", "receipt_base64")

	n.reportGaps(raw, &order)
	return order
}

func normalizePickupLocation(raw models.RawOrder) *models.PickupLocation {
	m := firstMap(raw, "pickup_location", "pickupLocation")
	if m == nil {
		return nil
	}
	loc := &models.PickupLocation{
		ServiceName: firstString(m, "service_name", "serviceName", "name"),
		ServiceCode: firstString(m, "service_code", "serviceCode"),
		Source:      firstString(m, "source"),
		Description: firstString(m, "description"),
		Distance:    firstString(m, "distance"),
	}
	if loc.ServiceName == "" && loc.Source == "" && loc.Description == "" {
		return nil
	}
	return loc
}

// reportGaps emite diagnósticos estruturados quando o resultado ficou
// suspeito de vazio: sem produtos ou sem endereço/local de coleta. Nunca
// altera o resultado nem vira erro — é visibilidade operacional.
func (n *Normalizer) reportGaps(raw models.RawOrder, order *models.Order) {
	if len(order.Items) == 0 && len(order.ItemsSummary) == 0 {
		n.log.Warn("pedido sem produtos após normalização",
			zap.String("order_id", order.ID),
			zap.String("order_number", order.OrderNumber),
			zap.Bool("has_order_lines", raw["order_lines"] != nil),
			zap.Bool("has_products", raw["products"] != nil),
			zap.Bool("has_items", raw["items"] != nil),
			zap.Bool("has_items_summary", raw["items_summary"] != nil),
		)
	}

	if order.ShippingAddress == nil && order.PickupLocation == nil {
		n.log.Warn("pedido sem endereço após normalização",
			zap.String("order_id", order.ID),
			zap.String("order_number", order.OrderNumber),
			zap.Bool("has_shipping", raw["shipping"] != nil),
			zap.Bool("has_shipping_address", raw["shipping_address"] != nil),
			zap.Bool("has_address", raw["address"] != nil),
			zap.Bool("has_delivery_address", raw["delivery_address"] != nil),
			zap.Bool("has_pickup_location", raw["pickup_location"] != nil),
		)
	}
}
