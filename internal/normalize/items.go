package normalize

import (
	"fmt"

	"github.com/yoobe-br/cubbo-order-support/internal/models"
)

// Nome genérico usado quando nem a linha nem o produto trazem nome ou sku.
const placeholderItemName = "Produto"

// normalizeItems resolve os itens do pedido. A API tem duas representações:
// order_lines (estrutura completa, cada linha embrulha um sub-objeto
// product) e products/items (lista achatada). order_lines tem prioridade.
func normalizeItems(raw models.RawOrder) ([]models.OrderItem, []string) {
	var items []models.OrderItem

	lines, source := firstSlice(raw, "order_lines", "products", "items")
	switch {
	case source == "order_lines":
		items = itemsFromOrderLines(lines)
	case source != "":
		items = itemsFromFlatList(lines)
	}

	summary := suppliedSummary(raw)
	if lines != nil && len(summary) == 0 {
		summary = deriveSummary(items)
	}
	if items == nil {
		items = []models.OrderItem{}
	}
	if summary == nil {
		summary = []string{}
	}
	return items, summary
}

// itemsFromOrderLines trata o formato completo:
// order_lines[{ sku, quantity, price_per_item, product: { name, sku, price } }]
func itemsFromOrderLines(lines []any) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(lines))
	for _, entry := range lines {
		line := innerMap(entry)
		if line == nil {
			continue
		}
		product := innerMap(line["product"])

		sku := firstString(line, "sku")
		if sku == "" {
			sku = firstString(product, "sku")
		}
		if sku == "" {
			sku = productCodeSKU(product)
		}

		name := firstString(line, "name")
		if name == "" {
			name = firstString(product, "name", "billing_name")
		}
		if name == "" {
			name = sku
		}
		if name == "" {
			name = placeholderItemName
		}

		// Preço da linha sobrepõe o preço base do produto.
		var unitPrice *float64
		if p, ok := toNumber(firstValue(line, "price_per_item")); ok {
			unitPrice = &p
		} else if p, ok := toNumber(firstValue(product, "price")); ok {
			unitPrice = &p
		}

		items = append(items, buildItem(sku, name, quantityOf(line), unitPrice, nil))
	}
	return items
}

// itemsFromFlatList trata o formato achatado products/items, com aliases
// próprios de preço e total.
func itemsFromFlatList(list []any) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(list))
	for _, entry := range list {
		product := innerMap(entry)
		if product == nil {
			continue
		}

		sku := firstString(product, "sku", "SKU")

		name := firstString(product, "name", "product_name", "title")
		if name == "" {
			name = sku
		}
		if name == "" {
			name = placeholderItemName
		}

		var unitPrice *float64
		if p, ok := toNumber(firstValue(product, "price", "unit_price", "cost")); ok {
			unitPrice = &p
		}

		var lineTotal *float64
		if t, ok := toNumber(firstValue(product, "total", "line_total")); ok {
			lineTotal = &t
		}

		items = append(items, buildItem(sku, name, quantityOf(product), unitPrice, lineTotal))
	}
	return items
}

func buildItem(sku, name string, quantity int, unitPrice, lineTotal *float64) models.OrderItem {
	if lineTotal == nil && unitPrice != nil {
		total := *unitPrice * float64(quantity)
		lineTotal = &total
	}
	return models.OrderItem{
		SKU:       sku,
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: lineTotal,
	}
}

func quantityOf(m map[string]any) int {
	if q, ok := toNumber(firstValue(m, "quantity")); ok && q > 0 {
		return int(q)
	}
	return 1
}

func productCodeSKU(product map[string]any) string {
	codes, _ := firstSlice(product, "product_codes")
	if len(codes) == 0 {
		return ""
	}
	return stringAt(innerMap(codes[0]), "sku")
}

// suppliedSummary devolve o items_summary enviado pela API, quando não
// vazio.
func suppliedSummary(raw models.RawOrder) []string {
	arr, ok := raw["items_summary"].([]any)
	if !ok || len(arr) == 0 {
		return nil
	}
	summary := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok && s != "" {
			summary = append(summary, s)
		}
	}
	return summary
}

// deriveSummary monta o resumo legível "2x Camiseta" por item.
func deriveSummary(items []models.OrderItem) []string {
	if len(items) == 0 {
		return nil
	}
	summary := make([]string, 0, len(items))
	for _, item := range items {
		name := item.Name
		if name == "" {
			name = item.SKU
		}
		if name == "" {
			name = placeholderItemName
		}
		summary = append(summary, fmt.Sprintf("%dx %s", item.Quantity, name))
	}
	return summary
}
