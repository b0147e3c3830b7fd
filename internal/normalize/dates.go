package normalize

import "time"

// Abaixo desse limiar um epoch numérico é interpretado como segundos e
// convertido para milissegundos antes do parse.
const epochMillisThreshold = 10_000_000_000

// Aliases históricos observados nas respostas da API, em ordem de
// preferência.
var (
	createdAtAliases   = []string{"created_at", "createdAt", "created", "date_created"}
	updatedAtAliases   = []string{"updated_at", "updatedAt", "updated", "date_modified"}
	shippedAtAliases   = []string{"shipping_date", "shipped_at", "shipment_date"}
	deliveredAtAliases = []string{"delivered_at", "delivery_date", "received_at"}
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// coerceDate aceita epoch numérico (segundos ou milissegundos) ou string de
// data e devolve ISO-8601. Valor não parseável é descartado — nunca
// repassamos data inválida para o restante do sistema.
func coerceDate(v any) (string, bool) {
	switch t := v.(type) {
	case float64:
		ms := int64(t)
		if ms < epochMillisThreshold {
			ms *= 1000
		}
		return time.UnixMilli(ms).UTC().Format(time.RFC3339Nano), true
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.UTC().Format(time.RFC3339Nano), true
			}
		}
		return "", false
	default:
		return "", false
	}
}

// resolveDate aplica a cadeia de aliases e coage o primeiro valor presente.
func resolveDate(raw map[string]any, aliases []string) string {
	v := firstValue(raw, aliases...)
	if v == nil {
		return ""
	}
	if iso, ok := coerceDate(v); ok {
		return iso
	}
	return ""
}
