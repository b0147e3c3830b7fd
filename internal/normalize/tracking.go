package normalize

import "github.com/yoobe-br/cubbo-order-support/internal/models"

// Campos de shipping_information que o normalizador resolve por conta
// própria; tudo que não estiver aqui é preservado em Extra.
var knownTrackingKeys = map[string]bool{
	"tracking_url":           true,
	"tracking_number":        true,
	"courier":                true,
	"email":                  true,
	"estimated_time_arrival": true,
	"address":                true,
}

// normalizeTracking monta as informações de rastreio. A API retorna
// delivery_tracking como lista (usamos a primeira entrada), com
// return_shipping_labels como fallback; shipping_method traz a
// transportadora. Campos desconhecidos do shipping_information original
// são mantidos.
func normalizeTracking(raw models.RawOrder) models.TrackingInfo {
	base := innerMap(raw["shipping_information"])

	var entry map[string]any
	if tracking, _ := firstSlice(raw, "delivery_tracking"); len(tracking) > 0 {
		entry = innerMap(tracking[0])
	} else if labels, _ := firstSlice(raw, "return_shipping_labels"); len(labels) > 0 {
		entry = innerMap(labels[0])
	}

	info := models.TrackingInfo{}

	info.TrackingURL = stringAt(entry, "tracking_url")
	if info.TrackingURL == "" {
		info.TrackingURL = stringAt(base, "tracking_url")
	}
	if info.TrackingURL == "" {
		info.TrackingURL = firstString(raw, "tracking_url")
	}
	if info.TrackingURL == "" {
		if urls, _ := firstSlice(raw, "tracking_urls"); len(urls) > 0 {
			info.TrackingURL = stringify(urls[0])
		}
	}

	info.TrackingNumber = stringAt(entry, "shipping_number")
	if info.TrackingNumber == "" {
		info.TrackingNumber = stringAt(base, "tracking_number")
	}
	if info.TrackingNumber == "" {
		info.TrackingNumber = firstString(raw, "tracking_number")
	}

	// Transportadora: o nome vindo do shipping_method ganha dos aliases
	// soltos.
	info.Courier = stringAt(innerMap(raw["shipping_method"]), "carrier_name")
	if info.Courier == "" {
		info.Courier = stringAt(base, "courier")
	}
	if info.Courier == "" {
		info.Courier = firstString(raw, "courier", "carrier_name")
	}

	info.Email = stringAt(innerMap(raw["shipping"]), "email")
	if info.Email == "" {
		info.Email = stringAt(base, "email")
	}
	if info.Email == "" {
		info.Email = firstString(raw, "shipping_email")
	}

	info.EstimatedTimeArrival = stringAt(base, "estimated_time_arrival")
	if info.EstimatedTimeArrival == "" {
		info.EstimatedTimeArrival = firstString(raw, "estimated_time_arrival")
	}

	for k, v := range base {
		if !knownTrackingKeys[k] {
			if info.Extra == nil {
				info.Extra = make(map[string]any)
			}
			info.Extra[k] = v
		}
	}
	return info
}
