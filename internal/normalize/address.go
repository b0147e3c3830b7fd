package normalize

import (
	"strings"

	"github.com/yoobe-br/cubbo-order-support/internal/models"
)

// A API codificou endereços de três jeitos ao longo do tempo. Primeiro
// classificamos o objeto cru em um dos dialetos, depois aplicamos o
// mapeamento daquele dialeto — detecção e mapeamento nunca se misturam.
type addressDialect int

const (
	dialectNone addressDialect = iota
	// address_1/address_2: rua e número concatenados em address_1
	// separados por vírgula, bairro em address_2.
	dialectCombined
	// Variante sem underscore: address1/address2.
	dialectCombinedPlain
	// Campos discretos street/street_number/neighborhood (formato que o
	// próprio normalizador produz — garante reentrada estável).
	dialectStandard
)

var (
	shippingAddressAliases = []string{
		"shipping", "shipping_address", "shippingAddress",
		"address", "delivery_address", "deliveryAddress",
	}
	billingAddressAliases = []string{"billing", "billing_address", "billingAddress"}
)

func classifyAddress(m map[string]any) addressDialect {
	switch {
	case m == nil:
		return dialectNone
	case stringAt(m, "address_1") != "" || stringAt(m, "address_2") != "":
		return dialectCombined
	case stringAt(m, "address1") != "" || stringAt(m, "address2") != "":
		return dialectCombinedPlain
	case stringAt(m, "street") != "" || stringAt(m, "city") != "":
		return dialectStandard
	default:
		return dialectNone
	}
}

// normalizeShippingAddress localiza e normaliza o endereço de entrega.
// Devolve nil quando nenhum dialeto conhecido casa — nunca um endereço
// meio-populado.
func normalizeShippingAddress(raw models.RawOrder, defaultCountry string) *models.Address {
	candidate := firstMap(raw, shippingAddressAliases...)
	if candidate == nil {
		// O endereço pode vir aninhado no bloco de informações de envio.
		if info := innerMap(raw["shipping_information"]); info != nil {
			candidate = innerMap(info["address"])
		}
	}

	if addr := mapAddress(candidate, defaultCountry); addr != nil {
		return addr
	}
	// Integrações antigas jogam os campos soltos na raiz do pedido.
	return looseRootAddress(raw, defaultCountry)
}

func normalizeBillingAddress(raw models.RawOrder, defaultCountry string) *models.Address {
	return mapAddress(firstMap(raw, billingAddressAliases...), defaultCountry)
}

func mapAddress(m map[string]any, defaultCountry string) *models.Address {
	var addr *models.Address
	switch classifyAddress(m) {
	case dialectCombined:
		addr = mapCombinedAddress(m, "address_1", "address_2", defaultCountry)
	case dialectCombinedPlain:
		addr = mapCombinedAddress(m, "address1", "address2", defaultCountry)
	case dialectStandard:
		addr = mapStandardAddress(m, defaultCountry)
	default:
		return nil
	}
	if addr.Empty() {
		return nil
	}
	return addr
}

// mapCombinedAddress trata os dialetos "linha 1 + linha 2": a linha 1 pode
// trazer "Rua A, 123" (rua e número separados por vírgula) e a linha 2
// carrega o bairro.
func mapCombinedAddress(m map[string]any, line1Key, line2Key, defaultCountry string) *models.Address {
	street, number := splitStreetLine(stringAt(m, line1Key))

	if street == "" {
		street = firstString(m, "street", "street_name", "logradouro")
	}
	if number == "" {
		number = firstString(m, "number", "street_number", "streetNumber")
	}

	neighborhood := stringAt(m, line2Key)
	if neighborhood == "" {
		neighborhood = firstString(m, "neighborhood", "neighbourhood", "district", "bairro")
	}

	return &models.Address{
		Street:       street,
		StreetNumber: number,
		Neighborhood: neighborhood,
		City:         firstString(m, "city", "cidade"),
		State:        firstString(m, "state", "province", "estado"),
		ZipCode:      firstString(m, "zip_code", "zipCode", "postal_code", "postalCode", "cep"),
		Country:      countryOrDefault(m, defaultCountry),
		Complement:   firstString(m, "complement", "complemento", "address_line2"),
		Reference:    firstString(m, "reference", "referencia", "address_reference"),
	}
}

// mapStandardAddress trata o dialeto já canônico, com campos discretos.
func mapStandardAddress(m map[string]any, defaultCountry string) *models.Address {
	return &models.Address{
		Street:       firstString(m, "street", "street_name", "logradouro", "address_line1"),
		StreetNumber: firstString(m, "street_number", "streetNumber", "number", "address_number"),
		Neighborhood: firstString(m, "neighborhood", "neighbourhood", "district", "bairro"),
		City:         firstString(m, "city", "cidade"),
		State:        firstString(m, "state", "estado", "province"),
		ZipCode:      firstString(m, "zip_code", "zipCode", "postal_code", "postalCode", "cep"),
		Country:      countryOrDefault(m, defaultCountry),
		Complement:   firstString(m, "complement", "complemento", "address_line2"),
		Reference:    firstString(m, "reference", "referencia", "address_reference"),
	}
}

// looseRootAddress cobre pedidos antigos com os campos de endereço soltos
// no objeto raiz.
func looseRootAddress(raw models.RawOrder, defaultCountry string) *models.Address {
	if firstValue(raw, "street", "city", "zip_code", "cep", "address_1", "address1") == nil {
		return nil
	}
	addr := &models.Address{
		Street:       firstString(raw, "address_1", "address1", "street", "street_name", "logradouro"),
		StreetNumber: firstString(raw, "street_number", "streetNumber", "number"),
		Neighborhood: firstString(raw, "address_2", "address2", "neighborhood", "neighbourhood", "district", "bairro"),
		City:         firstString(raw, "city", "cidade"),
		State:        firstString(raw, "province", "state", "estado"),
		ZipCode:      firstString(raw, "zip_code", "zipCode", "postal_code", "postalCode", "cep"),
		Country:      countryOrDefault(raw, defaultCountry),
		Complement:   firstString(raw, "complement", "complemento"),
		Reference:    firstString(raw, "reference", "referencia"),
	}
	if addr.Empty() {
		return nil
	}
	return addr
}

func countryOrDefault(m map[string]any, defaultCountry string) string {
	if c := firstString(m, "country", "pais", "country_code"); c != "" {
		return c
	}
	return defaultCountry
}

// splitStreetLine separa "Rua A, 123" em rua e número.
func splitStreetLine(line string) (street, number string) {
	parts := strings.SplitN(line, ",", 2)
	street = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		number = strings.TrimSpace(parts[1])
	}
	return street, number
}
