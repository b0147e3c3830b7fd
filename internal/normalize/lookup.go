package normalize

import (
	"strconv"
	"strings"
)

// Helpers de lookup sobre o payload cru. Cada campo canônico é resolvido
// por uma lista ordenada de aliases conhecidos; o primeiro valor "presente"
// ganha. Presença segue a semântica da API: nil, string vazia, zero e false
// contam como campo ausente.

func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case float64:
		return t != 0
	case bool:
		return t
	default:
		return true
	}
}

// firstValue devolve o primeiro valor presente entre os aliases, na ordem.
func firstValue(m map[string]any, aliases ...string) any {
	if m == nil {
		return nil
	}
	for _, k := range aliases {
		if v, ok := m[k]; ok && present(v) {
			return v
		}
	}
	return nil
}

// firstString resolve o primeiro alias presente como string. Números são
// convertidos (ids e telefones chegam como número em algumas integrações).
func firstString(m map[string]any, aliases ...string) string {
	return stringify(firstValue(m, aliases...))
}

// firstMap resolve o primeiro alias presente que seja um objeto.
func firstMap(m map[string]any, aliases ...string) map[string]any {
	for _, k := range aliases {
		if sub, ok := m[k].(map[string]any); ok && len(sub) > 0 {
			return sub
		}
	}
	return nil
}

// firstSlice resolve o primeiro alias que exista como array, mesmo vazio.
func firstSlice(m map[string]any, aliases ...string) ([]any, string) {
	for _, k := range aliases {
		if arr, ok := m[k].([]any); ok {
			return arr, k
		}
	}
	return nil, ""
}

func innerMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// toNumber coage valores numéricos, inclusive codificados como string
// ("10.50" → 10.5). Falha de parse é campo ausente, nunca zero.
func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func stringAt(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	return stringify(m[key])
}
