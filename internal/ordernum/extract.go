// Package ordernum extrai códigos de pedido de texto livre (mensagens do
// chatbot, descrição de tickets) para vincular o atendimento ao pedido.
package ordernum

import (
	"regexp"
	"strings"
)

// Padrões observados nos códigos da loja:
//   - R seguido de números (R123456, R595531189-dup)
//   - LP com separador opcional (LP-12345, LP12345)
//   - "pedido <código>" / "order <código>"
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bR\d+[-\w]*`),
	regexp.MustCompile(`(?i)\bLP[-_]?\d+`),
	regexp.MustCompile(`(?i)pedido\s+([R\d]+[-\w]*)`),
	regexp.MustCompile(`(?i)order\s+([R\d]+[-\w]*)`),
}

var prefixRegex = regexp.MustCompile(`(?i)^(pedido|order)\s+`)

// Extract devolve os códigos de pedido encontrados no texto, sem
// duplicatas, na ordem em que aparecem.
func Extract(text string) []string {
	var found []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		for _, match := range pattern.FindAllString(text, -1) {
			cleaned := strings.TrimSpace(prefixRegex.ReplaceAllString(match, ""))
			if cleaned == "" || seen[cleaned] {
				continue
			}
			seen[cleaned] = true
			found = append(found, cleaned)
		}
	}
	return found
}
