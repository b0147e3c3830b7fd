package ordernum

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "código simples",
			text: "meu pedido R123456 não chegou",
			want: []string{"R123456"},
		},
		{
			name: "código com sufixo",
			text: "sobre o R595531189-dup por favor",
			want: []string{"R595531189-dup"},
		},
		{
			name: "formato LP",
			text: "comprei no LP-12345 e também no LP98765",
			want: []string{"LP-12345", "LP98765"},
		},
		{
			name: "duplicata é removida",
			text: "pedido R111 ... o R111 de novo",
			want: []string{"R111"},
		},
		{
			name: "sem código",
			text: "quero trocar um produto",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %#v, esperava %#v", tt.text, got, tt.want)
			}
		})
	}
}
