package models

// TrackRequest representa o request de rastreamento vindo do portal ou do
// chatbot. Query aceita código de pedido (ex: "R595531189-dup") ou email.
type TrackRequest struct {
	Query string `json:"query"`

	// Email do cliente logado, usado para validar que o pedido pertence
	// a ele quando a busca é por código.
	CustomerEmail string `json:"customer_email,omitempty"`

	SessionID string `json:"session_id,omitempty"`
}

// TrackResponse é a resposta do endpoint de rastreamento.
type TrackResponse struct {
	Status  string  `json:"status"`
	Details string  `json:"details"`
	Order   *Order  `json:"order,omitempty"`
	Orders  []Order `json:"orders,omitempty"`
}
