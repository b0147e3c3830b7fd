package models

// RawOrder representa um pedido cru vindo da API Cubbo: um objeto JSON sem
// schema fixo. Os nomes de campo variam conforme a versão/integração da API,
// então tratamos como um saco de campos opcionais.
type RawOrder map[string]any
