package dto

// ErrorResponse cuerpo de error HTTP. Details lleva datos estructurados
// (p. ej. solicitado/disponible en estoque insuficiente).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// IDResponse respuesta de las operaciones que agregan un registro.
type IDResponse struct {
	ID int64 `json:"id"`
}

// DeletedResponse respuesta de los borrados administrativos.
type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}
