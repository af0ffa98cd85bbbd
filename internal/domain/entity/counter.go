package entity

// Counter último consecutivo emitido para un tipo de documento.
// Se crea implícitamente en la primera asignación (ausente = 0) y nunca se elimina.
type Counter struct {
	DocumentType DocumentType
	LastIssued   int64
}

// Next devuelve el consecutivo que recibiría el siguiente documento.
func (c Counter) Next() int64 {
	return c.LastIssued + 1
}
