package entity

// CustomerSnapshot datos del cliente copiados a la factura.
type CustomerSnapshot struct {
	DocumentID string // cédula o RUC
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Address    string
}

// FullName nombre y apellido del cliente.
func (c CustomerSnapshot) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
