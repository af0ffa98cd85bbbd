package docrepo

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain/docstore"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var (
	_ repository.InvoiceRepository = (*InvoiceRepository)(nil)
	_ repository.InvoiceReader     = (*InvoiceReader)(nil)
)

// businessDoc copia del negocio dentro de la venta; aquí el correo se guarda como email.
type businessDoc struct {
	Nombre    string `json:"nombre"`
	RUC       string `json:"ruc"`
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
	Email     string `json:"email"`
	Ciudad    string `json:"ciudad"`
	LogoURL   string `json:"logoUrl"`
}

type customerDoc struct {
	Documento string `json:"documento"`
	Nombre    string `json:"nombre"`
	Apellido  string `json:"apellido"`
	Correo    string `json:"correo"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
}

type itemDoc struct {
	IDProducto     string          `json:"idProducto"`
	Nombre         string          `json:"nombre"`
	Categoria      string          `json:"categoria"`
	Marca          string          `json:"marca"`
	Cantidad       int64           `json:"cantidad"`
	TipoPrecio     string          `json:"tipoPrecio"`
	PrecioUsado    decimal.Decimal `json:"precioUsado"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
	PrecioMayor    decimal.Decimal `json:"precioMayor"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// invoiceDoc documento de la colección ventas. Los campos subtotal, iva, total,
// tipodocumento y createdAt también se leen desde SQL en el reporte de ventas de PostgreSQL.
// fechaRegistro se guarda como fecha simple (YYYY-MM-DD).
type invoiceDoc struct {
	ID              string          `json:"id"`
	TipoDocumento   string          `json:"tipodocumento"`
	NumeroDocumento string          `json:"numerodocumento"`
	Secuencia       int64           `json:"secuencia"`
	FechaRegistro   string          `json:"fechaRegistro"`
	Negocio         businessDoc     `json:"negocio"`
	Cliente         customerDoc     `json:"cliente"`
	UsuarioRegistro string          `json:"usuarioRegistro"`
	Items           []itemDoc       `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	IVA             decimal.Decimal `json:"iva"`
	Total           decimal.Decimal `json:"total"`
	MensajePie      string          `json:"mensajePie"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func invoiceRef(id string) docstore.Ref {
	return docstore.Doc(CollectionInvoices, id)
}

func toBusinessDoc(b entity.BusinessInfo) businessDoc {
	return businessDoc{
		Nombre:    b.Name,
		RUC:       b.TaxID,
		Direccion: b.Address,
		Telefono:  b.Phone,
		Email:     b.Email,
		Ciudad:    b.City,
		LogoURL:   b.LogoURL,
	}
}

func (d businessDoc) toEntity() entity.BusinessInfo {
	return entity.BusinessInfo{
		Name:    d.Nombre,
		TaxID:   d.RUC,
		Address: d.Direccion,
		Phone:   d.Telefono,
		Email:   d.Email,
		City:    d.Ciudad,
		LogoURL: d.LogoURL,
	}
}

func toInvoiceDoc(inv *entity.Invoice) invoiceDoc {
	items := make([]itemDoc, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, itemDoc{
			IDProducto:     it.ProductID,
			Nombre:         it.ProductName,
			Categoria:      it.Category,
			Marca:          it.Brand,
			Cantidad:       it.Quantity,
			TipoPrecio:     string(it.PriceTier),
			PrecioUsado:    it.UnitPriceUsed,
			PrecioUnitario: it.UnitPrice,
			PrecioMayor:    it.WholesalePrice,
			Subtotal:       it.LineSubtotal,
		})
	}
	c := inv.Customer
	return invoiceDoc{
		ID:              inv.ID,
		TipoDocumento:   string(inv.DocumentType),
		NumeroDocumento: inv.DocumentNumber,
		Secuencia:       inv.Sequence,
		FechaRegistro:   formatDate(inv.IssueDate),
		Negocio:         toBusinessDoc(inv.Business),
		Cliente: customerDoc{
			Documento: c.DocumentID,
			Nombre:    c.FirstName,
			Apellido:  c.LastName,
			Correo:    c.Email,
			Telefono:  c.Phone,
			Direccion: c.Address,
		},
		UsuarioRegistro: inv.CreatedBy,
		Items:           items,
		Subtotal:        inv.Subtotal,
		IVA:             inv.Tax,
		Total:           inv.Total,
		MensajePie:      inv.FooterMessage,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
}

func (d invoiceDoc) toEntity(id string) *entity.Invoice {
	if d.ID == "" {
		d.ID = id
	}
	items := make([]entity.InvoiceLineItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, entity.InvoiceLineItem{
			ProductID:      it.IDProducto,
			ProductName:    it.Nombre,
			Category:       it.Categoria,
			Brand:          it.Marca,
			Quantity:       it.Cantidad,
			PriceTier:      entity.PriceTier(it.TipoPrecio),
			UnitPriceUsed:  it.PrecioUsado,
			UnitPrice:      it.PrecioUnitario,
			WholesalePrice: it.PrecioMayor,
			LineSubtotal:   it.Subtotal,
		})
	}
	seq := d.Secuencia
	if seq == 0 {
		// Ventas anteriores a este servicio no guardan la secuencia.
		seq = sequenceFromNumber(d.NumeroDocumento)
	}
	return &entity.Invoice{
		ID:             d.ID,
		DocumentType:   entity.DocumentType(d.TipoDocumento),
		DocumentNumber: d.NumeroDocumento,
		Sequence:       seq,
		IssueDate:      parseDate(d.FechaRegistro),
		Business:       d.Negocio.toEntity(),
		Customer: entity.CustomerSnapshot{
			DocumentID: d.Cliente.Documento,
			FirstName:  d.Cliente.Nombre,
			LastName:   d.Cliente.Apellido,
			Email:      d.Cliente.Correo,
			Phone:      d.Cliente.Telefono,
			Address:    d.Cliente.Direccion,
		},
		CreatedBy:     d.UsuarioRegistro,
		Items:         items,
		Subtotal:      d.Subtotal,
		Tax:           d.IVA,
		Total:         d.Total,
		FooterMessage: d.MensajePie,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// InvoiceRepository ventas dentro de una transacción.
type InvoiceRepository struct {
	tx docstore.Tx
}

// NewInvoiceRepository crea el repositorio atado a tx.
func NewInvoiceRepository(tx docstore.Tx) *InvoiceRepository {
	return &InvoiceRepository{tx: tx}
}

func (r *InvoiceRepository) Create(inv *entity.Invoice) error {
	return r.tx.Set(invoiceRef(inv.ID), toInvoiceDoc(inv))
}

func (r *InvoiceRepository) GetByID(id string) (*entity.Invoice, error) {
	ref := invoiceRef(id)
	var d invoiceDoc
	ok, err := r.tx.Get(ref, &d)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound(ref, docstore.ErrNotFound)
	}
	return d.toEntity(id), nil
}

// Update reemplaza el documento completo; exige que exista.
func (r *InvoiceRepository) Update(inv *entity.Invoice) error {
	if _, err := r.GetByID(inv.ID); err != nil {
		return err
	}
	return r.tx.Set(invoiceRef(inv.ID), toInvoiceDoc(inv))
}

func (r *InvoiceRepository) Delete(id string) error {
	return r.tx.Delete(invoiceRef(id))
}

// InvoiceReader consultas de ventas.
type InvoiceReader struct {
	store docstore.Store
}

// NewInvoiceReader crea el lector de ventas.
func NewInvoiceReader(store docstore.Store) *InvoiceReader {
	return &InvoiceReader{store: store}
}

func (r *InvoiceReader) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	ref := invoiceRef(id)
	var d invoiceDoc
	ok, err := r.store.Get(ctx, ref, &d)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound(ref, docstore.ErrNotFound)
	}
	return d.toEntity(id), nil
}

func (r *InvoiceReader) List(ctx context.Context, docType entity.DocumentType) ([]*entity.Invoice, error) {
	snaps, err := r.store.List(ctx, CollectionInvoices)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Invoice, 0, len(snaps))
	for _, s := range snaps {
		var d invoiceDoc
		if err := s.DataTo(&d); err != nil {
			return nil, err
		}
		if docType != "" && entity.DocumentType(d.TipoDocumento) != docType {
			continue
		}
		out = append(out, d.toEntity(s.Ref.ID))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
