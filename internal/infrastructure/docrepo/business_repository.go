package docrepo

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/docstore"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var (
	_ repository.BusinessRepository     = (*BusinessRepository)(nil)
	_ repository.BusinessSnapshotReader = (*BusinessSnapshot)(nil)
)

var businessRef = docstore.Doc(CollectionBusiness, businessDocID)

// businessConfigDoc documento negocio/config; a diferencia de la copia en la venta, el correo va en "correo".
type businessConfigDoc struct {
	Nombre    string `json:"nombre"`
	RUC       string `json:"ruc"`
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
	Correo    string `json:"correo"`
	Ciudad    string `json:"ciudad"`
	LogoURL   string `json:"logoUrl"`
}

func toBusinessConfigDoc(b entity.BusinessInfo) businessConfigDoc {
	return businessConfigDoc{
		Nombre:    b.Name,
		RUC:       b.TaxID,
		Direccion: b.Address,
		Telefono:  b.Phone,
		Correo:    b.Email,
		Ciudad:    b.City,
		LogoURL:   b.LogoURL,
	}
}

func (d businessConfigDoc) toEntity() entity.BusinessInfo {
	return entity.BusinessInfo{
		Name:    d.Nombre,
		TaxID:   d.RUC,
		Address: d.Direccion,
		Phone:   d.Telefono,
		Email:   d.Correo,
		City:    d.Ciudad,
		LogoURL: d.LogoURL,
	}
}

// BusinessRepository documento negocio/config.
type BusinessRepository struct {
	store docstore.Store
}

// NewBusinessRepository crea el repositorio.
func NewBusinessRepository(store docstore.Store) *BusinessRepository {
	return &BusinessRepository{store: store}
}

func (r *BusinessRepository) Get(ctx context.Context) (*entity.BusinessInfo, error) {
	var d businessConfigDoc
	ok, err := r.store.Get(ctx, businessRef, &d)
	if err != nil || !ok {
		return nil, err
	}
	info := d.toEntity()
	return &info, nil
}

func (r *BusinessRepository) Save(ctx context.Context, info *entity.BusinessInfo) error {
	return r.store.RunTransaction(ctx, func(_ context.Context, tx docstore.Tx) error {
		return tx.Set(businessRef, toBusinessConfigDoc(*info))
	})
}

// BusinessSnapshot lectura de negocio/config dentro de una transacción.
type BusinessSnapshot struct {
	tx docstore.Tx
}

// NewBusinessSnapshot crea el lector atado a tx.
func NewBusinessSnapshot(tx docstore.Tx) *BusinessSnapshot {
	return &BusinessSnapshot{tx: tx}
}

func (r *BusinessSnapshot) Get() (*entity.BusinessInfo, error) {
	var d businessConfigDoc
	ok, err := r.tx.Get(businessRef, &d)
	if err != nil || !ok {
		return nil, err
	}
	info := d.toEntity()
	return &info, nil
}
