// Package docrepo implementa los repositorios del dominio sobre cualquier docstore.Store
// (memoria, bbolt o PostgreSQL). Los nombres de colección y de campo son los del
// almacenamiento de documentos original y no deben cambiarse sin migrar los datos.
package docrepo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/docstore"
)

// Colecciones.
const (
	CollectionCounters   = "contadores"
	CollectionProducts   = "productos"
	CollectionInvoices   = "ventas"
	CollectionMovements  = "movimientos"
	CollectionHistory    = "historial"
	CollectionBusiness   = "negocio"
	CollectionCategories = "categorias"
	// Los clientes registrados viven junto a las cuentas en usuarios.
	CollectionCustomers = "usuarios"

	businessDocID = "config"
)

// notFound traduce docstore.ErrNotFound al error de dominio conservando la referencia.
func notFound(ref docstore.Ref, err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return fmt.Errorf("%s: %w", ref, domain.ErrNotFound)
	}
	return err
}

func decodeAll[T any](snaps []docstore.Snapshot) ([]T, error) {
	out := make([]T, 0, len(snaps))
	for _, s := range snaps {
		var d T
		if err := s.DataTo(&d); err != nil {
			return nil, fmt.Errorf("%s: %w", s.Ref, err)
		}
		out = append(out, d)
	}
	return out, nil
}

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// parseDate acepta YYYY-MM-DD o RFC 3339; cualquier otro valor queda en cero.
func parseDate(s string) time.Time {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC().Truncate(24 * time.Hour)
	}
	return time.Time{}
}

// sequenceFromNumber extrae el consecutivo de un número con formato PREFIJO-000123.
func sequenceFromNumber(number string) int64 {
	i := strings.LastIndexByte(number, '-')
	if i < 0 {
		return 0
	}
	n, err := strconv.ParseInt(number[i+1:], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// flexInt entero que también se lee desde texto ("12"), como lo guardan los formularios antiguos.
type flexInt int64

func (n *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return fmt.Errorf("entero inválido %s: %w", b, err)
		}
		v = int64(f)
	}
	*n = flexInt(v)
	return nil
}
