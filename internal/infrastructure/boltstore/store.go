// Package boltstore implementa docstore.Store sobre un archivo bbolt: un bucket por colección,
// clave = ID del documento. bbolt serializa las transacciones de escritura, por lo que nunca
// devuelve docstore.ErrConflict.
package boltstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/jhoicas/Facturacion-api/internal/domain/docstore"
)

var _ docstore.Store = (*Store)(nil)

// Store adaptador bbolt.
type Store struct {
	db *bolt.DB
}

// Open abre (o crea) el archivo de datos.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("boltstore: abrir %s: %w: %w", path, docstore.ErrUnavailable, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx docstore.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(btx *bolt.Tx) error {
		if err := fn(ctx, &boltTx{tx: btx}); err != nil {
			return err
		}
		// Devolver error aquí provoca rollback.
		return ctx.Err()
	})
	return mapErr(err)
}

func (s *Store) Get(ctx context.Context, ref docstore.Ref, dst any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var found bool
	err := s.db.View(func(btx *bolt.Tx) error {
		b := btx.Bucket([]byte(ref.Collection))
		if b == nil {
			return nil
		}
		v := b.Get([]byte(ref.ID))
		if v == nil {
			return nil
		}
		found = true
		return docstore.Decode(v, dst)
	})
	return found, mapErr(err)
}

func (s *Store) List(ctx context.Context, collection string) ([]docstore.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]docstore.Snapshot, 0)
	err := s.db.View(func(btx *bolt.Tx) error {
		b := btx.Bucket([]byte(collection))
		if b == nil {
			return nil
		}
		// Los cursores de bbolt recorren las claves en orden de bytes.
		return b.ForEach(func(k, v []byte) error {
			data := make([]byte, len(v))
			copy(data, v)
			out = append(out, docstore.Snapshot{Ref: docstore.Doc(collection, string(k)), Data: data})
			return nil
		})
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, bolt.ErrDatabaseNotOpen) || errors.Is(err, bolt.ErrTimeout) {
		return fmt.Errorf("boltstore: %w: %w", docstore.ErrUnavailable, err)
	}
	return err
}

type boltTx struct {
	tx *bolt.Tx
}

func (t *boltTx) raw(ref docstore.Ref) []byte {
	b := t.tx.Bucket([]byte(ref.Collection))
	if b == nil {
		return nil
	}
	return b.Get([]byte(ref.ID))
}

func (t *boltTx) put(ref docstore.Ref, data []byte) error {
	b, err := t.tx.CreateBucketIfNotExists([]byte(ref.Collection))
	if err != nil {
		return fmt.Errorf("boltstore: bucket %s: %w", ref.Collection, err)
	}
	return b.Put([]byte(ref.ID), data)
}

func (t *boltTx) Get(ref docstore.Ref, dst any) (bool, error) {
	v := t.raw(ref)
	if v == nil {
		return false, nil
	}
	return true, docstore.Decode(v, dst)
}

func (t *boltTx) Set(ref docstore.Ref, v any, opts ...docstore.SetOption) error {
	if docstore.ApplySetOptions(opts).Merge {
		fields, err := docstore.ToFields(v)
		if err != nil {
			return err
		}
		data, err := docstore.MergeFields(t.raw(ref), fields)
		if err != nil {
			return err
		}
		return t.put(ref, data)
	}
	data, err := docstore.Encode(v)
	if err != nil {
		return err
	}
	return t.put(ref, data)
}

func (t *boltTx) Update(ref docstore.Ref, patch map[string]any) error {
	base := t.raw(ref)
	if base == nil {
		return docstore.ErrNotFound
	}
	data, err := docstore.MergeFields(base, patch)
	if err != nil {
		return err
	}
	return t.put(ref, data)
}

func (t *boltTx) Delete(ref docstore.Ref) error {
	b := t.tx.Bucket([]byte(ref.Collection))
	if b == nil {
		return nil
	}
	return b.Delete([]byte(ref.ID))
}
