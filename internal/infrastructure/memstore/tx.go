package memstore

import (
	"github.com/jhoicas/Facturacion-api/internal/domain/docstore"
)

type pending struct {
	data    []byte
	deleted bool
}

// memTx transacción optimista: registra la versión de cada documento leído y bufferiza escrituras.
type memTx struct {
	store  *Store
	reads  map[docstore.Ref]uint64 // versión observada; 0 = no existía
	writes map[docstore.Ref]*pending
	order  []docstore.Ref
}

// current devuelve el estado visible para la transacción: primero sus propias escrituras,
// luego el valor confirmado (registrando la versión en el conjunto leído).
func (t *memTx) current(ref docstore.Ref) ([]byte, bool) {
	if w, ok := t.writes[ref]; ok {
		if w.deleted {
			return nil, false
		}
		return w.data, true
	}
	rec, ok := t.store.load(ref)
	if _, seen := t.reads[ref]; !seen {
		t.reads[ref] = rec.version
	}
	if !ok {
		return nil, false
	}
	return rec.data, true
}

func (t *memTx) put(ref docstore.Ref, p *pending) {
	if _, ok := t.writes[ref]; !ok {
		t.order = append(t.order, ref)
	}
	t.writes[ref] = p
}

func (t *memTx) Get(ref docstore.Ref, dst any) (bool, error) {
	data, ok := t.current(ref)
	if !ok {
		return false, nil
	}
	return true, docstore.Decode(data, dst)
}

func (t *memTx) Set(ref docstore.Ref, v any, opts ...docstore.SetOption) error {
	if docstore.ApplySetOptions(opts).Merge {
		fields, err := docstore.ToFields(v)
		if err != nil {
			return err
		}
		base, _ := t.current(ref)
		data, err := docstore.MergeFields(base, fields)
		if err != nil {
			return err
		}
		t.put(ref, &pending{data: data})
		return nil
	}
	data, err := docstore.Encode(v)
	if err != nil {
		return err
	}
	t.put(ref, &pending{data: data})
	return nil
}

func (t *memTx) Update(ref docstore.Ref, patch map[string]any) error {
	base, ok := t.current(ref)
	if !ok {
		return docstore.ErrNotFound
	}
	data, err := docstore.MergeFields(base, patch)
	if err != nil {
		return err
	}
	t.put(ref, &pending{data: data})
	return nil
}

func (t *memTx) Delete(ref docstore.Ref) error {
	t.put(ref, &pending{deleted: true})
	return nil
}
