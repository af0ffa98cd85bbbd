package docstore

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Encode serializa un documento.
func Encode(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("docstore: codificar documento: %w", err)
	}
	return b, nil
}

// Decode deserializa un documento en dst.
func Decode(data []byte, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("docstore: decodificar documento: %w", err)
	}
	return nil
}

// MergeFields combina los campos de primer nivel de patch sobre el documento base.
// base nil equivale a un documento vacío.
func MergeFields(base []byte, patch map[string]any) ([]byte, error) {
	fields := map[string]any{}
	if len(base) > 0 {
		if err := json.Unmarshal(base, &fields); err != nil {
			return nil, fmt.Errorf("docstore: decodificar documento base: %w", err)
		}
	}
	for k, v := range patch {
		fields[k] = v
	}
	return Encode(fields)
}

// ToFields convierte un documento en sus campos de primer nivel (para Set con MergeAll).
func ToFields(v any) (map[string]any, error) {
	b, err := Encode(v)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, fmt.Errorf("docstore: campos del documento: %w", err)
	}
	return fields, nil
}
