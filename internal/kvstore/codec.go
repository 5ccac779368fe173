package kvstore

import (
	"fmt"
	"reflect"

	"github.com/goccy/go-json"
)

func encode(value any) ([]byte, error) {
	return json.Marshal(value)
}

// decodeInto unmarshals data into a fresh value and only then copies it into
// dest, so a failed decode never leaves dest half written.
func decodeInto(data []byte, dest any) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("decode destination must be a non-nil pointer, got %T", dest)
	}
	tmp := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal(data, tmp.Interface()); err != nil {
		return err
	}
	rv.Elem().Set(tmp.Elem())
	return nil
}
