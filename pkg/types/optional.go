package types

import "encoding/json"

// Optional поле частичного обновления
// Set=false - ключ отсутствовал в запросе, поле не трогаем
// Set=true  - ключ передан (в том числе null), Value содержит новое значение
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some создает заданное значение
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Get возвращает значение и признак присутствия
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// UnmarshalJSON вызывается только для присутствующих ключей,
// поэтому любое обращение помечает поле как заданное
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON сериализует значение (отсутствующее поле как null)
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
