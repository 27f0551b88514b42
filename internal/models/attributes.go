package models

// Attributes представляет состояние записи: имя поля -> значение.
// Значения должны сериализоваться в JSON, так как они сохраняются
// в локальное хранилище и отправляются на сервер.
type Attributes map[string]any

// Clone возвращает поверхностную копию атрибутов.
// Для nil возвращается пустая (не nil) map.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Merge накладывает other поверх копии a: для совпадающих ключей
// побеждает значение из other. Исходные map не изменяются.
func (a Attributes) Merge(other Attributes) Attributes {
	out := a.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Patch накладывает other поверх копии a как Merge, но значение nil (null в
// JSON) удаляет поле. Так передается удаление поля при частичном обновлении.
func (a Attributes) Patch(other Attributes) Attributes {
	out := a.Clone()
	for k, v := range other {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

// Omit возвращает копию без указанных ключей.
func (a Attributes) Omit(keys ...string) Attributes {
	out := a.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// String возвращает строковое значение поля, если оно есть и является строкой.
func (a Attributes) String(key string) (string, bool) {
	v, ok := a[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
