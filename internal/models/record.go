package models

import "time"

// StoredRecord представляет запись на стороне сервера.
type StoredRecord struct {
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Attributes Attributes `json:"attributes"` // Attributes данные записи (JSON)
	ID         string     `json:"id"`         // ID серверный идентификатор (UUID)
	OwnerID    string     `json:"owner_id"`   // OwnerID владелец записи (user_id из токена)
	Collection string     `json:"collection"` // Collection имя коллекции
	ClientID   string     `json:"client_id"`  // ClientID локальный идентификатор клиента, создавшего запись
}

// IDAttribute имя поля, в котором сервер возвращает идентификатор записи
const IDAttribute = "id"

// View возвращает атрибуты записи вместе с её идентификатором,
// в том виде, в котором они отдаются клиенту.
func (r *StoredRecord) View() Attributes {
	out := r.Attributes.Clone()
	out[IDAttribute] = r.ID
	return out
}
