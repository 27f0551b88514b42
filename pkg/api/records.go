package api

// Префикс маршрутов записей; полный путь коллекции: RecordsPrefix + "/" + имя
const RecordsPrefix = "/api/v1/records"

// HealthPath путь проверки состояния сервера
const HealthPath = "/api/v1/health"

// HeaderClientID заголовок с локальным идентификатором создаваемой записи.
// Повторный POST с тем же значением возвращает уже созданную запись.
const HeaderClientID = "X-Client-ID"

// CollectionPath возвращает путь коллекции на сервере
func CollectionPath(collection string) string {
	return RecordsPrefix + "/" + collection
}

// ListRecordsResponse представляет ответ со списком записей коллекции
type ListRecordsResponse struct {
	Records []map[string]any `json:"records"` // атрибуты записей вместе с id
}

// HealthResponse представляет ответ проверки состояния сервера
type HealthResponse struct {
	Status string `json:"status"`
}
