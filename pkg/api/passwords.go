package api

import "time"

// Response представляет конверт всех JSON ответов сервера
type Response struct {
	Success bool   `json:"success"`         // true для успешных ответов
	Message string `json:"message"`         // человекочитаемое сообщение, не для разбора
	Data    any    `json:"data,omitempty"`  // полезная нагрузка
	Error   string `json:"error,omitempty"` // краткое описание ошибки (текст HTTP статуса)
}

// CredentialRequest представляет тело запросов POST и PUT /api/passwords
type CredentialRequest struct {
	Website  string `json:"website"`  // название сайта
	Username string `json:"username"` // логин
	Password string `json:"password"` // пароль в открытом виде
}

// CredentialRecord представляет запись в ответах сервера.
// Password всегда в открытом виде либо sentinel, если запись не удалось расшифровать.
type CredentialRecord struct {
	CreatedAt time.Time `json:"createdAt"` // время создания
	UpdatedAt time.Time `json:"updatedAt"` // время последнего обновления
	ID        string    `json:"_id"`       // идентификатор записи
	UserID    string    `json:"userId"`    // идентификатор владельца
	Website   string    `json:"website"`   // название сайта
	Username  string    `json:"username"`  // логин
	Password  string    `json:"password"`  // пароль
}

// IdentityResponse представляет ответ GET /api/protected
type IdentityResponse struct {
	Message string `json:"message"`
	User    struct {
		ID    string `json:"id"`
		Email string `json:"email,omitempty"`
	} `json:"user"`
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`            // ok или unavailable
	Message string `json:"message,omitempty"` // дополнительное сообщение
	Version string `json:"version,omitempty"` // версия сервера
}
