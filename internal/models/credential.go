package models

import "time"

// CredentialRecord представляет сохраненные учетные данные пользователя.
// В памяти и на границе API Secret содержит открытый текст,
// в хранилище - закодированную форму <ivHex>.<ciphertextHex>.
type CredentialRecord struct {
	CreatedAt time.Time `json:"created_at"` // CreatedAt время создания записи
	UpdatedAt time.Time `json:"updated_at"` // UpdatedAt время последнего обновления
	ID        string    `json:"id"`         // ID уникальный идентификатор записи (UUID)
	OwnerID   string    `json:"owner_id"`   // OwnerID идентификатор владельца, не меняется после создания
	Website   string    `json:"website"`    // Website отображаемое название сайта (не валидируется как URL)
	Username  string    `json:"username"`   // Username логин на сайте
	Secret    string    `json:"secret"`     // Secret пароль (plaintext или закодированная форма)
}

// Clone создает копию записи
func (r *CredentialRecord) Clone() *CredentialRecord {
	clone := *r
	return &clone
}
