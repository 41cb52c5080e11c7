package models

// Identity представляет вызывающего пользователя, полученного из bearer токена.
// ID стабилен, уникален для пользователя и используется как OwnerID всех его записей.
type Identity struct {
	ID    string `json:"id"`              // subject токена
	Email string `json:"email,omitempty"` // email, если он есть в токене
}
