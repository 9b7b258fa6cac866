// Package models содержит доменные структуры приложения: аккаунт читателя,
// данные доставки, подписку на газеты и новостную статью, а также
// вспомогательные типы для приёма данных из JSON-запросов.
package models

// Account представляет аккаунт читателя, которым владеет провайдер учётных записей.
// Система потребляет только эти три поля и никогда не изменяет аккаунт сама.
type Account struct {
	ID    string `json:"id"`    // Уникальный идентификатор аккаунта
	Email string `json:"email"` // Электронная почта
	Name  string `json:"name"`  // Отображаемое имя
}
