package models

import "time"

// CustomerInfo представляет адрес доставки газет читателя.
// Записывается целиком при каждом сохранении — частичных обновлений
// и истории изменений нет, последняя запись побеждает.
type CustomerInfo struct {
	FullName     string    `json:"fullName"`
	Telephone    string    `json:"telephone"`
	Address      string    `json:"address"`
	PlotNumber   string    `json:"plotNumber"`
	StreetNumber string    `json:"streetNumber"`
	UserID       string    `json:"userId"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DummyCustomerInfo используется для приёма данных доставки из JSON-запроса
// до их валидации. Все пять полей обязательны.
type DummyCustomerInfo struct {
	FullName     string `json:"fullName" validate:"required"`
	Telephone    string `json:"telephone" validate:"required"`
	Address      string `json:"address" validate:"required"`
	PlotNumber   string `json:"plotNumber" validate:"required"`
	StreetNumber string `json:"streetNumber" validate:"required"`
}
