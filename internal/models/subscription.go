package models

import "time"

// Subscription представляет подписку читателя на газеты.
// У аккаунта не больше одной подписки; каждый вызов оформления
// перезаписывает запись целиком.
//
// Инвариант: Newspaper заполнено только для плана "daily",
// для остальных планов хранится null.
type Subscription struct {
	UserID    string    `json:"userId"`
	Plan      string    `json:"plan"`
	PlanName  string    `json:"planName"`
	PlanPrice string    `json:"planPrice"`
	Newspaper *string   `json:"newspaper"`
	StartDate time.Time `json:"startDate"`
	Active    bool      `json:"active"`
}

// DummySubscription используется для приёма запроса на оформление подписки.
// Newspaper обязательна только для плана "daily" — это проверяет бизнес-логика,
// а не валидатор.
type DummySubscription struct {
	Plan      string `json:"plan" validate:"required"`
	Newspaper string `json:"newspaper,omitempty" validate:"omitempty"`
}

// PlanDetails описывает отображаемое имя и цену тарифного плана.
type PlanDetails struct {
	Name  string
	Price string
}

// Plans — каталог из трёх фиксированных тарифных планов.
var Plans = map[string]PlanDetails{
	"daily":   {Name: "Daily", Price: "$1.2 (UGX 3,500)"},
	"monthly": {Name: "Monthly", Price: "$34 (UGX 125,000)"},
	"premium": {Name: "Premium", Price: "$142 (UGX 505,000)"},
}

// PlanOrder — порядок показа планов в каталоге.
var PlanOrder = []string{"daily", "monthly", "premium"}

// Newspapers — газеты, доступные для плана "daily".
var Newspapers = []string{"New Vision", "Daily Monitor", "Daily Nation"}
