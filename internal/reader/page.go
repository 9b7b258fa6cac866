// Package reader реализует терминальное клиентское приложение газеты:
// маршрутизатор страниц, сессию читателя, REST-клиент сервера и экраны.
package reader

import "fmt"

// Page — страница клиентского приложения.
type Page int

// Страницы приложения. PageQuit завершает цикл маршрутизатора.
const (
	PageHome Page = iota
	PageSignIn
	PageSignUp
	PageCustomerInfo
	PageDashboard
	PageNewsUpdates
	PageQuit
)

// String возвращает человекочитаемое имя страницы.
func (p Page) String() string {
	switch p {
	case PageHome:
		return "home"
	case PageSignIn:
		return "sign-in"
	case PageSignUp:
		return "sign-up"
	case PageCustomerInfo:
		return "customer-info"
	case PageDashboard:
		return "dashboard"
	case PageNewsUpdates:
		return "news-updates"
	case PageQuit:
		return "quit"
	default:
		return fmt.Sprintf("page(%d)", int(p))
	}
}

// route возвращает обработчик страницы. Неизвестная страница —
// ошибка программиста, приложение завершает работу.
func (a *App) route(p Page) func() (Page, error) {
	switch p {
	case PageHome:
		return a.homePage
	case PageSignIn:
		return a.signInPage
	case PageSignUp:
		return a.signUpPage
	case PageCustomerInfo:
		return a.customerInfoPage
	case PageDashboard:
		return a.dashboardPage
	case PageNewsUpdates:
		return a.newsUpdatesPage
	default:
		panic(fmt.Sprintf("no handler for %s", p))
	}
}
