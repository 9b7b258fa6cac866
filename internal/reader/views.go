package reader

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/magabrotheeeer/daily-paper/internal/lib/sl"
	"github.com/magabrotheeeer/daily-paper/internal/lib/timeago"
	"github.com/magabrotheeeer/daily-paper/internal/models"
)

// newsSources — источники ленты в порядке показа.
var newsSources = []string{"all", "new-vision", "monitor", "nation", "social"}

// homePage — маркетинговая страница с каталогом планов.
func (a *App) homePage() (Page, error) {
	a.printf("\n=== The Daily Paper ===\n")
	a.printf("Your trusted source for East African news, delivered to your door.\n\n")
	a.printf("Subscription plans:\n")
	for _, key := range models.PlanOrder {
		plan := models.Plans[key]
		a.printf("  %-8s %s\n", plan.Name, plan.Price)
	}
	a.printf("\n[1] Sign in  [2] Sign up  [q] Quit\n")

	for {
		choice, err := a.prompt("> ")
		if err != nil {
			return PageQuit, err
		}
		switch choice {
		case "1":
			return PageSignIn, nil
		case "2":
			return PageSignUp, nil
		case "q":
			return PageQuit, nil
		default:
			a.printf("Unknown option.\n")
		}
	}
}

// signInPage выполняет вход через провайдера учётных записей.
func (a *App) signInPage() (Page, error) {
	a.printf("\n--- Sign in ---\n")

	email, err := a.promptRequired("Email: ")
	if err != nil {
		return PageQuit, err
	}
	password, err := a.promptRequired("Password: ")
	if err != nil {
		return PageQuit, err
	}

	account, token, err := a.provider.SignIn(a.ctx, email, password)
	if err != nil {
		a.printf("Sign in failed: %v\n", err)
		return PageHome, nil
	}

	a.session.Populate(account, token)
	if err := a.tokens.Save(token); err != nil {
		a.log.Warn("failed to store token", sl.Err(err))
	}
	a.printf("Signed in as %s.\n", account.Name)
	return PageDashboard, nil
}

// signUpPage регистрирует читателя через сервер и сразу выполняет вход.
func (a *App) signUpPage() (Page, error) {
	a.printf("\n--- Sign up ---\n")

	name, err := a.promptRequired("Name: ")
	if err != nil {
		return PageQuit, err
	}
	email, err := a.promptRequired("Email: ")
	if err != nil {
		return PageQuit, err
	}
	password, err := a.promptRequired("Password: ")
	if err != nil {
		return PageQuit, err
	}

	if _, err := a.client.Signup(a.ctx, email, password, name); err != nil {
		a.printf("Sign up failed: %v\n", err)
		return PageHome, nil
	}

	account, token, err := a.provider.SignIn(a.ctx, email, password)
	if err != nil {
		a.printf("Account created, but sign in failed: %v\n", err)
		return PageSignIn, nil
	}

	a.session.Populate(account, token)
	if err := a.tokens.Save(token); err != nil {
		a.log.Warn("failed to store token", sl.Err(err))
	}
	a.printf("Welcome, %s! Let's set up your delivery details.\n", account.Name)
	return PageCustomerInfo, nil
}

// customerInfoPage показывает форму данных доставки из пяти полей.
// После сохранения подтверждение висит две секунды, затем возврат
// на страницу читателя.
func (a *App) customerInfoPage() (Page, error) {
	a.printf("\n--- Delivery details ---\n")

	existing, err := a.client.GetCustomerInfo(a.ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		a.printf("Could not load saved details: %v\n", err)
	}
	if existing != nil {
		a.printf("Current address: %s, plot %s, street %s\n",
			existing.Address, existing.PlotNumber, existing.StreetNumber)
	}

	form := models.DummyCustomerInfo{}
	if form.FullName, err = a.promptRequired("Full name: "); err != nil {
		return PageQuit, err
	}
	if form.Telephone, err = a.promptRequired("Telephone: "); err != nil {
		return PageQuit, err
	}
	if form.Address, err = a.promptRequired("Address: "); err != nil {
		return PageQuit, err
	}
	if form.PlotNumber, err = a.promptRequired("Plot number: "); err != nil {
		return PageQuit, err
	}
	if form.StreetNumber, err = a.promptRequired("Street number: "); err != nil {
		return PageQuit, err
	}

	if _, err := a.client.SaveCustomerInfo(a.ctx, form); err != nil {
		a.printf("Failed to save delivery details: %v\n", err)
		return PageDashboard, nil
	}

	a.printf("Delivery details saved!\n")
	select {
	case <-time.After(a.confirmDelay):
	case <-a.ctx.Done():
	}
	return PageDashboard, nil
}

// dashboardState — результат параллельной загрузки страницы читателя.
type dashboardState struct {
	info *models.CustomerInfo
	sub  *models.Subscription
	errs []error
}

// loadDashboard загружает данные доставки и подписку параллельно.
// Отсутствие записи (404) — нормальное состояние нового читателя.
func (a *App) loadDashboard(ctx context.Context) dashboardState {
	var state dashboardState
	var mu sync.Mutex
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		info, err := a.client.GetCustomerInfo(ctx)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				state.errs = append(state.errs, err)
			}
			return
		}
		state.info = info
	}()
	go func() {
		defer wg.Done()
		sub, err := a.client.GetSubscription(ctx)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				state.errs = append(state.errs, err)
			}
			return
		}
		state.sub = sub
	}()
	wg.Wait()

	return state
}

// dashboardPage — страница читателя: адрес доставки, подписка и меню действий.
func (a *App) dashboardPage() (Page, error) {
	account := a.session.Account()
	if account == nil {
		return PageHome, nil
	}

	state := a.loadDashboard(a.ctx)
	for _, err := range state.errs {
		a.printf("Warning: %v\n", err)
	}

	a.printf("\n--- Your Daily Paper ---\n")
	a.printf("Reader: %s <%s>\n", account.Name, account.Email)

	if state.info != nil {
		a.printf("Delivery: %s, plot %s, street %s (tel %s)\n",
			state.info.Address, state.info.PlotNumber, state.info.StreetNumber, state.info.Telephone)
	} else {
		a.printf("Delivery: not set up yet\n")
	}

	if state.sub != nil {
		line := state.sub.PlanName + " " + state.sub.PlanPrice
		if state.sub.Newspaper != nil {
			line += " — " + *state.sub.Newspaper
		}
		a.printf("Subscription: %s (since %s)\n", line, state.sub.StartDate.Format("2 Jan 2006"))
	} else {
		a.printf("Subscription: none\n")
	}

	a.printf("\n[1] Choose plan  [2] Delivery details  [3] News updates  [4] Sign out  [q] Quit\n")
	for {
		choice, err := a.prompt("> ")
		if err != nil {
			return PageQuit, err
		}
		switch choice {
		case "1":
			if err := a.choosePlan(); err != nil {
				return PageQuit, err
			}
			return PageDashboard, nil
		case "2":
			return PageCustomerInfo, nil
		case "3":
			return PageNewsUpdates, nil
		case "4":
			a.signOut()
			a.printf("Signed out.\n")
			return PageHome, nil
		case "q":
			return PageQuit, nil
		default:
			a.printf("Unknown option.\n")
		}
	}
}

// choosePlan предлагает каталог планов и оформляет подписку.
// Для плана "daily" дополнительно запрашивает газету.
func (a *App) choosePlan() error {
	a.printf("\nPlans:\n")
	for i, key := range models.PlanOrder {
		plan := models.Plans[key]
		a.printf("  [%d] %-8s %s\n", i+1, plan.Name, plan.Price)
	}

	choice, err := a.prompt("Plan number (or empty to cancel): ")
	if err != nil {
		return err
	}
	var planKey string
	switch choice {
	case "1":
		planKey = "daily"
	case "2":
		planKey = "monthly"
	case "3":
		planKey = "premium"
	case "":
		return nil
	default:
		a.printf("Unknown plan.\n")
		return nil
	}

	req := models.DummySubscription{Plan: planKey}
	if planKey == "daily" {
		a.printf("Newspapers:\n")
		for i, paper := range models.Newspapers {
			a.printf("  [%d] %s\n", i+1, paper)
		}
		pick, err := a.prompt("Newspaper number: ")
		if err != nil {
			return err
		}
		switch pick {
		case "1", "2", "3":
			req.Newspaper = models.Newspapers[int(pick[0]-'1')]
		default:
			a.printf("A newspaper is required for the Daily plan.\n")
			return nil
		}
	}

	sub, err := a.client.Subscribe(a.ctx, req)
	if err != nil {
		a.printf("Subscription failed: %v\n", err)
		return nil
	}
	a.printf("Subscribed to %s.\n", sub.PlanName)
	return nil
}

// newsUpdatesPage показывает ленту и управляет автообновлением.
// Лента перечитывается при входе, смене источника и каждые
// refreshInterval. Автообновление включено с момента входа,
// пока читатель не выключит его или не покинет страницу.
func (a *App) newsUpdatesPage() (Page, error) {
	// source читается из горутины автообновления, поэтому под мьютексом.
	var mu sync.Mutex
	source := "all"
	currentSource := func() string {
		mu.Lock()
		defer mu.Unlock()
		return source
	}

	fetch := func(ctx context.Context) {
		src := currentSource()
		articles, err := a.client.FetchNews(ctx, src)
		if err != nil {
			a.printf("Failed to load news: %v\n", err)
			return
		}
		a.renderArticles(src, articles)
	}

	refresher := NewRefresher(a.refreshInterval, fetch)
	defer refresher.Stop()

	fetch(a.ctx)
	refresher.Start(a.ctx)

	a.printf("\n[r] Refresh  [s] Source  [a] Auto-refresh on/off  [b] Back  [q] Quit\n")
	for {
		choice, err := a.prompt("> ")
		if err != nil {
			return PageQuit, err
		}
		switch choice {
		case "r":
			if !refresher.Do(a.ctx) {
				a.printf("Refresh already in progress.\n")
			}
		case "s":
			a.printf("Sources: %s\n", strings.Join(newsSources, ", "))
			picked, err := a.prompt("Source: ")
			if err != nil {
				return PageQuit, err
			}
			if !validSource(picked) {
				a.printf("Unknown source.\n")
				continue
			}
			mu.Lock()
			source = picked
			mu.Unlock()
			fetch(a.ctx)
		case "a":
			if refresher.Running() {
				refresher.Stop()
				a.printf("Auto-refresh off.\n")
			} else {
				refresher.Start(a.ctx)
				a.printf("Auto-refresh on (every %s).\n", a.refreshInterval)
			}
		case "b":
			return PageDashboard, nil
		case "q":
			return PageQuit, nil
		default:
			a.printf("Unknown option.\n")
		}
	}
}

func validSource(source string) bool {
	for _, s := range newsSources {
		if s == source {
			return true
		}
	}
	return false
}

// renderArticles печатает ленту с относительными отметками времени.
func (a *App) renderArticles(source string, articles []models.NewsArticle) {
	now := a.now()
	a.printf("\n--- News updates (%s) ---\n", source)
	if len(articles) == 0 {
		a.printf("No articles right now.\n")
		return
	}
	for _, article := range articles {
		published := article.PublishedAt
		if ts, err := time.Parse(time.RFC3339, article.PublishedAt); err == nil {
			published = timeago.Format(ts, now)
		}
		a.printf("* %s\n  %s — %s\n  %s\n", article.Title, article.Source, published, article.Description)
	}
}
