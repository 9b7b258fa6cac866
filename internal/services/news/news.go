// Package news реализует агрегатор новостной ленты.
//
// При наличии ключа внешнего новостного API агрегатор запрашивает свежие
// статьи и приводит их к доменной форме; без ключа или при любом сбое
// внешнего вызова он отдаёт фиксированный набор статей-заглушек. Форма
// ответа в обоих режимах одинакова, и наружу ошибка не поднимается никогда.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/daily-paper/internal/config"
	"github.com/magabrotheeeer/daily-paper/internal/lib/sl"
	"github.com/magabrotheeeer/daily-paper/internal/models"
)

const (
	placeholderTitle       = "No title"
	placeholderDescription = "No description available"
	placeholderImage       = "https://images.unsplash.com/photo-1573812195421-50a396d17893?w=400"
	placeholderSource      = "Unknown Source"
	placeholderURL         = "#"

	pageSize = 20
)

// Service — агрегатор новостей.
type Service struct {
	log        *slog.Logger
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
}

// New создает новый экземпляр Service. Пустой APIKey включает режим заглушки.
func New(log *slog.Logger, cfg config.NewsAPI) *Service {
	return &Service{
		log:        log,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(1, 3),
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
	}
}

// Fetch возвращает статьи, отфильтрованные по источнику.
// Метод не возвращает ошибку: любой сбой внешнего API деградирует в заглушку.
func (s *Service) Fetch(ctx context.Context, source string) []models.NewsArticle {
	if source == "" {
		source = "all"
	}

	if s.apiKey == "" {
		return SampleArticles(source, time.Now().UTC())
	}

	articles, err := s.fetchLive(ctx, source)
	if err != nil {
		s.log.Warn("news API request failed, serving fallback", sl.Err(err))
		return SampleArticles(source, time.Now().UTC())
	}
	return articles
}

// queryFor выводит поисковый запрос из фильтра источника.
func queryFor(source string) string {
	switch source {
	case "all":
		return "Uganda"
	case "social":
		return "Uganda social media"
	default:
		return source
	}
}

// remoteArticle — статья в ответе внешнего API.
type remoteArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

func (s *Service) fetchLive(ctx context.Context, source string) ([]models.NewsArticle, error) {
	const op = "news.fetchLive"

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	q := url.Values{}
	q.Set("q", queryFor(source))
	q.Set("language", "en")
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", fmt.Sprintf("%d", pageSize))
	q.Set("apiKey", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/v2/everything?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	var payload struct {
		Articles []remoteArticle `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	articles := make([]models.NewsArticle, 0, len(payload.Articles))
	for i, remote := range payload.Articles {
		articles = append(articles, mapRemote(remote, now, i))
	}
	return articles, nil
}

// mapRemote приводит статью внешнего API к доменной форме, подставляя
// заглушки вместо отсутствующих полей. ID различим только в пределах
// одного ответа: время запроса плюс позиция.
func mapRemote(remote remoteArticle, now time.Time, index int) models.NewsArticle {
	article := models.NewsArticle{
		ID:          fmt.Sprintf("%d-%d", now.UnixMilli(), index),
		Title:       remote.Title,
		Description: remote.Description,
		Source:      remote.Source.Name,
		URL:         remote.URL,
		PublishedAt: remote.PublishedAt,
		Image:       remote.URLToImage,
	}
	if article.Title == "" {
		article.Title = placeholderTitle
	}
	if article.Description == "" {
		article.Description = placeholderDescription
	}
	if article.Source == "" {
		article.Source = placeholderSource
	}
	if article.URL == "" {
		article.URL = placeholderURL
	}
	if article.PublishedAt == "" {
		article.PublishedAt = now.Format(time.RFC3339)
	}
	if article.Image == "" {
		article.Image = placeholderImage
	}
	return article
}

// sampleSeed — заготовки статей-заглушек; смещение в минутах назад от "сейчас".
var sampleSeed = []struct {
	minutesAgo  int
	title       string
	description string
	source      string
}{
	{15, "Uganda Economy Shows Strong Growth in Q4",
		"The latest economic reports indicate robust growth across multiple sectors, with agriculture and services leading the way.",
		"New Vision"},
	{45, "Kampala Traffic Solutions Announced",
		"City officials unveil comprehensive plan to address traffic congestion in the capital with new infrastructure projects.",
		"Daily Monitor"},
	{90, "Education Sector Receives Major Funding Boost",
		"Government announces significant investment in education infrastructure and teacher training programs nationwide.",
		"Daily Nation"},
	{120, "Local Football Team Wins Regional Championship",
		"Celebrations erupt as the national team secures victory in the regional tournament finals.",
		"New Vision"},
	{180, "Healthcare Initiative Launches Across Districts",
		"New mobile health clinics to provide essential services to rural communities starting next month.",
		"Daily Monitor"},
	{240, "Technology Hub Opens in Central Business District",
		"State-of-the-art facility aims to support startups and innovation in the growing tech sector.",
		"Daily Nation"},
}

// SampleArticles возвращает фиксированный набор из шести статей со свежими
// синтетическими временными метками, уже упорядоченный по убыванию времени
// публикации. Фильтр, отличный от "all", оставляет статьи, чей источник
// содержит фильтр без учёта регистра.
func SampleArticles(source string, now time.Time) []models.NewsArticle {
	articles := make([]models.NewsArticle, 0, len(sampleSeed))
	for i, seed := range sampleSeed {
		if source != "all" &&
			!strings.Contains(strings.ToLower(seed.source), strings.ToLower(source)) {
			continue
		}
		articles = append(articles, models.NewsArticle{
			ID:          fmt.Sprintf("%d-%d", now.UnixMilli(), i+1),
			Title:       seed.title,
			Description: seed.description,
			Source:      seed.source,
			URL:         placeholderURL,
			PublishedAt: now.Add(-time.Duration(seed.minutesAgo) * time.Minute).Format(time.RFC3339),
			Image:       placeholderImage,
		})
	}
	return articles
}
