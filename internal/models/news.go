package models

// NewsArticle представляет новостную статью ленты.
// Статьи формируются агрегатором на каждый запрос и нигде не сохраняются.
// ID уникален только внутри одного ответа (время запроса + позиция).
type NewsArticle struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Image       string `json:"image"`
}
