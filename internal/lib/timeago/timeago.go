// Package timeago форматирует давность события в короткую человекочитаемую метку
// ("Just now", "5m ago", "2h ago", "3d ago") для ленты новостей.
package timeago

import (
	"fmt"
	"time"
)

// Format возвращает метку давности момента t относительно now.
func Format(t, now time.Time) string {
	seconds := int(now.Sub(t).Seconds())

	switch {
	case seconds < 60:
		return "Just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	default:
		return fmt.Sprintf("%dd ago", seconds/86400)
	}
}
