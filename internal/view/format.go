package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/lehmann314159/dreamcars/internal/models"
)

const PlaceholderImage = "https://images.unsplash.com/photo-1492144534655-ae79c964c9d7?w=800&h=500&fit=crop"

var printer = message.NewPrinter(language.French)

// FormatPrice renders whole euros the French way, e.g. "450 000 €".
func FormatPrice(price float64) string {
	return printer.Sprintf("%v €", number.Decimal(price, number.MaxFractionDigits(0)))
}

func carImage(c models.Car) string {
	if c.Image == "" {
		return PlaceholderImage
	}
	return c.Image
}

func themeIcon(t models.Theme) string {
	if t == models.ThemeDark {
		return "☀️"
	}
	return "☾"
}
