package domain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// AdvisoryKind classifies an advisory item for display.
type AdvisoryKind string

const (
	KindInfo    AdvisoryKind = "info"
	KindSuccess AdvisoryKind = "success"
	KindWarning AdvisoryKind = "warning"
)

// AdvisoryItem is one unit of rule-generated guidance.
type AdvisoryItem struct {
	Kind    AdvisoryKind `json:"type"`
	Title   string       `json:"title"`
	Message string       `json:"message"`
}

// Messages flattens items to their message text, preserving order.
func Messages(items []AdvisoryItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Message
	}
	return out
}

// CropAdvice evaluates the soil/climate rules in fixed order: pH, N, P, K,
// temperature, rainfall, then a closing line naming the recommended crop.
// Several rules may fire at once; the pH rule always emits exactly one item.
func CropAdvice(c CropConditions, recommended string) []AdvisoryItem {
	items := make([]AdvisoryItem, 0, 8)

	switch {
	case c.PH < 5.5:
		items = append(items, AdvisoryItem{KindWarning, "Soil pH", "⚠️ Soil is too acidic. Consider adding lime to raise pH."})
	case c.PH > 8.0:
		items = append(items, AdvisoryItem{KindWarning, "Soil pH", "⚠️ Soil is too alkaline. Consider adding sulfur to lower pH."})
	default:
		items = append(items, AdvisoryItem{KindSuccess, "Soil pH", "✓ Soil pH is optimal for most crops."})
	}

	if c.Nitrogen < 50 {
		items = append(items, AdvisoryItem{KindInfo, "Nitrogen", "🌱 Low nitrogen levels. Consider adding urea or composted manure."})
	}
	if c.Phosphorus < 30 {
		items = append(items, AdvisoryItem{KindInfo, "Phosphorus", "🌱 Low phosphorus levels. Consider adding bone meal or rock phosphate."})
	}
	if c.Potassium < 30 {
		items = append(items, AdvisoryItem{KindInfo, "Potassium", "🌱 Low potassium levels. Consider adding potash or wood ash."})
	}

	switch {
	case c.Temperature < 15:
		items = append(items, AdvisoryItem{KindInfo, "Temperature", "❄️ Temperature is low. Consider cold-resistant crops or greenhouse farming."})
	case c.Temperature > 35:
		items = append(items, AdvisoryItem{KindInfo, "Temperature", "☀️ Temperature is high. Ensure adequate irrigation and mulching."})
	}

	switch {
	case c.Rainfall < 100:
		items = append(items, AdvisoryItem{KindInfo, "Rainfall", "💧 Low rainfall area. Ensure proper irrigation system is in place."})
	case c.Rainfall > 300:
		items = append(items, AdvisoryItem{KindInfo, "Rainfall", "🌧️ High rainfall area. Ensure proper drainage to prevent waterlogging."})
	}

	items = append(items, AdvisoryItem{
		Kind:    KindSuccess,
		Title:   "Recommendation",
		Message: fmt.Sprintf("🌾 %s is well-suited for your soil and climate conditions.", capitalize(recommended)),
	})
	return items
}

// yieldTips is appended to every yield advisory.
var yieldTips = []AdvisoryItem{
	{KindInfo, "Tips", "💡 Tips for better yield:"},
	{KindInfo, "Tips", "  • Use quality seeds from certified sources"},
	{KindInfo, "Tips", "  • Implement crop rotation practices"},
	{KindInfo, "Tips", "  • Monitor and control pests regularly"},
	{KindInfo, "Tips", "  • Maintain optimal soil moisture levels"},
}

// YieldAdvice restates the predicted yield, then emits one fertilizer tier
// (<100 increase, 100–200 inclusive optimal, >200 degradation risk), an optional
// rainfall item (<600 irrigate, >1500 drainage), and the fixed tips block.
func YieldAdvice(c YieldConditions, perHectare float64) []AdvisoryItem {
	items := make([]AdvisoryItem, 0, 3+len(yieldTips))
	items = append(items, AdvisoryItem{KindInfo, "Expected yield", fmt.Sprintf("📊 Expected yield: %.2f tons per hectare", perHectare)})

	switch {
	case c.Fertilizer < 100:
		items = append(items, AdvisoryItem{KindInfo, "Fertilizer", "🌱 Consider increasing fertilizer application for better yield."})
	case c.Fertilizer > 200:
		items = append(items, AdvisoryItem{KindWarning, "Fertilizer", "⚠️ High fertilizer use. Ensure it's balanced to avoid soil degradation."})
	default:
		items = append(items, AdvisoryItem{KindSuccess, "Fertilizer", "✓ Fertilizer application is within optimal range."})
	}

	switch {
	case c.Rainfall < 600:
		items = append(items, AdvisoryItem{KindInfo, "Rainfall", "💧 Supplement with irrigation during dry periods."})
	case c.Rainfall > 1500:
		items = append(items, AdvisoryItem{KindInfo, "Rainfall", "🌧️ Ensure proper drainage systems to prevent crop damage."})
	}

	return append(items, yieldTips...)
}

// WeatherAdvisory emits exactly one temperature item, at most one humidity item,
// at most one rainfall item, and a closing activity item from DailyActivity.
func WeatherAdvisory(w WeatherSample) []AdvisoryItem {
	items := make([]AdvisoryItem, 0, 4)

	switch {
	case w.Temperature > 35:
		items = append(items, AdvisoryItem{KindWarning, "High Temperature Alert",
			"Extreme heat detected. Increase irrigation frequency and provide shade for sensitive crops."})
	case w.Temperature < 10:
		items = append(items, AdvisoryItem{KindWarning, "Low Temperature Alert",
			"Cold weather detected. Protect crops from frost damage using covers or mulching."})
	default:
		items = append(items, AdvisoryItem{KindSuccess, "Optimal Temperature",
			"Temperature conditions are favorable for crop growth."})
	}

	switch {
	case w.Humidity > 85:
		items = append(items, AdvisoryItem{KindWarning, "High Humidity",
			"High humidity may promote fungal diseases. Monitor crops closely and apply fungicides if needed."})
	case w.Humidity < 40:
		items = append(items, AdvisoryItem{KindInfo, "Low Humidity",
			"Dry conditions. Ensure adequate irrigation to prevent crop stress."})
	}

	switch {
	case w.Rainfall > 20:
		items = append(items, AdvisoryItem{KindInfo, "Rainfall Detected",
			fmt.Sprintf("Recent rainfall: %smm. Postpone irrigation and check drainage systems.", formatMeasure(w.Rainfall))})
	case w.Rainfall == 0:
		items = append(items, AdvisoryItem{KindInfo, "No Rainfall",
			"No recent rainfall. Maintain regular irrigation schedule."})
	}

	return append(items, AdvisoryItem{KindSuccess, "Today's Farming Activities", DailyActivity(w)})
}

// DailyActivity picks the day's suggested work. Heavy rain takes precedence over
// temperature.
func DailyActivity(w WeatherSample) string {
	switch {
	case w.Rainfall > 20:
		return "Avoid field operations. Good day for indoor tasks and equipment maintenance."
	case w.Temperature > 35:
		return "Schedule outdoor work for early morning or late evening. Focus on irrigation maintenance."
	case w.Temperature < 15:
		return "Good conditions for harvesting. Check for frost-sensitive crops."
	default:
		return "Ideal conditions for field operations. Good day for planting, weeding, or applying fertilizers."
	}
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// formatMeasure prints a reading with at least one decimal place, e.g. 30 -> "30.0".
func formatMeasure(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
