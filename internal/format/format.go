// Package format holds small presentation helpers shared by the
// planner and its workers.
package format

import (
	"fmt"
	"math"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// Currency renders an amount with its currency symbol.
func Currency(amount float64, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = "$"
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}

// Duration renders a minute count as a human-readable duration.
func Duration(minutes int) string {
	switch {
	case minutes < 60:
		return fmt.Sprintf("%d minutes", minutes)
	case minutes < 1440:
		hours := minutes / 60
		rem := minutes % 60
		if rem == 0 {
			if hours == 1 {
				return "1 hour"
			}
			return fmt.Sprintf("%d hours", hours)
		}
		return fmt.Sprintf("%dh %dm", hours, rem)
	default:
		days := minutes / 1440
		hours := (minutes % 1440) / 60
		if hours == 0 {
			if days == 1 {
				return "1 day"
			}
			return fmt.Sprintf("%d days", days)
		}
		return fmt.Sprintf("%dd %dh", days, hours)
	}
}

// Utilization summarizes spending against a budget.
type Utilization struct {
	Percentage float64 `json:"utilization_percentage"`
	Remaining  float64 `json:"remaining_budget"`
	Status     string  `json:"status"`
}

// BudgetUtilization computes budget utilization metrics. A zero budget
// yields a "no_budget" status rather than dividing by zero.
func BudgetUtilization(spent, budget float64) Utilization {
	if budget == 0 {
		return Utilization{Status: "no_budget"}
	}

	pct := spent / budget * 100
	status := "over_budget"
	switch {
	case pct <= 80:
		status = "under_budget"
	case pct <= 100:
		status = "on_budget"
	}

	return Utilization{
		Percentage: round2(pct),
		Remaining:  round2(budget - spent),
		Status:     status,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
