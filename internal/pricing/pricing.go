package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wajenzi/fundicut/internal/model"
)

// RateBased charges a flat per-style rate for every unit of every
// project item. Styles without a configured rate contribute nothing.
func RateBased(items []model.ProjectItem, rates model.Rates) int64 {
	var total int64
	for _, item := range items {
		total += rates.StyleRate(item.StyleID) * int64(item.UnitQuantity)
	}
	return total
}

// CostBased charges for the stock the plans actually consume: every
// bar and sheet at its material's rate, plus a flat labor amount.
// Materials without a configured rate contribute nothing. It never
// re-derives geometry; the plans are taken as computed.
func CostBased(linear []model.CuttingPlan, glass []model.GlassCuttingPlan, rates model.Rates) int64 {
	total := rates.LaborCost
	for i := range linear {
		total += int64(linear[i].BarsUsed()) * rates.MaterialRate(linear[i].MaterialID)
	}
	for i := range glass {
		total += int64(glass[i].TotalSheets) * rates.MaterialRate(glass[i].MaterialID)
	}
	return total
}

// Charge computes the quote total for the selected method. The method
// is an explicit caller choice, never inferred from the data.
func Charge(method model.ChargeMethod, items []model.ProjectItem, linear []model.CuttingPlan, glass []model.GlassCuttingPlan, rates model.Rates) int64 {
	switch method {
	case model.ChargeCostBased:
		return CostBased(linear, glass, rates)
	default:
		return RateBased(items, rates)
	}
}

// FormatAmount renders an amount in minor units as a decimal string
// with thousands separators, e.g. 1234567 becomes "12,345.67".
func FormatAmount(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	units := strconv.FormatInt(amount/100, 10)
	var b strings.Builder
	for i, r := range units {
		if i > 0 && (len(units)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%s%s.%02d", sign, b.String(), amount%100)
}
