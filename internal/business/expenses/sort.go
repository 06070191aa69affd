package expenses

import (
	"sort"

	"github.com/avasiliev/personal-planner-backend/internal/model"
)

func sortCategoryTotals(totals []model.CategoryTotal) {
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Total != totals[j].Total {
			return totals[i].Total > totals[j].Total
		}
		return totals[i].Category < totals[j].Category
	})
}

func sortDailyTotals(totals []model.DailyTotal) {
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Date < totals[j].Date
	})
}
