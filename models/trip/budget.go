package trip

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/wayplan/wayplan-backend/types"
)

// warningRatio is the spend fraction at which the budget warning flag trips.
var warningRatio = decimal.New(8, -1) // 0.8

// BudgetSummary computes spend against the trip's budget in the trip
// currency. Costs in other currencies are converted via the currency
// service; only positive costs contribute. A trip without a budget reports
// zero budget and no flags.
func (m *TripModel) BudgetSummary(ctx context.Context, id string) (*types.BudgetSummary, error) {
	trip, err := m.store.Trips().GetTrip(ctx, id)
	if err != nil {
		return nil, err
	}

	activities, err := m.store.Activities().ListTripActivities(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, act := range activities {
		if act.Cost != nil && act.CostCurrency == nil {
			currency := trip.Currency
			act.CostCurrency = &currency
		}
	}

	spent, err := m.converter.TotalInCurrency(ctx, activities, trip.Currency)
	if err != nil {
		return nil, err
	}

	summary := &types.BudgetSummary{
		Spent:    spent,
		Currency: trip.Currency,
	}
	if trip.Budget == nil {
		return summary, nil
	}

	summary.Budget = *trip.Budget
	summary.Remaining = trip.Budget.Sub(spent)
	summary.OverBudget = summary.Remaining.IsNegative()
	if trip.Budget.IsPositive() {
		summary.Warning = spent.GreaterThanOrEqual(trip.Budget.Mul(warningRatio))
	}
	return summary, nil
}
