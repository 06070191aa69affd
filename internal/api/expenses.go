package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/avasiliev/personal-planner-backend/internal/model"
	"github.com/avasiliev/personal-planner-backend/internal/pkg/validator"
)

type expenseRequest struct {
	Amount   int64  `json:"amount"`
	Category string `json:"category"`
	Note     string `json:"note"`
	Date     string `json:"date"`
}

type expenseResponse struct {
	ID        int64  `json:"id"`
	Amount    int64  `json:"amount"`
	Category  string `json:"category"`
	Note      string `json:"note,omitempty"`
	Date      string `json:"date"`
	CreatedAt string `json:"created_at"`
}

type categoryTotalResponse struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
}

type dailyTotalResponse struct {
	Date  string `json:"date"`
	Total int64  `json:"total"`
}

type expenseStatsResponse struct {
	Count      int                     `json:"count"`
	Total      int64                   `json:"total"`
	ByCategory []categoryTotalResponse `json:"by_category"`
	Trend      []dailyTotalResponse    `json:"trend"`
}

func mapToExpenseResponse(e *model.Expense) *expenseResponse {
	return &expenseResponse{
		ID:        e.ID,
		Amount:    e.Amount,
		Category:  e.Category,
		Note:      e.Note,
		Date:      model.FormatDate(e.Date),
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}

func (a *Api) mapToExpenseCreate(req *expenseRequest, v *validator.Validator) *model.ExpenseCreate {
	v.Check(req.Amount > 0, "amount", "must be a positive amount in cents")
	v.Check(req.Category != "", "category", "must be provided")

	date, err := model.ParseDate(req.Date)
	v.Check(err == nil, "date", "must be a date in YYYY-MM-DD format")

	if !v.Valid() {
		return nil
	}

	return &model.ExpenseCreate{
		Amount:   req.Amount,
		Category: req.Category,
		Note:     req.Note,
		Date:     date,
	}
}

func (a *Api) expensesFilter(r *http.Request) (model.ExpensesFilter, error) {
	from, _, err := a.dateQuery(r, "from")
	if err != nil {
		return model.ExpensesFilter{}, err
	}
	to, _, err := a.dateQuery(r, "to")
	if err != nil {
		return model.ExpensesFilter{}, err
	}

	return model.ExpensesFilter{
		From:     from,
		To:       to,
		Category: r.URL.Query().Get("category"),
	}, nil
}

func (a *Api) createExpenseHandler(w http.ResponseWriter, r *http.Request) {
	req := &expenseRequest{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	info := a.mapToExpenseCreate(req, v)
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	expense, err := a.expenses.CreateExpense(r.Context(), info)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.writeJSON(w, http.StatusCreated, mapToExpenseResponse(expense), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getExpensesHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := a.expensesFilter(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	expenses, err := a.expenses.GetExpenses(r.Context(), filter)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapSlice(expenses, mapToExpenseResponse), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getExpenseStatsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := a.expensesFilter(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	stats, err := a.expenses.GetStats(r.Context(), filter)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	resp := &expenseStatsResponse{
		Count:      stats.Count,
		Total:      stats.Total,
		ByCategory: []categoryTotalResponse{},
		Trend:      []dailyTotalResponse{},
	}
	for _, c := range stats.ByCategory {
		resp.ByCategory = append(resp.ByCategory, categoryTotalResponse{Category: c.Category, Total: c.Total})
	}
	for _, d := range stats.Trend {
		resp.Trend = append(resp.Trend, dailyTotalResponse{Date: d.Date, Total: d.Total})
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updateExpenseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.idParam(r, "expenseID")
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	req := &expenseRequest{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	info := a.mapToExpenseCreate(req, v)
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	expense := &model.Expense{ID: id, ExpenseCreate: *info}
	if err := a.expenses.UpdateExpense(r.Context(), expense); err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.notFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (a *Api) deleteExpenseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.idParam(r, "expenseID")
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	if err := a.expenses.DeleteExpense(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.notFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}
