package http

import (
	"net/http"

	"tally/internal/core"
)

type (
	categoryTotalResponse struct {
		Category    string `json:"category"`
		Amount      string `json:"amount"`
		AmountCents int64  `json:"amount_cents"`
	}

	balanceResponse struct {
		Income       string `json:"income"`
		Expense      string `json:"expense"`
		Net          string `json:"net"`
		IncomeCents  int64  `json:"income_cents"`
		ExpenseCents int64  `json:"expense_cents"`
		NetCents     int64  `json:"net_cents"`
	}

	summaryResponse struct {
		Month      string                  `json:"month,omitempty"`
		Balance    balanceResponse         `json:"balance"`
		ByCategory []categoryTotalResponse `json:"by_category"`
	}

	monthTotalResponse struct {
		Month      string                  `json:"month"`
		Balance    balanceResponse         `json:"balance"`
		ByCategory []categoryTotalResponse `json:"by_category"`
	}
)

func toCategoryTotals(totals []core.CategoryTotal) []categoryTotalResponse {
	out := make([]categoryTotalResponse, 0, len(totals))
	for _, ct := range totals {
		out = append(out, categoryTotalResponse{
			Category:    ct.Category,
			Amount:      ct.Amount.String(),
			AmountCents: ct.Amount.Cents,
		})
	}
	return out
}

func toBalanceResponse(b core.Balance) balanceResponse {
	net := core.Money{Cents: b.Net}
	if b.Net < 0 {
		net = core.Money{Cents: -b.Net}
	}
	netStr := net.String()
	if b.Net < 0 {
		netStr = "-" + netStr
	}
	return balanceResponse{
		Income:       b.Income.String(),
		Expense:      b.Expense.String(),
		Net:          netStr,
		IncomeCents:  b.Income.Cents,
		ExpenseCents: b.Expense.Cents,
		NetCents:     b.Net,
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	key := userKey(r)
	month := r.URL.Query().Get("month")
	cacheKey := key + ":summary:" + month

	if cached, ok := s.summaryCache.Get(cacheKey); ok {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	balance, err := s.svc.NetBalance(r.Context(), key, month)
	if err != nil {
		respondCoreError(w, r, err)
		return
	}
	totals, err := s.svc.TotalsByCategory(r.Context(), key, month)
	if err != nil {
		respondCoreError(w, r, err)
		return
	}

	resp := summaryResponse{
		Month:      month,
		Balance:    toBalanceResponse(balance),
		ByCategory: toCategoryTotals(totals),
	}
	s.summaryCache.Set(cacheKey, resp)
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	key := userKey(r)
	cacheKey := key + ":months"

	if cached, ok := s.monthsCache.Get(cacheKey); ok {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	months, err := s.svc.TotalsByMonth(r.Context(), key)
	if err != nil {
		respondCoreError(w, r, err)
		return
	}
	out := make([]monthTotalResponse, 0, len(months))
	for _, m := range months {
		out = append(out, monthTotalResponse{
			Month:      core.MonthFilter{Year: m.Year, Month: m.Month}.String(),
			Balance:    toBalanceResponse(m.Balance),
			ByCategory: toCategoryTotals(m.ByCategory),
		})
	}
	s.monthsCache.Set(cacheKey, out)
	respondJSON(w, http.StatusOK, out)
}
