package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name    string
	Count   int
	Amount  Money
	CCTotal Money
}

// Summary is a compact overview of a set of transactions.
type Summary struct {
	Count      int
	Total      Money
	CCTotal    Money
	ByCategory []CategoryAmount // in order of first appearance
}

// Summarize totals the given transactions overall and per category.
func Summarize(txs []Transaction) Summary {
	var s Summary
	index := map[string]int{}
	for _, t := range txs {
		s.Count++
		s.Total = s.Total.Add(t.Value)
		s.CCTotal = s.CCTotal.Add(t.CCValue)

		i, ok := index[t.Category]
		if !ok {
			i = len(s.ByCategory)
			index[t.Category] = i
			s.ByCategory = append(s.ByCategory, CategoryAmount{Name: t.Category})
		}
		s.ByCategory[i].Count++
		s.ByCategory[i].Amount = s.ByCategory[i].Amount.Add(t.Value)
		s.ByCategory[i].CCTotal = s.ByCategory[i].CCTotal.Add(t.CCValue)
	}
	return s
}
