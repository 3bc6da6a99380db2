package web

import (
	"math"

	"petak-app/internal/model"
)

type pageWindow struct {
	Page       int
	TotalPages int
	Start      int
	End        int
}

// paginate clamps page into range and returns the slice bounds for it.
func paginate(total, page, pageSize int) pageWindow {
	if pageSize < 1 {
		pageSize = 10
	}
	if page < 1 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return pageWindow{Page: page, TotalPages: totalPages, Start: start, End: end}
}

// buildMatchesListView pages matches and summarizes only the ones on the
// selected page.
func buildMatchesListView(matches []model.Match, page, pageSize int, summarize func(model.Match) MatchSummary) MatchesListView {
	w := paginate(len(matches), page, pageSize)
	items := make([]MatchSummary, 0, w.End-w.Start)
	for _, m := range matches[w.Start:w.End] {
		items = append(items, summarize(m))
	}
	view := MatchesListView{
		Items:      items,
		Total:      len(matches),
		Page:       w.Page,
		TotalPages: w.TotalPages,
	}
	view.HasPrev = w.Page > 1
	view.HasNext = w.TotalPages > 0 && w.Page < w.TotalPages
	if view.HasPrev {
		view.PrevPage = w.Page - 1
	}
	if view.HasNext {
		view.NextPage = w.Page + 1
	}
	return view
}
