package utils

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
)

type PaginationParams struct {
	Page         int `json:"page"`
	Limit        int `json:"limit"`
	Offset       int `json:"offset"`
	TotalRecords int `json:"total_records"`
	TotalPages   int `json:"total_pages"`
}

// Requested reports whether the client asked for a paginated response at all.
func Requested(r *http.Request) bool {
	q := r.URL.Query()
	return q.Get("page") != "" || q.Get("limit") != ""
}

func ExtractPagination(r *http.Request) (PaginationParams, error) {
	params := PaginationParams{
		Page:  1,
		Limit: 50,
	}

	if p := r.URL.Query().Get("page"); p != "" {
		val, err := strconv.Atoi(p)
		if err != nil || val <= 0 {
			return PaginationParams{}, fmt.Errorf("invalid page parameter: %s", p)
		}
		params.Page = val
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		val, err := strconv.Atoi(l)
		if err != nil || val <= 0 {
			return PaginationParams{}, fmt.Errorf("invalid limit parameter: %s", l)
		}
		params.Limit = val
	}
	params.Offset = (params.Page - 1) * params.Limit
	return params, nil
}

func (p *PaginationParams) SetPaginationStats(totalRecords int) {
	p.TotalRecords = totalRecords
	if totalRecords > 0 {
		p.TotalPages = int(math.Ceil(float64(totalRecords) / float64(p.Limit)))
	} else {
		p.TotalPages = 0
	}
}
