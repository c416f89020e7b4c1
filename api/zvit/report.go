package zvit

import "time"

// MonthNames in report column order, January first.
var MonthNames = []string{
	"Січень", "Лютий", "Березень", "Квітень", "Травень", "Червень",
	"Липень", "Серпень", "Вересень", "Жовтень", "Листопад", "Грудень",
}

// ReportRow is one organization's dense 12-month count vector.
type ReportRow struct {
	Organization string  `json:"organization"`
	Months       [12]int `json:"months"`
	Total        int     `json:"total"`
}

// MonthlyReport is the organization × month count matrix with totals.
type MonthlyReport struct {
	Rows        []ReportRow `json:"rows"`
	MonthTotals [12]int     `json:"month_totals"`
	OrgTotals   []int       `json:"org_totals"`
	GrandTotal  int         `json:"grand_total"`
}

// StatusCount tallies account statuses for one organization. Statuses other
// than the two canonical values count in neither bucket.
type StatusCount struct {
	Organization string `json:"organization"`
	Active       int    `json:"active"`
	Pending      int    `json:"pending"`
}

// monthOf parses an ISO date and returns its 0-based month, or -1.
func monthOf(iso string) (month, year int) {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return -1, 0
	}
	return int(t.Month()) - 1, t.Year()
}

// buildMatrix groups records into per-organization month buckets. Row order
// follows first appearance in the input, not the alphabet. dateOf picks which
// date drives the bucketing; records it maps to "" are skipped, and a
// non-negative yearFilter drops records outside that calendar year.
func buildMatrix(records []Record, dateOf func(Record) string, yearFilter int) MonthlyReport {
	report := MonthlyReport{Rows: make([]ReportRow, 0)}
	index := make(map[string]int)
	for _, rec := range records {
		month, year := monthOf(dateOf(rec))
		if month < 0 {
			continue
		}
		if yearFilter >= 0 && year != yearFilter {
			continue
		}
		org := rec.Organization
		if org == "" {
			org = "—"
		}
		i, ok := index[org]
		if !ok {
			i = len(report.Rows)
			index[org] = i
			report.Rows = append(report.Rows, ReportRow{Organization: org})
		}
		report.Rows[i].Months[month]++
	}
	report.OrgTotals = make([]int, len(report.Rows))
	for i := range report.Rows {
		for m, n := range report.Rows[i].Months {
			report.Rows[i].Total += n
			report.OrgTotals[i] += n
			report.MonthTotals[m] += n
			report.GrandTotal += n
		}
	}
	return report
}

// BuildMonthlyReport counts opened accounts per organization and month for
// the requested year. The year check re-runs here even when the store query
// already restricted the range.
func BuildMonthlyReport(records []Record, year int) MonthlyReport {
	return buildMatrix(records, func(r Record) string { return r.DateOpened }, year)
}

// BuildActivationReport counts activated accounts per organization and month
// of the first deposit, across all years.
func BuildActivationReport(records []Record) MonthlyReport {
	return buildMatrix(records, func(r Record) string { return r.DateFirstDeposit }, -1)
}

// BuildStatusSummary tallies active and pending records per organization.
func BuildStatusSummary(records []Record) []StatusCount {
	counts := make([]StatusCount, 0)
	index := make(map[string]int)
	for _, rec := range records {
		org := rec.Organization
		if org == "" {
			org = "—"
		}
		i, ok := index[org]
		if !ok {
			i = len(counts)
			index[org] = i
			counts = append(counts, StatusCount{Organization: org})
		}
		switch rec.AccountStatus {
		case StatusActive:
			counts[i].Active++
		case StatusPending:
			counts[i].Pending++
		}
	}
	return counts
}
