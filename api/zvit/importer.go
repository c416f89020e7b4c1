package zvit

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// parse failure message shown when the workbook itself is unreadable
const errFileUnreadable = "Помилка читання файлу Excel"

// requiredFieldsMsg is appended to row errors when mandatory columns are
// missing after normalization.
const requiredFieldsMsg = "Відсутні обов'язкові поля (ФІО, ІПН, ОРГАНІЗАЦІЯ, ДАТА ВІДКРИТТЯ)"

func fileExt(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// parseWorkbookFile reads the first sheet of an uploaded workbook into rows
// of raw cells. xlsx goes through excelize with raw cell values so date
// serials survive; legacy xls through extrame/xls; csv straight through.
func parseWorkbookFile(file io.ReadSeeker, ext string) ([][]string, error) {
	switch ext {
	case ".csv":
		r := csv.NewReader(file)
		r.FieldsPerRecord = -1
		return r.ReadAll()
	case ".xlsx":
		f, err := excelize.OpenReader(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		sheet := f.GetSheetName(0)
		return f.GetRows(sheet, excelize.Options{RawCellValue: true})
	case ".xls":
		wb, err := xls.OpenReader(file, "utf-8")
		if err != nil {
			return nil, err
		}
		return wb.ReadAllCells(math.MaxInt32), nil
	}
	return nil, errors.New("unsupported file type")
}

// rowMaps zips data rows with the header row into column-name keyed maps,
// keeping sheet order. Cells beyond the header width are dropped, and rows
// whose cells are all blank are skipped entirely.
func rowMaps(records [][]string) []map[string]string {
	if len(records) == 0 {
		return nil
	}
	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, raw := range records[1:] {
		if blankRow(raw) {
			continue
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if i < len(raw) {
				row[name] = raw[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// cell resolves a canonical field from a row using the fixed bilingual alias
// table: the Ukrainian uppercase label first, then the English key. Unknown
// columns are simply never asked for.
func cell(row map[string]string, aliases ...string) string {
	for _, a := range aliases {
		if v, ok := row[a]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// mapRow turns one sheet row into a canonical record. Dates and yes/no flags
// go through the normalizer; account status is always derived, never read
// from the sheet.
func mapRow(row map[string]string) Record {
	firstDeposit := NormalizeDate(cell(row, "ДАТА ПЕРШОГО ЗАРАХУВАННЯ", "date_first_deposit"))
	cardStatus := strings.TrimSpace(cell(row, "СТАТУС КАРТИ", "card_status"))
	if cardStatus == "" {
		cardStatus = CardIssuing
	}
	return Record{
		FIO:              strings.TrimSpace(cell(row, "ФІО", "fio")),
		IPN:              strings.TrimSpace(cell(row, "ІПН", "ipn")),
		Organization:     strings.TrimSpace(cell(row, "ОРГАНІЗАЦІЯ", "organization")),
		DateOpened:       NormalizeDate(cell(row, "ДАТА ВІДКРИТТЯ", "date_opened")),
		DateFirstDeposit: firstDeposit,
		AccountStatus:    DeriveAccountStatus("", firstDeposit),
		CardStatus:       cardStatus,
		Documents: Documents{
			Contract:      NormalizeYesNo(cell(row, "ДОГОВІР", "contract")),
			Passport:      NormalizeYesNo(cell(row, "ПАСПОРТ", "passport")),
			Questionnaire: NormalizeYesNo(cell(row, "ОПИТУВАЛЬНИК", "questionnaire")),
		},
		Comment: strings.TrimSpace(cell(row, "КОМЕНТАР", "comment")),
	}
}

// RunImport folds the sheet rows into an ImportResult. Every row is an
// independent unit of work: a validation or store failure records a 1-based
// row error and the run continues with the next row. Nothing is rolled back.
func RunImport(ctx context.Context, ins Inserter, rows []map[string]string) ImportResult {
	result := ImportResult{Total: len(rows), Errors: make([]string, 0)}
	for i, row := range rows {
		rec := mapRow(row)
		if rec.FIO == "" || rec.IPN == "" || rec.Organization == "" || rec.DateOpened == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Рядок %d: %s", i+1, requiredFieldsMsg))
			continue
		}
		if _, err := ins.Insert(ctx, rec); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Рядок %d: %s", i+1, err.Error()))
			continue
		}
		result.Success++
	}
	return result
}

// parseFailureResult is the single synthetic result for an unreadable file.
func parseFailureResult() ImportResult {
	return ImportResult{Total: 0, Success: 0, Errors: []string{errFileUnreadable}}
}
