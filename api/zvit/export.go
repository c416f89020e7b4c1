package zvit

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// utf8BOM keeps spreadsheet readers from mangling Cyrillic text.
const utf8BOM = "\uFEFF"

// csvHeader is the fixed export column order.
var csvHeader = []string{
	"ФІО",
	"ІПН",
	"Організація",
	"Дата відкриття",
	"Дата першого зарахування",
	"Статус рахунку",
	"Статус карти",
	"Документи",
	"Коментар",
}

func yesNo(v bool) string {
	if v {
		return "так"
	}
	return "ні"
}

// FormatDocuments collapses the document flags into one human-readable cell.
// Import does not re-parse this column; the asymmetry is intentional.
func FormatDocuments(d Documents) string {
	return "Договір: " + yesNo(d.Contract) +
		", Паспорт: " + yesNo(d.Passport) +
		", Опитувальник: " + yesNo(d.Questionnaire)
}

// SerializeCSV renders records as BOM-prefixed CSV. Every field is wrapped in
// double quotes and joined with commas; embedded quotes are not escaped,
// matching the format the spreadsheet consumers already expect.
func SerializeCSV(records []Record) []byte {
	var b strings.Builder
	b.WriteString(utf8BOM)
	writeRow := func(fields []string) {
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(f)
			b.WriteByte('"')
		}
	}
	writeRow(csvHeader)
	for _, rec := range records {
		b.WriteByte('\n')
		writeRow([]string{
			rec.FIO,
			rec.IPN,
			rec.Organization,
			rec.DateOpened,
			rec.DateFirstDeposit,
			rec.AccountStatus,
			rec.CardStatus,
			FormatDocuments(rec.Documents),
			rec.Comment,
		})
	}
	return []byte(b.String())
}

// templateHeader matches the import alias table so the downloaded workbook
// can be filled in and uploaded back as is.
var templateHeader = []interface{}{
	"ФІО", "ІПН", "ОРГАНІЗАЦІЯ", "ДАТА ВІДКРИТТЯ", "ДАТА ПЕРШОГО ЗАРАХУВАННЯ",
	"СТАТУС КАРТИ", "ДОГОВІР", "ПАСПОРТ", "ОПИТУВАЛЬНИК", "КОМЕНТАР",
}

var templateExample = []interface{}{
	"Іванов Іван Іванович", "1234567890", `ТОВ "ТЕСТ"`, "15.01.2024", "20.01.2024",
	CardIssuing, "так", "так", "ні", "Приклад запису",
}

// WriteTemplate streams the one-row example workbook for the import format.
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Шаблон"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &templateHeader); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A2", &templateExample); err != nil {
		return err
	}
	_, err := f.WriteTo(w)
	return err
}
