package zvit

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// fakeInserter records inserts and can fail for selected tax ids.
type fakeInserter struct {
	inserted []Record
	failIPN  map[string]string
}

func (f *fakeInserter) Insert(_ context.Context, rec Record) (Record, error) {
	if msg, ok := f.failIPN[rec.IPN]; ok {
		return Record{}, errors.New(msg)
	}
	rec.ID = int64(len(f.inserted) + 1)
	f.inserted = append(f.inserted, rec)
	return rec, nil
}

func sheetRow(pairs ...string) map[string]string {
	row := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		row[pairs[i]] = pairs[i+1]
	}
	return row
}

func TestRunImportValidRows(t *testing.T) {
	ins := &fakeInserter{}
	rows := []map[string]string{
		sheetRow("ФІО", "Іванов Іван", "ІПН", "1111111111", "ОРГАНІЗАЦІЯ", "ТОВ А",
			"ДАТА ВІДКРИТТЯ", "15.01.2024", "ДАТА ПЕРШОГО ЗАРАХУВАННЯ", "20.01.2024",
			"ДОГОВІР", "так", "ПАСПОРТ", "ні", "КОМЕНТАР", "перший"),
		sheetRow("fio", "Петренко Петро", "ipn", "2222222222", "organization", "ТОВ Б",
			"date_opened", "44197"),
	}

	result := RunImport(context.Background(), ins, rows)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Success)
	assert.Empty(t, result.Errors)
	require.Len(t, ins.inserted, 2)

	first := ins.inserted[0]
	assert.Equal(t, "2024-01-15", first.DateOpened)
	assert.Equal(t, "2024-01-20", first.DateFirstDeposit)
	assert.Equal(t, StatusActive, first.AccountStatus)
	assert.Equal(t, CardIssuing, first.CardStatus)
	assert.True(t, first.Documents.Contract)
	assert.False(t, first.Documents.Passport)

	second := ins.inserted[1]
	assert.Equal(t, "2021-01-01", second.DateOpened)
	assert.Equal(t, "", second.DateFirstDeposit)
	assert.Equal(t, StatusPending, second.AccountStatus)
}

func TestRunImportMissingRequiredField(t *testing.T) {
	ins := &fakeInserter{}
	rows := []map[string]string{
		sheetRow("ФІО", "Іванов Іван", "ІПН", "1111111111", "ОРГАНІЗАЦІЯ", "ТОВ А",
			"ДАТА ВІДКРИТТЯ", "15.01.2024"),
		sheetRow("ФІО", "Без Організації", "ІПН", "2222222222",
			"ДАТА ВІДКРИТТЯ", "16.01.2024"),
	}

	result := RunImport(context.Background(), ins, rows)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Рядок 2")
	assert.Len(t, ins.inserted, 1)
}

func TestRunImportContinuesAfterErrors(t *testing.T) {
	ins := &fakeInserter{failIPN: map[string]string{"2222222222": "duplicate key value"}}
	rows := []map[string]string{
		sheetRow("ФІО", "А", "ІПН", "1111111111", "ОРГАНІЗАЦІЯ", "Орг",
			"ДАТА ВІДКРИТТЯ", "15.01.2024"),
		sheetRow("ФІО", "Б", "ІПН", "2222222222", "ОРГАНІЗАЦІЯ", "Орг",
			"ДАТА ВІДКРИТТЯ", "15.01.2024"),
		sheetRow("ФІО", "В", "ІПН", "без дати", "ОРГАНІЗАЦІЯ", "Орг",
			"ДАТА ВІДКРИТТЯ", "зовсім не дата"),
		sheetRow("ФІО", "Г", "ІПН", "4444444444", "ОРГАНІЗАЦІЯ", "Орг",
			"ДАТА ВІДКРИТТЯ", "18.01.2024"),
	}

	result := RunImport(context.Background(), ins, rows)

	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Success)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "Рядок 2")
	assert.Contains(t, result.Errors[0], "duplicate key value")
	assert.Contains(t, result.Errors[1], "Рядок 3")
	assert.Len(t, ins.inserted, 2)
}

func TestRunImportInvalidDateBecomesMissing(t *testing.T) {
	// A malformed date normalizes to "" and trips required-field validation,
	// it never errors on its own.
	ins := &fakeInserter{}
	rows := []map[string]string{
		sheetRow("ФІО", "А", "ІПН", "1111111111", "ОРГАНІЗАЦІЯ", "Орг",
			"ДАТА ВІДКРИТТЯ", "13/45/99999"),
	}
	result := RunImport(context.Background(), ins, rows)
	assert.Equal(t, 0, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Рядок 1")
	assert.Empty(t, ins.inserted)
}

func TestRowMapsSkipsBlankRows(t *testing.T) {
	records := [][]string{
		{"ФІО", "ІПН", "ОРГАНІЗАЦІЯ", "ДАТА ВІДКРИТТЯ"},
		{"Іванов", "123", "ТОВ А", "15.01.2024"},
		{"", "  ", "", ""},
		{},
		{"Петренко", "456", "ТОВ Б", "16.01.2024"},
	}
	rows := rowMaps(records)
	require.Len(t, rows, 2)
	assert.Equal(t, "Іванов", rows[0]["ФІО"])
	assert.Equal(t, "Петренко", rows[1]["ФІО"])

	// blank rows neither count toward the total nor produce errors
	result := RunImport(context.Background(), &fakeInserter{}, rows)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Success)
	assert.Empty(t, result.Errors)
}

func TestRowMaps(t *testing.T) {
	records := [][]string{
		{"ФІО", "ІПН", ""},
		{"Іванов", "123", "ignored"},
		{"Петренко"},
	}
	rows := rowMaps(records)
	require.Len(t, rows, 2)
	assert.Equal(t, "Іванов", rows[0]["ФІО"])
	assert.Equal(t, "123", rows[0]["ІПН"])
	_, hasBlank := rows[0][""]
	assert.False(t, hasBlank)
	assert.Equal(t, "Петренко", rows[1]["ФІО"])
	_, ok := rows[1]["ІПН"]
	assert.False(t, ok)
}

func TestParseWorkbookFileXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"ФІО", "ІПН", "ОРГАНІЗАЦІЯ", "ДАТА ВІДКРИТТЯ"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Іванов Іван", "1234567890", "ТОВ А", "15.01.2024"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	records, err := parseWorkbookFile(bytes.NewReader(buf.Bytes()), ".xlsx")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"ФІО", "ІПН", "ОРГАНІЗАЦІЯ", "ДАТА ВІДКРИТТЯ"}, records[0])

	rows := rowMaps(records)
	result := RunImport(context.Background(), &fakeInserter{}, rows)
	assert.Equal(t, 1, result.Success)
}

func TestParseWorkbookFileCSV(t *testing.T) {
	data := "fio,ipn,organization,date_opened\nІванов,123,ТОВ А,15.01.2024\n"
	records, err := parseWorkbookFile(bytes.NewReader([]byte(data)), ".csv")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "15.01.2024", records[1][3])
}

func TestParseWorkbookFileUnsupported(t *testing.T) {
	_, err := parseWorkbookFile(bytes.NewReader([]byte("whatever")), ".pdf")
	assert.Error(t, err)
}

func TestParseWorkbookFileCorruptXLSX(t *testing.T) {
	_, err := parseWorkbookFile(bytes.NewReader([]byte("not a zip archive")), ".xlsx")
	assert.Error(t, err)
}

func TestParseFailureResult(t *testing.T) {
	result := parseFailureResult()
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, errFileUnreadable, result.Errors[0])
}

func TestFileExt(t *testing.T) {
	assert.Equal(t, ".xlsx", fileExt("zvit.XLSX"))
	assert.Equal(t, ".csv", fileExt("export.csv"))
	assert.Equal(t, "", fileExt("noext"))
}
