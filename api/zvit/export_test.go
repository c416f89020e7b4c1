package zvit

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDocuments(t *testing.T) {
	assert.Equal(t, "Договір: так, Паспорт: ні, Опитувальник: так",
		FormatDocuments(Documents{Contract: true, Questionnaire: true}))
	assert.Equal(t, "Договір: ні, Паспорт: ні, Опитувальник: ні",
		FormatDocuments(Documents{}))
}

func TestSerializeCSV(t *testing.T) {
	records := []Record{
		{
			FIO:              "Іванов Іван",
			IPN:              "1234567890",
			Organization:     "ТОВ А",
			DateOpened:       "2024-01-15",
			DateFirstDeposit: "2024-01-20",
			AccountStatus:    StatusActive,
			CardStatus:       CardIssuing,
			Documents:        Documents{Contract: true},
			Comment:          "перший",
		},
	}

	out := string(SerializeCSV(records))

	assert.True(t, strings.HasPrefix(out, utf8BOM))
	lines := strings.Split(strings.TrimPrefix(out, utf8BOM), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"ФІО","ІПН","Організація","Дата відкриття","Дата першого зарахування","Статус рахунку","Статус карти","Документи","Коментар"`, lines[0])
	assert.Equal(t, `"Іванов Іван","1234567890","ТОВ А","2024-01-15","2024-01-20","Активний","На випуску","Договір: так, Паспорт: ні, Опитувальник: так","перший"`, lines[1])
}

func TestSerializeCSVDoesNotEscapeQuotes(t *testing.T) {
	records := []Record{{
		FIO:          "Тест",
		Organization: `ТОВ "ЛАПКИ"`,
		Comment:      "кома, всередині",
	}}
	out := string(SerializeCSV(records))
	// embedded quotes pass through untouched
	assert.Contains(t, out, `"ТОВ "ЛАПКИ""`)
	assert.Contains(t, out, `"кома, всередині"`)
	assert.NotContains(t, out, `""ЛАПКИ""`)
}

func TestSerializeCSVEmpty(t *testing.T) {
	out := string(SerializeCSV(nil))
	assert.True(t, strings.HasPrefix(out, utf8BOM))
	assert.Equal(t, 1, strings.Count(out, "ФІО"))
	assert.NotContains(t, out, "\n")
}

func TestWriteTemplate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf))

	records, err := parseWorkbookFile(bytes.NewReader(buf.Bytes()), ".xlsx")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "ФІО", records[0][0])
	assert.Equal(t, "КОМЕНТАР", records[0][9])
	assert.Equal(t, "Іванов Іван Іванович", records[1][0])

	// the template row survives a round trip through the importer
	result := RunImport(context.Background(), &fakeInserter{}, rowMaps(records))
	assert.Equal(t, 1, result.Success)
	assert.Empty(t, result.Errors)
}
