package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTable() Table {
	return Table{
		Columns: RequiredColumns(),
		Rows: []Row{
			{
				ColKhewat: "594", ColKhatoni: "846", ColKhasra: "0//303",
				ColLandType: "प्लाट", ColIrrigation: "",
				ColKanal: "0", ColMarla: "19",
			},
			{
				ColKhewat: "594", ColKhatoni: "846", ColKhasra: "0//492",
				ColLandType: "गढडे", ColIrrigation: "",
				ColKanal: "0", ColMarla: "3",
			},
		},
	}
}

func TestValidate_HappyPath(t *testing.T) {
	records, err := Validate(validTable())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "594", records[0].Khewat)
	assert.Equal(t, "0//303", records[0].Khasra)
	assert.Equal(t, "प्लाट", records[0].LandType)
	assert.Equal(t, 0.0, records[0].Kanal)
	assert.Equal(t, 19.0, records[0].Marla)
	assert.Nil(t, records[0].Extra)

	assert.Equal(t, "0//492", records[1].Khasra)
	assert.Equal(t, 3.0, records[1].Marla)
}

func TestValidate_MissingColumn(t *testing.T) {
	table := validTable()
	table.Columns = []string{ColKhewat, ColKhatoni, ColLandType, ColIrrigation, ColKanal, ColMarla}

	_, err := Validate(table)
	require.Error(t, err)

	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{ColKhasra}, missing.Columns)
	assert.Contains(t, err.Error(), "Khasra")
}

func TestValidate_MissingSeveralColumns(t *testing.T) {
	_, err := Validate(Table{Columns: []string{ColKanal, ColMarla}})

	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t,
		[]string{ColKhewat, ColKhatoni, ColKhasra, ColLandType, ColIrrigation},
		missing.Columns)
}

func TestValidate_InvalidNumbers(t *testing.T) {
	tests := []struct {
		name   string
		column string
		value  string
	}{
		{"non-numeric marla", ColMarla, "abc"},
		{"empty kanal", ColKanal, ""},
		{"whitespace-only marla", ColMarla, "   "},
		{"negative kanal", ColKanal, "-1"},
		{"nan marla", ColMarla, "NaN"},
		{"infinite kanal", ColKanal, "+Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := validTable()
			table.Rows[1][tt.column] = tt.value

			_, err := Validate(table)
			require.Error(t, err)

			var invalid *InvalidNumberError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, 1, invalid.Row)
			assert.Equal(t, tt.column, invalid.Column)
			assert.Equal(t, tt.value, invalid.Value)
		})
	}
}

func TestValidate_FailsFastOnFirstBadRow(t *testing.T) {
	table := validTable()
	table.Rows[0][ColKanal] = "x"
	table.Rows[1][ColMarla] = "y"

	_, err := Validate(table)

	var invalid *InvalidNumberError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 0, invalid.Row)
	assert.Equal(t, ColKanal, invalid.Column)
}

func TestValidate_ExtraColumnsPassThrough(t *testing.T) {
	table := validTable()
	table.Columns = append(table.Columns, "Remarks")
	table.Rows[0]["Remarks"] = "self-cultivated"

	records, err := Validate(table)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Remarks": "self-cultivated"}, records[0].Extra)
	assert.Nil(t, records[1].Extra)
}

func TestValidate_AcceptsFractionalAndOversizedMarla(t *testing.T) {
	table := validTable()
	table.Rows[0][ColMarla] = "19.5"
	table.Rows[1][ColMarla] = "25"

	records, err := Validate(table)
	require.NoError(t, err)
	assert.Equal(t, 19.5, records[0].Marla)
	assert.Equal(t, 25.0, records[1].Marla)
}

func TestValidate_TrimsMeasurementWhitespace(t *testing.T) {
	table := validTable()
	table.Rows[0][ColKanal] = " 2 "

	records, err := Validate(table)
	require.NoError(t, err)
	assert.Equal(t, 2.0, records[0].Kanal)
}
