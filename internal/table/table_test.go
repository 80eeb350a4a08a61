package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/calparse/internal/errs"
)

func TestParse_InfersColumnTypes(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	text := "Well,Count,Median,Note,Gaps\r\n" +
		"A1,12,1.5,ok,3\r\n" +
		"B1,007,2,NA,\r\n" +
		"C1,-4,1e3,\"x, y\",5"

	// --- Act ---
	tbl, err := Parse(text)

	// --- Assert ---
	require.NoError(t, err)
	expected := []Column{
		{Name: "Well", Type: String},
		{Name: "Count", Type: Int},
		{Name: "Median", Type: Float},
		{Name: "Note", Type: String},
		{Name: "Gaps", Type: Float},
	}
	if diff := cmp.Diff(expected, tbl.Columns); diff != "" {
		t.Errorf("Columns mismatch (-want +got):\n%s", diff)
	}

	expectedRecords := [][]string{
		{"A1", "12", "1.5", "ok", "3.0"},
		{"B1", "7", "2.0", "", ""},
		{"C1", "-4", "1000.0", "x, y", "5.0"},
	}
	if diff := cmp.Diff(expectedRecords, tbl.Records()); diff != "" {
		t.Errorf("Records mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_PadsShortRows(t *testing.T) {
	t.Parallel()

	tbl, err := Parse("a,b,c\n1,2\n")
	require.NoError(t, err)
	require.Equal(t, [][]string{{"1", "2", ""}}, tbl.Records())
	require.Equal(t, Float, tbl.Columns[2].Type, "an all-missing column is a float column")
}

func TestParse_RejectsLongRows(t *testing.T) {
	t.Parallel()

	_, err := Parse("a,b\n1,2,3\n")
	require.ErrorIs(t, err, errs.ErrMalformedRow)
	require.Contains(t, err.Error(), "expected 2 fields in row 1, saw 3")
}

func TestParse_NoHeader(t *testing.T) {
	t.Parallel()

	_, err := Parse("")
	require.ErrorIs(t, err, errs.ErrMalformedRow)
}

func TestParse_HeaderOnly(t *testing.T) {
	t.Parallel()

	tbl, err := Parse("a,b")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, tbl.Header())
	require.Empty(t, tbl.Rows)
}

func TestColumnNames(t *testing.T) {
	t.Parallel()

	got := columnNames([]string{"a", "", "a", "a", "a.1", "b"})
	require.Equal(t, []string{"a", "Unnamed: 1", "a.1", "a.2", "a.1.1", "b"}, got)
}

func TestFormatFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       float64
		expected string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{0.1, "0.1"},
		{-2.25, "-2.25"},
		{123456789, "123456789.0"},
		{1e-05, "1e-05"},
		{1.5e16, "1.5e+16"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.expected, formatFloat(tc.in), "formatFloat(%v)", tc.in)
	}
}

func TestColumnType_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "int", Int.String())
	require.Equal(t, "float", Float.String())
	require.Equal(t, "string", String.String())
}
