package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestExtract_NameRoundTrip(t *testing.T) {
	f := Extract("Name: Jane Doe\n")
	require.NotNil(t, f.Name)
	assert.Equal(t, "Jane Doe", *f.Name)
}

func TestExtract_FullDocument(t *testing.T) {
	text := "DRIVER LICENSE\n" +
		"Name: Jane Doe\n" +
		"Number: DL1234567\n" +
		"DOB: 15/01/1990\n" +
		"Expires: 15-01-2028\n" +
		"Address: 12 Main St, Springfield\n" +
		"Nationality: United States\n"

	f := Extract(text)

	require.NotNil(t, f.Name)
	assert.Equal(t, "Jane Doe", *f.Name)
	require.NotNil(t, f.DocumentNumber)
	assert.Equal(t, "DL1234567", *f.DocumentNumber)
	require.NotNil(t, f.DateOfBirth)
	assert.Equal(t, "15/01/1990", *f.DateOfBirth)
	require.NotNil(t, f.ExpiryDate)
	assert.Equal(t, "15-01-2028", *f.ExpiryDate)
	require.NotNil(t, f.Nationality)
	assert.Equal(t, "United States", *f.Nationality)
	require.NotNil(t, f.Address)
	assert.Equal(t, "12 Main St, Springfield", *f.Address)
	assert.Equal(t, 6, f.Count())
}

func TestExtract_MultilingualLabels(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		check func(t *testing.T, f Fields)
	}{
		{
			name: "portuguese name",
			text: "Nome: Maria Silva\n",
			check: func(t *testing.T, f Fields) {
				require.NotNil(t, f.Name)
				assert.Equal(t, "Maria Silva", *f.Name)
			},
		},
		{
			name: "dutch name at end of text",
			text: "Naam: Pieter Jansen",
			check: func(t *testing.T, f Fields) {
				require.NotNil(t, f.Name)
				assert.Equal(t, "Pieter Jansen", *f.Name)
			},
		},
		{
			name: "french birth date with dots",
			text: "Naissance 01.02.85",
			check: func(t *testing.T, f Fields) {
				require.NotNil(t, f.DateOfBirth)
				assert.Equal(t, "01.02.85", *f.DateOfBirth)
			},
		},
		{
			name: "case insensitive number",
			text: "NR: ab12cd",
			check: func(t *testing.T, f Fields) {
				require.NotNil(t, f.DocumentNumber)
				assert.Equal(t, "ab12cd", *f.DocumentNumber)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Extract(tt.text))
		})
	}
}

func TestExtract_NationalityRunsAcrossLines(t *testing.T) {
	// The nationality pattern has no line anchor, so a following label is swallowed
	f := Extract("Nationality: Kenyan\nSex F")
	require.NotNil(t, f.Nationality)
	assert.Equal(t, "Kenyan\nSex F", *f.Nationality)
}

func TestExtract_MissingFieldsAreNil(t *testing.T) {
	f := Extract("completely unrelated text 42")

	assert.Nil(t, f.Name)
	assert.Nil(t, f.DateOfBirth)
	assert.Nil(t, f.ExpiryDate)
	assert.False(t, f.HasName())

	empty := Extract("")
	assert.Equal(t, 0, empty.Count())
}

func TestClassifyDocument(t *testing.T) {
	tests := []struct {
		text string
		want DocumentType
	}{
		{"STATE OF CALIFORNIA DRIVER LICENSE", DocumentDriverLicense},
		{"United Kingdom Passport", DocumentPassport},
		{"Republic national identity card", DocumentNationalID},
		{"State of Ohio", DocumentStateID},
		{"", DocumentUnknown},
		{"grocery receipt", DocumentUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.want)+"/"+tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDocument(tt.text))
		})
	}
}

func TestClassifyDocument_FirstTypeWins(t *testing.T) {
	// "driver" and "passport" both present; driver license is checked first
	assert.Equal(t, DocumentDriverLicense, ClassifyDocument("passport and driver details"))
}

func TestDocumentRisk(t *testing.T) {
	full := Fields{Name: strp("Jane Doe"), DocumentNumber: strp("X1")}

	tests := []struct {
		name       string
		fields     Fields
		confidence float64
		want       float64
	}{
		{"clean", full, 95, 5},
		{"missing name", Fields{DocumentNumber: strp("X1")}, 95, 20},
		{"missing number", Fields{Name: strp("Jane")}, 95, 15},
		{"low confidence", full, 85, 25},
		{"everything wrong", Fields{}, 50, 50},
		{"empty name counts as missing", Fields{Name: strp(""), DocumentNumber: strp("X1")}, 95, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DocumentRisk(tt.fields, tt.confidence)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 1.0)
			assert.LessOrEqual(t, got, 95.0)
		})
	}
}
