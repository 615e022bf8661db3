package extraction

// Fields holds the candidate identity fields pulled out of OCR text.
// A nil field means the pattern did not match and the value is unknown.
type Fields struct {
	Name           *string `json:"name,omitempty"`
	DocumentNumber *string `json:"documentNumber,omitempty"`
	DateOfBirth    *string `json:"dateOfBirth,omitempty"`
	ExpiryDate     *string `json:"expiryDate,omitempty"`
	Nationality    *string `json:"nationality,omitempty"`
	Address        *string `json:"address,omitempty"`
}

// Count returns the number of fields present
func (f Fields) Count() int {
	n := 0
	for _, v := range []*string{f.Name, f.DocumentNumber, f.DateOfBirth, f.ExpiryDate, f.Nationality, f.Address} {
		if v != nil {
			n++
		}
	}
	return n
}

// HasName reports whether a name was extracted
func (f Fields) HasName() bool {
	return f.Name != nil && *f.Name != ""
}

// HasDocumentNumber reports whether a document number was extracted
func (f Fields) HasDocumentNumber() bool {
	return f.DocumentNumber != nil && *f.DocumentNumber != ""
}

// DocumentType is the coarse document class guessed from OCR keywords
type DocumentType string

const (
	DocumentDriverLicense DocumentType = "Driver License"
	DocumentPassport      DocumentType = "Passport"
	DocumentNationalID    DocumentType = "National ID"
	DocumentStateID       DocumentType = "State ID"
	DocumentUnknown       DocumentType = "Unknown Document"
)

// Field identifies one extractable field
type Field string

const (
	FieldName           Field = "name"
	FieldDocumentNumber Field = "documentNumber"
	FieldDateOfBirth    Field = "dateOfBirth"
	FieldExpiryDate     Field = "expiryDate"
	FieldNationality    Field = "nationality"
	FieldAddress        Field = "address"
)
