// Package extraction pulls identity fields out of OCR text and classifies documents.
// Everything here is pure: no I/O and no randomness.
package extraction

import (
	"regexp"
	"strings"

	"github.com/richxcame/kyc-nova/internal/scoring"
)

type fieldPattern struct {
	field   Field
	pattern *regexp.Regexp
}

// Applied in order; the first capture group of each match is the value.
// Labels cover English, Portuguese, French, German and Dutch document layouts.
var fieldPatterns = []fieldPattern{
	{FieldName, regexp.MustCompile(`(?i)(?:name|nome|nom|naam)[\s:]*([a-zA-Z\s]+)(?:\n|$)`)},
	{FieldDocumentNumber, regexp.MustCompile(`(?i)(?:no|number|num|nr)[\s:]*([A-Z0-9]+)`)},
	{FieldDateOfBirth, regexp.MustCompile(`(?i)(?:dob|birth|born|naissance)[\s:]*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`)},
	{FieldExpiryDate, regexp.MustCompile(`(?i)(?:exp|expires|expiry|valid)[\s:]*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`)},
	{FieldNationality, regexp.MustCompile(`(?i)(?:nationality|country|pays|land)[\s:]*([a-zA-Z\s]+)`)},
	{FieldAddress, regexp.MustCompile(`(?i)(?:address|addr|adresse|anschrift)[\s:]*([a-zA-Z0-9 ,.'#/\-]+)`)},
}

// Extract applies the field patterns to text. Missing fields stay nil.
func Extract(text string) Fields {
	var f Fields
	for _, fp := range fieldPatterns {
		m := fp.pattern.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		v := strings.TrimSpace(m[1])
		if v == "" {
			continue
		}
		f.set(fp.field, v)
	}
	return f
}

func (f *Fields) set(field Field, v string) {
	switch field {
	case FieldName:
		f.Name = &v
	case FieldDocumentNumber:
		f.DocumentNumber = &v
	case FieldDateOfBirth:
		f.DateOfBirth = &v
	case FieldExpiryDate:
		f.ExpiryDate = &v
	case FieldNationality:
		f.Nationality = &v
	case FieldAddress:
		f.Address = &v
	}
}

var documentKeywords = []struct {
	docType  DocumentType
	keywords []string
}{
	{DocumentDriverLicense, []string{"license", "driving", "driver", "class"}},
	{DocumentPassport, []string{"passport", "travel", "country", "issued"}},
	{DocumentNationalID, []string{"identity", "national", "citizen", "id"}},
	{DocumentStateID, []string{"state", "identification", "resident"}},
}

// ClassifyDocument returns the first document type with a keyword present in text
func ClassifyDocument(text string) DocumentType {
	lower := strings.ToLower(text)
	for _, dt := range documentKeywords {
		for _, kw := range dt.keywords {
			if strings.Contains(lower, kw) {
				return dt.docType
			}
		}
	}
	return DocumentUnknown
}

// DocumentRisk scores how suspicious a document looks, from 1 (clean) to 95
func DocumentRisk(f Fields, authenticityConfidence float64) float64 {
	risk := 5.0
	if !f.HasName() {
		risk += 15
	}
	if !f.HasDocumentNumber() {
		risk += 10
	}
	if authenticityConfidence < 90 {
		risk += 20
	}
	return scoring.Clamp(risk, 1, 95)
}
