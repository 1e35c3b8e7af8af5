package services

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"time"

	domainconfig "lifemap-backend/domain/config"
	"lifemap-backend/domain/core/entities"
	"lifemap-backend/domain/core/valueobjects"
	domainservices "lifemap-backend/domain/services"
	pkgerrors "lifemap-backend/pkg/errors"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ContactRecord is the wire shape of a contact in JSON export/import. A
// nil Notes pointer means the key was absent from the payload, which is a
// different thing from an explicit empty string.
type ContactRecord struct {
	ID              string  `json:"id,omitempty"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	EmailAddress    string  `json:"emailAddress,omitempty"`
	PhoneNumber     string  `json:"phoneNumber,omitempty"`
	LinkedInProfile string  `json:"linkedInProfile,omitempty"`
	DateAdded       string  `json:"dateAdded,omitempty"`
	DateEdited      string  `json:"dateEdited,omitempty"`
	Source          string  `json:"source,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// RecordFromContact converts a stored contact into its wire shape; export
// emits every field present on the record.
func RecordFromContact(c *entities.Contact) ContactRecord {
	return ContactRecord{
		ID:              c.ID().String(),
		FirstName:       c.FirstName(),
		LastName:        c.LastName(),
		EmailAddress:    c.EmailAddress(),
		PhoneNumber:     c.PhoneNumber(),
		LinkedInProfile: c.LinkedInProfile(),
		DateAdded:       c.DateAdded(),
		DateEdited:      c.DateEdited(),
		Source:          c.Source(),
		Notes:           c.Notes().Pointer(),
	}
}

// Candidate converts the record into a reconciliation candidate
func (r ContactRecord) Candidate() domainservices.Candidate {
	return domainservices.Candidate{
		ID: r.ID,
		Fields: entities.ContactFields{
			FirstName:       r.FirstName,
			LastName:        r.LastName,
			EmailAddress:    r.EmailAddress,
			PhoneNumber:     r.PhoneNumber,
			LinkedInProfile: r.LinkedInProfile,
			DateAdded:       r.DateAdded,
			DateEdited:      r.DateEdited,
			Source:          r.Source,
			Notes:           valueobjects.NotesFromPointer(r.Notes),
		},
	}
}

// ColumnMapping selects which source column feeds each contact field. Keys
// are contact field names (firstName, lastName, emailAddress, phoneNumber,
// linkedInProfile, dateAdded, source, notes), values are source headers as
// they appear in the uploaded file.
type ColumnMapping map[string]string

// DefaultColumnMapping matches the headers of a LinkedIn connections
// export
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		"firstName":       "First Name",
		"lastName":        "Last Name",
		"emailAddress":    "Email Address",
		"phoneNumber":     "Phone Number",
		"linkedInProfile": "URL",
		"dateAdded":       "Connected On",
		"source":          "Source",
		"notes":           "Notes",
	}
}

// ImportService turns uploaded files and JSON payloads into reconciliation
// candidates. File parsing is delegated to external parsers; this service
// only applies the column mapping and date normalization on top.
type ImportService struct {
	cfg    *domainconfig.DomainConfig
	logger *zap.Logger
}

// NewImportService creates a new import service
func NewImportService(cfg *domainconfig.DomainConfig, logger *zap.Logger) *ImportService {
	return &ImportService{cfg: cfg, logger: logger}
}

// ParseJSONCandidates decodes a re-imported JSON export. Anything that is
// not an array of contact-shaped objects rejects the whole import with a
// single error; no partial batch is produced.
func (s *ImportService) ParseJSONCandidates(data []byte) ([]domainservices.Candidate, error) {
	var records []ContactRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, pkgerrors.NewValidationError("import payload must be a JSON array of contact objects")
	}

	candidates := make([]domainservices.Candidate, 0, len(records))
	for _, record := range records {
		candidates = append(candidates, record.Candidate())
	}
	return candidates, nil
}

// ParseCSVRows reads header-keyed rows from a CSV upload
func (s *ImportService) ParseCSVRows(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, pkgerrors.NewValidationError("could not parse CSV file").WithCause(err)
	}
	return rowsFromTable(records), nil
}

// ParseExcelRows reads header-keyed rows from the first sheet of an Excel
// upload
func (s *ImportService) ParseExcelRows(r io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, pkgerrors.NewValidationError("could not parse Excel file").WithCause(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, pkgerrors.NewValidationError("Excel file has no sheets")
	}

	table, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, pkgerrors.NewValidationError("could not read Excel rows").WithCause(err)
	}
	return rowsFromTable(table), nil
}

func rowsFromTable(table [][]string) []map[string]string {
	if len(table) < 1 {
		return nil
	}

	headers := table[0]
	rows := make([]map[string]string, 0, len(table)-1)
	for _, record := range table[1:] {
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(record) {
				row[header] = record[i]
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// CandidatesFromRows applies the column mapping to header-keyed rows.
// Unmapped fields default to empty strings; dateAdded falls back to the
// current month when absent or unparseable. A notes column that exists in
// the source counts as present even when its cell is empty.
func (s *ImportService) CandidatesFromRows(rows []map[string]string, mapping ColumnMapping) []domainservices.Candidate {
	if mapping == nil {
		mapping = DefaultColumnMapping()
	}

	pick := func(row map[string]string, field string) string {
		header, ok := mapping[field]
		if !ok {
			return ""
		}
		return row[header]
	}

	candidates := make([]domainservices.Candidate, 0, len(rows))
	for _, row := range rows {
		dateAdded, ok := NormalizeDate(pick(row, "dateAdded"))
		if !ok {
			now := time.Now()
			dateAdded = now.Format("01/2006")
		}

		notes := valueobjects.AbsentNotes()
		if header, mapped := mapping["notes"]; mapped {
			if value, present := row[header]; present {
				notes = valueobjects.NewNotes(value)
			}
		}

		source := pick(row, "source")
		if source == "" {
			source = "Uploaded"
		}

		candidates = append(candidates, domainservices.Candidate{
			ID: pick(row, "id"),
			Fields: entities.ContactFields{
				FirstName:       pick(row, "firstName"),
				LastName:        pick(row, "lastName"),
				EmailAddress:    pick(row, "emailAddress"),
				PhoneNumber:     pick(row, "phoneNumber"),
				LinkedInProfile: pick(row, "linkedInProfile"),
				DateAdded:       dateAdded,
				Source:          source,
				Notes:           notes,
			},
		})
	}
	return candidates
}

// sourceDateLayouts are the date shapes uploads are known to carry
var sourceDateLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"1/2/2006",
	"2006-01-02",
}

// NormalizeDate converts a source date string to MM/YYYY, best effort.
// Values already in MM/YYYY pass through; anything else reports !ok.
func NormalizeDate(value string) (string, bool) {
	if value == "" {
		return "", false
	}

	if my, err := valueobjects.ParseMonthYear(value); err == nil {
		return my.String(), true
	}

	for _, layout := range sourceDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("01/2006"), true
		}
	}

	return "", false
}
