package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/persistence"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/record"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/storage"
)

const sheetName = "Sheet1"

// Columns is the stable header order of an exported workbook: one row per
// record, one column per field key. Import maps the same keys back.
var Columns = []string{
	"id", "entityKey", "ownerName", "establishmentName", "businessAddress",
	"contactNumber", "fsicAppNo", "dateInspected", "dateReinspected",
	"fsicValidity", "inspector1", "inspector2", "inspector3", "inspectors",
	"remarks", "orNumber", "orAmount", "orDate", "status",
}

// Creator is the record-creation half of the records service.
type Creator interface {
	Create(ctx context.Context, r record.Record) (record.Record, error)
}

// MonthLoader is the archive side needed for month exports.
type MonthLoader interface {
	LoadMonth(ctx context.Context, month string) ([]record.Record, error)
}

// RowResult reports one imported row's outcome. Error is empty on success.
type RowResult struct {
	Row      int    `json:"row"`
	RecordID string `json:"recordId,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ImportResult summarizes an import run.
type ImportResult struct {
	Created int         `json:"created"`
	Failed  int         `json:"failed"`
	Rows    []RowResult `json:"rows"`
}

// Service produces and consumes record workbooks.
type Service struct {
	records   Creator
	archives  MonthLoader
	validator *persistence.RowValidator
	sink      storage.Sink
}

// New constructs a Service instance.
func New(records Creator, archives MonthLoader, validator *persistence.RowValidator, sink storage.Sink) *Service {
	if records == nil {
		panic("records creator is required")
	}
	if archives == nil {
		panic("archive month loader is required")
	}
	if validator == nil {
		panic("row validator is required")
	}
	if sink == nil {
		panic("export sink is required")
	}
	return &Service{records: records, archives: archives, validator: validator, sink: sink}
}

// Export renders the records as an xlsx workbook: header row of field keys,
// then one row per record.
func (s *Service) Export(records []record.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for col, key := range Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, key); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for i, rec := range records {
		for col, key := range Columns {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, fieldValue(rec, key)); err != nil {
				return nil, fmt.Errorf("write row %d: %w", i+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Import reads the first sheet of a workbook, maps header columns back to
// field keys, validates each row, and creates a current record per valid row.
// Blank rows are skipped; invalid rows are reported without aborting the run.
func (s *Service) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{}, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ImportResult{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return ImportResult{}, nil
	}

	header := make([]string, len(rows[0]))
	for i, key := range rows[0] {
		header[i] = strings.TrimSpace(key)
	}

	var result ImportResult
	for i, cells := range rows[1:] {
		rowNo := i + 2

		row := make(map[string]any, len(header))
		blank := true
		for col, key := range header {
			if key == "" || col >= len(cells) {
				continue
			}
			value := strings.TrimSpace(cells[col])
			if value == "" {
				continue
			}
			blank = false
			row[key] = value
		}
		if blank {
			continue
		}

		if err := s.validator.Validate(row); err != nil {
			result.Failed++
			result.Rows = append(result.Rows, RowResult{Row: rowNo, Error: err.Error()})
			continue
		}

		created, err := s.records.Create(ctx, rowToRecord(row))
		if err != nil {
			result.Failed++
			result.Rows = append(result.Rows, RowResult{Row: rowNo, Error: err.Error()})
			continue
		}
		result.Created++
		result.Rows = append(result.Rows, RowResult{Row: rowNo, RecordID: created.ID})
	}

	return result, nil
}

// ExportMonth renders an archived month's workbook and stores it in the
// export sink under exports/{month}.xlsx.
func (s *Service) ExportMonth(ctx context.Context, month string) (string, error) {
	records, err := s.archives.LoadMonth(ctx, month)
	if err != nil {
		return "", err
	}

	data, err := s.Export(records)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("exports/%s.xlsx", month)
	if err := s.sink.Write(ctx, key, data); err != nil {
		return "", err
	}
	return key, nil
}

func fieldValue(rec record.Record, key string) string {
	switch key {
	case "id":
		return rec.ID
	case "entityKey":
		return rec.EntityKey
	case "ownerName":
		return rec.OwnerName
	case "establishmentName":
		return rec.EstablishmentName
	case "businessAddress":
		return rec.BusinessAddress
	case "contactNumber":
		return rec.ContactNumber
	case "fsicAppNo":
		return rec.FSICAppNo
	case "dateInspected":
		return rec.DateInspected
	case "dateReinspected":
		return rec.DateReinspected
	case "fsicValidity":
		return rec.FSICValidity
	case "inspector1":
		return rec.Inspector1
	case "inspector2":
		return rec.Inspector2
	case "inspector3":
		return rec.Inspector3
	case "inspectors":
		return rec.Inspectors
	case "remarks":
		return rec.Remarks
	case "orNumber":
		return rec.ORNumber
	case "orAmount":
		return rec.ORAmount
	case "orDate":
		return rec.ORDate
	case "status":
		return rec.Status
	default:
		return ""
	}
}

func rowToRecord(row map[string]any) record.Record {
	get := func(key string) string {
		if v, ok := row[key].(string); ok {
			return v
		}
		return ""
	}

	// The id and derived columns are intentionally ignored: the store
	// assigns ids and derivation recomputes the rest.
	return record.Record{
		OwnerName:         get("ownerName"),
		EstablishmentName: get("establishmentName"),
		BusinessAddress:   get("businessAddress"),
		ContactNumber:     get("contactNumber"),
		FSICAppNo:         get("fsicAppNo"),
		DateInspected:     get("dateInspected"),
		DateReinspected:   get("dateReinspected"),
		Inspector1:        get("inspector1"),
		Inspector2:        get("inspector2"),
		Inspector3:        get("inspector3"),
		Remarks:           get("remarks"),
		ORNumber:          get("orNumber"),
		ORAmount:          get("orAmount"),
		ORDate:            get("orDate"),
	}
}
