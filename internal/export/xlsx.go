// Package export renders a match roster as a spreadsheet workbook.
//
// The column layout mirrors the legacy sheet (Date, Field_Name, Player_Name,
// Status, Timestamp) so existing exports stay comparable, with the
// reconciled effective status appended.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rizalarf/matchday/internal/roster/model"
)

// SheetName is the single worksheet holding the roster.
const SheetName = "Roster"

var header = []string{"Date", "Field_Name", "Player_Name", "Status", "Effective_Status", "Paid", "Timestamp"}

// RosterWorkbook builds an xlsx workbook from a reconciled roster.
func RosterWorkbook(roster *model.RosterResponse) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cell, title); err != nil {
			f.Close()
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for i, entry := range roster.Entries {
		row := []interface{}{
			roster.Date,
			roster.FieldName,
			entry.PlayerName,
			string(entry.Status),
			string(entry.EffectiveStatus),
			entry.Paid,
			entry.Timestamp,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	return f, nil
}
