package handlers

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"smarthourly.com/smarthourly/hourly/model"
)

var exportHeader = []interface{}{
	"Date", "Shift", "Line", "Time Slot", "Customer", "MO Type", "MO Number",
	"Meter From", "Meter To", "OK Qty", "NOK Qty", "Downtime (min)",
	"Downtime Detail", "ATL", "Remarks", "Operator Status", "Approver Status",
	"Approved By", "Rejection Note",
}

// buildEntriesWorkbook renders entries into a single-sheet XLSX workbook.
// The caller owns the returned file and must Close it.
func buildEntriesWorkbook(sheet string, entries []model.ProductionEntry) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		f.Close()
		return nil, err
	}

	for i, e := range entries {
		row := []interface{}{
			e.Date, e.Shift, e.Line, e.TimeSlot, e.CustomerName, e.MOType,
			e.MONumber, e.MeterFrom, e.MeterTo, e.OkQty, e.NokQty, e.Downtime,
			e.DowntimeDetail, e.ATL, e.Remarks, e.OperatorStatus,
			e.ApproverStatus, e.ApprovedBy, e.RejectionNote,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}
