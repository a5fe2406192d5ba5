package handlers

import (
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	"p9e.in/vms/middleware"
)

// ExportVehicles downloads the full vehicle register as an xlsx workbook.
func ExportVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := fleet.Vehicles(r.Context(), middleware.GetToken(r))
	if err != nil {
		relayBackendError(w, err)
		return
	}

	headers := []string{"Vehicle ID", "Vehicle Number", "Type", "Manufacturer", "Model", "License Number", "License Expiry", "Status"}
	rows := make([][]interface{}, 0, len(vehicles))
	for _, v := range vehicles {
		rows = append(rows, []interface{}{
			v.VehicleID, v.VehicleNumber, string(v.VehicleType), v.Manufacturer,
			v.Model, v.LicenseNumber, v.LicenseExpiryDate, v.Status,
		})
	}
	writeWorkbook(w, "Vehicles", "vehicles.xlsx", headers, rows)
}

// ExportDrivers downloads the driver register as an xlsx workbook.
func ExportDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := fleet.Drivers(r.Context(), middleware.GetToken(r))
	if err != nil {
		relayBackendError(w, err)
		return
	}

	headers := []string{"Driver ID", "Name", "Phone Number", "License Number", "NIC", "License Expiry", "Status"}
	rows := make([][]interface{}, 0, len(drivers))
	for _, d := range drivers {
		rows = append(rows, []interface{}{
			d.DriverID, d.Name, d.PhoneNumber, d.LicenseNumber, d.NIC,
			d.LicenseExpiryDate, d.Status,
		})
	}
	writeWorkbook(w, "Drivers", "drivers.xlsx", headers, rows)
}

func writeWorkbook(w http.ResponseWriter, sheetName, filename string, headers []string, rows [][]interface{}) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		http.Error(w, "failed to build workbook", http.StatusInternalServerError)
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	for col, label := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheetName, cell, label)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}
	for rowIdx, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to write workbook", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprint(buffer.Len()))
	w.Write(buffer.Bytes())
}
