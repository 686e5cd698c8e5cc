package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ray1729/films-map/pkg/films"
)

const sheetName = "Films"

// SaveXLSX writes the results to a spreadsheet at path, one row per film.
func SaveXLSX(path string, results []films.Result) error {
	f := excelize.NewFile()
	defer f.Close()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}
	headers := []interface{}{"Rank", "Film", "Location", "Latitude", "Longitude", "Distance (km)"}
	if err := sw.SetRow("A1", headers); err != nil {
		return err
	}
	for i, r := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{i + 1, r.Name, r.Location, r.Point.Lat, r.Point.Lon, r.Distance}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("error saving %s: %w", path, err)
	}
	return nil
}
