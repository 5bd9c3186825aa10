package export

import (
	"fmt"

	"shareit/internal/models"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Bookings"

var columns = []string{"ID", "Item", "Booker", "Start", "End", "Status"}

// BookingsWorkbook builds an xlsx report of the given bookings, one row
// per booking. The caller owns the returned file and must Close it.
func BookingsWorkbook(bookings []models.Booking) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for i, title := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, title)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for row, booking := range bookings {
		values := []any{
			booking.ID,
			itemName(&booking),
			bookerName(&booking),
			booking.Start.Format("2006-01-02 15:04"),
			booking.End.Format("2006-01-02 15:04"),
			booking.Status,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheetName, cell, value)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "F", 22)
	_ = f.DeleteSheet("Sheet1")

	return f, nil
}

func itemName(b *models.Booking) string {
	if b.Item != nil {
		return b.Item.Name
	}
	return fmt.Sprintf("item %d", b.ItemID)
}

func bookerName(b *models.Booking) string {
	if b.Booker != nil {
		return b.Booker.Name
	}
	return fmt.Sprintf("user %d", b.BookerID)
}
