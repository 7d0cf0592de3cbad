package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

const reportsDir = "reports"

var bookingHeaders = []string{
	"ID", "Reference", "Service", "Type", "Frequency",
	"Subtotal", "Discount", "Tip", "Total", "Initial Fee", "Recurring Fee",
	"Name", "Email", "Phone", "Address", "Postal Code",
	"Date", "Arrival Window", "Status", "Created At",
}

func bookingRow(b Booking) []interface{} {
	return []interface{}{
		b.ID,
		b.Reference,
		b.ServiceID,
		b.ServiceType,
		b.Frequency,
		b.Subtotal,
		b.Discount,
		b.Tip,
		b.Total,
		b.InitialFee,
		b.RecurringFee,
		b.Name,
		b.Email,
		b.Phone,
		b.Address,
		b.PostalCode,
		b.BookingDate,
		b.ArrivalWindow,
		b.Status,
		b.CreatedAt.Format("2006-01-02 15:04"),
	}
}

// ExportBookingToExcel writes a single-booking sheet for the admin
// notification and returns the file path.
func (s *PostgresStorage) ExportBookingToExcel(ctx context.Context, booking Booking) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Booking"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}

	rows := [][2]interface{}{
		{"Reference", booking.Reference},
		{"Service", booking.ServiceID},
		{"Type", booking.ServiceType},
		{"Frequency", booking.Frequency},
		{"Subtotal", booking.Subtotal},
		{"Discount", booking.Discount},
		{"Tip", booking.Tip},
		{"Total", booking.Total},
		{"Initial fee", booking.InitialFee},
		{"Recurring fee", booking.RecurringFee},
		{"Customer", booking.Name},
		{"Email", booking.Email},
		{"Phone", booking.Phone},
		{"Address", booking.Address},
		{"Postal code", booking.PostalCode},
		{"Date", booking.BookingDate},
		{"Arrival window", booking.ArrivalWindow},
		{"Status", booking.Status},
		{"Created", booking.CreatedAt.Format("2006-01-02 15:04")},
	}
	for i, row := range rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+1), row[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+1), row[1])
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellStyle(sheet, "A1", fmt.Sprintf("A%d", len(rows)), style)
	f.SetActiveSheet(index)

	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	filepath := fmt.Sprintf("%s/booking_%s.xlsx", reportsDir, booking.Reference)
	if err := f.SaveAs(filepath); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}

	return filepath, nil
}

// ExportAllBookingsToExcel writes every booking to reports/<filename>.xlsx.
func (s *PostgresStorage) ExportAllBookingsToExcel(ctx context.Context, filename string) (string, error) {
	bookings, err := s.ListBookings(ctx)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Bookings"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}

	for col, header := range bookingHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, booking := range bookings {
		for col, value := range bookingRow(booking) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	f.SetActiveSheet(index)

	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	filepath := fmt.Sprintf("%s/%s.xlsx", reportsDir, filename)
	if err := f.SaveAs(filepath); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}

	return filepath, nil
}
