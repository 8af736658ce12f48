package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
	"github.com/yeremiapane/geprek-app/models"
	"github.com/yeremiapane/geprek-app/utils"
)

const (
	ReportSheetName = "Laporan Penjualan"
	SummaryLabel    = "RINGKASAN"
)

// Urutan kolom laporan
var ReportHeaders = []string{"Tanggal", "Nama Pelanggan", "Telepon", "Tipe Pesanan", "Total Pesanan", "Status", "Catatan"}

var reportColumnWidths = []float64{20, 25, 15, 15, 15, 12, 30}

type ReportRow struct {
	Date         string
	CustomerName string
	Phone        string
	OrderType    string
	Total        int64
	Status       string
	Notes        string
}

type ExportReport struct {
	PeriodStart  string
	PeriodEnd    string
	Rows         []ReportRow
	TotalOrders  int
	TotalRevenue int64
}

func BuildReport(recap *models.Recap, orders []models.Order, loc *time.Location) *ExportReport {
	report := &ExportReport{
		PeriodStart: recap.PeriodStart,
		PeriodEnd:   recap.PeriodEnd,
		Rows:        make([]ReportRow, 0, len(orders)),
	}
	for i := range orders {
		o := &orders[i]
		report.Rows = append(report.Rows, ReportRow{
			Date:         o.CreatedAt.In(loc).Format("02/01/2006, 15.04"),
			CustomerName: o.CustomerName,
			Phone:        o.CustomerPhone,
			OrderType:    o.OrderTypeLabel(),
			Total:        o.TotalAmount,
			Status:       string(o.Status),
			Notes:        o.NotesOrDash(),
		})
		report.TotalRevenue += o.TotalAmount
	}
	report.TotalOrders = len(orders)
	return report
}

func (r *ExportReport) FileName(ext string) string {
	return fmt.Sprintf("Laporan_Penjualan_%s_%s.%s", r.PeriodStart, r.PeriodEnd, ext)
}

func (r *ExportReport) summaryCells() []interface{} {
	return []interface{}{SummaryLabel, fmt.Sprintf("Total Pesanan: %d", r.TotalOrders), "", "", r.TotalRevenue, string(models.OrderCompleted), ""}
}

// WriteXLSX: satu sheet, header, baris pesanan, baris kosong, lalu ringkasan
func WriteXLSX(r *ExportReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			utils.ErrorLogger.Errorf("Failed to close workbook: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", ReportSheetName); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(ReportHeaders))
	for i, h := range ReportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(ReportSheetName, "A1", &header); err != nil {
		return nil, err
	}

	row := 2
	for _, line := range r.Rows {
		cells := []interface{}{line.Date, line.CustomerName, line.Phone, line.OrderType, line.Total, line.Status, line.Notes}
		if err := f.SetSheetRow(ReportSheetName, fmt.Sprintf("A%d", row), &cells); err != nil {
			return nil, err
		}
		row++
	}

	// baris kosong pemisah
	row++
	summary := r.summaryCells()
	if err := f.SetSheetRow(ReportSheetName, fmt.Sprintf("A%d", row), &summary); err != nil {
		return nil, err
	}

	for i, width := range reportColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(ReportSheetName, col, col, width); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePDF menulis laporan yang sama dalam bentuk tabel PDF landscape
func pdfRowCells(line ReportRow, tr func(string) string) []string {
	cells := []string{line.Date, line.CustomerName, line.Phone, line.OrderType, utils.FormatRupiah(line.Total), line.Status, line.Notes}
	for i, c := range cells {
		cells[i] = tr(c)
	}
	return cells
}

func WritePDF(r *ExportReport) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	// font inti hanya mengenal cp1252, teks UTF-8 harus diterjemahkan dulu
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(ReportSheetName, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("%s %s s/d %s", ReportSheetName, r.PeriodStart, r.PeriodEnd)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	widths := make([]float64, len(reportColumnWidths))
	for i, w := range reportColumnWidths {
		widths[i] = w * 2
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range ReportHeaders {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, line := range r.Rows {
		for i, c := range pdfRowCells(line, tr) {
			align := "L"
			if i == 4 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 6, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(widths[0], 7, tr(SummaryLabel), "1", 0, "L", true, 0, "")
	pdf.CellFormat(widths[1], 7, fmt.Sprintf("Total Pesanan: %d", r.TotalOrders), "1", 0, "L", true, 0, "")
	pdf.CellFormat(widths[2]+widths[3], 7, "", "1", 0, "L", true, 0, "")
	pdf.CellFormat(widths[4], 7, tr(utils.FormatRupiah(r.TotalRevenue)), "1", 1, "R", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
