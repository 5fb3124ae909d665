package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"po-backend/internal/repositories"
	"po-backend/internal/timeutil"
)

// ReportService renders purchase order documents
type ReportService struct {
	OrderRepo   *repositories.PurchaseOrderRepository
	InvoiceRepo *repositories.InvoiceRepository
}

func NewReportService(orderRepo *repositories.PurchaseOrderRepository,
	invoiceRepo *repositories.InvoiceRepository) *ReportService {
	return &ReportService{OrderRepo: orderRepo, InvoiceRepo: invoiceRepo}
}

// GenerateOrderPDF renders an order sheet: header, vendor block, the
// line items with their receipt progress, and the invoice list.
func (s *ReportService) GenerateOrderPDF(ctx context.Context, orderID int) ([]byte, error) {
	order, err := s.OrderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	invoices, err := s.InvoiceRepo.List(ctx, orderID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("Purchase Order %s", order.OrderNumber), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Order Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Order Information", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Vendor: %s", order.VendorName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Status: %s", order.Status), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Project: %s", order.ProjectName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Ordered by: %s", order.UserName), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Order date: %s", order.OrderDate.Format("02-Jan-2006")), "LB", 0, "L", false, 0, "")
	if order.DeliveryDate != nil {
		pdf.CellFormat(95, 7, fmt.Sprintf("Delivery date: %s", order.DeliveryDate.Format("02-Jan-2006")), "RB", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(95, 7, "", "RB", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// Line items with receipt progress
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Order Items", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(55, 7, "Item", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Unit", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Received", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Unit Price", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Total", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range order.Items {
		name := item.ItemName
		if len(name) > 28 {
			name = name[:25] + "..."
		}
		pdf.CellFormat(55, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, item.Unit, "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", item.TotalReceived), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", item.TotalAmount), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(155, 8, "Order Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", order.TotalAmount), "1", 1, "R", false, 0, "")

	// Invoices if any
	if len(invoices) > 0 {
		pdf.Ln(5)
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(190, 8, "Invoices", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(45, 7, "Invoice #", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Status", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Total", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, "VAT", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Tax Invoice", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, inv := range invoices {
			pdf.CellFormat(45, 6, inv.InvoiceNumber, "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, inv.Status, "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", inv.TotalAmount), "1", 0, "R", false, 0, "")
			pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", inv.VATAmount), "1", 0, "R", false, 0, "")
			taxStatus := "not issued"
			if inv.TaxInvoiceIssued {
				taxStatus = "issued"
				if inv.TaxInvoiceIssuedDate != nil {
					taxStatus = inv.TaxInvoiceIssuedDate.Format("02-Jan-2006")
				}
			}
			pdf.CellFormat(40, 6, taxStatus, "1", 1, "C", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
