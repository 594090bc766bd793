package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"sync"

	"fiado-backend/internal/config"
	"fiado-backend/internal/models"
	"fiado-backend/internal/repositories"
	"fiado-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// CustomerStatement holds everything needed to render one customer's
// statement: the record, the merged history and the floored balance.
type CustomerStatement struct {
	Customer *models.Customer
	History  []models.HistoryEntry
	Balance  float64
}

// ExportService renders tabular reports from the ledger. Read-only with
// respect to the store.
type ExportService struct {
	Cfg          *config.Config
	CustomerRepo *repositories.CustomerRepository
	LedgerRepo   *repositories.LedgerRepository
}

func NewExportService(cfg *config.Config, customerRepo *repositories.CustomerRepository, ledgerRepo *repositories.LedgerRepository) *ExportService {
	return &ExportService{Cfg: cfg, CustomerRepo: customerRepo, LedgerRepo: ledgerRepo}
}

// GetStatement fetches one customer's statement data.
func (s *ExportService) GetStatement(ctx context.Context, customerID int) (*CustomerStatement, error) {
	customer, err := s.CustomerRepo.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	history, err := s.LedgerRepo.GetHistory(ctx, customerID)
	if err != nil {
		return nil, err
	}
	balance, err := s.LedgerRepo.GetBalance(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &CustomerStatement{Customer: customer, History: history, Balance: balance}, nil
}

// GenerateCSV renders the full report: a customer summary section followed
// by every customer's merged history, in the layout the shop owner prints.
func (s *ExportService) GenerateCSV(ctx context.Context) ([]byte, error) {
	customers, err := s.CustomerRepo.Find(ctx, "")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{fmt.Sprintf("=== %s - FIADO REPORT ===", s.Cfg.Company.Name)})
	w.Write([]string{"Generated:", timeutil.Now().Format(timeutil.DisplayLayout)})
	w.Write([]string{})
	w.Write([]string{"=== CUSTOMER SUMMARY ==="})
	w.Write([]string{"Name", "Phone", "Limit", "Balance"})

	for _, c := range customers {
		balance, err := s.LedgerRepo.GetBalance(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		w.Write([]string{
			c.Name,
			c.Phone,
			fmt.Sprintf("R$ %.2f", c.CreditLimit),
			fmt.Sprintf("R$ %.2f", balance),
		})
	}

	w.Write([]string{})
	w.Write([]string{"=== TRANSACTION HISTORY ==="})
	w.Write([]string{"Customer", "Type", "Description", "Amount", "Date"})

	for _, c := range customers {
		history, err := s.LedgerRepo.GetHistory(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		for _, e := range history {
			w.Write([]string{
				c.Name,
				strings.ToUpper(string(e.Kind)),
				e.Description,
				fmt.Sprintf("R$ %.2f", e.Amount),
				e.CreatedAt.In(timeutil.BRT).Format(timeutil.DateTimeLayout),
			})
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GeneratePDF renders a single customer's statement.
func (s *ExportService) GeneratePDF(stmt *CustomerStatement) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("%s - Customer Statement", s.Cfg.Company.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Customer Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Customer Information", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", stmt.Customer.Name), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Phone: %s", stmt.Customer.Phone), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Credit Limit: R$ %.2f", stmt.Customer.CreditLimit), "LB", 0, "L", false, 0, "")
	if stmt.Customer.Active {
		pdf.CellFormat(95, 7, "Status: active", "RB", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(95, 7, "Status: inactive", "RB", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// History table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "History", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(30, 7, "Type", "1", 0, "C", true, 0, "")
	pdf.CellFormat(85, 7, "Description", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Amount", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Date", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, e := range stmt.History {
		pdf.CellFormat(30, 6, strings.ToUpper(string(e.Kind)), "1", 0, "C", false, 0, "")
		desc := e.Description
		if len(desc) > 45 {
			desc = desc[:42] + "..."
		}
		pdf.CellFormat(85, 6, desc, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("R$ %.2f", e.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, e.CreatedAt.In(timeutil.BRT).Format(timeutil.DisplayLayout), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	// Balance banner - highlight if outstanding
	if stmt.Balance > 0 {
		pdf.SetFillColor(255, 200, 200)
	} else {
		pdf.SetFillColor(200, 255, 200)
	}
	pdf.SetFont("Arial", "B", 14)
	balanceText := fmt.Sprintf("Balance Due: R$ %.2f", stmt.Balance)
	if stmt.Balance <= 0 {
		balanceText = "NOTHING OWED"
	}
	pdf.CellFormat(190, 10, balanceText, "1", 1, "C", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateBulkPDFs renders statements for all active customers in parallel.
func (s *ExportService) GenerateBulkPDFs(ctx context.Context) (map[string][]byte, error) {
	customers, err := s.CustomerRepo.Find(ctx, "")
	if err != nil {
		return nil, err
	}

	type pdfResult struct {
		name string
		id   int
		data []byte
		err  error
	}

	results := make(chan pdfResult, len(customers))
	jobs := make(chan *models.Customer, len(customers))

	var wg sync.WaitGroup
	numWorkers := 5
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				stmt, err := s.GetStatement(ctx, c.ID)
				if err != nil {
					results <- pdfResult{name: c.Name, id: c.ID, err: err}
					continue
				}
				data, err := s.GeneratePDF(stmt)
				results <- pdfResult{name: c.Name, id: c.ID, data: data, err: err}
			}
		}()
	}

	for _, c := range customers {
		jobs <- c
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	pdfs := make(map[string][]byte)
	for r := range results {
		if r.err == nil && r.data != nil {
			pdfs[fmt.Sprintf("%d_%s", r.id, r.name)] = r.data
		}
	}
	return pdfs, nil
}

// CreateBulkPDFZip bundles the statements into one ZIP archive.
func (s *ExportService) CreateBulkPDFZip(pdfs map[string][]byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for filename, pdfData := range pdfs {
		fw, err := zw.Create(fmt.Sprintf("statement_%s.pdf", filename))
		if err != nil {
			continue
		}
		fw.Write(pdfData)
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
