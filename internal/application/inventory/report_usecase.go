package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/stock-relief/internal/domain/repository"
)

// StockSheet planilla de stock disponible agrupada por ubicación.
type StockSheet struct {
	Title       string
	GeneratedAt time.Time
	Rows        []StockSheetRow
}

// StockSheetRow una línea de la planilla.
type StockSheetRow struct {
	LocationName   string
	ProductName    string
	AvailableStock int64
}

// ReportUseCase arma la planilla imprimible de stock (equivalente a la exportación de la vista de stock).
type ReportUseCase struct {
	stockRepo    repository.StockRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	generator    StockSheetGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	generator StockSheetGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		stockRepo:    stockRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		generator:    generator,
	}
}

// BuildStockSheet devuelve las filas ordenadas por ubicación y producto. Si locationID no es vacío
// solo incluye esa ubicación.
func (uc *ReportUseCase) BuildStockSheet(ctx context.Context, locationID string) (*StockSheet, error) {
	snapshots, err := uc.stockRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	products := map[string]string{}
	locations := map[string]string{}

	rows := make([]StockSheetRow, 0, len(snapshots))
	for _, s := range snapshots {
		if locationID != "" && s.LocationID != locationID {
			continue
		}
		pName, ok := products[s.ProductID]
		if !ok {
			p, err := uc.productRepo.GetByID(ctx, s.ProductID)
			if err != nil {
				return nil, err
			}
			pName = s.ProductID
			if p != nil {
				pName = p.Name
			}
			products[s.ProductID] = pName
		}
		lName, ok := locations[s.LocationID]
		if !ok {
			l, err := uc.locationRepo.GetByID(ctx, s.LocationID)
			if err != nil {
				return nil, err
			}
			lName = s.LocationID
			if l != nil {
				lName = l.Name
			}
			locations[s.LocationID] = lName
		}
		rows = append(rows, StockSheetRow{LocationName: lName, ProductName: pName, AvailableStock: s.AvailableStock})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].LocationName != rows[j].LocationName {
			return rows[i].LocationName < rows[j].LocationName
		}
		return rows[i].ProductName < rows[j].ProductName
	})

	return &StockSheet{Title: "Stock disponible", GeneratedAt: time.Now(), Rows: rows}, nil
}

// StockSheetPDF genera el PDF de la planilla.
func (uc *ReportUseCase) StockSheetPDF(ctx context.Context, locationID string) ([]byte, error) {
	sheet, err := uc.BuildStockSheet(ctx, locationID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateStockSheet(ctx, *sheet)
}
