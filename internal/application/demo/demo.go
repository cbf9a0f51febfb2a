// Package demo carga el conjunto de datos de ejemplo (insumos de ayuda, centros de acopio y movimientos).
// Los movimientos pasan por el motor de traslados, así el stock queda consistente con el libro.
package demo

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-relief/internal/application/dto"
	"github.com/jhoicas/stock-relief/internal/application/inventory"
	"github.com/jhoicas/stock-relief/internal/application/usecase"
	"github.com/jhoicas/stock-relief/pkg/logger"
)

var products = []dto.CreateProductRequest{
	{Name: "First aid supplies", Description: "Sealed box of basic first aid necessities- iodine, bandages, painkillers, cotton, etc"},
	{Name: "Toiletries", Description: "Soap, shampoo, hand sanitizer, etc"},
	{Name: "Blankets", Description: "Bedsheets, shawls, blankets"},
	{Name: "Clothing", Description: "Segregate by adult and child sizes"},
	{Name: "Canned or dry foods", Description: "Non perishable items"},
	{Name: "Torches", Description: "Portable light sources"},
	{Name: "Bottled water", Description: "Available drinking water in liters"},
	{Name: "Menstrual products", Description: "Products for female menstrual health"},
	{Name: "Bags", Description: "Sturdy bags for carrying around goods"},
	{Name: "Undergarments", Description: "New packaged undergarments"},
	{Name: "Cleaning supplies", Description: "Bleach, iodine tablets, etc"},
	{Name: "Plastic buckets and mugs", Description: "Containers to store clean water"},
}

var locations = []dto.CreateLocationRequest{
	{Name: "Malayala Manorama office", OtherDetails: "Eranakulam, Kerala"},
	{Name: "Primary Health Center", OtherDetails: "Madikeri, Karnataka"},
	{Name: "Red cross home", OtherDetails: "Bengaluru, Karnataka"},
	{Name: "Relief center 1", OtherDetails: "Eg. area 1"},
	{Name: "Relief center 2", OtherDetails: "Eg. area 2"},
	{Name: "Relief center 3", OtherDetails: "Eg. area 3"},
	{Name: "Relief center 4", OtherDetails: "Eg. area 4"},
}

// movement referencia productos y ubicaciones por posición (1-based); 0 = sin ubicación.
type movement struct {
	date    string
	from    int
	to      int
	product int
	qty     int64
}

var movements = []movement{
	{"2017-06-08", 0, 1, 2, 120},
	{"2017-06-08", 0, 2, 1, 93},
	{"2017-06-08", 0, 3, 1, 40},
	{"2017-06-08", 0, 3, 1, 27},
	{"2017-06-08", 0, 1, 12, 20},
	{"2017-06-08", 0, 3, 3, 13},
	{"2017-06-08", 0, 2, 9, 25},
	{"2017-06-08", 0, 1, 11, 45},
	{"2017-06-08", 0, 3, 6, 15},
	{"2017-09-13", 1, 4, 12, 200},
	{"2017-10-12", 1, 5, 12, 35},
	{"2017-10-22", 2, 7, 1, 60},
	{"2017-11-27", 3, 6, 1, 55},
	{"2018-12-27", 1, 3, 2, 143},
	{"2018-01-09", 7, 0, 1, 25},
	{"2018-03-07", 6, 0, 1, 21},
	{"2018-05-31", 3, 5, 3, 31},
	{"2018-06-11", 1, 6, 12, 103},
	{"2018-07-24", 1, 4, 2, 65},
	{"2018-07-28", 3, 0, 6, 25},
	{"2018-07-31", 4, 0, 2, 25},
	{"2018-11-25", 4, 5, 2, 32},
}

// Result resumen de la carga.
type Result struct {
	Products  int
	Locations int
	Applied   int
	Rejected  int
}

// Load crea productos y ubicaciones y aplica los movimientos en orden.
// Un movimiento rechazado por stock se registra en el log y se omite; cualquier otro error aborta.
func Load(ctx context.Context, ref *usecase.ReferenceUseCase, processor *inventory.TransferProcessor, log *logger.Logger) (*Result, error) {
	res := &Result{}

	productIDs := make([]string, 0, len(products))
	for _, in := range products {
		p, err := ref.CreateProduct(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("demo: producto %q: %w", in.Name, err)
		}
		productIDs = append(productIDs, p.ID)
	}
	res.Products = len(productIDs)

	locationIDs := make([]string, 0, len(locations))
	for _, in := range locations {
		l, err := ref.CreateLocation(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("demo: ubicación %q: %w", in.Name, err)
		}
		locationIDs = append(locationIDs, l.ID)
	}
	res.Locations = len(locationIDs)

	at := func(ids []string, pos int) string {
		if pos == 0 {
			return ""
		}
		return ids[pos-1]
	}
	for i, m := range movements {
		date, err := time.Parse(inventory.DateLayout, m.date)
		if err != nil {
			return nil, fmt.Errorf("demo: fecha %q: %w", m.date, err)
		}
		_, err = processor.Create(ctx, inventory.CreateMovementInput{
			ProductID:      at(productIDs, m.product),
			FromLocationID: at(locationIDs, m.from),
			ToLocationID:   at(locationIDs, m.to),
			Qty:            m.qty,
			MovementDate:   date,
		})
		if err != nil {
			if !isRejection(err) {
				return nil, fmt.Errorf("demo: movimiento %d: %w", i+1, err)
			}
			log.Warn().Err(err).Int("movement", i+1).Msg("movimiento demo omitido")
			res.Rejected++
			continue
		}
		res.Applied++
	}

	log.Info().
		Int("products", res.Products).
		Int("locations", res.Locations).
		Int("applied", res.Applied).
		Int("rejected", res.Rejected).
		Msg("datos demo cargados")
	return res, nil
}
