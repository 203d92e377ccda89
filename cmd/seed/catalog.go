package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/brightbuy/brightbuy-backend/internal/app/model"
	"github.com/brightbuy/brightbuy-backend/internal/app/repository"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Catalog sheet columns, first row is the header.
const (
	colProduct = iota
	colBrand
	colCategory
	colDescription
	colVariant
	colSKU
	colPrice
	colQuantity
	catalogColumns
)

type catalogRow struct {
	Product     string
	Brand       string
	Category    string
	Description string
	Variant     string
	SKU         string
	Price       *model.Money // empty cell = not for sale
	Quantity    int
}

type importStats struct {
	Products        int
	VariantsCreated int
	VariantsUpdated int
}

func readCatalogFromXLSX(filePath string) ([]catalogRow, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	var (
		catalog []catalogRow
		skipped int
	)
	seenSKU := make(map[string]bool)

	for i, row := range rows {
		if i == 0 {
			continue
		}
		r, ok := parseCatalogRow(row)
		if !ok || seenSKU[r.SKU] {
			skipped++
			continue
		}
		seenSKU[r.SKU] = true
		catalog = append(catalog, r)
	}
	return catalog, skipped, nil
}

func parseCatalogRow(row []string) (catalogRow, bool) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	r := catalogRow{
		Product:     cell(colProduct),
		Brand:       cell(colBrand),
		Category:    cell(colCategory),
		Description: cell(colDescription),
		Variant:     cell(colVariant),
		SKU:         cell(colSKU),
	}
	if r.Product == "" || r.Variant == "" || r.SKU == "" {
		return r, false
	}

	if raw := cell(colPrice); raw != "" {
		price, err := model.ParseMoney(strings.TrimPrefix(raw, "$"))
		if err != nil || price.IsNegative() {
			return r, false
		}
		r.Price = &price
	}

	if raw := cell(colQuantity); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil || qty < 0 {
			return r, false
		}
		r.Quantity = qty
	}
	return r, true
}

// importCatalog upserts products by name and variants by SKU in one transaction.
func importCatalog(db *gorm.DB, rows []catalogRow) (importStats, error) {
	var stats importStats

	err := db.Transaction(func(tx *gorm.DB) error {
		products := repository.NewProductRepository(tx)
		variants := repository.NewVariantRepository(tx)
		productIDs := make(map[string]uint)

		for _, r := range rows {
			productID, ok := productIDs[r.Product]
			if !ok {
				product, err := products.FindByName(r.Product)
				if errors.Is(err, gorm.ErrRecordNotFound) {
					product = &model.Product{
						Name:        r.Product,
						Brand:       r.Brand,
						Category:    r.Category,
						Description: r.Description,
					}
					if err := products.Create(product); err != nil {
						return err
					}
					stats.Products++
				} else if err != nil {
					return err
				}
				productID = product.ID
				productIDs[r.Product] = productID
			}

			existing, err := variants.FindBySKU(r.SKU)
			switch {
			case err == nil:
				existing.ProductID = productID
				existing.Name = r.Variant
				existing.Price = r.Price
				existing.Quantity = r.Quantity
				if err := variants.Update(existing); err != nil {
					return err
				}
				stats.VariantsUpdated++
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := variants.Create(&model.Variant{
					ProductID: productID,
					Name:      r.Variant,
					SKU:       r.SKU,
					Price:     r.Price,
					Quantity:  r.Quantity,
				}); err != nil {
					return err
				}
				stats.VariantsCreated++
			default:
				return err
			}
		}
		return nil
	})
	return stats, err
}

// ensureAdmin creates the admin account used for the /admin routes if it does not exist.
func ensureAdmin(db *gorm.DB, email, name string) (*model.User, bool, error) {
	users := repository.NewUserRepository(db)

	user, err := users.FindByEmail(email)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	user = &model.User{Email: email, Name: name, Role: model.RoleAdmin}
	if err := users.Create(user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}
