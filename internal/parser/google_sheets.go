package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type GoogleSheetsParser struct {
	service *sheets.Service
}

type Config struct {
	CredentialsJSON []byte
}

func New(cfg Config) (*GoogleSheetsParser, error) {
	ctx := context.Background()

	service, err := sheets.NewService(ctx, option.WithCredentialsJSON(cfg.CredentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &GoogleSheetsParser{
		service: service,
	}, nil
}

// ParseCatalog reads the menu spreadsheet. A row with only its first cell
// set opens a category section; the product rows below it belong to that
// category until the next section. Product columns:
// id | name | price | description | ingredients (comma separated) | image |
// available (TRUE/FALSE) | daily special (TRUE/FALSE).
func (p *GoogleSheetsParser) ParseCatalog(ctx context.Context, spreadsheetID string) ([]domain.Product, []domain.Category, error) {
	readRange := "A:H"
	resp, err := p.service.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}

	if len(resp.Values) == 0 {
		return nil, nil, fmt.Errorf("no data found in spreadsheet")
	}

	var products []domain.Product
	var categories []domain.Category
	seenCategories := make(map[string]bool)
	currentCategory := ""

	// skip header
	for i := 1; i < len(resp.Values); i++ {
		row := resp.Values[i]
		if len(row) == 0 {
			continue
		}

		if isCategoryRow(row) {
			name := cell(row, 0)
			currentCategory = slugify(name)
			if !seenCategories[currentCategory] {
				seenCategories[currentCategory] = true
				categories = append(categories, domain.Category{
					ID:   currentCategory,
					Name: name,
				})
			}
			continue
		}

		if len(row) < 3 || cell(row, 0) == "" {
			continue
		}

		price, err := decimal.NewFromString(strings.TrimSpace(cell(row, 2)))
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: invalid price %q: %w", i+1, cell(row, 2), err)
		}

		product := domain.Product{
			ID:          cell(row, 0),
			Name:        cell(row, 1),
			Price:       price,
			Category:    currentCategory,
			Description: cell(row, 3),
			Image:       cell(row, 5),
			Status:      domain.StatusAvailable,
		}

		if raw := cell(row, 4); raw != "" {
			for _, ingredient := range strings.Split(raw, ",") {
				if trimmed := strings.TrimSpace(ingredient); trimmed != "" {
					product.Ingredients = append(product.Ingredients, trimmed)
				}
			}
		}

		if strings.EqualFold(cell(row, 6), "FALSE") {
			product.Status = domain.StatusSoldOut
		}
		product.IsDailySpecial = strings.EqualFold(cell(row, 7), "TRUE")

		products = append(products, product)
	}

	if len(products) == 0 {
		return nil, nil, fmt.Errorf("no products found in spreadsheet")
	}

	return products, categories, nil
}

func isCategoryRow(row []interface{}) bool {
	if cell(row, 0) == "" {
		return false
	}
	for i := 1; i < len(row); i++ {
		if cell(row, i) != "" {
			return false
		}
	}
	return true
}

func cell(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", row[i]))
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(slug, " ", "-")
}
