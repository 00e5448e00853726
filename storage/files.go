package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"byggmakker-scraper/models"
)

// Inputs holds the four JSON collections one sync run joins together.
type Inputs struct {
	Stores       []models.StoreInfo
	Descriptions []models.ProductDescription
	Identifiers  []models.ProductIdentifier
	PriceGroups  [][]models.PriceRecord
}

// InputPaths names the input files for one category.
type InputPaths struct {
	StoreInfo    string
	Descriptions string
	Identifiers  string
	Prices       string
}

// LoadInputs reads and decodes all four input files. Decode errors carry
// the file path, which is where malformed fields surface by name.
func LoadInputs(paths InputPaths) (*Inputs, error) {
	in := &Inputs{}

	if err := LoadJSONFile(paths.StoreInfo, &in.Stores); err != nil {
		return nil, err
	}
	if err := LoadJSONFile(paths.Descriptions, &in.Descriptions); err != nil {
		return nil, err
	}
	if err := LoadJSONFile(paths.Identifiers, &in.Identifiers); err != nil {
		return nil, err
	}
	if err := LoadJSONFile(paths.Prices, &in.PriceGroups); err != nil {
		return nil, err
	}

	return in, nil
}

// LoadJSONFile decodes one JSON file into v, wrapping any error with the
// file path.
func LoadJSONFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
