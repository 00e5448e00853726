package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadInputs(t *testing.T) {
	dir := t.TempDir()

	paths := InputPaths{
		StoreInfo:    writeFile(t, dir, "store_info.json", `[{"id":"S1","name":"Oslo"}]`),
		Descriptions: writeFile(t, dir, "product_description.json", `[{"ean":"123","id":"NOBB1","name":"Plank","brandName":"Acme"}]`),
		Identifiers:  writeFile(t, dir, "products_ids.json", `[{"id":"123","link":"/p/123"}]`),
		Prices: writeFile(t, dir, "product_prices.json",
			`[[{"ean":"123","storeId":"S1","price":99.5,"salesUnitLocalized":"stk","comparisonPriceUnit":"M2","campaignPrice":null}]]`),
	}

	in, err := LoadInputs(paths)
	if err != nil {
		t.Fatalf("LoadInputs: %v", err)
	}

	if len(in.Stores) != 1 || in.Stores[0].Name != "Oslo" {
		t.Errorf("stores: got %+v", in.Stores)
	}
	if len(in.Descriptions) != 1 || in.Descriptions[0].ID != "NOBB1" {
		t.Errorf("descriptions: got %+v", in.Descriptions)
	}
	if len(in.Identifiers) != 1 || in.Identifiers[0].Link != "/p/123" {
		t.Errorf("identifiers: got %+v", in.Identifiers)
	}
	if len(in.PriceGroups) != 1 || len(in.PriceGroups[0]) != 1 {
		t.Fatalf("price groups: got %+v", in.PriceGroups)
	}

	rec := in.PriceGroups[0][0]
	if rec.Price != 99.5 || rec.StoreID != "S1" || rec.CampaignPrice != nil {
		t.Errorf("price record: got %+v", rec)
	}
}

func TestLoadInputsWrapsDecodeErrorWithPath(t *testing.T) {
	dir := t.TempDir()

	paths := InputPaths{
		StoreInfo:    writeFile(t, dir, "store_info.json", `[{"id":"S1","name":"Oslo"}]`),
		Descriptions: writeFile(t, dir, "product_description.json", `[{"ean":123}]`), // ean must be a string
		Identifiers:  writeFile(t, dir, "products_ids.json", `[]`),
		Prices:       writeFile(t, dir, "product_prices.json", `[]`),
	}

	_, err := LoadInputs(paths)
	if err == nil {
		t.Fatal("expected a decode error")
	}
	if !strings.Contains(err.Error(), "product_description.json") {
		t.Errorf("error should name the offending file: %v", err)
	}
}

func TestLoadInputsMissingFile(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadInputs(InputPaths{
		StoreInfo:    filepath.Join(dir, "missing.json"),
		Descriptions: filepath.Join(dir, "missing.json"),
		Identifiers:  filepath.Join(dir, "missing.json"),
		Prices:       filepath.Join(dir, "missing.json"),
	})
	if err == nil {
		t.Fatal("expected an error for a missing input file")
	}
}
