package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/pranavi39/pawfect/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeFile(t, "products.csv",
		"\ufeffPet,Product,Price,Description\n"+
			"Dog,Chew Toy,$9.99,\"durable chew toy, for puppies\"\n"+
			"Cat,Catnip\n")

	tbl, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if tbl.Name() != "products.csv" {
		t.Errorf("Name() = %q", tbl.Name())
	}
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}

	idx, err := tbl.Require([]string{"pet", "category"}, []string{"description"})
	if err != nil {
		t.Fatalf("Require: %v", err)
	}
	if idx[0] != 0 || idx[1] != 3 {
		t.Errorf("Require = %v, want [0 3]", idx)
	}

	if got := tbl.Row(0)[3]; got != "durable chew toy, for puppies" {
		t.Errorf("quoted field = %q", got)
	}
	short := tbl.Row(1)
	if len(short) != 4 || short[3] != "" {
		t.Errorf("short row not padded: %q", short)
	}
}

func TestColumn_Aliases(t *testing.T) {
	tbl := newTable("t", []string{" Name ", "CATEGORY"}, nil)
	if i, ok := tbl.Column("product", "name"); !ok || i != 0 {
		t.Errorf("Column(product,name) = %d, %v", i, ok)
	}
	if i, ok := tbl.Column("pet", "category"); !ok || i != 1 {
		t.Errorf("Column(pet,category) = %d, %v", i, ok)
	}
	if _, ok := tbl.Column("price"); ok {
		t.Error("Column(price) should miss")
	}
}

func TestRequire_MissingColumns(t *testing.T) {
	tbl := newTable("products.csv", []string{"Pet", "Product"}, nil)
	_, err := tbl.Require([]string{"pet"}, []string{"price"}, []string{"description"})
	if !errors.Is(err, domain.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
	var mc *domain.MissingColumnsError
	if !errors.As(err, &mc) {
		t.Fatalf("expected MissingColumnsError, got %T", err)
	}
	if len(mc.Columns) != 2 || mc.Columns[0] != "price" || mc.Columns[1] != "description" {
		t.Errorf("missing columns = %v", mc.Columns)
	}
}

func TestOpen_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.csv")},
		{"unsupported extension", writeFile(t, "products.json", "[]")},
		{"empty csv", writeFile(t, "empty.csv", "")},
		{"broken parquet", writeFile(t, "broken.parquet", "not parquet")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.path)
			if !errors.Is(err, domain.ErrDataUnavailable) {
				t.Fatalf("expected ErrDataUnavailable, got %v", err)
			}
		})
	}
}

type parquetProduct struct {
	Pet         string `parquet:"Pet"`
	Product     string `parquet:"Product"`
	Price       string `parquet:"Price"`
	Description string `parquet:"Description"`
}

func TestReadParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.parquet")
	rows := []parquetProduct{
		{Pet: "Dog", Product: "Chew Toy", Price: "9.99", Description: "durable chew toy for puppies"},
		{Pet: "Fish", Product: "Filter", Price: "24.50", Description: "quiet aquarium filter"},
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tbl, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}

	idx, err := tbl.Require([]string{"pet"}, []string{"product"}, []string{"price"}, []string{"description"})
	if err != nil {
		t.Fatalf("Require: %v", err)
	}
	row := tbl.Row(1)
	if row[idx[0]] != "Fish" || row[idx[1]] != "Filter" || row[idx[2]] != "24.50" {
		t.Errorf("row 1 = %q", row)
	}
	if row[idx[3]] != "quiet aquarium filter" {
		t.Errorf("description = %q", row[idx[3]])
	}
}
