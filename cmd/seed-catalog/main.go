// seed-catalog genera un script SQL para poblar la tabla products a partir de
// un CSV exportado del sistema legado (codificado en ISO-8859-1, con
// descripciones en español).
//
// Formato esperado (con encabezado):
//
//	part_no;description;category;brand;quantity;cost;price_a;price_b;price_m
//
// Uso: go run ./cmd/seed-catalog <company_id> [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: seed-catalog <company_id> [catalogo.csv]")
		os.Exit(1)
	}
	companyID := os.Args[1]
	csvPath := "catalogo.csv"
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// El export legado viene en ISO-8859-1; convertir a UTF-8 al leer.
	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = 9

	rows, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if len(rows) < 2 {
		fmt.Fprintln(os.Stderr, "CSV sin filas de datos")
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	fmt.Fprintln(out, "-- Generado por cmd/seed-catalog. No editar a mano.")
	fmt.Fprintln(out, "BEGIN;")
	count := 0
	for _, row := range rows[1:] { // salta el encabezado
		partNo := strings.TrimSpace(row[0])
		if partNo == "" {
			continue
		}
		qty := parseDec(row[4])
		cost := parseDec(row[5])
		priceA := parseDec(row[6])
		priceB := parseDec(row[7])
		priceM := parseDec(row[8])
		fmt.Fprintf(out,
			"INSERT INTO products (id, company_id, part_no, description, category, brand, quantity, cost, price_a, price_b, price_m, created_at, updated_at)\n"+
				"VALUES ('%s', '%s', %s, %s, %s, %s, %s, %s, %s, %s, %s, now(), now());\n",
			uuid.New().String(), companyID,
			sqlString(partNo), sqlString(strings.TrimSpace(row[1])),
			sqlString(strings.TrimSpace(row[2])), sqlString(strings.TrimSpace(row[3])),
			qty, cost, priceA, priceB, priceM,
		)
		count++
	}
	fmt.Fprintln(out, "COMMIT;")

	fmt.Printf("Generado %s con %d productos\n", outPath, count)
}

// parseDec interpreta un decimal del CSV; vacío o inválido queda en 0.
func parseDec(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// sqlString escapa comillas simples para el literal SQL.
func sqlString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// findModuleRoot sube directorios hasta encontrar go.mod.
func findModuleRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}
