// seed_catalog genera un script SQL para cargar el catálogo de repuestos
// a partir de una planilla CSV exportada (separador ';', codificación ISO-8859-1 o UTF-8).
//
// Columnas: codigo;nombre;unidad;stock_minimo;plazo_dias
//
// Uso: go run ./cmd/seed_catalog [-latin1] [-out seed_catalog.sql] catalogo.csv
package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type catalogItem struct {
	Code         string
	Name         string
	Unit         string
	MinStock     int
	LeadTimeDays *int
}

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV viene en ISO-8859-1 (Excel)")
	outPath := flag.String("out", "seed_catalog.sql", "archivo SQL de salida")
	flag.Parse()

	csvPath := "catalogo.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if *latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	items, err := parseCatalog(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	var buf bytes.Buffer
	writeSQL(&buf, items, uuid.NewString)
	if err := os.WriteFile(*outPath, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d productos\n", *outPath, len(items))
}

// parseCatalog lee el CSV. La primera fila es encabezado; un código repetido reemplaza al anterior.
func parseCatalog(r io.Reader) ([]catalogItem, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("CSV vacío")
	}

	byCode := make(map[string]catalogItem)
	for i, row := range rows[1:] {
		line := i + 2
		if len(row) < 2 {
			return nil, fmt.Errorf("línea %d: se esperaban al menos codigo y nombre", line)
		}
		item := catalogItem{
			Code: strings.TrimSpace(row[0]),
			Name: strings.TrimSpace(row[1]),
		}
		if item.Code == "" || item.Name == "" {
			continue
		}
		if len(row) > 2 {
			item.Unit = strings.TrimSpace(row[2])
		}
		if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
			n, err := strconv.Atoi(strings.TrimSpace(row[3]))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("línea %d: stock_minimo inválido %q", line, row[3])
			}
			item.MinStock = n
		}
		if len(row) > 4 && strings.TrimSpace(row[4]) != "" {
			n, err := strconv.Atoi(strings.TrimSpace(row[4]))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("línea %d: plazo_dias inválido %q", line, row[4])
			}
			item.LeadTimeDays = &n
		}
		byCode[item.Code] = item
	}

	items := make([]catalogItem, 0, len(byCode))
	for _, it := range byCode {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Code < items[j].Code })
	return items, nil
}

// writeSQL escribe un INSERT idempotente: un código existente solo actualiza sus datos.
func writeSQL(w io.Writer, items []catalogItem, newID func() string) {
	fmt.Fprintln(w, "-- Catálogo de repuestos")
	fmt.Fprintln(w, "-- Generado por cmd/seed_catalog")
	fmt.Fprintln(w)
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w, "INSERT INTO products (id, code, name, unit, min_stock, lead_time_days) VALUES")
	for i, it := range items {
		leadTime := "NULL"
		if it.LeadTimeDays != nil {
			leadTime = strconv.Itoa(*it.LeadTimeDays)
		}
		sep := ","
		if i == len(items)-1 {
			sep = ""
		}
		fmt.Fprintf(w, "  ('%s', '%s', '%s', '%s', %d, %s)%s\n",
			newID(), escapeSQL(it.Code), escapeSQL(it.Name), escapeSQL(it.Unit), it.MinStock, leadTime, sep)
	}
	fmt.Fprintln(w, "ON CONFLICT (code) DO UPDATE SET")
	fmt.Fprintln(w, "  name = EXCLUDED.name, unit = EXCLUDED.unit, min_stock = EXCLUDED.min_stock,")
	fmt.Fprintln(w, "  lead_time_days = EXCLUDED.lead_time_days, updated_at = now();")
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
