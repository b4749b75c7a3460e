package main

import (
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Generates the coupon seed file the server reads at startup, once as
// plain CSV and once gzipped.
func main() {
	dataDir := "data"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	rows := []string{
		"code,discount_percentage,active,expiry_date",
		"SAVE10,10.00,true,2030-12-31",
		"SAVE25,25.50,true,2030-06-30",
		"FREESHIP,5.00,true,",
		"LAUNCH50,50.00,false,2024-01-31",
		"EXPIRED1,15.00,true,2020-12-31",
	}
	content := strings.Join(rows, "\n") + "\n"

	csvPath := filepath.Join(dataDir, "coupons.csv")
	if err := os.WriteFile(csvPath, []byte(content), 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", csvPath, err)
	}
	fmt.Printf("Created %s with %d coupons\n", csvPath, len(rows)-1)

	gzPath := filepath.Join(dataDir, "coupons.csv.gz")
	if err := writeGzip(gzPath, content); err != nil {
		log.Fatalf("Failed to write %s: %v", gzPath, err)
	}
	fmt.Printf("Created %s\n", gzPath)
}

func writeGzip(path, content string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	if _, err := io.WriteString(gz, content); err != nil {
		return fmt.Errorf("failed to write gzip content: %w", err)
	}
	return gz.Close()
}
