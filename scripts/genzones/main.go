// Command genzones creates sample delivery zone files for local development.
// Each file holds one carrier's covered zip codes, gzipped, one per line.
package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

func main() {
	dataDir := "data/zones"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	// Post covers the big agglomerations, the bike courier only the
	// city centres it can reach within an hour
	zones := map[string][]string{
		"post.gz": {
			"8000", "8001", "8002", "8003", "8004", "8005", "8006", "8008",
			"3000", "3001", "3005", "3006", "3011", "3012", "3013", "3014",
			"4000", "4001", "4051", "4052", "4053", "4054",
			"1200", "1201", "1202", "1203", "1204", "1205",
			"6000", "6003", "6004", "6005",
		},
		"courier.gz": {
			"8001", "8002", "8004", "8005",
			"3011", "3012",
			"4001", "4051",
		},
	}

	for filename, zips := range zones {
		filePath := filepath.Join(dataDir, filename)

		if err := createZoneFile(filePath, zips); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d zip codes\n", filePath, len(zips))
	}

	fmt.Println("\nSample zone files created successfully!")
	fmt.Println("Point DELIVERY_ZONE_FILES at them, e.g.:")
	fmt.Println("  DELIVERY_ZONES_ENABLED=true DELIVERY_ZONE_FILES=data/zones/post.gz,data/zones/courier.gz")
}

func createZoneFile(filePath string, zips []string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	for _, zip := range zips {
		if _, err := gzipWriter.Write([]byte(zip + "\n")); err != nil {
			return fmt.Errorf("failed to write zip code: %w", err)
		}
	}

	return nil
}
