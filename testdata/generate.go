//go:build ignore

// Generates phones.parquet from phones.csv.
//
//	go run generate.go
package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"

	"github.com/parquet-go/parquet-go"
)

type Phone struct {
	Name      string  `parquet:"name"`
	Brand     string  `parquet:"brand"`
	Price     float64 `parquet:"price"`
	Rating    float64 `parquet:"rating"`
	StorageGB int32   `parquet:"storage_gb"`
}

func main() {
	in, err := os.Open("phones.csv")
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()

	records, err := csv.NewReader(in).ReadAll()
	if err != nil {
		log.Fatal(err)
	}

	phones := make([]Phone, 0, len(records))
	for _, rec := range records[1:] {
		price, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			log.Fatal(err)
		}
		rating, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			log.Fatal(err)
		}
		storage, err := strconv.ParseInt(rec[4], 10, 32)
		if err != nil {
			log.Fatal(err)
		}
		phones = append(phones, Phone{
			Name:      rec[0],
			Brand:     rec[1],
			Price:     price,
			Rating:    rating,
			StorageGB: int32(storage),
		})
	}

	out, err := os.Create("phones.parquet")
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()

	writer := parquet.NewGenericWriter[Phone](out)
	if _, err := writer.Write(phones); err != nil {
		log.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		log.Fatal(err)
	}

	log.Printf("Generated phones.parquet with %d phones", len(phones))
}
