package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jafarshop/productadmin/internal/config"
	"github.com/jafarshop/productadmin/internal/service"
	"github.com/jafarshop/productadmin/internal/shopify"
)

// Pages through the whole catalog via the same service the server uses.
// Handy for checking credentials and seeing what the panel will show.
func main() {
	// .env is optional; env vars win either way
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := shopify.NewClient(cfg.Shopify, logger)
	svc := service.NewProductService(client, logger)

	ctx := context.Background()
	cursor := ""
	page := 0
	total := 0

	for {
		result := svc.List(ctx, cursor)
		switch result.Outcome {
		case service.ListFailed:
			fmt.Fprintf(os.Stderr, "Failed to list products: %v\n", result.Err)
			os.Exit(1)
		case service.ListEmpty:
			fmt.Println("No products found.")
			return
		}

		page++
		fmt.Printf("--- Page %d ---\n", page)
		for _, p := range result.Products {
			price := "-"
			if p.Variant != nil {
				price = p.Variant.Price
			}
			fmt.Printf("%-50s  %-8s  %8s  %s\n", p.Title, p.Status, price, p.ID)
			total++
		}

		if !result.PageInfo.HasNextPage || result.PageInfo.EndCursor == nil {
			break
		}
		cursor = *result.PageInfo.EndCursor
	}

	fmt.Printf("\nTotal: %d products\n", total)
}
