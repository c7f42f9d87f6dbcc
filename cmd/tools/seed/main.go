package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"pehlione.com/admin/internal/hubapi"
	"pehlione.com/admin/internal/modules/categories"
	"pehlione.com/admin/internal/modules/coupons"
	"pehlione.com/admin/internal/modules/products"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Server base URL")
	token := flag.String("token", os.Getenv("ADMIN_TOKEN"), "Admin token")
	dryRun := flag.Bool("dry-run", false, "Only print the payloads, don't send")

	flag.Parse()

	if *token == "" && !*dryRun {
		fmt.Fprintf(os.Stderr, "Error: token not provided and ADMIN_TOKEN not set\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := hubapi.New(*baseURL, *token)
	c.OnNotice = func(n hubapi.Notice) { fmt.Printf("  [%s] %s\n", n.Kind, n.Message) }

	cat := categories.Input{Name: "Accessories", Description: "Bags, belts and **small leather goods**.", IsActive: true}
	catID := create(ctx, c, "categories", cat, *dryRun)

	prod := products.Input{
		Name:        "Leather Belt",
		Description: "Full-grain leather, brass buckle.",
		Status:      products.StatusActive,
		Price:       49.90,
		Currency:    "EUR",
		Stock:       25,
		Tags:        []string{"leather", "belt"},
	}
	if catID != "" {
		prod.Categories = []string{catID}
	}
	prodID := create(ctx, c, "products", prod, *dryRun)

	limit, perUser := 100, 1
	cp := coupons.Input{
		Code:          "WELCOME10",
		Name:          "Welcome discount",
		DiscountType:  coupons.TypePercentage,
		DiscountValue: 10,
		ValidFrom:     time.Now().UTC().Truncate(24 * time.Hour),
		UsageLimit:    &limit,
		PerUserLimit:  &perUser,
		IsActive:      true,
	}
	if prodID != "" {
		cp.ApplicableProducts = []string{prodID}
	}
	create(ctx, c, "coupons", cp, *dryRun)
}

// create posts one payload and returns the new id.
func create(ctx context.Context, c *hubapi.Client, entity string, payload any, dryRun bool) string {
	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling %s: %v\n", entity, err)
		os.Exit(1)
	}
	fmt.Printf("POST /api/%s\n%s\n", entity, body)
	if dryRun {
		fmt.Println("[DRY RUN] Not sending request")
		return ""
	}

	raw, err := c.Create(ctx, entity, payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", entity, err)
		os.Exit(1)
	}
	var out struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(raw, &out)
	fmt.Printf("✓ %s %s\n", entity, out.ID)
	return out.ID
}
