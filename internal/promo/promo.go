// Package promo seeds the promotions store. Coupons have no create or
// update API, so their definitions come from a CSV file read at startup,
// either from local disk or from an S3 object, and are upserted by code.
package promo

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"storefront/internal/model"

	"github.com/shopspring/decimal"
)

// Loader reads coupon definitions from a named location. Implementations
// exist for the local file system and S3.
type Loader interface {
	// Load reads a coupon definition file and returns the parsed coupons.
	Load(ctx context.Context, location string) ([]model.Coupon, error)
}

// parseCoupons reads CSV records of the form
//
//	code,discount_percentage,active,expiry_date
//
// where expiry_date is yyyy-MM-dd or empty for no expiry. A header row is
// skipped when present.
func parseCoupons(r io.Reader) ([]model.Coupon, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4
	reader.TrimLeadingSpace = true

	var coupons []model.Coupon
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read coupon record: %w", err)
		}
		line++

		if line == 1 && record[0] == "code" {
			continue
		}

		coupon, err := parseCoupon(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		coupons = append(coupons, coupon)
	}

	return coupons, nil
}

func parseCoupon(record []string) (model.Coupon, error) {
	if record[0] == "" {
		return model.Coupon{}, fmt.Errorf("empty coupon code")
	}

	discount, err := decimal.NewFromString(record[1])
	if err != nil {
		return model.Coupon{}, fmt.Errorf("invalid discount percentage %q: %w", record[1], err)
	}

	active, err := strconv.ParseBool(record[2])
	if err != nil {
		return model.Coupon{}, fmt.Errorf("invalid active flag %q: %w", record[2], err)
	}

	coupon := model.Coupon{
		Code:               record[0],
		DiscountPercentage: discount,
		Active:             active,
	}

	if record[3] != "" {
		t, err := time.Parse("2006-01-02", record[3])
		if err != nil {
			return model.Coupon{}, fmt.Errorf("invalid expiry date %q: %w", record[3], err)
		}
		expiry := model.NewDate(t)
		coupon.ExpiryDate = &expiry
	}

	return coupon, nil
}
