package model

import (
	"github.com/shopspring/decimal"
)

// Product represents a catalogue item. The image is stored verbatim as raw
// bytes alongside its original filename and content type.
type Product struct {
	ID            int             `json:"id" db:"id"`
	Title         string          `json:"title" db:"title"`
	Description   string          `json:"description" db:"description"`
	Brand         string          `json:"brand" db:"brand"`
	Price         decimal.Decimal `json:"price" db:"price"`
	Category      string          `json:"category" db:"category"`
	ReleaseDate   Date            `json:"releaseDate" db:"release_date"`
	CreateDate    Date            `json:"createDate" db:"create_date"`
	Available     bool            `json:"availability" db:"available"`
	StockQuantity int             `json:"stockQuantity" db:"stock_quantity"`
	ImageName     string          `json:"imageName" db:"image_name"`
	ImageType     string          `json:"imageType" db:"image_type"`
	ImageData     []byte          `json:"imageData,omitempty" db:"image_data"`
}
