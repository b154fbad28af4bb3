package models

import "listing-profiler/table"

// Column names of the listings dataset.
const (
	ColID               = "id"
	ColName             = "name"
	ColHostID           = "host_id"
	ColHostName         = "host_name"
	ColNeighbourhoodGrp = "neighbourhood_group"
	ColNeighbourhood    = "neighbourhood"
	ColLatitude         = "latitude"
	ColLongitude        = "longitude"
	ColRoomType         = "room_type"
	ColPrice            = "price"
	ColBeds             = "beds"
	ColMinimumNights    = "minimum_nights"
	ColNumberOfReviews  = "number_of_reviews"
	ColReviewsPerMonth  = "reviews_per_month"
	ColAvailability365  = "availability_365"
	ColPricePerBed      = "price per bed"
)

// IdentifierColumns are opaque keys that must never take part in arithmetic.
var IdentifierColumns = []string{ColID, ColHostID}

// CorrelationColumns are the numeric features compared in the heatmap.
var CorrelationColumns = []string{
	ColLatitude, ColLongitude, ColPrice, ColMinimumNights,
	ColNumberOfReviews, ColReviewsPerMonth, ColAvailability365, ColBeds,
}

// PairColumns are the features shown in the pair plot.
var PairColumns = []string{ColPrice, ColMinimumNights, ColNumberOfReviews, ColAvailability365}

// ListingSchema declares the column kinds of the listings dataset. Columns
// it does not list are inferred when the data is loaded.
func ListingSchema() table.Schema {
	return table.Schema{
		ColID:               table.Identifier,
		ColHostID:           table.Identifier,
		ColName:             table.Categorical,
		ColHostName:         table.Categorical,
		ColNeighbourhoodGrp: table.Categorical,
		ColNeighbourhood:    table.Categorical,
		ColRoomType:         table.Categorical,
		ColLatitude:         table.Numeric,
		ColLongitude:        table.Numeric,
		ColPrice:            table.Numeric,
		ColBeds:             table.Numeric,
		ColMinimumNights:    table.Numeric,
		ColNumberOfReviews:  table.Numeric,
		ColReviewsPerMonth:  table.Numeric,
		ColAvailability365:  table.Numeric,
	}
}
