package catalog

import "strconv"

// ReviewSummary holds aggregate review counts, every field is nil when unknown.
type ReviewSummary struct {
	TotalPositive *int64 `json:"total_positive"`
	TotalNegative *int64 `json:"total_negative"`
	TotalReviews  *int64 `json:"total_reviews"`
}

// GameRecord is one row of the output dataset. Pointer fields are nil when the
// sources did not provide a value.
type GameRecord struct {
	AppID            int64
	Name             *string
	ReleaseDate      *string
	Achievements     int64
	Categories       *string
	Windows          bool
	Mac              bool
	Linux            bool
	Developer        *string
	DLCCount         int64
	Languages        *string
	RequiredAge      string
	Price            *float64
	ShortDescription *string
	PlayersNow       *int64
	ReviewsPositive  *int64
	ReviewsNegative  *int64
}

// Columns is the output header, Row renders values in the same order.
var Columns = []string{
	"appid",
	"name",
	"release_date",
	"achievements",
	"categories",
	"windows",
	"mac",
	"linux",
	"developer",
	"dlc_count",
	"languages",
	"required_age",
	"price",
	"short_description",
	"players_now",
	"reviews_positive",
	"reviews_negative",
}

func (r GameRecord) Row() []string {
	return []string{
		strconv.FormatInt(r.AppID, 10),
		optString(r.Name),
		optString(r.ReleaseDate),
		strconv.FormatInt(r.Achievements, 10),
		optString(r.Categories),
		strconv.FormatBool(r.Windows),
		strconv.FormatBool(r.Mac),
		strconv.FormatBool(r.Linux),
		optString(r.Developer),
		strconv.FormatInt(r.DLCCount, 10),
		optString(r.Languages),
		r.RequiredAge,
		FormatPrice(r.Price),
		optString(r.ShortDescription),
		optInt(r.PlayersNow),
		optInt(r.ReviewsPositive),
		optInt(r.ReviewsNegative),
	}
}

// FormatPrice renders a price with two decimals, nil renders empty.
func FormatPrice(price *float64) string {
	if price == nil {
		return ""
	}
	return strconv.FormatFloat(*price, 'f', 2, 64)
}

func optString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optInt(n *int64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatInt(*n, 10)
}
