package catalog

import "strings"

// TypeGame is the only detail classification that produces a record.
const TypeGame = "game"

// RatingBoards are searched in order for a per-board age rating.
var RatingBoards = []string{"pegi", "steam_germany", "dejus", "usk", "agcom"}

// markup the details source embeds in supported_languages
var languageMarkup = strings.NewReplacer(
	"<strong>", "",
	"</strong>", "",
	"<br>", "",
)

// Input is everything known about one listing item.
type Input struct {
	AppID      int64
	Name       *string
	Details    Payload
	Reviews    ReviewSummary
	PlayersNow *int64
}

// Normalize flattens the three source payloads into a GameRecord. The second
// return is false when the item is not a game, including when details are empty.
func Normalize(in Input) (GameRecord, bool) {
	d := in.Details
	if in.AppID <= 0 {
		return GameRecord{}, false
	}
	if kind, ok := d.String("type"); !ok || kind != TypeGame {
		return GameRecord{}, false
	}

	record := GameRecord{
		AppID:           in.AppID,
		Name:            in.Name,
		RequiredAge:     RequiredAge(d),
		Price:           Price(d),
		PlayersNow:      in.PlayersNow,
		ReviewsPositive: in.Reviews.TotalPositive,
		ReviewsNegative: in.Reviews.TotalNegative,
	}

	if release, ok := d.Object("release_date"); ok {
		if date, ok := release.String("date"); ok {
			record.ReleaseDate = &date
		}
	}
	if achievements, ok := d.Object("achievements"); ok {
		if total, ok := achievements.Int("total"); ok && total > 0 {
			record.Achievements = total
		}
	}
	if categories, ok := d.List("categories"); ok {
		record.Categories = JoinCategories(categories)
	}
	if platforms, ok := d.Object("platforms"); ok {
		record.Windows, _ = platforms.Bool("windows")
		record.Mac, _ = platforms.Bool("mac")
		record.Linux, _ = platforms.Bool("linux")
	}
	if developers, ok := d.List("developers"); ok && len(developers) > 0 {
		if first, ok := developers[0].(string); ok {
			record.Developer = &first
		}
	}
	if dlc, ok := d.List("dlc"); ok {
		record.DLCCount = int64(len(dlc))
	}
	if langs, ok := d.String("supported_languages"); ok {
		record.Languages = CleanLanguages(langs)
	}
	if desc, ok := d.String("short_description"); ok {
		record.ShortDescription = &desc
	}

	return record, true
}

// JoinCategories renders "id:description" pairs joined by ";" in source order.
// Entries missing either field are skipped, nil when nothing remains.
func JoinCategories(categories []any) *string {
	parts := make([]string, 0, len(categories))
	for _, entry := range categories {
		category, ok := asObject(entry)
		if !ok {
			continue
		}
		id, ok := category.Scalar("id")
		if !ok {
			continue
		}
		description, ok := category.String("description")
		if !ok {
			continue
		}
		parts = append(parts, id+":"+description)
	}
	if len(parts) == 0 {
		return nil
	}
	joined := strings.Join(parts, ";")
	return &joined
}

// CleanLanguages strips the bold and line break markers from a supported
// languages string and rejoins the comma separated names with ";".
func CleanLanguages(raw string) *string {
	if raw == "" {
		return nil
	}
	cleaned := languageMarkup.Replace(raw)

	var names []string
	for _, name := range strings.Split(cleaned, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	joined := strings.Join(names, ";")
	return &joined
}

// RequiredAge prefers a per-board rating when a ratings object is present,
// then the top level required_age, then "0".
func RequiredAge(d Payload) string {
	if ratings, ok := d.Object("ratings"); ok {
		for _, board := range RatingBoards {
			entry, ok := ratings.Object(board)
			if !ok {
				continue
			}
			for _, field := range []string{"required_age", "rating"} {
				if value, ok := entry.Scalar(field); ok {
					return value
				}
			}
		}
	}
	if age, ok := d.Scalar("required_age"); ok {
		return age
	}
	return "0"
}

// Price is 0 for free items, initial/100 when a price overview carries an
// initial amount, nil otherwise.
func Price(d Payload) *float64 {
	if free, _ := d.Bool("is_free"); free {
		zero := 0.0
		return &zero
	}
	overview, ok := d.Object("price_overview")
	if !ok {
		return nil
	}
	initial, ok := overview.Float("initial")
	if !ok {
		return nil
	}
	// amounts are in cents
	price := initial / 100
	return &price
}
