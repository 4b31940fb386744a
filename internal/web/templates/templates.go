// Package templates holds the templ components of the leaderboard UI.
// Edit the .templ files and regenerate; the _templ.go files are generated.
package templates

//go:generate templ generate

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/leaderboard/internal/leaderboard"
)

// AnimationDelay is the staggered entrance delay of row index i.
func AnimationDelay(i int) string {
	return strconv.FormatFloat(float64(i+1)/10, 'f', -1, 64) + "s"
}

func rowAttributes(i int) templ.Attributes {
	return templ.Attributes{"style": "animation-delay: " + AnimationDelay(i)}
}

func headerClass(col leaderboard.Column) string {
	return leaderboard.JoinTags(col.Tags)
}

func rankClass(row leaderboard.Row) string {
	if row.RankClass == "" {
		return "rank"
	}
	return "rank " + string(row.RankClass)
}

func cellClass(cell leaderboard.Cell) string {
	class := leaderboard.JoinTags(cell.Tags)
	if !cell.Missing {
		return class
	}
	if class == "" {
		return "missing"
	}
	return class + " missing"
}
