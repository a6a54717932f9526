package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"redfin-finder/models"
	"redfin-finder/utils"
)

const topRatedCount = 5

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate summarises the stored listings after a run.
func (s *InsightService) Generate(listings []*models.Listing, newCount, pruned int) *models.RunSummary {
	report := &models.RunSummary{
		TotalListings:  len(listings),
		NewListings:    newCount,
		Pruned:         pruned,
		ListingsByTown: make(map[string]int),
	}
	if len(listings) == 0 {
		return report
	}

	var rated []*models.Listing
	var total float64
	for _, l := range listings {
		switch l.Color {
		case models.ColorGreen:
			report.Green++
		case models.ColorYellow:
			report.Yellow++
		case models.ColorRed:
			report.Red++
		default:
			report.Unrated++
		}
		if l.Score != nil {
			rated = append(rated, l)
			total += *l.Score
		}
		if town := l.TownName(); town != "" {
			report.ListingsByTown[town]++
		}
	}

	if len(rated) > 0 {
		report.AverageScore = round2(total / float64(len(rated)))
	}

	sort.SliceStable(rated, func(i, j int) bool {
		if *rated[i].Score != *rated[j].Score {
			return *rated[i].Score > *rated[j].Score
		}
		return rated[i].ID < rated[j].ID
	})
	if len(rated) > topRatedCount {
		rated = rated[:topRatedCount]
	}
	report.TopRated = rated
	return report
}

func (s *InsightService) Print(w io.Writer, r *models.RunSummary) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  🏠 REDFIN FINDER RUN SUMMARY\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Listings tracked : \033[1m%d\033[0m\n", r.TotalListings)
	fmt.Fprintf(w, "  New this run     : \033[1m%d\033[0m\n", r.NewListings)
	fmt.Fprintf(w, "  Pruned (sold)    : \033[1m%d\033[0m\n", r.Pruned)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Ratings\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  \033[1;32mGreen: %d\033[0m | \033[1;33mYellow: %d\033[0m | \033[1;31mRed: %d\033[0m",
		r.Green, r.Yellow, r.Red)
	if r.Unrated > 0 {
		fmt.Fprintf(w, " | Unrated: %d", r.Unrated)
	}
	fmt.Fprintln(w)
	if r.AverageScore > 0 {
		fmt.Fprintf(w, "  Average score : \033[1m%.2f\033[0m\n", r.AverageScore)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Top %d Rated Listings\033[0m\n", topRatedCount)
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.TopRated) == 0 {
		fmt.Fprintf(w, "  No rated listings found\n")
	} else {
		for i, l := range r.TopRated {
			fmt.Fprintf(w, "  \033[1m%d.\033[0m %-38s $%-9d \033[1;32m%.2f\033[0m %s\n",
				i+1, truncate(l.Address, 36), l.Price, l.ScoreValue(), l.Color)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Listings by Town\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.ListingsByTown) == 0 {
		fmt.Fprintf(w, "  No town data\n")
	} else {
		type townCount struct {
			town  string
			count int
		}
		var towns []townCount
		for town, cnt := range r.ListingsByTown {
			towns = append(towns, townCount{town, cnt})
		}
		sort.Slice(towns, func(i, j int) bool {
			if towns[i].count != towns[j].count {
				return towns[i].count > towns[j].count
			}
			return towns[i].town < towns[j].town
		})
		for _, tc := range towns {
			bar := strings.Repeat("█", tc.count)
			fmt.Fprintf(w, "  %-20s %s (%d)\n", truncate(tc.town, 18), bar, tc.count)
		}
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
