package service

import (
	"cmp"
	"math"
	"slices"
	"strings"

	leaderboardModel "github.com/festy23/pitmstr/internal/leaderboard/model"
)

type tally struct {
	sum   float64
	count int
}

func (t tally) mean() float64 {
	if t.count == 0 {
		return 0
	}
	return round2(t.sum / float64(t.count))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// IsOverall reports whether category selects every submission.
func IsOverall(category string) bool {
	category = strings.TrimSpace(category)
	return category == "" || strings.EqualFold(category, leaderboardModel.CategoryOverall)
}

// Aggregate ranks teams by their mean submission score.
// Every team gets an entry; a team without submissions scores 0.
// Unless category is Overall, only submissions linked to that category count.
// A submission linked to several categories counts once in the total and once per category.
// Ties are broken by team name, then team id.
func Aggregate(teams []leaderboardModel.Team, submissions []leaderboardModel.Submission, category string) []leaderboardModel.Entry {
	overall := IsOverall(category)
	category = strings.TrimSpace(category)

	totals := make(map[string]*tally, len(teams))
	byCategory := make(map[string]map[string]*tally, len(teams))
	for _, sub := range submissions {
		if !overall && !slices.ContainsFunc(sub.Categories, func(c string) bool { return strings.EqualFold(c, category) }) {
			continue
		}
		t := totals[sub.TeamID]
		if t == nil {
			t = &tally{}
			totals[sub.TeamID] = t
		}
		t.sum += sub.Score
		t.count++

		for _, label := range sub.Categories {
			if label == "" || (!overall && !strings.EqualFold(label, category)) {
				continue
			}
			cats := byCategory[sub.TeamID]
			if cats == nil {
				cats = make(map[string]*tally)
				byCategory[sub.TeamID] = cats
			}
			ct := cats[label]
			if ct == nil {
				ct = &tally{}
				cats[label] = ct
			}
			ct.sum += sub.Score
			ct.count++
		}
	}

	entries := make([]leaderboardModel.Entry, 0, len(teams))
	for _, team := range teams {
		entry := leaderboardModel.Entry{
			TeamID:     team.ID,
			TeamName:   team.Name,
			SchoolID:   team.SchoolID,
			SchoolName: team.SchoolName,
			State:      team.State,
			Division:   team.Division,
			Categories: []leaderboardModel.CategoryScore{},
		}
		if t := totals[team.ID]; t != nil {
			entry.Score = t.mean()
			entry.Submissions = t.count
		}
		entries = append(entries, entry)
	}

	slices.SortStableFunc(entries, compareEntries)
	for i := range entries {
		entries[i].Rank = i + 1
	}

	rankCategories(entries, byCategory)
	return entries
}

func compareEntries(a, b leaderboardModel.Entry) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(a.TeamName, b.TeamName); c != 0 {
		return c
	}
	return cmp.Compare(a.TeamID, b.TeamID)
}

// rankCategories fills per-category scores, ranking each category among the teams that scored in it.
func rankCategories(entries []leaderboardModel.Entry, byCategory map[string]map[string]*tally) {
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		index[e.TeamID] = i
	}

	contenders := make(map[string][]leaderboardModel.Entry)
	for _, e := range entries {
		for category, t := range byCategory[e.TeamID] {
			contenders[category] = append(contenders[category], leaderboardModel.Entry{
				TeamID:   e.TeamID,
				TeamName: e.TeamName,
				Score:    t.mean(),
			})
		}
	}

	for category, ranked := range contenders {
		slices.SortStableFunc(ranked, compareEntries)
		for i, r := range ranked {
			at := index[r.TeamID]
			entries[at].Categories = append(entries[at].Categories, leaderboardModel.CategoryScore{
				Category: category,
				Score:    r.Score,
				Rank:     i + 1,
			})
		}
	}

	for i := range entries {
		slices.SortFunc(entries[i].Categories, func(a, b leaderboardModel.CategoryScore) int {
			return cmp.Compare(a.Category, b.Category)
		})
	}
}
