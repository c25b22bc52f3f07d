// Package similar scores pairs of articles for topical relatedness to power
// "related articles" surfaces. Four sub-scores, each in [0,1], are combined
// by fixed weights that sum to 1.0, so the total also stays in [0,1].
package similar

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/inkwell-labs/inkwell/internal/content"
)

// Factor weights. Tag overlap dominates because shared topics are the
// strongest relatedness signal this corpus has.
const (
	weightTagOverlap  = 0.4
	weightCategory    = 0.3
	weightReadingTime = 0.2
	weightRecency     = 0.1
)

// minScore is the floor below which a candidate is dropped from results.
// A deliberate precision/recall tradeoff: a lone category match (0.3) passes,
// pure date proximity (0.1) does not.
const minScore = 0.1

// Post is the view of an article the scorer needs. ReadingTime is minutes;
// zero means unknown and scores as neutral.
type Post struct {
	Slug        string
	Metadata    content.Metadata
	ReadingTime int
}

// Result is one scored candidate with its human-readable justification.
type Result struct {
	Post    Post     `json:"post"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// Breakdown exposes the individual sub-scores for diagnostics.
type Breakdown struct {
	TagOverlap    float64  `json:"tagOverlap"`
	CategoryMatch bool     `json:"categoryMatch"`
	ReadingTime   float64  `json:"readingTimeSimilarity"`
	TimeProximity float64  `json:"timeProximity"`
	TotalScore    float64  `json:"totalScore"`
	SharedTags    []string `json:"sharedTags"`
}

// Score computes the weighted similarity of candidate to current, with
// reasons. All four sub-scores are symmetric in their arguments; only the
// reason strings mention the candidate specifically.
func Score(current, candidate Post) Result {
	tagScore := tagOverlap(current.Metadata.Tags, candidate.Metadata.Tags)
	categoryScore := categoryMatch(current.Metadata.Category, candidate.Metadata.Category)
	readingScore := readingTimeSimilarity(current.ReadingTime, candidate.ReadingTime)
	timeScore := timeProximity(current.Metadata.PublishedAt, candidate.Metadata.PublishedAt)

	var reasons []string
	if shared := sharedTags(current.Metadata.Tags, candidate.Metadata.Tags); len(shared) > 0 {
		listed := shared
		suffix := ""
		if len(listed) > 3 {
			listed = listed[:3]
			suffix = "..."
		}
		reasons = append(reasons, fmt.Sprintf("Shared topics: %s%s", strings.Join(listed, ", "), suffix))
	}
	if categoryScore > 0 {
		reasons = append(reasons, fmt.Sprintf("Same category: %s", candidate.Metadata.Category))
	}
	if readingScore > 0.7 && current.ReadingTime > 0 && candidate.ReadingTime > 0 {
		reasons = append(reasons, "Similar reading time")
	}
	if timeScore > 0.7 {
		reasons = append(reasons, "Published around the same time")
	}

	total := tagScore*weightTagOverlap +
		categoryScore*weightCategory +
		readingScore*weightReadingTime +
		timeScore*weightRecency

	return Result{Post: candidate, Score: total, Reasons: reasons}
}

// TopSimilar ranks candidates against current and returns at most limit
// results. The current article is excluded by slug, the sort is stable so
// ties keep candidate order, and results at or below the score floor are
// dropped after truncation.
func TopSimilar(current Post, candidates []Post, limit int) []Result {
	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		if c.Slug == current.Slug {
			continue
		}
		results = append(results, Score(current, c))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}

	kept := results[:0]
	for _, r := range results {
		if r.Score > minScore {
			kept = append(kept, r)
		}
	}
	return kept
}

// Explain returns the sub-score breakdown for a pair of articles.
func Explain(current, candidate Post) Breakdown {
	tagScore := tagOverlap(current.Metadata.Tags, candidate.Metadata.Tags)
	categoryScore := categoryMatch(current.Metadata.Category, candidate.Metadata.Category)
	readingScore := readingTimeSimilarity(current.ReadingTime, candidate.ReadingTime)
	timeScore := timeProximity(current.Metadata.PublishedAt, candidate.Metadata.PublishedAt)

	return Breakdown{
		TagOverlap:    tagScore,
		CategoryMatch: categoryScore > 0,
		ReadingTime:   readingScore,
		TimeProximity: timeScore,
		TotalScore: tagScore*weightTagOverlap +
			categoryScore*weightCategory +
			readingScore*weightReadingTime +
			timeScore*weightRecency,
		SharedTags: sharedTags(current.Metadata.Tags, candidate.Metadata.Tags),
	}
}

// tagOverlap is the Jaccard similarity of the lower-cased tag sets.
func tagOverlap(tags1, tags2 []string) float64 {
	if len(tags1) == 0 || len(tags2) == 0 {
		return 0
	}

	set1 := lowerSet(tags1)
	set2 := lowerSet(tags2)

	intersection := 0
	for t := range set1 {
		if set2[t] {
			intersection++
		}
	}

	union := len(set1) + len(set2) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func categoryMatch(cat1, cat2 string) float64 {
	if cat1 == "" || cat2 == "" {
		return 0
	}
	if strings.EqualFold(cat1, cat2) {
		return 1
	}
	return 0
}

// readingTimeSimilarity scores how close two reading times are. Unknown on
// either side is neutral (0.5) rather than zero, so missing data neither
// helps nor hurts a candidate.
func readingTimeSimilarity(t1, t2 int) float64 {
	if t1 <= 0 || t2 <= 0 {
		return 0.5
	}
	maxT := t1
	if t2 > maxT {
		maxT = t2
	}
	score := 1 - math.Abs(float64(t1-t2))/float64(maxT)
	if score < 0 {
		return 0
	}
	return score
}

// timeProximity is a step function over the gap between publish dates.
// Unparseable dates fall through to the far bucket.
func timeProximity(date1, date2 string) float64 {
	d1, ok1 := content.ParseDate(date1)
	d2, ok2 := content.ParseDate(date2)
	if !ok1 || !ok2 {
		return 0.1
	}

	diffDays := math.Abs(d1.Sub(d2).Hours()) / 24
	switch {
	case diffDays <= 30:
		return 1
	case diffDays <= 90:
		return 0.8
	case diffDays <= 180:
		return 0.5
	case diffDays <= 365:
		return 0.3
	default:
		return 0.1
	}
}

// sharedTags returns current's tags that also appear in candidate's, in
// current's display order, with original casing.
func sharedTags(tags1, tags2 []string) []string {
	if len(tags1) == 0 || len(tags2) == 0 {
		return nil
	}
	set2 := lowerSet(tags2)
	var shared []string
	for _, t := range tags1 {
		if set2[strings.ToLower(t)] {
			shared = append(shared, t)
		}
	}
	return shared
}

func lowerSet(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[strings.ToLower(t)] = true
	}
	return set
}
