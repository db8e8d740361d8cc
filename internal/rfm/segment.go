package rfm

// Segment is a behavioral customer segment.
type Segment string

// The six segments, in classification priority order.
const (
	SegmentTop      Segment = "Top Customer"
	SegmentFrequent Segment = "Frequent Customer"
	SegmentRecent   Segment = "Recent Customer"
	SegmentLoyal    Segment = "Loyal Customer"
	SegmentValuable Segment = "Valuable Customer"
	SegmentAtRisk   Segment = "At-Risk Customer"
)

// Segments lists all segments in priority order, for stable reporting.
var Segments = []Segment{
	SegmentTop,
	SegmentFrequent,
	SegmentRecent,
	SegmentLoyal,
	SegmentValuable,
	SegmentAtRisk,
}

type rule struct {
	match func(r, f, m int) bool
	label Segment
}

// The decision tree over the three scores. Rules are evaluated top to bottom
// and the first match wins; they are not independent overlapping conditions.
var segmentRules = []rule{
	{func(r, f, m int) bool { return r >= 4 && f >= 4 && m >= 4 }, SegmentTop},
	{func(r, f, m int) bool { return r >= 4 && f >= 3 }, SegmentFrequent},
	{func(r, f, m int) bool { return r >= 4 }, SegmentRecent},
	{func(r, f, m int) bool { return f >= 4 }, SegmentLoyal},
	{func(r, f, m int) bool { return m >= 4 }, SegmentValuable},
	{func(r, f, m int) bool { return true }, SegmentAtRisk},
}

// Classify maps an (R, F, M) score triple to its segment.
func Classify(r, f, m int) Segment {
	for _, rule := range segmentRules {
		if rule.match(r, f, m) {
			return rule.label
		}
	}
	return SegmentAtRisk
}

// SegmentStat is one row of the segment breakdown.
type SegmentStat struct {
	Segment Segment
	Count   int
	Share   float64
}

// Breakdown returns counts and proportions per segment in priority order,
// including zero-count segments.
func Breakdown(scores []Score) []SegmentStat {
	counts := make(map[Segment]int, len(Segments))
	for _, s := range scores {
		counts[s.Segment]++
	}

	total := len(scores)
	stats := make([]SegmentStat, 0, len(Segments))
	for _, seg := range Segments {
		stat := SegmentStat{Segment: seg, Count: counts[seg]}
		if total > 0 {
			stat.Share = float64(stat.Count) / float64(total)
		}
		stats = append(stats, stat)
	}
	return stats
}
