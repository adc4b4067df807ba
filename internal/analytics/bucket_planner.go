package analytics

import "time"

// Granularity selection thresholds, inclusive day-count spans.
const (
	maxDaySpan   = 31
	maxWeekSpan  = 90
	maxMonthSpan = 730
)

// BucketPlan is the ordered, gap-filled list of bucket keys spanning an
// interval at a chosen granularity.
type BucketPlan struct {
	Granularity Granularity
	Keys        []string
}

// PlanBuckets selects a granularity from the interval span and produces
// the contiguous bucket keys covering the interval. Every period between
// the bucket containing Start and the bucket containing End appears
// exactly once, so charts never show missing points.
func PlanBuckets(interval DateInterval) (BucketPlan, error) {
	if err := interval.Validate(); err != nil {
		return BucketPlan{}, err
	}

	granularity := SelectGranularity(interval)

	keys := make([]string, 0, interval.Days())
	for d := bucketStart(interval.Start, granularity); !d.After(interval.End); d = nextBucket(d, granularity) {
		keys = append(keys, d.Format(DateKeyFormat))
	}

	return BucketPlan{Granularity: granularity, Keys: keys}, nil
}

// SelectGranularity picks the bucket size for an interval span:
// up to 31 days -> day, up to 90 -> week, up to 730 -> month,
// beyond that -> quarter.
func SelectGranularity(interval DateInterval) Granularity {
	days := interval.Days()
	switch {
	case days <= maxDaySpan:
		return GranularityDay
	case days <= maxWeekSpan:
		return GranularityWeek
	case days <= maxMonthSpan:
		return GranularityMonth
	default:
		return GranularityQuarter
	}
}

// BucketKey maps a timestamp to the canonical key of the bucket
// containing it. The same rule seeds bucket plans and assigns
// transactions, so the two can never drift apart.
func BucketKey(t time.Time, granularity Granularity) string {
	return bucketStart(DateOf(t), granularity).Format(DateKeyFormat)
}

// Contains reports whether the plan has a bucket for the given key.
func (p BucketPlan) Contains(key string) bool {
	for _, k := range p.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// bucketStart returns the first day of the bucket containing d.
func bucketStart(d time.Time, granularity Granularity) time.Time {
	switch granularity {
	case GranularityWeek:
		return mondayOf(d)
	case GranularityMonth:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	case GranularityQuarter:
		return quarterStart(d)
	default:
		return d
	}
}

// nextBucket advances one bucket at the given granularity.
func nextBucket(d time.Time, granularity Granularity) time.Time {
	switch granularity {
	case GranularityWeek:
		return d.AddDate(0, 0, 7)
	case GranularityMonth:
		return d.AddDate(0, 1, 0)
	case GranularityQuarter:
		return d.AddDate(0, 3, 0)
	default:
		return d.AddDate(0, 0, 1)
	}
}

// mondayOf returns the Monday of the ISO week containing d. This
// day-of-week arithmetic is the single week-start convention used
// anywhere in the engine.
func mondayOf(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// quarterStart returns the first day of the calendar quarter containing
// d (quarters begin in January, April, July, October).
func quarterStart(d time.Time) time.Time {
	quarterMonth := time.Month((int(d.Month())-1)/3*3 + 1)
	return time.Date(d.Year(), quarterMonth, 1, 0, 0, 0, 0, time.UTC)
}
