package view

import (
	"sort"
	"time"

	"github.com/hcmut-tutoring/tutorhub/internal/models"
)

// Derived aggregates are pure functions of the in-memory lists and the
// given clock value. They are recomputed per render, never mutated in place
// and never persisted.

// SessionBuckets is the upcoming/past split of a session collection.
type SessionBuckets struct {
	Upcoming []models.Session
	Past     []models.Session
}

// SplitSessions buckets sessions by comparing startTime to now. Upcoming is
// sorted soonest-first, past newest-first. Sessions without a parseable
// start time land in neither bucket.
func SplitSessions(sessions []models.Session, now time.Time) SessionBuckets {
	var buckets SessionBuckets
	for _, s := range sessions {
		future, ok := s.StartsAfter(now)
		if !ok {
			continue
		}
		if future {
			buckets.Upcoming = append(buckets.Upcoming, s)
		} else {
			buckets.Past = append(buckets.Past, s)
		}
	}
	sort.SliceStable(buckets.Upcoming, func(i, j int) bool {
		return buckets.Upcoming[i].StartTime < buckets.Upcoming[j].StartTime
	})
	sort.SliceStable(buckets.Past, func(i, j int) bool {
		return buckets.Past[i].StartTime > buckets.Past[j].StartTime
	})
	return buckets
}

// NextUpcoming returns the soonest future session, nil when none.
func NextUpcoming(sessions []models.Session, now time.Time) *models.Session {
	buckets := SplitSessions(sessions, now)
	if len(buckets.Upcoming) == 0 {
		return nil
	}
	next := buckets.Upcoming[0]
	return &next
}

// SessionStats is the coordinator's meeting overview counters.
type SessionStats struct {
	Total     int
	Completed int
	Scheduled int
	Canceled  int
	Pending   int
}

// ComputeSessionStats tallies sessions by status.
func ComputeSessionStats(sessions []models.Session) SessionStats {
	stats := SessionStats{Total: len(sessions)}
	for _, s := range sessions {
		switch s.Status {
		case models.SessionCompleted:
			stats.Completed++
		case models.SessionScheduled:
			stats.Scheduled++
		case models.SessionCanceled:
			stats.Canceled++
		case models.SessionPending:
			stats.Pending++
		}
	}
	return stats
}

// MatchedTutors extracts the tutors behind a student's accepted or pending
// matches, skipping requests with no tutor relation.
func MatchedTutors(requests []models.MatchingRequest) []models.Tutor {
	tutors := make([]models.Tutor, 0, len(requests))
	for _, r := range requests {
		if r.Tutor == nil || r.Status == models.MatchRejected || r.Status == models.MatchExpired {
			continue
		}
		tutors = append(tutors, *r.Tutor)
	}
	return tutors
}

// TopicShare is one entry of a topic breakdown.
type TopicShare struct {
	Topic   string
	Count   int
	Percent float64
}

// TopTopics returns the n most frequent session topics with their share of
// the total, ties broken alphabetically for stable output.
func TopTopics(sessions []models.Session, n int) []TopicShare {
	if len(sessions) == 0 || n <= 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, s := range sessions {
		counts[s.Topic]++
	}
	shares := make([]TopicShare, 0, len(counts))
	for topic, count := range counts {
		shares = append(shares, TopicShare{
			Topic:   topic,
			Count:   count,
			Percent: float64(count) * 100 / float64(len(sessions)),
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Topic < shares[j].Topic
	})
	if len(shares) > n {
		shares = shares[:n]
	}
	return shares
}

// ActiveUserCount tallies users whose account is not deactivated.
func ActiveUserCount(users []models.User) int {
	count := 0
	for _, u := range users {
		if u.Active() {
			count++
		}
	}
	return count
}
