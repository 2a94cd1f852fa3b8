// Package analytics owns derived, non-authoritative statistics computed from
// the event stream raised by the authoritative components. Everything here is
// recomputable from the event log; the aggregator never blocks or vetoes a
// transition.
package analytics

import (
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// LearningProgress accumulates per-user learning activity.
type LearningProgress struct {
	User shared.Address

	// TotalHours is the accumulated learning time.
	TotalHours float64

	// Skills collects skill tags as reported. Duplicates accumulate; the
	// aggregator deliberately does not deduplicate.
	Skills []string

	// CompletionsByType counts completions per quest-type index. The slice
	// grows on demand to cover new indices.
	CompletionsByType []int
}

// AddCompletion folds one completion into the record, growing the per-type
// counter slice when the index is beyond its current length.
func (p *LearningProgress) AddCompletion(typeIndex int, skills []string, hours float64) {
	p.TotalHours += hours
	p.Skills = append(p.Skills, skills...)
	if typeIndex < 0 {
		return
	}
	for len(p.CompletionsByType) <= typeIndex {
		p.CompletionsByType = append(p.CompletionsByType, 0)
	}
	p.CompletionsByType[typeIndex]++
}

// Clone returns a detached deep copy.
func (p *LearningProgress) Clone() *LearningProgress {
	cp := *p
	cp.Skills = append([]string(nil), p.Skills...)
	cp.CompletionsByType = append([]int(nil), p.CompletionsByType...)
	return &cp
}

// UserEngagement tracks per-user activity counters.
type UserEngagement struct {
	User shared.Address

	LoginStreak        int
	QuestStreak        int
	MentorshipCount    int
	CollaborationCount int
}

// Record routes one activity to its counter. Unrecognized kinds are silently
// ignored.
func (e *UserEngagement) Record(kind shared.ActivityKind) {
	switch kind {
	case shared.ActivityLogin:
		e.LoginStreak++
	case shared.ActivityQuestCompletion:
		e.QuestStreak++
	case shared.ActivityMentorship:
		e.MentorshipCount++
	case shared.ActivityCollaboration:
		e.CollaborationCount++
	}
}

// Clone returns a detached copy.
func (e *UserEngagement) Clone() *UserEngagement {
	cp := *e
	return &cp
}

// QuestAnalytics tracks per-quest popularity.
type QuestAnalytics struct {
	QuestID     uint64
	Completions int

	// Popularity is a derived score: completions weighted by ten. Display
	// only; nothing authoritative reads it.
	Popularity int
}

// AddCompletion folds one completion into the score.
func (q *QuestAnalytics) AddCompletion() {
	q.Completions++
	q.Popularity = q.Completions * 10
}

// Clone returns a detached copy.
func (q *QuestAnalytics) Clone() *QuestAnalytics {
	cp := *q
	return &cp
}

// PlatformAnalytics is the platform-wide singleton. Its read never fails.
type PlatformAnalytics struct {
	TotalLearningHours  float64
	TotalCompletions    int
	TotalMentorships    int
	TotalCollaborations int
}
