package memory

import (
	"context"
	"sync"

	"github.com/questforge/quest-registry/internal/domain/analytics"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// AnalyticsRepository holds the derived statistics tables. Nothing here is
// authoritative; every record is recomputable from the event journal.
type AnalyticsRepository struct {
	mu          sync.RWMutex
	progress    map[shared.Address]*analytics.LearningProgress
	engagements map[shared.Address]*analytics.UserEngagement
	questStats  map[uint64]*analytics.QuestAnalytics
	platform    analytics.PlatformAnalytics
}

// NewAnalyticsRepository creates an empty container.
func NewAnalyticsRepository() *AnalyticsRepository {
	return &AnalyticsRepository{
		progress:    make(map[shared.Address]*analytics.LearningProgress),
		engagements: make(map[shared.Address]*analytics.UserEngagement),
		questStats:  make(map[uint64]*analytics.QuestAnalytics),
	}
}

// RecordProgress accumulates learning activity for a user.
func (r *AnalyticsRepository) RecordProgress(_ context.Context, user shared.Address, questType shared.QuestType, skills []string, hours float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.progress[user]
	if !ok {
		p = &analytics.LearningProgress{User: user}
		r.progress[user] = p
	}
	p.AddCompletion(questType.Index(), skills, hours)
	r.platform.TotalLearningHours += hours
	return nil
}

// RecordEngagement routes one activity to the user's counters.
func (r *AnalyticsRepository) RecordEngagement(_ context.Context, user shared.Address, kind shared.ActivityKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.engagements[user]
	if !ok {
		e = &analytics.UserEngagement{User: user}
		r.engagements[user] = e
	}
	e.Record(kind)

	switch kind {
	case shared.ActivityQuestCompletion:
		r.platform.TotalCompletions++
	case shared.ActivityMentorship:
		r.platform.TotalMentorships++
	case shared.ActivityCollaboration:
		r.platform.TotalCollaborations++
	}
	return nil
}

// RecordQuestCompletion updates the per-quest popularity score.
func (r *AnalyticsRepository) RecordQuestCompletion(_ context.Context, questID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.questStats[questID]
	if !ok {
		q = &analytics.QuestAnalytics{QuestID: questID}
		r.questStats[questID] = q
	}
	q.AddCompletion()
	return nil
}

// ProgressOf returns a detached copy of the user's learning progress.
func (r *AnalyticsRepository) ProgressOf(_ context.Context, user shared.Address) (*analytics.LearningProgress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.progress[user]
	if !ok {
		return nil, shared.ErrAnalyticsNotFound
	}
	return p.Clone(), nil
}

// EngagementOf returns a detached copy of the user's engagement record.
func (r *AnalyticsRepository) EngagementOf(_ context.Context, user shared.Address) (*analytics.UserEngagement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.engagements[user]
	if !ok {
		return nil, shared.ErrAnalyticsNotFound
	}
	return e.Clone(), nil
}

// QuestStats returns a detached copy of the quest's analytics.
func (r *AnalyticsRepository) QuestStats(_ context.Context, questID uint64) (*analytics.QuestAnalytics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.questStats[questID]
	if !ok {
		return nil, shared.ErrAnalyticsNotFound
	}
	return q.Clone(), nil
}

// Platform returns the platform-wide singleton. Never fails.
func (r *AnalyticsRepository) Platform(_ context.Context) (analytics.PlatformAnalytics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.platform, nil
}
