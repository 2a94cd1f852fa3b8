// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages.
package shared

import (
	"encoding/json"
	"strconv"
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Events are the only externally observable mechanism by
// which mirrors and dashboards learn about committed transitions; every
// guarded transition that mutates authoritative state appends exactly one.
const (
	EventUserRegistered       EventType = "identity.user_registered"
	EventQuestCreated         EventType = "quest.created"
	EventQuestCompleted       EventType = "quest.completed"
	EventMentorshipScheduled  EventType = "engagement.mentorship_scheduled"
	EventCollaborationStarted EventType = "engagement.collaboration_started"
	EventRewardCreated        EventType = "reward.created"
	EventRewardClaimed        EventType = "reward.claimed"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred (host logical clock).
	OccurredAt() time.Time

	// AggregateID returns the key of the entity that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
	Version     int       `json:"version"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event stamped with the transition time.
func NewBaseEvent(eventType EventType, aggregateID string, at time.Time) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   at,
		AggregateId: aggregateID,
		Version:     1,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Identity Events
// ═══════════════════════════════════════════════════════════════════════════

// UserRegisteredEvent is emitted when a new user registers.
type UserRegisteredEvent struct {
	BaseEvent
	User     Address `json:"user"`
	Username string  `json:"username"`
}

// Payload implements Event interface.
func (e UserRegisteredEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"user":     e.User.String(),
		"username": e.Username,
	}
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent.
func NewUserRegisteredEvent(user Address, username string, at time.Time) UserRegisteredEvent {
	return UserRegisteredEvent{
		BaseEvent: NewBaseEvent(EventUserRegistered, user.String(), at),
		User:      user,
		Username:  username,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Quest Events
// ═══════════════════════════════════════════════════════════════════════════

// QuestCreatedEvent is emitted when a quest is created.
type QuestCreatedEvent struct {
	BaseEvent
	QuestID      uint64    `json:"quest_id"`
	Creator      Address   `json:"creator"`
	QuestType    QuestType `json:"quest_type"`
	RewardAmount string    `json:"reward_amount"`
}

// Payload implements Event interface.
func (e QuestCreatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"quest_id":      e.QuestID,
		"creator":       e.Creator.String(),
		"quest_type":    e.QuestType.String(),
		"reward_amount": e.RewardAmount,
	}
}

// NewQuestCreatedEvent creates a new QuestCreatedEvent.
func NewQuestCreatedEvent(questID uint64, creator Address, questType QuestType, rewardAmount string, at time.Time) QuestCreatedEvent {
	return QuestCreatedEvent{
		BaseEvent:    NewBaseEvent(EventQuestCreated, FormatID(questID), at),
		QuestID:      questID,
		Creator:      creator,
		QuestType:    questType,
		RewardAmount: rewardAmount,
	}
}

// QuestCompletedEvent is emitted when a user completes a quest.
type QuestCompletedEvent struct {
	BaseEvent
	QuestID    uint64     `json:"quest_id"`
	User       Address    `json:"user"`
	QuestType  QuestType  `json:"quest_type"`
	Difficulty Difficulty `json:"difficulty"`
	Skills     []string   `json:"skills"`
	Partners   []Address  `json:"partners,omitempty"`
}

// Payload implements Event interface.
func (e QuestCompletedEvent) Payload() map[string]interface{} {
	partners := make([]string, len(e.Partners))
	for i, p := range e.Partners {
		partners[i] = p.String()
	}
	return map[string]interface{}{
		"quest_id":   e.QuestID,
		"user":       e.User.String(),
		"quest_type": e.QuestType.String(),
		"difficulty": e.Difficulty.Int(),
		"skills":     e.Skills,
		"partners":   partners,
	}
}

// NewQuestCompletedEvent creates a new QuestCompletedEvent.
func NewQuestCompletedEvent(questID uint64, user Address, questType QuestType, difficulty Difficulty, skills []string, partners []Address, at time.Time) QuestCompletedEvent {
	return QuestCompletedEvent{
		BaseEvent:  NewBaseEvent(EventQuestCompleted, FormatID(questID), at),
		QuestID:    questID,
		User:       user,
		QuestType:  questType,
		Difficulty: difficulty,
		Skills:     skills,
		Partners:   partners,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Engagement Events
// ═══════════════════════════════════════════════════════════════════════════

// MentorshipScheduledEvent is emitted when a mentorship session is scheduled.
type MentorshipScheduledEvent struct {
	BaseEvent
	SessionID       uint64  `json:"session_id"`
	Mentor          Address `json:"mentor"`
	Mentee          Address `json:"mentee"`
	Topic           string  `json:"topic"`
	DurationMinutes int     `json:"duration_minutes"`
}

// Payload implements Event interface.
func (e MentorshipScheduledEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"session_id":       e.SessionID,
		"mentor":           e.Mentor.String(),
		"mentee":           e.Mentee.String(),
		"topic":            e.Topic,
		"duration_minutes": e.DurationMinutes,
	}
}

// NewMentorshipScheduledEvent creates a new MentorshipScheduledEvent.
func NewMentorshipScheduledEvent(sessionID uint64, mentor, mentee Address, topic string, durationMinutes int, at time.Time) MentorshipScheduledEvent {
	return MentorshipScheduledEvent{
		BaseEvent:       NewBaseEvent(EventMentorshipScheduled, FormatID(sessionID), at),
		SessionID:       sessionID,
		Mentor:          mentor,
		Mentee:          mentee,
		Topic:           topic,
		DurationMinutes: durationMinutes,
	}
}

// CollaborationStartedEvent is emitted when a collaboration session starts.
type CollaborationStartedEvent struct {
	BaseEvent
	SessionID    uint64    `json:"session_id"`
	Initiator    Address   `json:"initiator"`
	Participants []Address `json:"participants"`
	QuestID      *uint64   `json:"quest_id,omitempty"`
	Topic        string    `json:"topic"`
}

// Payload implements Event interface.
func (e CollaborationStartedEvent) Payload() map[string]interface{} {
	participants := make([]string, len(e.Participants))
	for i, p := range e.Participants {
		participants[i] = p.String()
	}
	payload := map[string]interface{}{
		"session_id":   e.SessionID,
		"initiator":    e.Initiator.String(),
		"participants": participants,
		"topic":        e.Topic,
	}
	if e.QuestID != nil {
		payload["quest_id"] = *e.QuestID
	}
	return payload
}

// NewCollaborationStartedEvent creates a new CollaborationStartedEvent.
func NewCollaborationStartedEvent(sessionID uint64, initiator Address, participants []Address, questID *uint64, topic string, at time.Time) CollaborationStartedEvent {
	return CollaborationStartedEvent{
		BaseEvent:    NewBaseEvent(EventCollaborationStarted, FormatID(sessionID), at),
		SessionID:    sessionID,
		Initiator:    initiator,
		Participants: participants,
		QuestID:      questID,
		Topic:        topic,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Reward Events
// ═══════════════════════════════════════════════════════════════════════════

// RewardCreatedEvent is emitted when a sponsor reserves a reward.
type RewardCreatedEvent struct {
	BaseEvent
	RewardID  uint64  `json:"reward_id"`
	Sponsor   Address `json:"sponsor"`
	Recipient Address `json:"recipient"`
	Amount    string  `json:"amount"`
	QuestID   *uint64 `json:"quest_id,omitempty"`
}

// Payload implements Event interface.
func (e RewardCreatedEvent) Payload() map[string]interface{} {
	payload := map[string]interface{}{
		"reward_id": e.RewardID,
		"sponsor":   e.Sponsor.String(),
		"recipient": e.Recipient.String(),
		"amount":    e.Amount,
	}
	if e.QuestID != nil {
		payload["quest_id"] = *e.QuestID
	}
	return payload
}

// NewRewardCreatedEvent creates a new RewardCreatedEvent.
func NewRewardCreatedEvent(rewardID uint64, sponsor, recipient Address, amount string, questID *uint64, at time.Time) RewardCreatedEvent {
	return RewardCreatedEvent{
		BaseEvent: NewBaseEvent(EventRewardCreated, FormatID(rewardID), at),
		RewardID:  rewardID,
		Sponsor:   sponsor,
		Recipient: recipient,
		Amount:    amount,
		QuestID:   questID,
	}
}

// RewardClaimedEvent is emitted when a recipient claims a reward.
type RewardClaimedEvent struct {
	BaseEvent
	RewardID  uint64  `json:"reward_id"`
	Recipient Address `json:"recipient"`
}

// Payload implements Event interface.
func (e RewardClaimedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"reward_id": e.RewardID,
		"recipient": e.Recipient.String(),
	}
}

// NewRewardClaimedEvent creates a new RewardClaimedEvent.
func NewRewardClaimedEvent(rewardID uint64, recipient Address, at time.Time) RewardClaimedEvent {
	return RewardClaimedEvent{
		BaseEvent: NewBaseEvent(EventRewardClaimed, FormatID(rewardID), at),
		RewardID:  rewardID,
		Recipient: recipient,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Event Envelope (for serialization and transport)
// ═══════════════════════════════════════════════════════════════════════════

// EventEnvelope wraps an event for the journal and the pub/sub mirror.
type EventEnvelope struct {
	ID          string          `json:"id"`
	Type        EventType       `json:"type"`
	AggregateID string          `json:"aggregate_id"`
	Timestamp   time.Time       `json:"timestamp"`
	Version     int             `json:"version"`
	Payload     json.RawMessage `json:"payload"`
}

// FormatID renders a sequential entity id as an aggregate key.
func FormatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

// EventHandler is a function that handles an event.
type EventHandler func(event Event) error

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	// Publish sends an event to subscribers.
	Publish(event Event) error
}

// EventSubscriber defines the interface for subscribing to events.
type EventSubscriber interface {
	// Subscribe registers a handler for an event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error
}

// EventBus combines publishing and subscribing.
type EventBus interface {
	EventPublisher
	EventSubscriber
}
