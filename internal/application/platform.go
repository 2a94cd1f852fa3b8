// Package application assembles the registry's command handlers, queries,
// and event handlers behind a single facade.
package application

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/questforge/quest-registry/internal/application/command"
	"github.com/questforge/quest-registry/internal/application/eventhandler"
	"github.com/questforge/quest-registry/internal/application/query"
	"github.com/questforge/quest-registry/internal/domain/analytics"
	"github.com/questforge/quest-registry/internal/domain/engagement"
	"github.com/questforge/quest-registry/internal/domain/identity"
	"github.com/questforge/quest-registry/internal/domain/quest"
	"github.com/questforge/quest-registry/internal/domain/reward"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// Dependencies carries everything the platform needs. Stores, bus, and
// clock are supplied by the caller so tests can substitute their own.
type Dependencies struct {
	Users    identity.Repository
	Quests   quest.Repository
	Sessions engagement.Repository
	Rewards  reward.Repository
	Stats    analytics.Repository

	Bus    shared.EventBus
	Clock  shared.Clock
	Logger *zap.Logger
}

// Platform is the registry facade. The admin address is fixed when the
// platform is created and never changes afterwards.
type Platform struct {
	admin shared.Address

	registerUser       *command.RegisterUserHandler
	setRoleFlag        *command.SetRoleFlagHandler
	createQuest        *command.CreateQuestHandler
	completeQuest      *command.CompleteQuestHandler
	scheduleMentorship *command.ScheduleMentorshipHandler
	startCollaboration *command.StartCollaborationHandler
	sponsorDeposit     *command.SponsorDepositHandler
	createReward       *command.CreateRewardHandler
	claimReward        *command.ClaimRewardHandler

	profiles  *query.ProfileQuery
	quests    *query.QuestQuery
	sessions  *query.SessionQuery
	rewards   *query.RewardQuery
	analytics *query.AnalyticsQuery
	stats     *query.PlatformStatsQuery
}

// Each bus carries one platform. The guard keeps a second New over the same
// bus from double-registering the analytics handlers, which would double
// every counter they maintain.
var (
	initMu           sync.Mutex
	initializedBuses = make(map[shared.EventBus]struct{})
)

// New builds the platform and subscribes the analytics event handlers. It is
// an initialize-once transition: a second call over the same bus fails with
// ErrAlreadyInitialized.
func New(admin shared.Address, deps Dependencies) (*Platform, error) {
	if deps.Clock == nil {
		deps.Clock = shared.SystemClock
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	initMu.Lock()
	if _, ok := initializedBuses[deps.Bus]; ok {
		initMu.Unlock()
		return nil, shared.ErrAlreadyInitialized
	}
	initializedBuses[deps.Bus] = struct{}{}
	initMu.Unlock()

	if err := eventhandler.Register(deps.Bus, deps.Stats, deps.Logger); err != nil {
		return nil, err
	}

	return &Platform{
		admin: admin,

		registerUser:       command.NewRegisterUserHandler(deps.Users, deps.Bus, deps.Clock),
		setRoleFlag:        command.NewSetRoleFlagHandler(deps.Users, admin),
		createQuest:        command.NewCreateQuestHandler(deps.Quests, deps.Bus, deps.Clock),
		completeQuest:      command.NewCompleteQuestHandler(deps.Users, deps.Quests, deps.Bus, deps.Clock),
		scheduleMentorship: command.NewScheduleMentorshipHandler(deps.Users, deps.Sessions, deps.Bus, deps.Clock),
		startCollaboration: command.NewStartCollaborationHandler(deps.Users, deps.Sessions, deps.Bus, deps.Clock),
		sponsorDeposit:     command.NewSponsorDepositHandler(deps.Rewards),
		createReward:       command.NewCreateRewardHandler(deps.Rewards, deps.Bus, deps.Clock),
		claimReward:        command.NewClaimRewardHandler(deps.Rewards, deps.Bus, deps.Clock),

		profiles:  query.NewProfileQuery(deps.Users),
		quests:    query.NewQuestQuery(deps.Quests),
		sessions:  query.NewSessionQuery(deps.Sessions),
		rewards:   query.NewRewardQuery(deps.Rewards),
		analytics: query.NewAnalyticsQuery(deps.Stats),
		stats:     query.NewPlatformStatsQuery(deps.Users, deps.Quests, deps.Sessions, deps.Rewards),
	}, nil
}

// Admin returns the administrative account.
func (p *Platform) Admin() shared.Address {
	return p.admin
}

// RegisterUser creates a profile for a new user.
func (p *Platform) RegisterUser(ctx context.Context, cmd command.RegisterUserCommand) (*identity.Profile, error) {
	return p.registerUser.Handle(ctx, cmd)
}

// SetRoleFlag grants or revokes a role flag. Admin only.
func (p *Platform) SetRoleFlag(ctx context.Context, cmd command.SetRoleFlagCommand) error {
	return p.setRoleFlag.Handle(ctx, cmd)
}

// CreateQuest registers a new quest and returns its id.
func (p *Platform) CreateQuest(ctx context.Context, cmd command.CreateQuestCommand) (uint64, error) {
	return p.createQuest.Handle(ctx, cmd)
}

// CompleteQuest records a quest completion for a user.
func (p *Platform) CompleteQuest(ctx context.Context, cmd command.CompleteQuestCommand) (*command.CompleteQuestResult, error) {
	return p.completeQuest.Handle(ctx, cmd)
}

// ScheduleMentorship records a mentorship session and returns its id.
func (p *Platform) ScheduleMentorship(ctx context.Context, cmd command.ScheduleMentorshipCommand) (uint64, error) {
	return p.scheduleMentorship.Handle(ctx, cmd)
}

// StartCollaboration records a collaboration session and returns its id.
func (p *Platform) StartCollaboration(ctx context.Context, cmd command.StartCollaborationCommand) (uint64, error) {
	return p.startCollaboration.Handle(ctx, cmd)
}

// SponsorDeposit credits a sponsor's pool.
func (p *Platform) SponsorDeposit(ctx context.Context, cmd command.SponsorDepositCommand) error {
	return p.sponsorDeposit.Handle(ctx, cmd)
}

// CreateReward reserves escrow from a sponsor pool and creates a reward.
func (p *Platform) CreateReward(ctx context.Context, cmd command.CreateRewardCommand) (uint64, error) {
	return p.createReward.Handle(ctx, cmd)
}

// ClaimReward pays out an available reward to its recipient.
func (p *Platform) ClaimReward(ctx context.Context, cmd command.ClaimRewardCommand) error {
	return p.claimReward.Handle(ctx, cmd)
}

// Profiles exposes profile reads.
func (p *Platform) Profiles() *query.ProfileQuery { return p.profiles }

// Quests exposes quest and completion reads.
func (p *Platform) Quests() *query.QuestQuery { return p.quests }

// Sessions exposes mentorship and collaboration reads.
func (p *Platform) Sessions() *query.SessionQuery { return p.sessions }

// Rewards exposes reward and sponsor pool reads.
func (p *Platform) Rewards() *query.RewardQuery { return p.rewards }

// Analytics exposes learning progress, engagement, and quest stats reads.
func (p *Platform) Analytics() *query.AnalyticsQuery { return p.analytics }

// Stats exposes platform-wide counters.
func (p *Platform) Stats() *query.PlatformStatsQuery { return p.stats }
