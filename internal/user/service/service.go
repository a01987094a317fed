// Package service provides business logic layer for user module.
package service

import (
	"context"
	"errors"
	"maps"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/festy23/pitmstr/internal/auth"
	"github.com/festy23/pitmstr/internal/identity"
	"github.com/festy23/pitmstr/internal/user/model"
	"github.com/festy23/pitmstr/internal/user/repository"
)

// IdentityProvider is the subset of the identity provider API the user module needs.
type IdentityProvider interface {
	ListUsers(ctx context.Context, params identity.ListParams) ([]identity.User, error)
	CountUsers(ctx context.Context, query string) (int, error)
	GetUser(ctx context.Context, id string) (*identity.User, error)
	UpdatePublicMetadata(ctx context.Context, id string, metadata map[string]any) (*identity.User, error)
}

// Service defines the interface for user business logic operations.
type Service interface {
	// List returns a page of users and the total number of matches.
	List(ctx context.Context, params model.ListParams) ([]model.User, int, error)

	// UpdateRole sets a user's role, school and state on behalf of an admin.
	UpdateRole(ctx context.Context, actor *auth.Session, userID string, req *model.UpdateRoleRequest) (*model.RoleResponse, error)

	// LinkSchool links a teacher to a school, once.
	LinkSchool(ctx context.Context, actor *auth.Session, userID string, req *model.LinkSchoolRequest) (*model.LinkSchoolResponse, error)

	// LinkTeam links a student or parent to a team, once.
	LinkTeam(ctx context.Context, actor *auth.Session, userID string, req *model.LinkTeamRequest) (*model.LinkTeamResponse, error)

	// SyncCreated mirrors a newly registered identity.
	SyncCreated(ctx context.Context, profile model.Profile) error

	// SyncUpdated mirrors a profile change.
	SyncUpdated(ctx context.Context, profile model.Profile) error

	// SyncDeleted suspends the mirror of a deleted identity.
	SyncDeleted(ctx context.Context, clerkID string) error
}

type service struct {
	repo     repository.Repository
	identity IdentityProvider
	logger   *zap.SugaredLogger
}

// New creates a new user service instance. identity may be nil when the
// provider is not configured; only the Sync methods work then.
func New(repo repository.Repository, identity IdentityProvider, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, identity: identity, logger: logger}
}

var errIdentityDisabled = errors.New("identity provider is not configured")

// List returns a page of users and the total number of matches.
func (s *service) List(ctx context.Context, params model.ListParams) ([]model.User, int, error) {
	s.logger.Debugw("List called", "query", params.Query, "limit", params.Limit, "offset", params.Offset)
	if s.identity == nil {
		return nil, 0, errIdentityDisabled
	}
	params.Normalize()

	var (
		raw   []identity.User
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raw, err = s.identity.ListUsers(gctx, identity.ListParams{Query: params.Query, Limit: params.Limit, Offset: params.Offset})
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.identity.CountUsers(gctx, params.Query)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Errorw("List failed", "error", err)
		return nil, 0, err
	}

	users := make([]model.User, 0, len(raw))
	for _, u := range raw {
		users = append(users, toUser(u))
	}
	return users, total, nil
}

// UpdateRole merges role, school and state into the user's public metadata.
// Mirror and audit failures are logged; the identity provider stays authoritative.
func (s *service) UpdateRole(ctx context.Context, actor *auth.Session, userID string, req *model.UpdateRoleRequest) (*model.RoleResponse, error) {
	s.logger.Debugw("UpdateRole called", "user_id", userID)

	if req.Role != nil && *req.Role != "" && !auth.ValidRole(auth.Role(*req.Role)) {
		return nil, model.ErrInvalidRole
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	metadata := maps.Clone(user.PublicMetadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	if req.Role != nil {
		metadata[model.MetaRole] = *req.Role
	}
	if req.SchoolID != nil {
		metadata[model.MetaSchoolID] = *req.SchoolID
	}
	if req.StateID != nil {
		metadata[model.MetaStateID] = *req.StateID
	}

	if _, err := s.identity.UpdatePublicMetadata(ctx, userID, metadata); err != nil {
		s.logger.Errorw("UpdateRole failed", "user_id", userID, "error", err)
		return nil, err
	}

	if req.Role != nil && *req.Role != "" {
		links := model.Links{SchoolID: deref(req.SchoolID), StateID: deref(req.StateID)}
		if err := s.repo.UpdateRole(ctx, userID, *req.Role, links); err != nil {
			s.logger.Warnw("role mirror failed", "user_id", userID, "error", err)
		}
	}
	role := ""
	if req.Role != nil {
		role = *req.Role
	}
	s.audit(ctx, model.AuditEntry{
		ActorID:    actor.UserID,
		Action:     model.ActionRoleAssigned,
		EntityType: "user",
		EntityID:   userID,
		Details:    map[string]any{"role": role, "targetEmail": user.PrimaryEmail()},
	})

	s.logger.Infow("UpdateRole completed", "user_id", userID, "actor_id", actor.UserID)
	return &model.RoleResponse{
		UserID:   userID,
		Role:     metadata[model.MetaRole],
		SchoolID: metadata[model.MetaSchoolID],
		StateID:  metadata[model.MetaStateID],
	}, nil
}

// LinkSchool links the calling teacher to the school named in the request.
// The session claims only decide whether the teacher is already linked.
func (s *service) LinkSchool(ctx context.Context, actor *auth.Session, userID string, req *model.LinkSchoolRequest) (*model.LinkSchoolResponse, error) {
	s.logger.Debugw("LinkSchool called", "user_id", userID)

	if actor.UserID != userID {
		return nil, model.ErrNotSelf
	}
	if actor.Role != auth.RoleTeacher {
		return nil, model.ErrNotTeacher
	}
	if actor.SchoolID != "" {
		return nil, model.ErrSchoolAlreadyLinked
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	metadata := maps.Clone(user.PublicMetadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata[model.MetaSchoolID] = req.SchoolID
	if _, err := s.identity.UpdatePublicMetadata(ctx, userID, metadata); err != nil {
		s.logger.Errorw("LinkSchool failed", "user_id", userID, "error", err)
		return nil, err
	}

	if err := s.repo.UpdateRole(ctx, userID, string(auth.RoleTeacher), model.Links{SchoolID: req.SchoolID}); err != nil {
		s.logger.Warnw("school link mirror failed", "user_id", userID, "error", err)
	}
	s.audit(ctx, model.AuditEntry{
		ActorID:    userID,
		Action:     model.ActionSchoolSelfLinked,
		EntityType: "school",
		EntityID:   req.SchoolID,
		Details:    map[string]any{"email": user.PrimaryEmail()},
	})

	s.logger.Infow("LinkSchool completed", "user_id", userID, "school_id", req.SchoolID)
	return &model.LinkSchoolResponse{UserID: userID, SchoolID: req.SchoolID}, nil
}

// LinkTeam links the calling student or parent to the team named in the request.
// Current metadata only decides whether a team is already linked.
func (s *service) LinkTeam(ctx context.Context, actor *auth.Session, userID string, req *model.LinkTeamRequest) (*model.LinkTeamResponse, error) {
	s.logger.Debugw("LinkTeam called", "user_id", userID)

	if actor.UserID != userID {
		return nil, model.ErrNotSelf
	}
	if actor.Role != auth.RoleStudent && actor.Role != auth.RoleParent {
		return nil, model.ErrNotStudentOrParent
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.MetadataString(model.MetaTeamID) != "" {
		return nil, model.ErrTeamAlreadyLinked
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	metadata := maps.Clone(user.PublicMetadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata[model.MetaTeamID] = req.TeamID
	if _, err := s.identity.UpdatePublicMetadata(ctx, userID, metadata); err != nil {
		s.logger.Errorw("LinkTeam failed", "user_id", userID, "error", err)
		return nil, err
	}

	if err := s.repo.UpdateRole(ctx, userID, string(actor.Role), model.Links{TeamID: req.TeamID}); err != nil {
		s.logger.Warnw("team link mirror failed", "user_id", userID, "error", err)
	}
	s.audit(ctx, model.AuditEntry{
		ActorID:    userID,
		Action:     model.ActionTeamSelfLinked,
		EntityType: "team",
		EntityID:   req.TeamID,
		Details:    map[string]any{"email": user.PrimaryEmail()},
	})

	s.logger.Infow("LinkTeam completed", "user_id", userID, "team_id", req.TeamID)
	return &model.LinkTeamResponse{UserID: userID, TeamID: req.TeamID}, nil
}

func (s *service) SyncCreated(ctx context.Context, profile model.Profile) error {
	if err := s.repo.CreateUser(ctx, profile); err != nil {
		s.logger.Errorw("SyncCreated failed", "clerk_id", profile.ClerkID, "error", err)
		return err
	}
	return nil
}

func (s *service) SyncUpdated(ctx context.Context, profile model.Profile) error {
	if err := s.repo.UpdateUser(ctx, profile); err != nil {
		s.logger.Errorw("SyncUpdated failed", "clerk_id", profile.ClerkID, "error", err)
		return err
	}
	return nil
}

func (s *service) SyncDeleted(ctx context.Context, clerkID string) error {
	if err := s.repo.SuspendUser(ctx, clerkID); err != nil {
		s.logger.Errorw("SyncDeleted failed", "clerk_id", clerkID, "error", err)
		return err
	}
	return nil
}

func (s *service) getUser(ctx context.Context, userID string) (*identity.User, error) {
	if s.identity == nil {
		return nil, errIdentityDisabled
	}
	user, err := s.identity.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *service) audit(ctx context.Context, entry model.AuditEntry) {
	if err := s.repo.LogAudit(ctx, entry); err != nil {
		s.logger.Warnw("audit log write failed", "action", entry.Action, "entity_id", entry.EntityID, "error", err)
	}
}

func toUser(u identity.User) model.User {
	return model.User{
		ID:           u.ID,
		Email:        u.PrimaryEmail(),
		FirstName:    deref(u.FirstName),
		LastName:     deref(u.LastName),
		ImageURL:     u.ImageURL,
		Role:         optional(u.MetadataString(model.MetaRole)),
		SchoolID:     optional(u.MetadataString(model.MetaSchoolID)),
		StateID:      optional(u.MetadataString(model.MetaStateID)),
		CreatedAt:    u.CreatedAt,
		LastSignInAt: u.LastSignInAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
