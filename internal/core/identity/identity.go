package identity

import (
	"context"
	"strings"
)

// Authorizer answers the two authorization questions the pipeline asks about
// an actor: moderation authority and donation payout readiness.
type Authorizer interface {
	// IsSuperAdmin reports whether the actor holds platform moderation authority
	IsSuperAdmin(ctx context.Context, actorID string) (bool, error)

	// HasPayoutDestination reports whether the actor has a payout destination
	// configured, a precondition for enabling donations on a post
	HasPayoutDestination(ctx context.Context, actorID string) (bool, error)
}

// EnvAuthorizer resolves both questions from fixed ID sets, loaded from
// comma-separated environment values at startup. It stands in for an identity
// service this deployment does not run.
type EnvAuthorizer struct {
	superAdmins map[string]struct{}
	payoutReady map[string]struct{}
}

// NewEnvAuthorizer parses the comma-separated ID lists. Blank entries are
// skipped.
func NewEnvAuthorizer(superAdminIDs, payoutReadyIDs string) *EnvAuthorizer {
	return &EnvAuthorizer{
		superAdmins: parseIDSet(superAdminIDs),
		payoutReady: parseIDSet(payoutReadyIDs),
	}
}

func (a *EnvAuthorizer) IsSuperAdmin(ctx context.Context, actorID string) (bool, error) {
	_, ok := a.superAdmins[actorID]
	return ok, nil
}

func (a *EnvAuthorizer) HasPayoutDestination(ctx context.Context, actorID string) (bool, error) {
	_, ok := a.payoutReady[actorID]
	return ok, nil
}

func parseIDSet(csv string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, id := range strings.Split(csv, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		set[id] = struct{}{}
	}
	return set
}
