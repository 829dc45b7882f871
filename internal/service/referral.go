// internal/service/referral.go
package service

import (
	"context"
	"fmt"

	"vestflow-engine/internal/repository"
	"vestflow-engine/internal/util"
)

// Ancestor is one entry in a user's upward sponsor chain.
type Ancestor struct {
	UserID int64
	Level  int // 1 = direct sponsor
}

// ReferralResolver walks the sponsor chain upward from a user, producing
// the ordered ancestor sequence commissions are paid along.
type ReferralResolver struct {
	userRepo repository.UserRepository
}

// NewReferralResolver creates a new ReferralResolver.
func NewReferralResolver(userRepo repository.UserRepository) *ReferralResolver {
	return &ReferralResolver{userRepo: userRepo}
}

// Resolve returns the user's ancestors in increasing level order starting
// at 1, up to maxDepth. Traversal stops early at a user with no sponsor or
// a sponsor code that no longer resolves. The sponsor graph is expected to
// be a forest, but a visited set bounds traversal anyway so a malformed
// cycle degrades to a truncated chain instead of a loop.
func (r *ReferralResolver) Resolve(ctx context.Context, q repository.DBExecutor, userID int64, maxDepth int) ([]Ancestor, error) {
	current, err := r.userRepo.GetUserByID(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("referral resolve: failed to get user %d: %w", userID, err)
	}

	ancestors := []Ancestor{}
	visited := map[int64]bool{current.ID: true}

	for level := 1; level <= maxDepth; level++ {
		if current.SponsorCode == nil || *current.SponsorCode == "" {
			break
		}
		sponsor, err := r.userRepo.GetUserByReferralCode(ctx, q, *current.SponsorCode)
		if err != nil {
			if util.IsError(err, util.ErrNotFound) {
				// Dangling sponsor code; treat as end of chain.
				break
			}
			return nil, fmt.Errorf("referral resolve: failed to get sponsor by code '%s': %w", *current.SponsorCode, err)
		}
		if visited[sponsor.ID] {
			break
		}
		visited[sponsor.ID] = true
		ancestors = append(ancestors, Ancestor{UserID: sponsor.ID, Level: level})
		current = sponsor
	}

	return ancestors, nil
}
