// internal/service/referral_test.go
package service

import (
	"context"
	"testing"

	"vestflow-engine/internal/domain"
	"vestflow-engine/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// chainUser builds a user whose sponsor edge points at sponsorCode.
func chainUser(id int64, code string, sponsorCode *string) *domain.User {
	return &domain.User{ID: id, Username: "u", ReferralCode: code, SponsorCode: sponsorCode}
}

func TestReferralResolverWalksChainInLevelOrder(t *testing.T) {
	ctx := context.Background()
	mockUserRepo := new(MockUserRepository)
	mockExecutor := new(MockDBExecutor)
	resolver := NewReferralResolver(mockUserRepo)

	// 1 -> 2 -> 3 -> 4, user 4 is a root.
	mockUserRepo.On("GetUserByID", ctx, mock.Anything, int64(1)).Return(chainUser(1, "c1", strPtr("c2")), nil).Once()
	mockUserRepo.On("GetUserByReferralCode", ctx, mock.Anything, "c2").Return(chainUser(2, "c2", strPtr("c3")), nil).Once()
	mockUserRepo.On("GetUserByReferralCode", ctx, mock.Anything, "c3").Return(chainUser(3, "c3", strPtr("c4")), nil).Once()
	mockUserRepo.On("GetUserByReferralCode", ctx, mock.Anything, "c4").Return(chainUser(4, "c4", nil), nil).Once()

	ancestors, err := resolver.Resolve(ctx, mockExecutor, 1, 10)

	require.NoError(t, err)
	require.Len(t, ancestors, 3)
	assert.Equal(t, Ancestor{UserID: 2, Level: 1}, ancestors[0])
	assert.Equal(t, Ancestor{UserID: 3, Level: 2}, ancestors[1])
	assert.Equal(t, Ancestor{UserID: 4, Level: 3}, ancestors[2])
	mockUserRepo.AssertExpectations(t)
}

func TestReferralResolverHonorsMaxDepth(t *testing.T) {
	ctx := context.Background()
	mockUserRepo := new(MockUserRepository)
	mockExecutor := new(MockDBExecutor)
	resolver := NewReferralResolver(mockUserRepo)

	mockUserRepo.On("GetUserByID", ctx, mock.Anything, int64(1)).Return(chainUser(1, "c1", strPtr("c2")), nil).Once()
	mockUserRepo.On("GetUserByReferralCode", ctx, mock.Anything, "c2").Return(chainUser(2, "c2", strPtr("c3")), nil).Once()
	mockUserRepo.On("GetUserByReferralCode", ctx, mock.Anything, "c3").Return(chainUser(3, "c3", strPtr("c4")), nil).Once()

	// Chain is deeper, but traversal must stop at maxDepth = 2.
	ancestors, err := resolver.Resolve(ctx, mockExecutor, 1, 2)

	require.NoError(t, err)
	require.Len(t, ancestors, 2)
	assert.Equal(t, 1, ancestors[0].Level)
	assert.Equal(t, 2, ancestors[1].Level)
	mockUserRepo.AssertNotCalled(t, "GetUserByReferralCode", ctx, mock.Anything, "c4")
}

func TestReferralResolverNoSponsor(t *testing.T) {
	ctx := context.Background()
	mockUserRepo := new(MockUserRepository)
	mockExecutor := new(MockDBExecutor)
	resolver := NewReferralResolver(mockUserRepo)

	mockUserRepo.On("GetUserByID", ctx, mock.Anything, int64(1)).Return(chainUser(1, "c1", nil), nil).Once()

	ancestors, err := resolver.Resolve(ctx, mockExecutor, 1, 10)

	require.NoError(t, err)
	assert.Empty(t, ancestors)
	mockUserRepo.AssertNotCalled(t, "GetUserByReferralCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestReferralResolverDanglingSponsorCode(t *testing.T) {
	ctx := context.Background()
	mockUserRepo := new(MockUserRepository)
	mockExecutor := new(MockDBExecutor)
	resolver := NewReferralResolver(mockUserRepo)

	mockUserRepo.On("GetUserByID", ctx, mock.Anything, int64(1)).Return(chainUser(1, "c1", strPtr("c2")), nil).Once()
	mockUserRepo.On("GetUserByReferralCode", ctx, mock.Anything, "c2").Return(chainUser(2, "c2", strPtr("gone")), nil).Once()
	mockUserRepo.On("GetUserByReferralCode", ctx, mock.Anything, "gone").Return(nil, util.ErrNotFound).Once()

	ancestors, err := resolver.Resolve(ctx, mockExecutor, 1, 10)

	require.NoError(t, err)
	require.Len(t, ancestors, 1)
	assert.Equal(t, int64(2), ancestors[0].UserID)
}

// A cycle in the sponsor graph is a data defect; the resolver must degrade
// to a truncated chain instead of looping.
func TestReferralResolverBoundsCycles(t *testing.T) {
	ctx := context.Background()
	mockUserRepo := new(MockUserRepository)
	mockExecutor := new(MockDBExecutor)
	resolver := NewReferralResolver(mockUserRepo)

	// 1 -> 2 -> 1 (cycle back to the starting user).
	mockUserRepo.On("GetUserByID", ctx, mock.Anything, int64(1)).Return(chainUser(1, "c1", strPtr("c2")), nil).Once()
	mockUserRepo.On("GetUserByReferralCode", ctx, mock.Anything, "c2").Return(chainUser(2, "c2", strPtr("c1")), nil).Once()
	mockUserRepo.On("GetUserByReferralCode", ctx, mock.Anything, "c1").Return(chainUser(1, "c1", strPtr("c2")), nil).Once()

	ancestors, err := resolver.Resolve(ctx, mockExecutor, 1, 100)

	require.NoError(t, err)
	require.Len(t, ancestors, 1)
	assert.Equal(t, int64(2), ancestors[0].UserID)
}
