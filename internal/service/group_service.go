package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

// GroupService manages groups and their membership.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a group with the given initial members, deduplicated
// in first-seen order. All members start at a zero balance.
func (s *GroupService) CreateGroup(ctx context.Context, name string, members []string) (*models.Group, error) {
	if name == "" {
		return nil, fmt.Errorf("group name is required: %w", ErrInvalidInput)
	}

	group := &models.Group{
		Name:    name,
		Members: dedupe(members),
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("group creation failed", "name", name, "error", err)
		return nil, err
	}

	return group, nil
}

// GetGroup retrieves a group with its members.
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return s.store.ListGroups(ctx)
}

// AddMembers adds new members to a group at a zero balance; names that are
// already members are ignored.
func (s *GroupService) AddMembers(ctx context.Context, groupID string, members []string) (*models.Group, error) {
	if err := s.store.AddGroupMembers(ctx, groupID, dedupe(members)); err != nil {
		return nil, err
	}
	return s.store.GetGroup(ctx, groupID)
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
