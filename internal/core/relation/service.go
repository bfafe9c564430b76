// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package relation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/vidtube/internal/core/ownership"
	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/ctxutil"
)

// ChannelHook is notified after a subscription edge to channelID changes.
type ChannelHook func(ctx context.Context, channelID string)

// # Service Layer

// Service is the relation toggle engine plus its read side.
type Service struct {
	edges  EdgeStore
	reader Reader
	hooks  []ChannelHook
}

// NewService constructs a relation [Service].
func NewService(edges EdgeStore, reader Reader, hooks ...ChannelHook) *Service {
	return &Service{edges: edges, reader: reader, hooks: hooks}
}

/*
Toggle flips the edge between actorID and target.

Description: Exists then Remove/Insert. The sequence is not atomic; the unique
index decides a concurrent double-create, and the loser gets Conflict. A
Remove that matches nothing (a concurrent toggle got there first) is still
reported as Removed.

Parameters:
  - context: context.Context
  - actorID: string
  - target: Target

Returns:
  - State: Created | Removed
  - error: Unauthorized, ValidationError (bad target, self-subscription),
    NotFound (absent target), Conflict (lost race)
*/
func (service *Service) Toggle(context context.Context, actorID string, target Target) (State, error) {
	if err := ownership.RequireActor(actorID); err != nil {
		return "", err
	}
	if !target.Kind.Valid() || target.ID == "" {
		return "", apperr.ValidationError("Invalid relation target")
	}
	if target.Kind == KindChannel && target.ID == actorID {
		return "", apperr.ValidationError("Cannot subscribe to yourself")
	}

	exists, err := service.edges.Exists(context, actorID, target)
	if err != nil {
		return "", fmt.Errorf("relation_service_toggle_failed: %w", err)
	}

	state := Created
	if exists {
		if _, err := service.edges.Remove(context, actorID, target); err != nil {
			return "", fmt.Errorf("relation_service_toggle_failed: %w", err)
		}
		state = Removed
	} else if err := service.edges.Insert(context, actorID, target); err != nil {
		return "", err
	}

	if target.Kind == KindChannel {
		for _, hook := range service.hooks {
			hook(context, target.ID)
		}
	}

	ctxutil.GetLogger(context).InfoContext(context, "relation_toggled",
		slog.String("actor_id", actorID),
		slog.String("kind", string(target.Kind)),
		slog.String("target_id", target.ID),
		slog.String("state", string(state)),
	)

	return state, nil
}

// Subscribers lists the accounts subscribed to channelID.
func (service *Service) Subscribers(context context.Context, channelID string, limit, offset int) ([]*Channel, int, error) {
	return service.reader.Subscribers(context, channelID, limit, offset)
}

// SubscribedChannels lists the channels subscriberID follows.
func (service *Service) SubscribedChannels(context context.Context, subscriberID string, limit, offset int) ([]*Channel, int, error) {
	return service.reader.SubscribedChannels(context, subscriberID, limit, offset)
}

// LikedVideos lists the videos the authenticated identity liked.
func (service *Service) LikedVideos(context context.Context, actorID string, limit, offset int) ([]*LikedVideo, int, error) {
	if err := ownership.RequireActor(actorID); err != nil {
		return nil, 0, err
	}
	return service.reader.LikedVideos(context, actorID, limit, offset)
}
