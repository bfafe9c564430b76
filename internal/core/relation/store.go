// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package relation

import "context"

// # Relation Data Access

// EdgeStore is the storage contract for toggle edges.
type EdgeStore interface {

	/*
		Exists reports whether actorID has an edge to target.

		Parameters:
		  - context: context.Context
		  - actorID: string
		  - target: Target

		Returns:
		  - bool: Edge presence
		  - error: Database failures
	*/
	Exists(context context.Context, actorID string, target Target) (bool, error)

	/*
		Insert creates the edge.

		Returns:
		  - error: apperr.Conflict when the edge already exists,
		    apperr.NotFound when the target does not exist
	*/
	Insert(context context.Context, actorID string, target Target) error

	/*
		Remove deletes the edge and returns the number of rows removed (0 or 1).
	*/
	Remove(context context.Context, actorID string, target Target) (int64, error)
}

// Reader serves the relation listings.
type Reader interface {
	Subscribers(context context.Context, channelID string, limit, offset int) ([]*Channel, int, error)
	SubscribedChannels(context context.Context, subscriberID string, limit, offset int) ([]*Channel, int, error)
	LikedVideos(context context.Context, userID string, limit, offset int) ([]*LikedVideo, int, error)
}
