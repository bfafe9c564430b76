// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package schema holds the physical table and column names used by the
Postgres stores, so queries never hard-code identifiers.

Schemas:

  - users: accounts and watch history.
  - media: videos, comments, tweets and playlists.
  - social: subscription and like edges.
*/
package schema
