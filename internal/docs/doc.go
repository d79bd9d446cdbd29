// Package docs manages the documentation corpus the assistant answers from.
//
// The package consists of three pieces:
//
//   - Cache: time-bounded snapshot of every documentation file in the
//     GitHub repository, refreshed wholesale at most once per TTL window
//   - Tier classification: a pure function mapping a file path to its
//     priority class, driving both fetch order and context order
//   - BuildContext: deterministic assembly of the cached files into a
//     single bounded-size text blob for the completion prompt
//
// Refresh flow:
//
//	Tree listing (branch probe: main → master)
//	     |
//	     v
//	Extension filter (.md .txt .rst .mdx)
//	     |
//	     v
//	Tier ordering (critical → hardware → general)
//	     |
//	     v
//	Per-file fetch (paced; oversized/undecodable files skipped)
//	     |
//	     v
//	Wholesale cache replacement + timestamp
//
// Failure policy: a failed tree listing preserves any previously fetched
// snapshot (stale answers beat no answers); a single bad file never aborts
// the batch.
package docs
