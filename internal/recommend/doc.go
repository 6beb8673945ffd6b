// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

// Package recommend implements the collaborative-filtering recommendation engine.
//
// The engine is a pipeline of pure data transformations over a ratings table:
//
//  1. BuildPivot reshapes ratings into a dense user-item matrix
//     (rows = users, columns = items, cells = mean rating, missing = 0).
//  2. UserSimilarity / ItemSimilarity compute pairwise cosine similarity
//     over the rows or columns of the filled pivot.
//  3. TopNeighbors ranks entities by similarity to a target.
//  4. RecommendItems predicts scores for items a user has not rated,
//     aggregating the neighborhood's ratings weighted by similarity.
//
// Filling missing ratings with 0 treats "no interaction" as a signal in
// cosine space. This is a deliberate modeling choice and must be preserved
// for output parity with the heatmaps a UI renders from these matrices.
//
// All computations are synchronous and run to completion; there is no
// shared mutable state inside the engine. Failures are terminal for that
// computation and reported to the caller via the sentinel errors in this
// package.
package recommend
