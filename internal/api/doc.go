// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

// Package api provides the HTTP surface of the recommendation server.
//
// Routing uses the Chi router. All endpoints respond with the
// models.APIResponse envelope except the CSV export and the Prometheus
// metrics endpoint. Analysis state lives in sessions: clients create a
// session, load a dataset into it (upload, generate, or restore from
// the store), and then query derived matrices and recommendations.
package api
