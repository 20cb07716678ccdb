package model

// Package model defines domain data structures shared by the session, the
// downloaders and the front-ends: playlist metadata, per-item download events,
// aggregated progress, run status enums and worker updates.
