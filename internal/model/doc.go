package model

// Package model defines domain data structures used across the app: jobs,
// resolved playlist entries, per-item outcomes, and the shared run tally.
// Structures are designed for direct binding in the UI and explicit state
// transitions.
