// Package engram captures chat conversations from web pages into a local,
// searchable transcript store. It recovers role-tagged messages from chat
// markup without depending on platform class names, normalizes them into
// session records and persists them in SQLite.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, rod/).
package engram
