// Package model defines the data shared across the app: download requests and
// tasks, their status enum, and the playlist entries whose titles feed the
// header ribbon. Structures are bound directly in the UI.
package model
