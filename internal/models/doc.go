// Package models defines the records each journal feature persists.
//
// Field names and JSON tags follow the persisted layout, so data written by
// earlier versions of the app (and backups made from them) decode as is.
package models
