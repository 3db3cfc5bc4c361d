// Package services implements the journal features on top of collection
// stores: journal, gratitude, intentions, library, affirmations, to-dos,
// daily mood and weather logs, display preferences and time capsules.
//
// Each service validates its input, wraps rejected input in
// common.ErrValidation, and otherwise delegates to a collection.Store.
package services
