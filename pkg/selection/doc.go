// Package selection resolves employees from host lookups.
//
// Host code selects an employee either by ID ([ByID]) or by a free-form
// name ([ByName]). Name matching is case and accent insensitive and falls
// through five tiers, returning the first employee (in list order) matched
// by the earliest tier:
//
//  1. [TierExact]: the query equals the full name.
//  2. [TierPrefix]: the query starts with the full name, followed by a word
//     boundary ("Jean Dupont, DRH").
//  3. [TierFirstName]: the query equals the first name.
//  4. [TierLastName]: the query equals the last name.
//  5. [TierSubstring]: the full name contains the query.
//
// A query no tier matches reports ok=false; callers treat that as a no-op.
//
// [Suggest] is separate from the tiered lookup: it ranks fuzzy matches for
// autocompletion and never decides which employee is selected.
package selection
