// Package onboarding tracks a user's progress through the account-opening
// wizard and decides where the wizard should resume.
//
// # Steps
//
// The wizard is a fixed sequence of thirteen sub-steps grouped into four main
// steps. Step is a closed enumeration of their identifiers in "<main>-<sub>"
// form (for example "2-0"). The Graph adds per-deployment metadata loaded from
// YAML: slugs, titles, the answer fields that mark a main step as complete,
// and the CRM wizard step each main step reports to.
//
// # Progress
//
// Progress holds the answers a user has given so far, keyed by field name,
// plus an optional pointer to the step they were last on. It is keyed by the
// upstream user identifier and survives across browser sessions until the
// user logs out. Store has memory, Redis, PostgreSQL and MongoDB backends.
// Merges are shallow and last write wins per key.
//
// # Resume
//
// Resolver picks the resume step with a fixed priority: an explicit and valid
// current-step pointer, then inference from which main steps have all of
// their marker fields answered, then the first step. Navigator enforces the
// per-session watermark: a user may jump back to any main step they have
// reached but never forward past it.
package onboarding
