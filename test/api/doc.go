// Package api provides scenario test utilities for the PetFriends API.
//
// By default the suites run against an in-process stand-in started from
// petfriendstest, so they pass offline. Set PETFRIENDS_LIVE=true together
// with PETFRIENDS_EMAIL and PETFRIENDS_PASSWORD (directly or in test/.env) to
// run the same scenarios against the real service. Live runs create and
// delete pets on the configured account.
package api
