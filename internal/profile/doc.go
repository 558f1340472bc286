// Package profile implements the profile screen of the lost-and-found client:
// viewing and editing the signed-in account, staging a new avatar, and listing
// the account's own lost and found items.
//
// Everything that talks to the outside world (the backend, the session store,
// the terminal) is reached through the collaborator interfaces in
// collaborators.go, so a Controller can be driven entirely from tests.
package profile
