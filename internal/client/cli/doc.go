// Package cli is the ResQSync command-line client.
//
// NewApp opens the local session store and wires the API client, the
// session guard and the services. NewRootCommand exposes them as a cobra
// command tree; the "shell" command starts an interactive loop over the
// same commands.
//
// Screens that need a signed-in user (profile, reports, help requests,
// volunteering, manager tools, notifications) run through session.Protect.
// When the guard refuses, the user is sent to the landing hint and nothing
// else is printed.
package cli
