// Package assistant is the conversation client: it owns the session's
// conversation history and product selection, talks to the gateway, and
// drives a Renderer for everything the user sees.
//
// A Controller serves one session. Conversation and SelectionSet are safe
// for concurrent use, so a chat turn and a routine request may be in flight
// at the same time; a second request of the same kind is rejected until the
// first settles.
package assistant
