// Package events provides the typed scratch-data container threaded through
// a single battle-event dispatch, plus the generic Modifier vocabulary used
// when a callback wants to leave a note for later callbacks in the same
// dispatch (e.g. "this hit is now a critical", "redirected to slot 2").
//
// The dispatch mechanism itself — gathering the right callbacks for an
// event, sorting them, and running them in order — lives in package battle,
// because that gathering is inherently battle-shaped (it walks creatures,
// sides, and field conditions). This package only holds the
// domain-independent pieces: a concurrency-safe typed key/value bag
// (EventContext) and the Modifier interface used to describe one-shot
// modifications a handler wants applied to an accumulator.
package events
