package gate

import (
	"fmt"
	"iter"
	"reflect"
	"sync"
)

// An Occurrence is one captured event. Args are the arguments the source
// emitted. Seq increases by one per occurrence within a feed and never
// resets, so gaps across drains are detectable.
type Occurrence struct {
	Seq  uint64
	Args []any
}

// An EventFeed buffers the occurrences of one subscribed event source until
// the evaluation side collects them. The source may emit from any
// goroutine; appends and drains are serialized by the feed's lock, and
// every occurrence between two drains is captured exactly once, in arrival
// order.
type EventFeed struct {
	name string

	lock    sync.Mutex
	nextSeq uint64
	buffer  []Occurrence
	closed  bool
	hasNew  Condition

	disconnectOnce sync.Once
	unsubscribe    func()
}

// OnEvent subscribes to an event source and returns the feed that captures
// its occurrences. The subscription is live before OnEvent returns, so
// nothing emitted afterwards is missed, and the buffer starts empty. The
// source is matched in order, most specific form first:
//
//  1. a Connectable, subscribed directly;
//  2. (owner, Connectable), where the owner only contributes a name;
//  3. (owner, "Member"), naming a Connectable or SubscribeFunc field, map
//     entry, or method of the owner, found by reflection;
//  4. (owner, func value), a SubscribeFunc-shaped function bound to the
//     owner;
//  5. a bare SubscribeFunc.
//
// Anything else fails with a *SubscriptionError.
func OnEvent(source any, selector ...any) (*EventFeed, error) {
	sub, sourceName, err := resolveSource(source, selector...)
	if err != nil {
		return nil, err
	}

	name := BuildNameWithIndex("", "EventFeed", GetIDGenerator().Generate())
	if sourceName != "" {
		name = BuildName(sourceName, "Feed")
	}

	f := &EventFeed{name: name}
	f.unsubscribe = sub(f.deliver)

	return f, nil
}

// MustOnEvent calls OnEvent and panics when the source cannot be resolved
// or subscribed.
func MustOnEvent(source any, selector ...any) *EventFeed {
	f, err := OnEvent(source, selector...)
	if err != nil {
		panic(err)
	}

	return f
}

// Name returns the name of the feed.
func (f *EventFeed) Name() string {
	return f.name
}

// HasNew returns the condition that permits while the feed holds
// uncollected occurrences. Evaluating it does not drain the buffer. Every
// call returns the same instance, so units gating on the feed share one
// registry entry.
func (f *EventFeed) HasNew() Condition {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.hasNew == nil {
		f.hasNew = &hasNewCondition{
			name: BuildName(f.name, "HasNew"),
			feed: f,
		}
	}

	return f.hasNew
}

// Collect drains the feed and returns the drained occurrences as a lazily
// yielded sequence. The buffer is emptied atomically when Collect is
// called; occurrences arriving while the sequence is consumed belong to
// the next drain. Ranging over the returned sequence again replays the
// same occurrences.
func (f *EventFeed) Collect() iter.Seq[Occurrence] {
	f.lock.Lock()
	drained := f.buffer
	f.buffer = nil
	f.lock.Unlock()

	return func(yield func(Occurrence) bool) {
		for _, o := range drained {
			if !yield(o) {
				return
			}
		}
	}
}

// Pending returns the number of uncollected occurrences.
func (f *EventFeed) Pending() int {
	f.lock.Lock()
	defer f.lock.Unlock()

	return len(f.buffer)
}

// Disconnect unsubscribes the feed from its source. It is safe to call
// from any goroutine, and calling it again is a no-op. When Disconnect
// returns, no further occurrence will be appended; occurrences already
// buffered stay collectable.
func (f *EventFeed) Disconnect() {
	f.disconnectOnce.Do(func() {
		f.unsubscribe()

		f.lock.Lock()
		f.closed = true
		f.lock.Unlock()
	})
}

// DisconnectFunc returns a zero-argument function that disconnects the
// feed, for handing to teardown code that does not know about feeds.
func (f *EventFeed) DisconnectFunc() func() {
	return f.Disconnect
}

// Release disconnects the feed. A registry holding one of the feed's
// conditions calls it when the last referencing unit detaches.
func (f *EventFeed) Release() {
	f.Disconnect()
}

func (f *EventFeed) deliver(args ...any) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.closed {
		return
	}

	f.nextSeq++
	f.buffer = append(f.buffer, Occurrence{Seq: f.nextSeq, Args: args})
}

type hasNewCondition struct {
	name string
	feed *EventFeed
}

// Name returns the name of the condition.
func (c *hasNewCondition) Name() string {
	return c.name
}

// Evaluate permits while the owning feed holds uncollected occurrences.
func (c *hasNewCondition) Evaluate(_ World, _ Tick) (Verdict, error) {
	if c.feed.Pending() > 0 {
		return Permit, nil
	}

	return Block, nil
}

// Release disconnects the owning feed.
func (c *hasNewCondition) Release() {
	c.feed.Release()
}

// Feed returns the owning feed.
func (c *hasNewCondition) Feed() *EventFeed {
	return c.feed
}

func resolveSource(
	source any,
	selector ...any,
) (sub SubscribeFunc, sourceName string, err error) {
	if len(selector) > 1 {
		return nil, "", &SubscriptionError{
			Source: fmt.Sprintf("%T", source),
			Reason: "at most one selector is allowed",
		}
	}

	if len(selector) == 0 {
		return resolveBareSource(source)
	}

	return resolveOwnedSource(source, selector[0])
}

func resolveBareSource(source any) (SubscribeFunc, string, error) {
	switch src := source.(type) {
	case Connectable:
		return connectableSubscribe(src), nameOf(src), nil
	case SubscribeFunc:
		return src, "", nil
	case func(func(...any)) func():
		return SubscribeFunc(src), "", nil
	}

	return nil, "", &SubscriptionError{
		Source: fmt.Sprintf("%T", source),
		Reason: "source is neither a Connectable nor a SubscribeFunc",
	}
}

func resolveOwnedSource(
	owner any,
	selector any,
) (SubscribeFunc, string, error) {
	ownerName := nameOf(owner)

	switch sel := selector.(type) {
	case Connectable:
		name := nameOf(sel)
		if name == "" {
			name = ownerName
		}

		return connectableSubscribe(sel), name, nil
	case string:
		return resolveMember(owner, ownerName, sel)
	case SubscribeFunc:
		return sel, ownerName, nil
	case func(func(...any)) func():
		return SubscribeFunc(sel), ownerName, nil
	}

	return nil, "", &SubscriptionError{
		Source: fmt.Sprintf("%T", owner),
		Reason: fmt.Sprintf("selector type %T is not supported", selector),
	}
}

func resolveMember(
	owner any,
	ownerName string,
	member string,
) (SubscribeFunc, string, error) {
	name := BuildName(ownerName, member)

	v := reflect.ValueOf(owner)
	if !v.IsValid() {
		return nil, "", &SubscriptionError{
			Source: name,
			Reason: "owner must not be nil",
		}
	}

	if field := memberValue(v, member); field.IsValid() && field.CanInterface() {
		if sub, ok := asSubscribeSource(field.Interface()); ok {
			return sub, name, nil
		}
	}

	if m := v.MethodByName(member); m.IsValid() {
		if sub, ok := asSubscribeSource(m.Interface()); ok {
			return sub, name, nil
		}
	}

	return nil, "", &SubscriptionError{
		Source: name,
		Reason: "no Connectable or subscribe-shaped member of that name",
	}
}

// memberValue looks a member up by name on a struct, a pointer to struct,
// or a string-keyed map.
func memberValue(v reflect.Value, name string) reflect.Value {
	v = reflect.Indirect(v)

	switch v.Kind() {
	case reflect.Struct:
		return v.FieldByName(name)
	case reflect.Map:
		if v.Type().Key().Kind() == reflect.String {
			return v.MapIndex(reflect.ValueOf(name))
		}
	}

	return reflect.Value{}
}

func asSubscribeSource(member any) (SubscribeFunc, bool) {
	switch m := member.(type) {
	case Connectable:
		return connectableSubscribe(m), true
	case SubscribeFunc:
		return m, true
	case func(func(...any)) func():
		return SubscribeFunc(m), true
	}

	return nil, false
}

func connectableSubscribe(c Connectable) SubscribeFunc {
	return func(handler func(args ...any)) func() {
		id := c.Connect(handler)

		return func() { c.Disconnect(id) }
	}
}

func nameOf(v any) string {
	if named, ok := v.(Named); ok {
		return named.Name()
	}

	return ""
}
