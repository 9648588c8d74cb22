package chat

import "sync"

type record struct {
	msg Message

	// Translation requests are tagged with a monotonic sequence so a slow
	// earlier request cannot overwrite the result of a later one.
	claimedTranslationSeq uint64
	appliedTranslationSeq uint64
}

// Store is the ordered sequence of chat messages. Patches merge by id and
// only rewrite their own field, so concurrent translation and summary patches
// on the same message never clobber each other.
type Store struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*record
}

func NewStore() *Store {
	return &Store{byID: make(map[string]*record)}
}

// Append adds one message to the end of the conversation.
func (s *Store) Append(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[msg.ID]; exists {
		return
	}
	s.order = append(s.order, msg.ID)
	s.byID[msg.ID] = &record{msg: msg}
}

// Get returns a copy of the message with the given id.
func (s *Store) Get(id string) (Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[id]
	if !ok {
		return Message{}, false
	}
	return rec.msg, true
}

// Messages returns copies of all messages in submission order.
func (s *Store) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]Message, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, s.byID[id].msg)
	}
	return items
}

// Len reports the number of stored messages.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// ClaimTranslationSeq reserves the next translation sequence number for a
// message. The returned sequence must be passed back to SetTranslation.
func (s *Store) ClaimTranslationSeq(id string) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byID[id]
	if !ok {
		return 0, false
	}
	rec.claimedTranslationSeq++
	return rec.claimedTranslationSeq, true
}

// SetTranslation patches the translation pair on one message. Resolutions
// carrying a sequence older than the last applied one are discarded, so the
// latest-issued request wins regardless of resolution order.
func (s *Store) SetTranslation(id string, tr Translation, seq uint64) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byID[id]
	if !ok {
		return Message{}, false
	}
	if seq <= rec.appliedTranslationSeq {
		return rec.msg, false
	}
	rec.appliedTranslationSeq = seq
	translation := tr
	rec.msg.Translation = &translation
	return rec.msg, true
}

// SetSummary patches the summary on one message.
func (s *Store) SetSummary(id, summary string) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byID[id]
	if !ok {
		return Message{}, false
	}
	text := summary
	rec.msg.Summary = &text
	return rec.msg, true
}
