package bot

import "sync"

// chatState names the step a conversation is waiting on. stateIdle is the
// main menu; everything else expects a specific next input.
type chatState int

const (
	stateIdle chatState = iota
	stateQuality
	stateFAQ
	stateTicketSubject
	stateTicketMessage
	stateTicketAttach
	statePaymentProof
	stateBroadcast
)

// conversation carries the in-flight data of a chat's current flow.
type conversation struct {
	State    chatState
	VideoID  string // pending thumbnail request (stateQuality)
	Subject  string // draft ticket subject (stateTicketMessage)
	TicketID string // ticket collecting attachments (stateTicketAttach)
}

// stateStore is an in-memory per-chat conversation table. State is
// deliberately volatile: a restart drops everyone back to the main menu.
type stateStore struct {
	mu sync.Mutex
	m  map[int64]conversation
}

func newStateStore() *stateStore {
	return &stateStore{m: make(map[int64]conversation)}
}

func (s *stateStore) get(chatID int64) conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[chatID]
}

func (s *stateStore) set(chatID int64, c conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[chatID] = c
}

func (s *stateStore) clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, chatID)
}
