package attempt

import (
	"sync"

	"github.com/ManishJoc14/note-library/internal/models"
)

type key struct {
	userID uint
	quizID uint
}

// Manager holds live attempts, one per (user, quiz). Attempts are transient:
// a restart loses them, which matches the accepted crash window between
// completion and summary save.
type Manager struct {
	mu        sync.Mutex
	attempts  map[key]*Attempt
	byChannel map[string]*Attempt
}

func NewManager() *Manager {
	return &Manager{
		attempts:  make(map[key]*Attempt),
		byChannel: make(map[string]*Attempt),
	}
}

// Start returns the user's live attempt for the quiz, creating and starting
// one if none exists. resumed is true when an attempt was already running.
func (m *Manager) Start(userID uint, quiz *models.Quiz, onTick func(a *Attempt, timeLeft int), onExpire func(a *Attempt, finalAnswers map[int]int)) (a *Attempt, resumed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key{userID: userID, quizID: quiz.ID}
	if existing, ok := m.attempts[k]; ok {
		return existing, true
	}

	a = New(userID, quiz)
	m.attempts[k] = a
	m.byChannel[a.ChannelID] = a

	a.Start(
		func(left int) {
			if onTick != nil {
				onTick(a, left)
			}
		},
		func(answers map[int]int) {
			if onExpire != nil {
				onExpire(a, answers)
			}
		},
	)
	return a, false
}

func (m *Manager) Get(userID, quizID uint) (*Attempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.attempts[key{userID: userID, quizID: quizID}]
	if !ok {
		return nil, ErrNoSuchAttempt
	}
	return a, nil
}

func (m *Manager) GetByChannel(channelID string) (*Attempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byChannel[channelID]
	if !ok {
		return nil, ErrNoSuchAttempt
	}
	return a, nil
}

// Remove drops the attempt and releases its timer. Safe to call after the
// attempt already completed itself.
func (m *Manager) Remove(a *Attempt) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.Stop()
	delete(m.attempts, key{userID: a.UserID, quizID: a.Quiz.ID})
	delete(m.byChannel, a.ChannelID)
}
