package attempt

import (
	"errors"
	"sync"
	"time"

	"github.com/ManishJoc14/note-library/internal/models"

	"github.com/google/uuid"
)

var (
	ErrCompleted     = errors.New("attempt already completed")
	ErrOutOfRange    = errors.New("option index out of range")
	ErrAtFirst       = errors.New("already at first question")
	ErrAtLast        = errors.New("already at last question")
	ErrNoSuchAttempt = errors.New("attempt not found")
)

// Attempt is one user's in-flight run of a quiz. The countdown goroutine and
// HTTP handlers both touch it, so every transition goes through the mutex.
// Answers are sparse: a question with no entry was skipped, which is distinct
// from selecting option 0.
type Attempt struct {
	UserID    uint
	Quiz      *models.Quiz
	ChannelID string

	mu        sync.Mutex
	current   int
	answers   map[int]int
	timeLeft  int
	completed bool

	ticker   time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// State is a point-in-time copy safe to hand to handlers and encoders.
type State struct {
	CurrentQuestion int         `json:"current_question"`
	Answers         map[int]int `json:"answers"`
	TimeLeft        int         `json:"time_left"`
	Completed       bool        `json:"completed"`
}

func New(userID uint, quiz *models.Quiz) *Attempt {
	return &Attempt{
		UserID:    userID,
		Quiz:      quiz,
		ChannelID: uuid.NewString(),
		answers:   make(map[int]int),
		timeLeft:  quiz.Duration * 60,
		ticker:    time.Second,
		stopCh:    make(chan struct{}),
	}
}

// Start launches the countdown. onTick fires after each one-second decrement
// with the remaining time; onExpire fires at most once, when the clock runs
// out before the user completed manually, and carries the answers snapshot
// for grading. The goroutine exits on completion, expiry, or Stop.
func (a *Attempt) Start(onTick func(timeLeft int), onExpire func(finalAnswers map[int]int)) {
	go func() {
		t := time.NewTicker(a.ticker)
		defer t.Stop()
		for {
			select {
			case <-a.stopCh:
				return
			case <-t.C:
				left, expired := a.tick()
				if onTick != nil && !expired {
					onTick(left)
				}
				if expired {
					if answers, first := a.Complete(); first && onExpire != nil {
						onExpire(answers)
					}
					return
				}
			}
		}
	}()
}

func (a *Attempt) tick() (left int, expired bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.completed || a.timeLeft <= 0 {
		return a.timeLeft, false
	}
	a.timeLeft--
	return a.timeLeft, a.timeLeft == 0
}

// SelectAnswer records the option for the current question, overwriting any
// prior selection for it.
func (a *Attempt) SelectAnswer(optionIndex int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.completed {
		return ErrCompleted
	}
	if optionIndex < 0 || optionIndex >= len(a.Quiz.Questions[a.current].Options) {
		return ErrOutOfRange
	}
	a.answers[a.current] = optionIndex
	return nil
}

func (a *Attempt) Next() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.completed {
		return ErrCompleted
	}
	if a.current >= len(a.Quiz.Questions)-1 {
		return ErrAtLast
	}
	a.current++
	return nil
}

func (a *Attempt) Previous() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.completed {
		return ErrCompleted
	}
	if a.current <= 0 {
		return ErrAtFirst
	}
	a.current--
	return nil
}

// Complete transitions to the terminal state. The first caller gets a
// snapshot of the answers and first=true; later callers (a timer racing a
// manual submit, or a repeated request) get first=false and must not grade
// again. Completing releases the countdown goroutine.
func (a *Attempt) Complete() (finalAnswers map[int]int, first bool) {
	a.mu.Lock()
	if a.completed {
		a.mu.Unlock()
		return nil, false
	}
	a.completed = true
	snapshot := make(map[int]int, len(a.answers))
	for k, v := range a.answers {
		snapshot[k] = v
	}
	a.mu.Unlock()

	a.stopOnce.Do(func() { close(a.stopCh) })
	return snapshot, true
}

// Stop tears the attempt down without completing it, releasing the ticker.
func (a *Attempt) Stop() {
	a.stopOnce.Do(func() { close(a.stopCh) })
}

func (a *Attempt) Snapshot() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	answers := make(map[int]int, len(a.answers))
	for k, v := range a.answers {
		answers[k] = v
	}
	return State{
		CurrentQuestion: a.current,
		Answers:         answers,
		TimeLeft:        a.timeLeft,
		Completed:       a.completed,
	}
}
