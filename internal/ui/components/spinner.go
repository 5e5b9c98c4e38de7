package components

import (
	"strings"
	"sync"
)

const (
	SpinnerDotSet    = "⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏"
	SpinnerCircleSet = "◌◯◎◉●◉◎◯"
)

// Spinner cycles through a charset, one frame per call to Next.
type Spinner struct {
	index   int
	charset []string
	lock    sync.Mutex
}

func NewSpinner(charset string) *Spinner {
	return &Spinner{
		charset: strings.Split(charset, ""),
	}
}

func (s *Spinner) Next() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	c := s.charset[s.index]
	s.index = (s.index + 1) % len(s.charset)
	return c
}
