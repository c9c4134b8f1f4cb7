package prompt

import "errors"

// =============================================================================
// Scripted Source
// =============================================================================

// ErrScriptExhausted is returned when a Scripted source runs out of answers.
var ErrScriptExhausted = errors.New("scripted prompt has no more answers")

// Scripted is a Source that replays canned answers. Used by tests in place
// of a real terminal.
type Scripted struct {
	// Confirmations are consumed in order by Confirm.
	Confirmations []bool

	// Lines are consumed in order by ReadLine.
	Lines []string

	// Secrets are consumed in order by ReadSecret.
	Secrets []string

	// Asked records every question and label, in order.
	Asked []string
}

// Confirm pops the next canned confirmation.
func (s *Scripted) Confirm(question string) (bool, error) {
	s.Asked = append(s.Asked, question)
	if len(s.Confirmations) == 0 {
		return false, ErrScriptExhausted
	}
	answer := s.Confirmations[0]
	s.Confirmations = s.Confirmations[1:]
	return answer, nil
}

// ReadLine pops the next canned line.
func (s *Scripted) ReadLine(label string) (string, error) {
	s.Asked = append(s.Asked, label)
	if len(s.Lines) == 0 {
		return "", ErrScriptExhausted
	}
	line := s.Lines[0]
	s.Lines = s.Lines[1:]
	return line, nil
}

// ReadSecret pops the next canned secret.
func (s *Scripted) ReadSecret(label string) (string, error) {
	s.Asked = append(s.Asked, label)
	if len(s.Secrets) == 0 {
		return "", ErrScriptExhausted
	}
	secret := s.Secrets[0]
	s.Secrets = s.Secrets[1:]
	return secret, nil
}
