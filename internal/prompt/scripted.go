package prompt

import (
	"context"
	"errors"
	"fmt"
)

// Scripted replays canned answers. It is used by tests and by --answers style
// automation.
type Scripted struct {
	Selections []string
	Texts      []string

	// Asked records every prompt message in order.
	Asked []string
}

var _ Driver = (*Scripted)(nil)

// Select returns the index of the next scripted selection.
func (s *Scripted) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.Asked = append(s.Asked, cfg.Message)
	if len(s.Selections) == 0 {
		return 0, ErrAborted
	}
	answer := s.Selections[0]
	s.Selections = s.Selections[1:]
	idx := indexOf(cfg.Options, answer)
	if idx < 0 {
		return 0, fmt.Errorf("prompt: %q is not one of %v", answer, cfg.Options)
	}
	return idx, nil
}

// TextArea returns the next scripted text.
func (s *Scripted) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.Asked = append(s.Asked, cfg.Message)
	if len(s.Texts) == 0 {
		return "", errors.Join(ErrAborted, fmt.Errorf("prompt: no scripted answer for %q", cfg.Message))
	}
	answer := s.Texts[0]
	s.Texts = s.Texts[1:]
	return answer, nil
}
