package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/stretchr/testify/require"
)

func TestTranslateSurveyErr(t *testing.T) {
	require.ErrorIs(t, translateSurveyErr(terminal.InterruptErr), ErrAborted)

	other := errors.New("other")
	require.Equal(t, other, translateSurveyErr(other))
}

func TestScripted(t *testing.T) {
	s := &Scripted{Selections: []string{"Post"}, Texts: []string{"title: x"}}

	idx, err := s.Select(context.Background(), SelectConfig{Message: "Type", Options: []string{"Author", "Post"}})
	require.NoError(t, err)
	require.Equal(t, 1, idx)

	text, err := s.TextArea(context.Background(), TextAreaConfig{Message: "Data"})
	require.NoError(t, err)
	require.Equal(t, "title: x", text)
	require.Equal(t, []string{"Type", "Data"}, s.Asked)

	_, err = s.Select(context.Background(), SelectConfig{Message: "Again", Options: []string{"Post"}})
	require.ErrorIs(t, err, ErrAborted)
	_, err = s.TextArea(context.Background(), TextAreaConfig{Message: "More"})
	require.ErrorIs(t, err, ErrAborted)
}

func TestSurveyDriverRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSurveyDriver().Select(ctx, SelectConfig{Options: []string{"a"}})
	require.ErrorIs(t, err, context.Canceled)
	_, err = NewSurveyDriver().TextArea(ctx, TextAreaConfig{})
	require.ErrorIs(t, err, context.Canceled)
}
