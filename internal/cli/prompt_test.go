package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompterAnswerLength(t *testing.T) {
	atLimit := strings.Repeat("a", maxAnswerLen)
	over := strings.Repeat("b", maxAnswerLen+1)
	out := &bytes.Buffer{}
	p := newPrompter(strings.NewReader(atLimit+"\n"+over+"\nok\r\nlast"), out)

	got, err := p.ask("> ")
	require.NoError(t, err)
	assert.Equal(t, atLimit, got)

	got, err = p.ask("> ")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 1, strings.Count(out.String(), "answer too long"))

	got, err = p.ask("> ")
	require.NoError(t, err)
	assert.Equal(t, "last", got)

	_, err = p.ask("> ")
	assert.ErrorIs(t, err, io.EOF)
}
