package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmDefaultsToNoOnEmptyInput(t *testing.T) {
	var out bytes.Buffer
	svc := NewService(strings.NewReader("\n"), &out)

	ok, err := svc.Confirm("Reuse project gcp-lab-aaa111?")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, out.String(), "[y/N]")
}

func TestConfirmAcceptsYesVariants(t *testing.T) {
	for _, input := range []string{"y\n", "Y\n", "yes\n", "YES\n"} {
		svc := NewService(strings.NewReader(input), &bytes.Buffer{})
		ok, err := svc.Confirm("Reuse?")
		require.NoError(t, err)
		assert.True(t, ok, "input %q", input)
	}
}

func TestConfirmTreatsAnythingElseAsNo(t *testing.T) {
	for _, input := range []string{"n\n", "no\n", "nope\n", "maybe\n"} {
		svc := NewService(strings.NewReader(input), &bytes.Buffer{})
		ok, err := svc.Confirm("Reuse?")
		require.NoError(t, err)
		assert.False(t, ok, "input %q", input)
	}
}

func TestAskTrimsWhitespace(t *testing.T) {
	svc := NewService(strings.NewReader("  my-existing-project  \n"), &bytes.Buffer{})

	answer, err := svc.Ask("Enter an existing project ID")
	require.NoError(t, err)
	assert.Equal(t, "my-existing-project", answer)
}

func TestChooseRepromptsUntilValid(t *testing.T) {
	var out bytes.Buffer
	svc := NewService(strings.NewReader("abc\n0\n5\n2\n"), &out)

	n, err := svc.Choose("Select account", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Contains(t, out.String(), "between 1 and 3")
}

func TestChooseEOF(t *testing.T) {
	svc := NewService(strings.NewReader(""), &bytes.Buffer{})

	_, err := svc.Choose("Select account", 3)
	assert.Error(t, err)
}

func TestConfirmLastLineWithoutNewline(t *testing.T) {
	svc := NewService(strings.NewReader("yes"), &bytes.Buffer{})

	ok, err := svc.Confirm("Reuse?")
	require.NoError(t, err)
	assert.True(t, ok)
}
