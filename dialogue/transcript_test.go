package dialogue

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptOrder(t *testing.T) {
	tr := NewTranscript(10)
	tr.Append(RoleSystem, "instructions")
	tr.Append(RoleUser, "hi")
	tr.Append(RoleModel, "hello")

	msgs := tr.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, RoleSystem, msgs[0].Role)
	assert.Equal(t, "hi", msgs[1].Content)
	assert.Equal(t, "hello", msgs[2].Content)
}

func TestTranscriptEvictsOldestButKeepsSystem(t *testing.T) {
	tr := NewTranscript(4)
	tr.Append(RoleSystem, "instructions")
	for i := 0; i < 10; i++ {
		tr.Append(RoleUser, fmt.Sprintf("turn %d", i))
	}

	msgs := tr.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, RoleSystem, msgs[0].Role)
	assert.Equal(t, "instructions", msgs[0].Content)
	// Oldest user turns evicted, newest retained.
	assert.Equal(t, "turn 7", msgs[1].Content)
	assert.Equal(t, "turn 9", msgs[3].Content)
}

func TestTranscriptUnbounded(t *testing.T) {
	tr := NewTranscript(0)
	for i := 0; i < 100; i++ {
		tr.Append(RoleUser, "x")
	}
	assert.Equal(t, 100, tr.Len())
}

func TestTranscriptMessagesReturnsCopy(t *testing.T) {
	tr := NewTranscript(10)
	tr.Append(RoleUser, "hi")

	msgs := tr.Messages()
	msgs[0].Content = "tampered"

	assert.Equal(t, "hi", tr.Messages()[0].Content)
}
