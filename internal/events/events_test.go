package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_PublishAndReceive(t *testing.T) {
	n := NewNotifier(2)
	cause := errors.New("boom")

	require.True(t, n.Publish(TRFProcessError, "m-1", cause))

	ev := <-n.Events()
	assert.Equal(t, TRFProcessError, ev.Type)
	assert.Equal(t, "m-1", ev.SubjectID)
	assert.ErrorIs(t, ev.Err, cause)
	assert.False(t, ev.At.IsZero())
}

func TestNotifier_DropsWhenFull(t *testing.T) {
	n := NewNotifier(1)

	assert.True(t, n.Publish(ExportError, "d-1", nil))
	assert.False(t, n.Publish(ExportError, "d-2", nil))
	assert.False(t, n.Publish(ExportError, "d-3", nil))
	assert.Equal(t, uint64(2), n.Dropped())

	ev := <-n.Events()
	assert.Equal(t, "d-1", ev.SubjectID)
}

func TestNotifier_Unbuffered(t *testing.T) {
	n := NewNotifier(0)
	assert.False(t, n.Publish(FilterDesignError, "", nil))
	assert.Equal(t, uint64(1), n.Dropped())
}

func TestNotifier_Close(t *testing.T) {
	n := NewNotifier(4)
	require.True(t, n.Publish(FileValidationError, "m-2", nil))

	n.Close()
	n.Close()

	assert.False(t, n.Publish(FileValidationError, "m-3", nil))

	var got []Event
	for ev := range n.Events() {
		got = append(got, ev)
	}
	require.Len(t, got, 1)
	assert.Equal(t, "m-2", got[0].SubjectID)
}
