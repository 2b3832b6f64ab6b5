package resque

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseJob(t *testing.T) {
	j := ParseJob(`{"class":"Archive","args":[1,"foo",null,{"a":[1,2]}]}`)
	assert.False(t, j.Malformed)
	assert.Equal(t, "Archive", j.Class)
	assert.Equal(t, "1\n\"foo\"\nnull\n{\"a\":[1,2]}", j.ArgsText())

	bad := ParseJob("{oops")
	assert.True(t, bad.Malformed)
	assert.Equal(t, "{oops", bad.ArgsText())
}

func TestParseWorkerID(t *testing.T) {
	w := ParseWorkerID("host.example:4242:high,low")
	assert.Equal(t, "host.example", w.Host)
	assert.Equal(t, "4242", w.PID)
	assert.Equal(t, []string{"high", "low"}, w.Queues)

	w = ParseWorkerID("lonely")
	assert.Equal(t, "lonely", w.Host)
	assert.Empty(t, w.PID)
	assert.Empty(t, w.Queues)
}

func TestParseWorkerJob_Malformed(t *testing.T) {
	wj := parseWorkerJob("garbage")
	assert.NotNil(t, wj)
	assert.True(t, wj.Payload.Malformed)
}
