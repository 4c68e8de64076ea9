package memory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_UnderCapacity(t *testing.T) {
	log := NewLog(5)

	log.Add(map[string]any{"query": "test0"})
	log.Add(map[string]any{"query": "test1"})

	assert.Equal(t, 2, log.Len())
	records := log.All()
	require.Len(t, records, 2)
	assert.Equal(t, "test0", records[0].(map[string]any)["query"])
	assert.Equal(t, "test1", records[1].(map[string]any)["query"])
}

func TestLog_EvictsOldestWhenOverCapacity(t *testing.T) {
	log := NewLog(3)

	for i := 0; i < 5; i++ {
		log.Add(map[string]any{"query": fmt.Sprintf("test%d", i)})
	}

	records := log.All()
	require.Len(t, records, 3)
	assert.Equal(t, "test2", records[0].(map[string]any)["query"])
	assert.Equal(t, "test3", records[1].(map[string]any)["query"])
	assert.Equal(t, "test4", records[2].(map[string]any)["query"])
}

func TestLog_TrimsOnlyWhenOver(t *testing.T) {
	log := NewLog(10)

	for i := 0; i < 10; i++ {
		log.Add(map[string]any{"query": fmt.Sprintf("test%d", i)})
	}
	assert.Equal(t, 10, log.Len())

	// One more append trims exactly one record from the front.
	log.Add(map[string]any{"query": "test10"})
	assert.Equal(t, 10, log.Len())
	assert.Equal(t, "test1", log.All()[0].(map[string]any)["query"])
	assert.Equal(t, "test10", log.All()[9].(map[string]any)["query"])
}

func TestLog_AcceptsNilRecords(t *testing.T) {
	log := NewLog(2)

	log.Add(nil)

	require.Equal(t, 1, log.Len())
	assert.Nil(t, log.All()[0])
}

func TestLog_EmptyLog(t *testing.T) {
	log := NewLog(3)

	assert.Equal(t, 0, log.Len())
	assert.Empty(t, log.All())
	assert.Equal(t, 3, log.Capacity())
}

func TestLog_CoercesNonPositiveCapacity(t *testing.T) {
	log := NewLog(0)

	log.Add("a")
	log.Add("b")

	require.Equal(t, 1, log.Len())
	assert.Equal(t, "b", log.All()[0])
}

func TestLog_AllReturnsCopy(t *testing.T) {
	log := NewLog(3)
	log.Add("a")

	records := log.All()
	records[0] = "mutated"

	assert.Equal(t, "a", log.All()[0])
}

func TestNewRecord(t *testing.T) {
	record := NewRecord("What is 2+2?", map[string]any{"response": "4"})

	assert.NotEmpty(t, record["id"])
	assert.NotEmpty(t, record["timestamp"])
	assert.Equal(t, "What is 2+2?", record["query"])
	assert.Equal(t, map[string]any{"response": "4"}, record["result"])

	other := NewRecord("again", nil)
	assert.NotEqual(t, record["id"], other["id"])
}
