package hostchan_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath-labs/pbtgroup/hostchan"
)

// fakeHost plays the host side of the wire in memory: it echoes one
// canned reply per call, recording what it was asked.
type fakeHost struct {
	replies [][]byte
	sent    [][]byte
}

func (h *fakeHost) conn() (*hostchan.Conn, *bytes.Buffer) {
	var toEngine bytes.Buffer
	for _, r := range h.replies {
		toEngine.Write(r)
		toEngine.WriteByte('\n')
	}
	fromEngine := &bytes.Buffer{}
	return hostchan.New(&toEngine, fromEngine), fromEngine
}

func TestConn_Check_SendsOneIndexedImages(t *testing.T) {
	h := &fakeHost{replies: [][]byte{[]byte("true")}}
	c, sent := h.conn()

	ok, err := c.Check("gap-1", []int{1, 0, 2})
	require.NoError(t, err)
	assert.True(t, ok)

	var req []any
	require.NoError(t, json.Unmarshal(bytes.TrimRight(sent.Bytes(), "\n"), &req))
	assert.Equal(t, []any{"refiner", "gap-1", "check", []any{2.0, 1.0, 3.0}}, req)
}

func TestConn_Image_ReturnsHostRef(t *testing.T) {
	h := &fakeHost{replies: [][]byte{[]byte(`"ref-42"`)}}
	c, _ := h.conn()

	ref, err := c.Image("gap-1", 0, []int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, "ref-42", ref)
}

func TestConn_End_RequiresGoodbye(t *testing.T) {
	h := &fakeHost{replies: [][]byte{[]byte(`"goodbye"`)}}
	c, sent := h.conn()

	require.NoError(t, c.End(hostchan.EndReport{Sols: [][]int{}}))

	scanner := bufio.NewScanner(sent)
	require.True(t, scanner.Scan())
	var frame []json.RawMessage
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &frame))
	require.Len(t, frame, 2)
	var tag string
	require.NoError(t, json.Unmarshal(frame[0], &tag))
	assert.Equal(t, "end", tag)
}

func TestConn_End_RejectsWrongAck(t *testing.T) {
	h := &fakeHost{replies: [][]byte{[]byte(`"nope"`)}}
	c, _ := h.conn()

	err := c.End(hostchan.EndReport{})
	require.Error(t, err)
	assert.ErrorIs(t, err, hostchan.ErrBadAck)
}

func TestHostRef_Release_NoopOnZeroValue(t *testing.T) {
	var ref hostchan.HostRef
	assert.NotPanics(t, func() { ref.Release() })
}
