package page

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_SendAppliesHeaderFirst(t *testing.T) {
	buf := NewBuffer()
	_, err := buf.Write([]byte("JDIMessage\n"))
	require.NoError(t, err)
	buf.Header().Set("Content-Type", ContentType)
	_, err = buf.Write([]byte("hello!"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, buf.Send(rec))

	res := rec.Result()
	defer res.Body.Close()
	assert.Equal(t, 200, res.StatusCode)
	assert.Equal(t, "text/json", res.Header.Get("Content-Type"))
	assert.Equal(t, "JDIMessage\nhello!", rec.Body.String())
}

func TestBuffer_HeaderIsCopied(t *testing.T) {
	buf := NewBuffer()
	buf.Header().Add("X-Test", "a")

	rec := httptest.NewRecorder()
	require.NoError(t, buf.Send(rec))

	buf.Header().Add("X-Test", "b")
	assert.Equal(t, []string{"a"}, rec.Header().Values("X-Test"))
}

func TestBuffer_Empty(t *testing.T) {
	buf := NewBuffer()
	assert.Empty(t, buf.Body())
	assert.Empty(t, buf.Header())
}
