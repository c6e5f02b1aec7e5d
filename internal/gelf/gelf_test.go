package gelf

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHookSendsGELF(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	hook, err := New(pc.LocalAddr().String(), "mayelewoo-front")
	require.NoError(t, err)
	defer hook.Close()

	log := logrus.New()
	log.SetOutput(io.Discard)
	log.AddHook(hook)
	log.WithError(errors.New("boom")).WithField("id", "abc").Warn("backend did not answer")

	buf := make([]byte, 8192)
	require.NoError(t, pc.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, _, err := pc.ReadFrom(buf)
	require.NoError(t, err)

	var msg map[string]any
	require.NoError(t, json.Unmarshal(buf[:n], &msg))
	assert.Equal(t, "1.1", msg["version"])
	assert.Equal(t, "backend did not answer", msg["short_message"])
	assert.EqualValues(t, 4, msg["level"])
	assert.Equal(t, "mayelewoo-front", msg["_service"])
	assert.Equal(t, "boom", msg["_error"])
	assert.Equal(t, "abc", msg["_field_id"])
}

func TestSyslogLevels(t *testing.T) {
	assert.Equal(t, 3, syslogLevel(logrus.ErrorLevel))
	assert.Equal(t, 6, syslogLevel(logrus.InfoLevel))
	assert.Equal(t, 7, syslogLevel(logrus.DebugLevel))
}
