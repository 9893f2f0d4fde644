package sse_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"idz2_bisect/internal/sse"
)

func recv(t *testing.T, ch chan string) (string, bool) {
	t.Helper()
	select {
	case msg, open := <-ch:
		return msg, open
	case <-time.After(time.Second):
		t.Fatal("не дождались сообщения")
		return "", false
	}
}

// TestPublishReachesSubscribers: сообщение доходит до всех подписчиков id
// и не доходит до подписчиков другого id.
func TestPublishReachesSubscribers(t *testing.T) {
	h := sse.NewHub()

	ch1, cancel1 := h.Subscribe("run-1")
	defer cancel1()
	ch2, cancel2 := h.Subscribe("run-1")
	defer cancel2()
	other, cancelOther := h.Subscribe("run-2")
	defer cancelOther()

	h.Publish("run-1", "hello")

	msg, open := recv(t, ch1)
	require.True(t, open)
	require.Equal(t, "hello", msg)

	msg, open = recv(t, ch2)
	require.True(t, open)
	require.Equal(t, "hello", msg)

	require.Empty(t, other)
}

// TestCancelUnsubscribes: после unsubscribe сообщения не приходят.
func TestCancelUnsubscribes(t *testing.T) {
	h := sse.NewHub()

	ch, cancel := h.Subscribe("run-1")
	cancel()

	h.Publish("run-1", "hello")
	require.Empty(t, ch)
}

// TestCloseEndsStream: Close закрывает каналы подписчиков — стрим завершается.
func TestCloseEndsStream(t *testing.T) {
	h := sse.NewHub()

	ch, cancel := h.Subscribe("run-1")
	defer cancel()

	h.Publish("run-1", "last")
	h.Close("run-1")

	msg, open := recv(t, ch)
	require.True(t, open)
	require.Equal(t, "last", msg)

	_, open = recv(t, ch)
	require.False(t, open)
}

// TestSubscribeAfterClose: подписка на завершённый прогон сразу закрыта.
func TestSubscribeAfterClose(t *testing.T) {
	h := sse.NewHub()

	h.Close("run-1")

	ch, cancel := h.Subscribe("run-1")
	defer cancel()

	_, open := recv(t, ch)
	require.False(t, open)
}

// TestPublishDropsWhenFull: переполненный канал не блокирует публикацию.
func TestPublishDropsWhenFull(t *testing.T) {
	h := sse.NewHub()

	ch, cancel := h.Subscribe("run-1")
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			h.Publish("run-1", "msg")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish заблокировался на забитом канале")
	}
	require.Len(t, ch, 16)
}
