package orderControllers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/eco-pj/storefront-api/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wsClientCount() int {
	wsMu.Lock()
	defer wsMu.Unlock()
	return len(wsClients)
}

func TestBroadcastDeliversAndEvictsDeadConns(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/orders/ws", OrderWebSocketHandler)
	ts := httptest.NewServer(r)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/orders/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return wsClientCount() == 1 }, time.Second, 10*time.Millisecond)

	order := models.Order{ID: 1, Status: models.OrderStatusPending}
	broadcastOrderEvent("order_placed", order)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(msg), `"type":"order_placed"`)

	// Kill the transport without a close handshake. Broadcasting must evict
	// the dead connection instead of writing into the void forever.
	require.NoError(t, conn.UnderlyingConn().Close())
	require.Eventually(t, func() bool {
		broadcastOrderEvent("status_changed", order)
		return wsClientCount() == 0
	}, 2*time.Second, 20*time.Millisecond)
}
