package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/katalvlaran/pathgrid/config"
	"github.com/katalvlaran/pathgrid/pathfinder"
	"github.com/katalvlaran/pathgrid/playfield"
	"github.com/katalvlaran/pathgrid/wire"
)

const corridorJSON = `{"width":7,"height":5,"map":[
	1.0,1.0,1.0,1.0,1.0,1.0,1.0,
	1.0,0.1,0.7,0.1,0.1,0.1,1.0,
	1.0,0.1,0.1,0.1,0.1,0.1,1.0,
	1.0,0.1,0.1,0.1,0.1,0.1,1.0,
	1.0,1.0,1.0,1.0,1.0,1.0,1.0],
	"start":[1,1],"destination":[4,1]}`

var corridorPath = []playfield.Point{
	{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}, {X: 3, Y: 1}, {X: 4, Y: 1},
}

func testConfig() config.Config {
	return config.Config{
		Port:              8080,
		MaxWidth:          16,
		MaxHeight:         16,
		LogLevel:          "debug",
		Relaxation:        "overwrite",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
	}
}

// ServerSuite drives the routed handler through an httptest server.
type ServerSuite struct {
	suite.Suite
	srv  *Server
	hook *logtest.Hook
	ts   *httptest.Server
}

func (s *ServerSuite) SetupTest() {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	srv, err := New(testConfig(), logger)
	s.Require().NoError(err)
	s.srv, s.hook = srv, hook
	s.ts = httptest.NewServer(srv.Handler())
}

func (s *ServerSuite) TearDownTest() {
	s.ts.Close()
}

func (s *ServerSuite) post(body string) (int, wire.Response) {
	res, err := http.Post(s.ts.URL+URIPath, "application/json", strings.NewReader(body))
	s.Require().NoError(err)
	defer res.Body.Close()
	s.Require().Equal("application/json", res.Header.Get("Content-Type"))
	var resp wire.Response
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&resp))
	return res.StatusCode, resp
}

func (s *ServerSuite) dial() *websocket.Conn {
	url := "ws" + strings.TrimPrefix(s.ts.URL, "http") + URIWS
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	return conn
}

func (s *ServerSuite) TestPathOK() {
	status, resp := s.post(corridorJSON)
	s.Equal(http.StatusOK, status)
	s.Equal(wire.StatusOK, resp.Status)
	s.Equal(corridorPath, resp.Path.Steps)
}

func (s *ServerSuite) TestPathMapError() {
	status, resp := s.post(`{"width":3,"height":3,"map":[1,1,1,1,1,1,1,1,1],"start":[2,2],"destination":[2,2]}`)
	s.Equal(http.StatusOK, status)
	s.Equal("[ERROR] StartEqEnd", resp.Comment)

	status, resp = s.post(`{"width":17,"height":1,"map":[],"start":[0,0],"destination":[1,0]}`)
	s.Equal(http.StatusOK, status)
	s.Equal("[ERROR] TooBig", resp.Comment)
}

func (s *ServerSuite) TestPathBadRequest() {
	for _, body := range []string{`{"width":`, `[]`, `{"unknown":1}`} {
		status, resp := s.post(body)
		s.Equal(http.StatusBadRequest, status, body)
		s.Equal("[ERROR] BadRequest", resp.Comment, body)
		s.Empty(resp.Path.Steps)
	}
}

func (s *ServerSuite) TestPathPanicRecovered() {
	s.srv.compute = func(wire.Request, ...pathfinder.Option) wire.Response {
		panic(pathfinder.ErrUnreachable.Error())
	}
	status, resp := s.post(corridorJSON)
	s.Equal(http.StatusInternalServerError, status)
	s.Equal("[ERROR] Internal", resp.Comment)

	var found bool
	for _, e := range s.hook.AllEntries() {
		if e.Message == "query panicked" {
			found = true
			s.Equal(logrus.ErrorLevel, e.Level)
		}
	}
	s.True(found)
}

func (s *ServerSuite) TestHealthz() {
	res, err := http.Get(s.ts.URL + URIHealthz)
	s.Require().NoError(err)
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	s.Equal(http.StatusOK, res.StatusCode)
	s.Equal("OK", string(body))
}

func (s *ServerSuite) TestWrongMethod() {
	res, err := http.Get(s.ts.URL + URIPath)
	s.Require().NoError(err)
	res.Body.Close()
	s.Equal(http.StatusNotFound, res.StatusCode)
}

func (s *ServerSuite) TestWebsocketSession() {
	conn := s.dial()
	defer conn.Close()

	var resp wire.Response
	s.Require().NoError(conn.WriteMessage(websocket.TextMessage, []byte(corridorJSON)))
	s.Require().NoError(conn.ReadJSON(&resp))
	s.Equal(corridorPath, resp.Path.Steps)

	s.Require().NoError(conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"width":3,"height":3,"map":[1,1,1,1],"start":[0,0],"destination":[2,2]}`)))
	s.Require().NoError(conn.ReadJSON(&resp))
	s.Equal("[ERROR] SizeMismatch", resp.Comment)

	s.Require().NoError(conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	s.Require().NoError(conn.ReadJSON(&resp))
	s.Equal("[ERROR] BadRequest", resp.Comment)

	s.Require().NoError(conn.WriteMessage(websocket.BinaryMessage, []byte(corridorJSON)))
	s.Require().NoError(conn.ReadJSON(&resp))
	s.Equal("[ERROR] BadRequest", resp.Comment)

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	s.Require().NoError(conn.WriteMessage(websocket.CloseMessage, msg))
}

func (s *ServerSuite) TestWebsocketPanicRecovered() {
	s.srv.compute = func(wire.Request, ...pathfinder.Option) wire.Response {
		panic("boom")
	}
	conn := s.dial()
	defer conn.Close()

	var resp wire.Response
	s.Require().NoError(conn.WriteMessage(websocket.TextMessage, []byte(corridorJSON)))
	s.Require().NoError(conn.ReadJSON(&resp))
	s.Equal("[ERROR] Internal", resp.Comment)
}

func (s *ServerSuite) TestMetrics() {
	s.post(corridorJSON)
	s.post(corridorJSON)
	s.post(`{"width":3,"height":3,"map":[1],"start":[0,0],"destination":[1,1]}`)
	s.post(`{`)

	m := s.srv.metrics
	s.Equal(2.0, testutil.ToFloat64(m.queryTotal.WithLabelValues(transportHTTP, "ok")))
	s.Equal(1.0, testutil.ToFloat64(m.queryTotal.WithLabelValues(transportHTTP, "SizeMismatch")))
	s.Equal(1.0, testutil.ToFloat64(m.queryTotal.WithLabelValues(transportHTTP, "BadRequest")))

	conn := s.dial()
	s.Require().NoError(conn.WriteMessage(websocket.TextMessage, []byte(corridorJSON)))
	var resp wire.Response
	s.Require().NoError(conn.ReadJSON(&resp))
	s.Equal(1.0, testutil.ToFloat64(m.wsSessions))
	s.Equal(1.0, testutil.ToFloat64(m.queryTotal.WithLabelValues(transportWS, "ok")))
	conn.Close()

	res, err := http.Get(s.ts.URL + URIMetrics)
	s.Require().NoError(err)
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	s.Equal(http.StatusOK, res.StatusCode)
	s.Contains(string(body), `pathgrid_query_total{result="ok",transport="http"} 2`)
	s.Contains(string(body), "pathgrid_path_steps_count 3")
}

func (s *ServerSuite) TestTracing() {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = tp.Shutdown(context.Background()) }()
	s.srv.tracer = tp.Tracer("test")

	s.post(corridorJSON)
	s.post(`{"width":3,"height":3,"map":[1,1,1,1,1,1,1,1,1],"start":[5,5],"destination":[1,1]}`)
	s.post(`not json`)

	spans := recorder.Ended()
	s.Require().Len(spans, 3)
	for _, span := range spans {
		s.Equal("pathgrid.Query", span.Name())
	}
	s.Equal(codes.Ok, spans[0].Status().Code)
	s.Equal(codes.Error, spans[1].Status().Code)
	s.Equal("[ERROR] StartOutOfBounds", spans[1].Status().Description)
	s.Equal(codes.Error, spans[2].Status().Code)
	s.Len(spans[2].Events(), 1) // recorded decode error
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func TestRecoverer(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	srv, err := New(testConfig(), logger)
	require.NoError(t, err)

	h := srv.recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"status":"error","comment":"[ERROR] Internal","path":{"steps":[]}}`, rec.Body.String())
	require.Equal(t, "handler panicked", hook.LastEntry().Message)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.MaxWidth = 0
	_, err := New(cfg, nil)
	require.ErrorIs(t, err, config.ErrBadLimits)

	cfg = testConfig()
	cfg.Relaxation = "greedy"
	require.Error(t, Run(context.Background(), cfg))
}

func TestServeShutdown(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	srv, err := New(testConfig(), logger)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ctx, ln) }()

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+URIWS, nil)
	require.NoError(t, err)
	defer conn.Close()

	cancel()
	select {
	case err := <-served:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = conn.ReadMessage()
	require.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}
