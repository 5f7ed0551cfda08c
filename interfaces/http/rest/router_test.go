package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"neptune-lambda/application/services"
	"neptune-lambda/domain/person"
	"neptune-lambda/infrastructure/neptune"
	"neptune-lambda/pkg/observability"

	"github.com/aws/aws-lambda-go/events"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNeptune keeps created Person vertices in memory and answers MATCH with
// all of them
type fakeNeptune struct {
	mu        sync.Mutex
	vertices  []json.RawMessage
	hangReads bool
}

func (f *fakeNeptune) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != neptune.QueryPath || r.ParseForm() != nil {
		http.Error(w, `{"code":"BadRequestException"}`, http.StatusBadRequest)
		return
	}
	query := r.PostForm.Get("query")

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case strings.HasPrefix(query, "CREATE"):
		p := person.DefaultPerson()
		f.vertices = append(f.vertices, json.RawMessage(fmt.Sprintf(
			`{"n":{"~id":"v%d","~entityType":"node","~labels":["Person"],"~properties":{"first_name":%q,"last_name":%q,"age":%d}}}`,
			len(f.vertices)+1, p.FirstName, p.LastName, p.Age,
		)))
		_, _ = w.Write([]byte(`{"results":[]}`))
	case strings.HasPrefix(query, "MATCH"):
		if f.hangReads {
			f.mu.Unlock()
			<-r.Context().Done()
			f.mu.Lock()
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"results": f.vertices})
	default:
		http.Error(w, `{"code":"MalformedQueryException"}`, http.StatusBadRequest)
	}
}

func (f *fakeNeptune) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.vertices)
}

func newLambda(t *testing.T, target string, timeout time.Duration, metrics *observability.Metrics) *chiadapter.ChiLambda {
	t.Helper()

	u, err := url.Parse(target)
	require.NoError(t, err)
	host, portStr, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	client, err := neptune.NewClient(neptune.Options{
		Endpoint: host,
		Port:     port,
		Scheme:   "http",
		Timeout:  timeout,
		Metrics:  metrics,
	})
	require.NoError(t, err)

	svc := services.NewPersonService(client, nil, nil)
	router := NewRouter(svc, nil, RouterOptions{EnableCORS: true, Metrics: metrics}).Setup()
	return chiadapter.New(router)
}

func proxyRequest(method, path string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		HTTPMethod: method,
		Path:       path,
		Resource:   "/{proxy+}",
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID: "gw-request-1",
			Stage:     "prod",
		},
	}
}

func TestLambda_CreateAndFetch(t *testing.T) {
	store := &fakeNeptune{}
	srv := httptest.NewServer(store)
	defer srv.Close()

	adapter := newLambda(t, srv.URL, 0, nil)

	resp, err := adapter.ProxyWithContext(context.Background(), proxyRequest(http.MethodGet, "/"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var records []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &records))
	require.GreaterOrEqual(t, len(records), 1)

	vertices, err := person.DecodeVertices(records, "n")
	require.NoError(t, err)
	p, err := vertices[0].Person()
	require.NoError(t, err)
	assert.Equal(t, "Khan", p.LastName)
	assert.Equal(t, 25, p.Age)
}

func TestLambda_EveryPathRunsTheFlow(t *testing.T) {
	store := &fakeNeptune{}
	srv := httptest.NewServer(store)
	defer srv.Close()

	adapter := newLambda(t, srv.URL, 0, nil)

	for _, req := range []events.APIGatewayProxyRequest{
		proxyRequest(http.MethodGet, "/"),
		proxyRequest(http.MethodPost, "/people"),
		proxyRequest(http.MethodDelete, "/a/b/c"),
	} {
		resp, err := adapter.ProxyWithContext(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, req.Path)
	}

	// No dedup: one vertex per invocation.
	assert.Equal(t, 3, store.count())
}

func TestLambda_PreflightRunsTheFlow(t *testing.T) {
	store := &fakeNeptune{}
	srv := httptest.NewServer(store)
	defer srv.Close()

	adapter := newLambda(t, srv.URL, 0, nil)

	req := proxyRequest(http.MethodOptions, "/")
	req.Headers = map[string]string{
		"Origin":                        "https://app.example.com",
		"Access-Control-Request-Method": http.MethodPost,
	}
	req.MultiValueHeaders = map[string][]string{
		"Origin":                        {"https://app.example.com"},
		"Access-Control-Request-Method": {http.MethodPost},
	}

	resp, err := adapter.ProxyWithContext(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", headerValue(resp, "Access-Control-Allow-Origin"))
	assert.Equal(t, 1, store.count())
}

func TestLambda_EndpointUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	target := srv.URL
	srv.Close()

	adapter := newLambda(t, target, 0, nil)

	resp, err := adapter.ProxyWithContext(context.Background(), proxyRequest(http.MethodGet, "/"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "error occured", resp.Body)
}

func TestLambda_ReadTimesOut(t *testing.T) {
	store := &fakeNeptune{hangReads: true}
	srv := httptest.NewServer(store)
	defer srv.Close()

	adapter := newLambda(t, srv.URL, 100*time.Millisecond, nil)

	resp, err := adapter.ProxyWithContext(context.Background(), proxyRequest(http.MethodGet, "/"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "error occured", resp.Body)
	// The write went through before the read failed.
	assert.Equal(t, 1, store.count())
}

func TestRouter_ProbesAndMetrics(t *testing.T) {
	store := &fakeNeptune{}
	srv := httptest.NewServer(store)
	defer srv.Close()

	metrics := observability.NewMetrics("neptune_lambda")
	adapter := newLambda(t, srv.URL, 0, metrics)

	resp, err := adapter.ProxyWithContext(context.Background(), proxyRequest(http.MethodGet, "/health"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"healthy"}`, resp.Body)
	assert.Equal(t, 0, store.count())

	_, err = adapter.ProxyWithContext(context.Background(), proxyRequest(http.MethodGet, "/"))
	require.NoError(t, err)

	resp, err = adapter.ProxyWithContext(context.Background(), proxyRequest(http.MethodGet, "/metrics"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Body, `neptune_lambda_neptune_queries_total{operation="create",outcome="success"} 1`)
	assert.Contains(t, resp.Body, `neptune_lambda_neptune_queries_total{operation="match",outcome="success"} 1`)
}

func TestRouter_RequestIDFromGateway(t *testing.T) {
	router := NewRouter(nil, nil, RouterOptions{}).Setup()

	resp, err := chiadapter.New(router).ProxyWithContext(context.Background(), proxyRequest(http.MethodGet, "/health"))
	require.NoError(t, err)

	assert.Equal(t, "gw-request-1", headerValue(resp, "X-Request-ID"))
}

func headerValue(resp events.APIGatewayProxyResponse, key string) string {
	if v := http.Header(resp.MultiValueHeaders).Get(key); v != "" {
		return v
	}
	for k, v := range resp.Headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

func TestRouter_HTTPServer(t *testing.T) {
	store := &fakeNeptune{}
	neptuneSrv := httptest.NewServer(store)
	defer neptuneSrv.Close()

	u, _ := url.Parse(neptuneSrv.URL)
	host, portStr, _ := net.SplitHostPort(u.Host)
	port, _ := strconv.Atoi(portStr)
	client, err := neptune.NewClient(neptune.Options{Endpoint: host, Port: port, Scheme: "http"})
	require.NoError(t, err)

	api := httptest.NewServer(NewRouter(services.NewPersonService(client, nil, nil), nil, RouterOptions{}).Setup())
	defer api.Close()

	resp, err := http.Post(api.URL+"/anything", "text/plain", strings.NewReader("ignored body"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
