package httpmodel_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-modelgen/pkg/classdesc"
	"github.com/goliatone/go-modelgen/pkg/httpmodel"
	"github.com/goliatone/go-modelgen/pkg/orchestrator"
	"github.com/goliatone/go-modelgen/pkg/render"
	"github.com/goliatone/go-modelgen/pkg/testsupport"
)

func newServer(t *testing.T, options ...httpmodel.Option) *httptest.Server {
	t.Helper()
	catalog := classdesc.NewCatalog()
	require.NoError(t, catalog.Add(testsupport.BeanClass()))
	order, customer, line := testsupport.AssociatedClasses()
	for _, class := range []*classdesc.Class{order, customer, line} {
		require.NoError(t, catalog.Add(class))
	}

	srv := httptest.NewServer(httpmodel.New(orchestrator.New(), catalog, options...))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHandler_ServesModels(t *testing.T) {
	srv := newServer(t)

	cases := []struct {
		path   string
		golden string
	}{
		{"/models/Sch.Bean.js", "bean.extjs4.golden.js"},
		{"/models/Sch.Bean.js?dialect=touch2&minify=true", "bean.touch2.min.golden.js"},
		{"/models/testsupport.Bean.js?minify=1", "bean.extjs4.min.golden.js"},
		{"/models/Shop.Order.js?dialect=touch", "order.touch2.golden.js"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			resp, body := get(t, srv.URL+tc.path)
			require.Equal(t, http.StatusOK, resp.StatusCode, body)
			assert.Equal(t, render.ContentType, resp.Header.Get("Content-Type"))
			assert.Equal(t, testsupport.MustReadGoldenString(t, testsupport.GoldenPath(tc.golden)), body)
		})
	}
}

func TestHandler_Errors(t *testing.T) {
	srv := newServer(t)

	cases := map[string]int{
		"/models/Missing.js":                  http.StatusNotFound,
		"/models/Sch.Bean":                    http.StatusNotFound,
		"/models/Sch.Bean.js?dialect=extjs3":  http.StatusBadRequest,
		"/models/Sch.Bean.js?minify=sometime": http.StatusBadRequest,
	}
	for path, want := range cases {
		t.Run(path, func(t *testing.T) {
			resp, _ := get(t, srv.URL+path)
			assert.Equal(t, want, resp.StatusCode)
		})
	}
}

func TestHandler_MetadataErrorIsUnprocessable(t *testing.T) {
	broken := classdesc.New("x.Broken", classdesc.ModelConfig{},
		classdesc.Property{Name: "id", Type: "int"},
		classdesc.Property{Name: "id", Type: "string"},
	)
	resolver := httpmodel.ResolverFunc(func(name string) (*classdesc.Class, bool) {
		return broken, name == "x.Broken"
	})
	srv := httptest.NewServer(httpmodel.New(orchestrator.New(), resolver))
	t.Cleanup(srv.Close)

	resp, _ := get(t, srv.URL+"/models/x.Broken.js")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestHandler_ListAndPrefix(t *testing.T) {
	srv := newServer(t, httpmodel.WithPrefix("/app/model/"))

	resp, body := get(t, srv.URL+"/app/model/")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Models []string `json:"models"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.Equal(t, []string{"shop.Customer", "shop.Line", "shop.Order", "testsupport.Bean"}, payload.Models)

	resp, _ = get(t, srv.URL+"/models/Sch.Bean.js")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
