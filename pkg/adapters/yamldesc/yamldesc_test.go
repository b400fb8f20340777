package yamldesc_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelgen/pkg/adapters/yamldesc"
	"github.com/goliatone/go-modelgen/pkg/classdesc"
	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/render"
	"github.com/goliatone/go-modelgen/pkg/renderers/extjs"
	"github.com/goliatone/go-modelgen/pkg/testsupport"
)

func TestAdapter_ShopDocumentMatchesGolden(t *testing.T) {
	doc := testsupport.LoadDocument(t, filepath.Join("testdata", "shop.yaml"))

	adapter := yamldesc.New()
	if !adapter.Detect(doc.Source(), doc.Raw()) {
		t.Fatalf("adapter should detect shop.yaml")
	}
	catalog, err := adapter.Classes(context.Background(), doc)
	if err != nil {
		t.Fatalf("classes: %v", err)
	}
	if diff := cmp.Diff([]string{"shop.Customer", "shop.Line", "shop.Order"}, catalog.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	order, ok := catalog.Class("Shop.Order")
	if !ok {
		t.Fatalf("order class missing")
	}
	desc, err := model.NewBuilder().Build(order)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	output, err := extjs.New().Render(testsupport.Context(), desc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := testsupport.MustReadGoldenString(t, testsupport.GoldenPath("order.extjs4.golden.js"))
	if diff := testsupport.CompareGolden(want, string(output)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecodeKeepsModels(t *testing.T) {
	order, customer, line := testsupport.AssociatedClasses()
	bean := testsupport.BeanClass()

	raw, err := yamldesc.Encode(bean, customer, line, order)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	catalog, err := yamldesc.Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v\n%s", err, raw)
	}

	builder := model.NewBuilder()
	for _, original := range []*classdesc.Class{bean, order} {
		decoded, ok := catalog.Class(original.Name)
		if !ok {
			t.Fatalf("class %s missing after round trip", original.Name)
		}
		if decoded.ID() == original.ID() {
			t.Fatalf("decoded class should carry a new identity")
		}

		want, err := builder.Build(original)
		if err != nil {
			t.Fatalf("build original: %v", err)
		}
		got, err := builder.Build(decoded)
		if err != nil {
			t.Fatalf("build decoded: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", original.Name, diff)
		}
	}
}

func TestDecode_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown key":     "classes:\n  - name: a.B\n    propertys: []\n",
		"missing name":    "classes:\n  - model: {value: A}\n",
		"duplicate class": "classes:\n  - name: a.B\n  - name: a.B\n",
		"not yaml":        "classes: [",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := yamldesc.Decode([]byte(raw)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestAdapter_Detect(t *testing.T) {
	adapter := yamldesc.New()
	cases := []struct {
		name string
		src  classdesc.Source
		raw  string
		want bool
	}{
		{name: "classes key", src: classdesc.SourceFromFS("models.txt"), raw: "classes:\n  - name: a\n", want: true},
		{name: "json classes", src: classdesc.SourceFromFS("models.json"), raw: `{"classes":[{"name":"a"}]}`, want: true},
		{name: "yaml extension", src: classdesc.SourceFromFile("m.yml"), raw: "other: 1\n", want: true},
		{name: "openapi yaml", src: classdesc.SourceFromFile("api.yaml"), raw: "openapi: 3.0.0\n", want: false},
		{name: "json without classes", src: classdesc.SourceFromFS("x.json"), raw: `{"openapi":"3.0.0"}`, want: false},
	}
	for _, tc := range cases {
		if got := adapter.Detect(tc.src, []byte(tc.raw)); got != tc.want {
			t.Errorf("%s: Detect = %v, want %v", tc.name, got, tc.want)
		}
	}
}
