package extjs_test

import (
	"strings"
	"testing"

	pkgmodel "github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/render"
	"github.com/goliatone/go-modelgen/pkg/renderers/extjs"
	"github.com/goliatone/go-modelgen/pkg/testsupport"
)

func beanModel(t *testing.T) pkgmodel.ModelDescriptor {
	t.Helper()
	desc, err := pkgmodel.NewBuilder().Build(testsupport.BeanClass())
	if err != nil {
		t.Fatalf("build bean: %v", err)
	}
	return desc
}

func orderModel(t *testing.T) pkgmodel.ModelDescriptor {
	t.Helper()
	order, _, _ := testsupport.AssociatedClasses()
	desc, err := pkgmodel.NewBuilder().Build(order)
	if err != nil {
		t.Fatalf("build order: %v", err)
	}
	return desc
}

func TestRenderer_RenderContract(t *testing.T) {
	renderer := extjs.New()

	if got := renderer.Dialect(); got != render.DialectA {
		t.Fatalf("unexpected dialect: %s", got)
	}
	if got := renderer.ContentType(); got != "application/javascript; charset=utf-8" {
		t.Fatalf("unexpected content type: %s", got)
	}

	cases := []struct {
		name   string
		model  pkgmodel.ModelDescriptor
		minify bool
		golden string
	}{
		{name: "bean", model: beanModel(t), golden: "bean.extjs4.golden.js"},
		{name: "bean minified", model: beanModel(t), minify: true, golden: "bean.extjs4.min.golden.js"},
		{name: "order", model: orderModel(t), golden: "order.extjs4.golden.js"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			output, err := renderer.Render(testsupport.Context(), tc.model, render.RenderOptions{Minify: tc.minify})
			if err != nil {
				t.Fatalf("render: %v", err)
			}

			goldenPath := testsupport.GoldenPath(tc.golden)
			if testsupport.WriteMaybeGolden(t, goldenPath, output) {
				return
			}

			want := testsupport.MustReadGolden(t, goldenPath)
			if diff := testsupport.CompareGolden(string(want), string(output)); diff != "" {
				t.Fatalf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderer_MinifiedIsEquivalent(t *testing.T) {
	renderer := extjs.New()
	for _, desc := range []pkgmodel.ModelDescriptor{beanModel(t), orderModel(t)} {
		pretty, err := renderer.Render(testsupport.Context(), desc, render.RenderOptions{})
		if err != nil {
			t.Fatalf("render pretty: %v", err)
		}
		minified, err := renderer.Render(testsupport.Context(), desc, render.RenderOptions{Minify: true})
		if err != nil {
			t.Fatalf("render minified: %v", err)
		}

		if strings.ContainsAny(string(minified), "\n\t") {
			t.Fatalf("minified output contains line breaks or tabs")
		}
		ok, err := render.Equivalent(pretty, minified)
		if err != nil {
			t.Fatalf("Equivalent: %v", err)
		}
		if !ok {
			t.Fatalf("minified output of %s is not equivalent to pretty output", desc.Name)
		}
	}
}

func TestRenderer_Deterministic(t *testing.T) {
	renderer := extjs.New()
	desc := orderModel(t)

	first, err := renderer.Render(testsupport.Context(), desc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := renderer.Render(testsupport.Context(), desc.Clone(), render.RenderOptions{})
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if string(again) != string(first) {
			t.Fatalf("render %d differs from first render", i)
		}
	}
}

func TestRenderer_FieldOrderFollowsDescriptor(t *testing.T) {
	desc := pkgmodel.ModelDescriptor{
		Name: "App.Ordered",
		Fields: []pkgmodel.Field{
			{Name: "zeta", Type: pkgmodel.FieldTypeString},
			{Name: "alpha", Type: pkgmodel.FieldTypeInt},
			{Name: "mid", Type: pkgmodel.FieldTypeBoolean},
		},
	}

	output, err := extjs.New().Render(testsupport.Context(), desc, render.RenderOptions{Minify: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `Ext.define("App.Ordered",{extend:"Ext.data.Model",fields:[{name:"zeta",type:"string"},{name:"alpha",type:"int"},{name:"mid",type:"boolean"}]});`
	if diff := testsupport.CompareGolden(want, string(output)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_ProxyShapes(t *testing.T) {
	cases := []struct {
		name string
		desc pkgmodel.ModelDescriptor
		want string
	}{
		{
			name: "read only uses directFn and omits id",
			desc: pkgmodel.ModelDescriptor{Name: "A", IDProperty: "id", ReadMethod: "svc.read", Fields: []pkgmodel.Field{{Name: "id", Type: pkgmodel.FieldTypeInt}}},
			want: `Ext.define("A",{extend:"Ext.data.Model",fields:[{name:"id",type:"int"}],proxy:{type:"direct",directFn:svc.read}});`,
		},
		{
			name: "paged api",
			desc: pkgmodel.ModelDescriptor{Name: "B", IDProperty: "key", ReadMethod: "r", UpdateMethod: "u", Paging: true, Fields: []pkgmodel.Field{{Name: "key", Type: pkgmodel.FieldTypeAuto}}},
			want: `Ext.define("B",{extend:"Ext.data.Model",idProperty:"key",fields:[{name:"key",type:"auto"}],proxy:{type:"direct",api:{read:r,update:u},reader:{root:"records"}}});`,
		},
		{
			name: "empty model",
			desc: pkgmodel.ModelDescriptor{Name: "C"},
			want: `Ext.define("C",{extend:"Ext.data.Model",fields:[]});`,
		},
	}

	renderer := extjs.New(extjs.WithBaseClass(""))
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			output, err := renderer.Render(testsupport.Context(), tc.desc, render.RenderOptions{Minify: true})
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if diff := testsupport.CompareGolden(tc.want, string(output)); diff != "" {
				t.Fatalf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderer_WithBaseClass(t *testing.T) {
	output, err := extjs.New(extjs.WithBaseClass("App.model.Base")).
		Render(testsupport.Context(), pkgmodel.ModelDescriptor{Name: "D"}, render.RenderOptions{Minify: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(output), `extend:"App.model.Base"`) {
		t.Fatalf("base class not applied: %s", output)
	}
}

func TestRenderer_RejectsUnsupportedDefault(t *testing.T) {
	desc := pkgmodel.ModelDescriptor{
		Name:   "E",
		Fields: []pkgmodel.Field{{Name: "x", Type: pkgmodel.FieldTypeAuto, DefaultValue: struct{}{}}},
	}
	if _, err := extjs.New().Render(testsupport.Context(), desc, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error for unsupported default value")
	}
}
