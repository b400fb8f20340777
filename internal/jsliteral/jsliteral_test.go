package jsliteral

import (
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func sampleTree() *Call {
	fields := Array{
		NewObject().SetString("name", "id").SetString("type", "int"),
		NewObject().SetString("name", "born").SetString("type", "date").SetString("dateFormat", "c"),
	}
	proxy := NewObject().
		SetString("type", "direct").
		Set("api", NewObject().SetIdent("read", "userService.read").SetIdent("create", "userService.create"))
	body := NewObject().
		SetString("extend", "Ext.data.Model").
		Set("fields", fields).
		Set("validations", Array{
			NewObject().SetString("type", "format").SetString("field", "code").Set("matcher", RegexFromMatcher("^a/b$")),
			NewObject().SetString("type", "inclusion").SetString("field", "code").Set("list", Array{String("x"), String("y")}),
		}).
		Set("empty", Array{}).
		Set("nothing", NewObject()).
		Set("ratio", Float(2)).
		Set("limit", Int(-3)).
		Set("flag", Bool(false)).
		Set("proxy", proxy)
	return &Call{Callee: "Ext.define", Args: []Value{String("App.User"), body}}
}

func TestMarshalIndented(t *testing.T) {
	got := string(Marshal(sampleTree(), Indented))
	want := `Ext.define("App.User",
{
  extend : "Ext.data.Model",
  fields : [ {
    name : "id",
    type : "int"
  }, {
    name : "born",
    type : "date",
    dateFormat : "c"
  } ],
  validations : [ {
    type : "format",
    field : "code",
    matcher : /^a\/b$/
  }, {
    type : "inclusion",
    field : "code",
    list : [ "x", "y" ]
  } ],
  empty : [ ],
  nothing : { },
  ratio : 2.0,
  limit : -3,
  flag : false,
  proxy : {
    type : "direct",
    api : {
      read : userService.read,
      create : userService.create
    }
  }
});`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("indented output mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalCompact(t *testing.T) {
	got := string(Marshal(sampleTree(), Compact))
	want := `Ext.define("App.User",{extend:"Ext.data.Model",fields:[{name:"id",type:"int"},{name:"born",type:"date",dateFormat:"c"}],` +
		`validations:[{type:"format",field:"code",matcher:/^a\/b$/},{type:"inclusion",field:"code",list:["x","y"]}],` +
		`empty:[],nothing:{},ratio:2.0,limit:-3,flag:false,proxy:{type:"direct",api:{read:userService.read,create:userService.create}}});`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("compact output mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBothStylesToSameTree(t *testing.T) {
	tree := sampleTree()

	indented, err := Parse(Marshal(tree, Indented))
	if err != nil {
		t.Fatalf("parse indented: %v", err)
	}
	compact, err := Parse(Marshal(tree, Compact))
	if err != nil {
		t.Fatalf("parse compact: %v", err)
	}
	if diff := cmp.Diff(indented, compact); diff != "" {
		t.Fatalf("parsed trees differ (-indented +compact):\n%s", diff)
	}

	call, ok := indented.(*Call)
	if !ok || call.Callee != "Ext.define" || len(call.Args) != 2 {
		t.Fatalf("unexpected call: %#v", indented)
	}
	body := call.Args[1].(*Object)
	validations, _ := body.Get("validations")
	matcher, _ := validations.(Array)[0].(*Object).Get("matcher")
	if diff := cmp.Diff(Regex{Pattern: "^a/b$"}, matcher); diff != "" {
		t.Fatalf("regex mismatch (-want +got):\n%s", diff)
	}
	ratio, _ := body.Get("ratio")
	if ratio != Float(2) {
		t.Fatalf("float should read back as Float, got %#v", ratio)
	}
}

func TestQuotedStrings(t *testing.T) {
	input := String("a \"quoted\"\\ line\nnext\ttab \u2028 é")
	out := Marshal(input, Compact)
	if want := `"a \"quoted\"\\ line\nnext\ttab \u2028 é"`; string(out) != want {
		t.Fatalf("quoted = %s, want %s", out, want)
	}
	back, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if back != input {
		t.Fatalf("round trip = %q, want %q", back, input)
	}
}

func TestQuotedStrings_InvalidUTF8(t *testing.T) {
	out := Marshal(String("\xffx\xc3"), Compact)
	if !utf8.Valid(out) {
		t.Fatalf("output is not valid UTF-8: %q", out)
	}
	if want := `"\ufffdx\ufffd"`; string(out) != want {
		t.Fatalf("quoted = %s, want %s", out, want)
	}
}

func TestRegexLiteralsStayTerminated(t *testing.T) {
	cases := []struct {
		pattern string
		want    string
	}{
		{pattern: `abc\`, want: `/abc\\/`},
		{pattern: "a\rb", want: `/a\rb/`},
		{pattern: "a\u2028b\u2029c", want: `/a\u2028b\u2029c/`},
		{pattern: "a\\\nb", want: `/a\nb/`},
		{pattern: "a/b", want: `/a\/b/`},
	}
	for _, tc := range cases {
		out := Marshal(Regex{Pattern: tc.pattern}, Compact)
		if string(out) != tc.want {
			t.Errorf("Marshal(%q) = %s, want %s", tc.pattern, out, tc.want)
			continue
		}
		if _, err := Parse(out); err != nil {
			t.Errorf("Parse(%s): %v", out, err)
		}
	}

	if _, err := Parse([]byte("/a\rb/")); err == nil {
		t.Error("Parse accepted a raw carriage return inside a regex")
	}
}

func TestNonIdentifierKeysAreQuoted(t *testing.T) {
	obj := NewObject().Set("data-id", Int(1)).Set("ok", Null{})
	if got := string(Marshal(obj, Compact)); got != `{"data-id":1,ok:null}` {
		t.Fatalf("got %s", got)
	}
}

func TestRegexFromMatcher(t *testing.T) {
	cases := map[string]Regex{
		"^[a-z]+$": {Pattern: "^[a-z]+$"},
		"/abc/i":   {Pattern: "abc", Flags: "i"},
		"/abc/xyz": {Pattern: "/abc/xyz"},
		"/":        {Pattern: "/"},
	}
	for input, want := range cases {
		if diff := cmp.Diff(want, RegexFromMatcher(input)); diff != "" {
			t.Errorf("RegexFromMatcher(%q) mismatch (-want +got):\n%s", input, diff)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		``,
		`{a:1`,
		`{a 1}`,
		`[1,2`,
		`"open`,
		`/open`,
		`Ext.define("x",{});extra`,
		`@`,
	} {
		if _, err := Parse([]byte(input)); err == nil {
			t.Errorf("Parse(%q) expected error", input)
		} else if _, ok := err.(*SyntaxError); !ok {
			t.Errorf("Parse(%q) error type %T", input, err)
		}
	}
}

func TestSetSkipsEmptyValues(t *testing.T) {
	obj := NewObject().
		SetString("a", "").
		SetIdent("b", "").
		SetTrue("c", false).
		Set("d", nil).
		SetTrue("e", true)
	if diff := cmp.Diff([]string{"e"}, obj.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}
