package js

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"

	"autosize/pkg/page"
	"autosize/pkg/text"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newEngine(t *testing.T, src string, tweaks ...func(*page.Options)) (*Engine, *page.Page) {
	t.Helper()
	opts := page.DefaultOptions()
	opts.Measurer = text.FixedMeasurer{Advance: 0.5}
	for _, tweak := range tweaks {
		tweak(&opts)
	}
	p, err := page.Load(src, opts)
	require.NoError(t, err)
	return New(p, nil), p
}

// run executes a script that throws on failure.
func run(t *testing.T, e *Engine, script string) {
	t.Helper()
	_, err := e.Run(script)
	require.NoError(t, err)
}

func TestDocumentLookup(t *testing.T) {
	e, _ := newEngine(t, `<form><textarea id="a" class="note"></textarea><textarea id="b"></textarea></form>`)
	run(t, e, `
		var a = document.getElementById("a");
		if (a === null) throw new Error("element not found");
		if (a !== document.getElementById("a")) throw new Error("proxies are not cached");
		if (a.tagName !== "TEXTAREA") throw new Error("wrong tagName: " + a.tagName);
		if (document.getElementById("missing") !== null) throw new Error("expected null");
		if (document.getElementsByTagName("textarea").length !== 2) throw new Error("expected 2 textareas");
		var notes = document.querySelectorAll("form textarea.note");
		if (notes.length !== 1 || notes[0] !== a) throw new Error("querySelectorAll mismatch");
		if (document.querySelector("#b").id !== "b") throw new Error("querySelector mismatch");
		if (a.parentElement.tagName !== "FORM") throw new Error("wrong parent");
	`)
}

func TestStyleProxy(t *testing.T) {
	e, p := newEngine(t, `<textarea id="t" style="color: red"></textarea>`)
	run(t, e, `
		var ta = document.getElementById("t");
		ta.style.overflowY = "hidden";
		ta.style.wordWrap = "break-word";
		if (ta.style.color !== "red") throw new Error("color: " + ta.style.color);
		ta.style.color = "";
	`)
	ta, err := p.ElementByID("t")
	require.NoError(t, err)
	assert.Equal(t, "overflow-y: hidden; word-wrap: break-word", ta.InlineStyle().CSSText())
}

func TestGetComputedStyle(t *testing.T) {
	e, _ := newEngine(t, `<textarea id="t" rows="3"></textarea>`)
	run(t, e, `
		var cs = window.getComputedStyle(document.getElementById("t"));
		if (cs.boxSizing !== "content-box") throw new Error("boxSizing: " + cs.boxSizing);
		if (cs.paddingTop !== "2px") throw new Error("paddingTop: " + cs.paddingTop);
		if (cs.height !== "45px") throw new Error("height: " + cs.height);
		if (getComputedStyle(document.getElementById("t")).resize !== "both") throw new Error("resize");
		var threw = false;
		try { cs.height = "1px"; } catch (e) { threw = true; }
		if (!threw) throw new Error("computed style must be read-only");
	`)
}

func TestAutosizeFromScript(t *testing.T) {
	e, p := newEngine(t, "<textarea id=\"t\">one\ntwo</textarea>")
	run(t, e, `
		var ta = document.getElementById("t");
		if (autosize(ta) !== ta) throw new Error("autosize must return its argument");
		if (ta.style.height !== "30px") throw new Error("height: " + ta.style.height);
		if (ta.style.overflowY !== "hidden") throw new Error("overflowY: " + ta.style.overflowY);
	`)
	ta, _ := p.ElementByID("t")
	assert.True(t, e.Autosizer().Tracked(ta))
}

func TestAutosizeCollections(t *testing.T) {
	e, p := newEngine(t, `<textarea id="a"></textarea><textarea id="b"></textarea><div id="d"></div>`)
	run(t, e, `
		var list = document.querySelectorAll("textarea, div");
		if (autosize(list) !== list) throw new Error("autosize must return its argument");
		var arrayLike = { length: 1, 0: document.getElementById("a") };
		if (autosize.update(arrayLike) !== arrayLike) throw new Error("update must return its argument");
		if (autosize(null) !== null) throw new Error("null passes through");
	`)
	assert.Equal(t, 2, e.Autosizer().Len())

	run(t, e, `autosize.destroy(document.getElementsByTagName("textarea"));`)
	assert.Equal(t, 0, e.Autosizer().Len())
	a, _ := p.ElementByID("a")
	assert.Equal(t, "", a.InlineStyle().CSSText())
}

func TestResizedEvents(t *testing.T) {
	e, _ := newEngine(t, `<body><textarea id="t">x</textarea></body>`)
	run(t, e, `
		var ta = document.getElementById("t");
		var onElement = 0, onWindow = 0;
		ta.addEventListener("autosize:resized", function (ev) {
			if (ev.target !== ta) throw new Error("wrong target");
			onElement++;
		});
		window.addEventListener("autosize:resized", function () { onWindow++; });
		autosize(ta);
		ta.value = "a\nb\nc\nd";
		ta.dispatchEvent(new Event("input"));
		if (ta.style.height !== "60px") throw new Error("height: " + ta.style.height);
		ta.dispatchEvent(new Event("input"));
		if (onElement !== 2) throw new Error("element saw " + onElement);
		if (onWindow !== 2) throw new Error("window saw " + onWindow);
	`)
}

func TestUpdateAndDestroyEvents(t *testing.T) {
	e, p := newEngine(t, `<textarea id="t" style="resize: vertical">x</textarea>`)
	run(t, e, `
		var ta = document.getElementById("t");
		autosize(ta);
		if (ta.style.resize !== "none") throw new Error("resize: " + ta.style.resize);
		ta.value = "1\n2\n3";
		ta.dispatchEvent(new Event("autosize:update"));
		if (ta.style.height !== "45px") throw new Error("height: " + ta.style.height);
		ta.dispatchEvent(new Event("autosize:destroy"));
		if (ta.style.height !== "") throw new Error("height not restored");
		if (ta.style.resize !== "vertical") throw new Error("resize not restored");
	`)
	ta, _ := p.ElementByID("t")
	assert.False(t, e.Autosizer().Tracked(ta))
}

func TestRemoveEventListener(t *testing.T) {
	e, _ := newEngine(t, `<textarea id="t"></textarea>`)
	run(t, e, `
		var ta = document.getElementById("t");
		var calls = 0;
		function onInput() { calls++; }
		ta.addEventListener("input", onInput);
		ta.addEventListener("input", onInput);
		ta.dispatchEvent(new Event("input"));
		ta.removeEventListener("input", onInput);
		ta.dispatchEvent(new Event("input"));
		if (calls !== 1) throw new Error("calls: " + calls);
	`)
}

func TestWithoutComputedStyle(t *testing.T) {
	e, _ := newEngine(t, `<textarea id="t">x</textarea>`, func(o *page.Options) {
		o.NoComputedStyle = true
	})
	run(t, e, `
		if (typeof window.getComputedStyle !== "undefined") throw new Error("getComputedStyle present");
		var ta = document.getElementById("t");
		if (autosize(ta) !== ta) throw new Error("identity expected");
		if (ta.style.height !== "") throw new Error("element was modified");
	`)
}

func TestExecuteRunsPageScripts(t *testing.T) {
	e, p := newEngine(t, `<textarea id="t">x</textarea><script>autosize(document.querySelectorAll("textarea"));</script>`)
	require.NoError(t, e.Execute())
	ta, _ := p.ElementByID("t")
	assert.True(t, e.Autosizer().Tracked(ta))

	bad, _ := newEngine(t, `<script>throw new Error("boom")</script>`)
	err := bad.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "script 0")
}

func TestConsoleAndListenerErrorsGoToLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	opts := page.DefaultOptions()
	opts.Measurer = text.FixedMeasurer{Advance: 0.5}
	p, err := page.Load(`<textarea id="t"></textarea>`, opts)
	require.NoError(t, err)
	e := New(p, zap.New(core))

	run(t, e, `
		console.log("hello", {a: 1});
		console.error("bad");
		var ta = document.getElementById("t");
		ta.addEventListener("input", function () { throw new Error("listener"); });
		ta.dispatchEvent(new Event("input"));
	`)

	entries := logs.FilterLoggerName("console").All()
	require.Len(t, entries, 2)
	assert.Equal(t, `hello {"a":1}`, entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, 1, logs.FilterMessage("uncaught exception in event listener").Len())
}

func TestCamelToKebab(t *testing.T) {
	tests := map[string]string{
		"height":    "height",
		"overflowY": "overflow-y",
		"wordWrap":  "word-wrap",
		"boxSizing": "box-sizing",
		"cssFloat":  "float",
	}
	for in, want := range tests {
		assert.Equal(t, want, camelToKebab(in), in)
	}
}
