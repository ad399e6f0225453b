package pulse

import "testing"

func TestIsNested(t *testing.T) {
	doc, err := TestDocument(`
		<div pulse="outer" id="outer">
			<p id="own"><span id="deep"></span></p>
			<div pulse="inner" id="inner">
				<span id="captured"><b id="captured-deep"></b></span>
			</div>
			<div data-flag id="plain"><i id="plain-child"></i></div>
		</div>`)
	if err != nil {
		t.Fatalf("TestDocument failed: %v", err)
	}
	outer := byID(t, doc, "outer")

	tests := []struct {
		id     string
		expect bool
	}{
		{"own", false},
		{"deep", false},
		{"inner", false}, // the nested container itself is still visible
		{"captured", true},
		{"captured-deep", true},
		{"plain", false},
		{"plain-child", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := IsNested(byID(t, doc, tt.id), outer, "pulse"); got != tt.expect {
				t.Errorf("IsNested(%s) = %v, want %v", tt.id, got, tt.expect)
			}
		})
	}
}

func TestIsNestedContainerAndMarker(t *testing.T) {
	doc, err := TestDocument(`<div x-cmp="a" id="a"><div x-cmp="b"><span id="s"></span></div></div>`)
	if err != nil {
		t.Fatalf("TestDocument failed: %v", err)
	}
	a := byID(t, doc, "a")
	s := byID(t, doc, "s")

	if IsNested(a, a, "x-cmp") {
		t.Error("a container is never nested in itself")
	}
	if !IsNested(s, a, "x-cmp") {
		t.Error("custom marker should form a boundary")
	}
	if IsNested(s, a, "pulse") {
		t.Error("other attributes should not form a boundary")
	}
}

func TestScopedQuery(t *testing.T) {
	doc, err := TestDocument(`
		<div pulse="outer" id="outer">
			<input id="one">
			<div pulse="inner"><input id="two"></div>
			<input id="three">
		</div>`)
	if err != nil {
		t.Fatalf("TestDocument failed: %v", err)
	}

	nodes, err := doc.Scoped(byID(t, doc, "outer"), "input")
	if err != nil {
		t.Fatalf("Scoped failed: %v", err)
	}
	if len(nodes) != 2 || nodes[0] != byID(t, doc, "one") || nodes[1] != byID(t, doc, "three") {
		t.Errorf("Scoped returned %d nodes, want #one and #three in order", len(nodes))
	}

	if _, err := doc.Scoped(byID(t, doc, "outer"), "[[["); !IsInvalidSelector(err) {
		t.Errorf("expected ErrInvalidSelector, got %v", err)
	}
}
