package layout

import "testing"

func TestClassify(t *testing.T) {
	b := DefaultBreakpoints()
	tests := []struct {
		width int
		want  Class
	}{
		{0, Mobile},
		{79, Mobile},
		{80, Tablet},
		{119, Tablet},
		{120, Desktop},
		{159, Desktop},
		{160, LargeDesktop},
		{400, LargeDesktop},
	}
	for _, tt := range tests {
		if got := b.Classify(tt.width); got != tt.want {
			t.Errorf("Classify(%d) = %s, want %s", tt.width, got, tt.want)
		}
	}
}

func TestGateNotifiesOnlyOnCrossing(t *testing.T) {
	g := NewGate(DefaultBreakpoints(), 100)
	if g.IsDesktop() {
		t.Fatal("100 columns classified as desktop")
	}

	var got []bool
	unsubscribe := g.Subscribe(func(desktop bool) { got = append(got, desktop) })

	for _, w := range []int{90, 110, 119} {
		if g.Resize(w) {
			t.Errorf("Resize(%d) reported a crossing", w)
		}
	}
	g.Resize(120)
	g.Resize(200) // desktop to large desktop is not a crossing
	g.Resize(60)

	if len(got) != 2 || !got[0] || got[1] {
		t.Fatalf("notifications = %v, want [true false]", got)
	}
	if g.Width() != 60 || g.Class() != Mobile {
		t.Errorf("width=%d class=%s", g.Width(), g.Class())
	}

	unsubscribe()
	g.Resize(150)
	if len(got) != 2 {
		t.Error("unsubscribed func still notified")
	}
	if !g.IsDesktop() {
		t.Error("gate did not follow the resize")
	}
}

func TestTabletIsNotDesktop(t *testing.T) {
	g := NewGate(DefaultBreakpoints(), 100)
	if g.Class() != Tablet || g.IsDesktop() {
		t.Errorf("class=%s desktop=%v", g.Class(), g.IsDesktop())
	}
}
