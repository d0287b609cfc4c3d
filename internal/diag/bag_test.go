package diag

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

type codedErr struct{ code Code }

func (e codedErr) Error() string { return "coded" }
func (e codedErr) Code() Code    { return e.code }

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		ok := b.Add(Diagnostic{Severity: SevWarning, Message: fmt.Sprint(i)})
		if want := i < 2; ok != want {
			t.Fatalf("Add #%d = %v, want %v", i, ok, want)
		}
	}
	if b.Len() != 2 || b.HasErrors() {
		t.Fatalf("len=%d hasErrors=%v", b.Len(), b.HasErrors())
	}
	if NewBag(-1).Cap() != 0 || NewBag(1<<20).Cap() != math.MaxUint16 {
		t.Fatalf("limits not clamped")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(Diagnostic{Severity: SevWarning, Code: VarTypeError, Subject: "b", Message: "w"})
	b.Add(Diagnostic{Severity: SevError, Code: VarValueError, Subject: "b", Message: "e"})
	b.Add(Diagnostic{Severity: SevError, Code: ManMissingField, Subject: "a", Message: "m"})
	b.Add(Diagnostic{Severity: SevError, Code: VarValueError, Subject: "b", Message: "e"})

	b.Dedup()
	b.Sort()
	got := make([]string, 0, b.Len())
	for _, d := range b.Items() {
		got = append(got, d.String())
	}
	want := []string{
		"ERROR MAN2003 a: m",
		"ERROR VAR1001 b: e",
		"WARNING VAR1002 b: w",
	}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("items = %q, want %q", got, want)
	}
	if !b.HasErrors() {
		t.Fatalf("expected errors")
	}
}

func TestBagMergeGrows(t *testing.T) {
	a, b := NewBag(1), NewBag(2)
	a.Add(Diagnostic{Message: "a"})
	b.Add(Diagnostic{Message: "b1"})
	b.Add(Diagnostic{Message: "b2"})
	a.Merge(b)
	a.Merge(nil)
	if a.Len() != 3 || a.Cap() != 3 {
		t.Fatalf("len=%d cap=%d", a.Len(), a.Cap())
	}
}

func TestCodeOfAndFromError(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", codedErr{RenCacheError})
	if CodeOf(wrapped) != RenCacheError {
		t.Fatalf("CodeOf = %v", CodeOf(wrapped))
	}
	if CodeOf(errors.New("plain")) != UnknownCode {
		t.Fatalf("plain errors have no code")
	}

	b := NewBag(4)
	if b.AddError("x", nil) {
		t.Fatalf("nil error recorded")
	}
	b.AddError("x", wrapped)
	d := b.Items()[0]
	if d.Severity != SevError || d.Code != RenCacheError || d.Subject != "x" || d.Message != "context: coded" {
		t.Fatalf("diagnostic = %+v", d)
	}
}

func TestCodeIDs(t *testing.T) {
	tests := []struct {
		code Code
		id   string
	}{
		{UnknownCode, "E0000"},
		{MatchTypeError, "VAR1003"},
		{ManUnknownKind, "MAN2002"},
		{CfgUnknownKey, "CFG3002"},
		{RenCacheError, "REN4001"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("ID(%d) = %s, want %s", tt.code, got, tt.id)
		}
	}
	if Code(9999).Title() != UnknownCode.Title() {
		t.Fatalf("unknown codes fall back to the generic title")
	}
	if MatchTypeError.String() != "[VAR1003]: Match cases have incompatible return types" {
		t.Fatalf("String = %s", MatchTypeError.String())
	}
}

func TestSeverityString(t *testing.T) {
	tests := map[Severity]string{
		SevInfo:     "INFO",
		SevWarning:  "WARNING",
		SevError:    "ERROR",
		Severity(9): "UNKNOWN",
	}
	for sev, want := range tests {
		if got := sev.String(); got != want {
			t.Errorf("Severity(%d).String() = %q, want %q", uint8(sev), got, want)
		}
	}
}
