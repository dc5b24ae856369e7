package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/taskwall/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent @ 2026-03-01 9:00 AM", TypeAdd},
		{"done 1770638400000", TypeDone},
		{"/rm 42", TypeRemove},
		{"restore 42", TypeRestore},
		{"purge 42", TypePurge},
		{"/filter Work", TypeFilter},
		{"notify ON", TypeNotify},
		{"/theme ocean", TypeTheme},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddFields(t *testing.T) {
	cmd, err := Parse("/add call the bank @ 2026-03-01 4:30 pm #Finance #4caf50")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := AddArgs{
		Text: "call the bank", Date: "2026-03-01", Time: "4:30", Meridiem: "PM",
		Category: "Finance", Color: "#4CAF50",
	}
	if *cmd.Add != want {
		t.Fatalf("add args = %+v, want %+v", *cmd.Add, want)
	}

	cmd, err = Parse("add email @ 2026-03-01 11:00")
	if err != nil {
		t.Fatalf("parse without meridiem failed: %v", err)
	}
	if cmd.Add.Meridiem != "" || cmd.Add.Category != "" {
		t.Fatalf("expected optional fields empty, got %+v", *cmd.Add)
	}
}

func TestParseRejectsInvalidArguments(t *testing.T) {
	cases := []string{
		"/add no deadline",
		"/add @ 2026-03-01 9:00 AM",
		"/add x @ 2026-03-01",
		"/add x @ 2026-03-01 9:00 AM extra",
		"/done",
		"/done abc",
		"/rm -3",
		"/filter",
		"/notify maybe",
		"/theme plaid",
	}
	for _, in := range cases {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseEmptyAndUnknown(t *testing.T) {
	for _, in := range []string{"", "   ", "/"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: expected empty input error, got %v", in, err)
		}
	}

	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestParseThemeAndFilterNormalisation(t *testing.T) {
	cmd, err := Parse("/theme theme-rose")
	if err != nil || cmd.Theme.Theme != model.ThemeRose {
		t.Fatalf("unexpected theme parse: %+v %v", cmd.Theme, err)
	}
	cmd, err = Parse("/filter #Side Project")
	if err != nil || cmd.Filter.Category != "Side Project" {
		t.Fatalf("unexpected filter parse: %+v %v", cmd.Filter, err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/purge 77")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Purge: func(a TargetArgs) (Result, error) {
			called = true
			if a.ID != 77 {
				t.Fatalf("unexpected id: %d", a.ID)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("notify off")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
