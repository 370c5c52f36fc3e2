package evaluator

import "testing"

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{3, "3"},
		{-4, "-4"},
		{3.5, "3.5"},
		{2.50, "2.5"},
		{0.1, "0.1"},
		{1000000, "1000000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := FormatValue(NewNumber(tt.in))
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatString(t *testing.T) {
	got := FormatValue(NewString("hello"))
	if got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestFormatList(t *testing.T) {
	tests := []struct {
		name string
		in   List
		want string
	}{
		{"empty", NewList(nil), "[]"},
		{"numbers", NewList([]Value{NewNumber(1), NewNumber(2)}), "[1, 2]"},
		{"strings are quoted", NewList([]Value{NewString("a"), NewString("b")}), "['a', 'b']"},
		{"mixed", NewList([]Value{NewNumber(1), NewString("two")}), "[1, 'two']"},
		{"nested", NewList([]Value{NewList([]Value{NewNumber(1)})}), "[[1]]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatValue(tt.in)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValueTypes(t *testing.T) {
	if NewNumber(1).Type() != "number" {
		t.Error("number type label")
	}
	if NewString("").Type() != "string" {
		t.Error("string type label")
	}
	if NewList(nil).Type() != "list" {
		t.Error("list type label")
	}
}
