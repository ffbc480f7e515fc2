package webapp

import "testing"

func TestSameValue(t *testing.T) {
	type point struct{ X, Y int }
	type boxed struct{ V any }
	s := []int{1, 2, 3}
	m := map[string]int{}

	type tc struct {
		a, b any
		want bool
	}

	tests := map[string]tc{
		"equal floats":         {a: 1.5, b: 1.5, want: true},
		"different floats":     {a: 1.5, b: 2.5},
		"int vs float":         {a: 1, b: 1.0},
		"both nil":             {a: nil, b: nil, want: true},
		"nil vs value":         {a: nil, b: 0},
		"equal strings":        {a: "a", b: "a", want: true},
		"equal structs":        {a: point{1, 2}, b: point{1, 2}, want: true},
		"same slice":           {a: s, b: s, want: true},
		"resliced":             {a: s, b: s[:2]},
		"equal copies":         {a: s, b: []int{1, 2, 3}},
		"same map":             {a: m, b: m, want: true},
		"funcs":                {a: func() {}, b: func() {}},
		"unset":                {a: Unset, b: Unset, want: true},
		"uncomparable payload": {a: boxed{[]int{1}}, b: boxed{[]int{1}}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := sameValue(tt.a, tt.b); got != tt.want {
				t.Errorf("sameValue(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	type tc struct {
		v    any
		want bool
	}

	tests := map[string]tc{
		"true":         {v: true, want: true},
		"false":        {v: false},
		"one":          {v: 1.0, want: true},
		"zero":         {v: 0.0},
		"int":          {v: 3, want: true},
		"string":       {v: "x", want: true},
		"empty string": {v: ""},
		"nil":          {v: nil},
		"unset":        {v: Unset},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := truthy(tt.v); got != tt.want {
				t.Errorf("truthy(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestToFloat(t *testing.T) {
	type tc struct {
		v    any
		want float64
	}

	tests := map[string]tc{
		"float64": {v: 2.5, want: 2.5},
		"float32": {v: float32(0.5), want: 0.5},
		"int":     {v: -4, want: -4},
		"uint64":  {v: uint64(9), want: 9},
		"bool":    {v: true, want: 1},
		"string":  {v: "12"},
		"unset":   {v: Unset},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := toFloat(tt.v); got != tt.want {
				t.Errorf("toFloat(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}
